package demo

import (
	"time"

	"github.com/drakos74/mlviz/internal/control"
	mlmath "github.com/drakos74/mlviz/internal/math"
	"github.com/drakos74/mlviz/internal/metrics"
	"github.com/drakos74/mlviz/internal/optimizer"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/drakos74/mlviz/internal/rng"
)

const (
	// VariationsName is the name of the gradient descent variants demo.
	VariationsName = "variations"

	numDataPoints = 20
	trueM         = 2.0
	trueB         = 10.0
	dataNoise     = 5.0
)

var variantColors = map[optimizer.Variant]render.Color{
	optimizer.Batch:      render.MustHex("#3498db"),
	optimizer.Stochastic: render.MustHex("#e74c3c"),
	optimizer.MiniBatch:  render.MustHex("#2ecc71"),
}

var (
	dataColor   = render.MustHex("#34495e")
	activeColor = render.MustHex("#ffd700")
)

// Variations fits the same data with batch, stochastic and mini-batch gradient descent.
type Variations struct {
	base
	points      []optimizer.Point
	regressions []*optimizer.Regression
}

// NewVariations creates the gradient descent variants demo.
func NewVariations(src rng.Source) *Variations {
	v := &Variations{
		base: newBase(VariationsName, src,
			[]control.Action{control.Step, control.Toggle, control.Reset},
			control.Slider{Name: "learningRate", Min: 0.001, Max: 0.05, Step: 0.001, Default: 0.01},
			control.Slider{Name: "miniBatchSize", Min: 2, Max: 16, Step: 1, Default: 8},
			control.Slider{Name: "speed", Min: 1, Max: 10, Step: 1, Default: 5},
		),
	}
	for _, variant := range optimizer.Variants {
		v.regressions = append(v.regressions, optimizer.NewRegression(variant, optimizer.DefaultRegressionConfig(), src))
	}
	v.clear()
	return v
}

func (v *Variations) clear() {
	for _, r := range v.regressions {
		r.Reset()
	}
	v.points = optimizer.GenerateLine(v.src, numDataPoints, trueM, trueB, dataNoise)
}

func (v *Variations) step() {
	for _, r := range v.regressions {
		for i := 0; i < r.StepsPerTick(); i++ {
			r.Step(v.points)
		}
		metrics.Observer.Add(metrics.Steps, v.name, r.StepsPerTick())
	}
}

// Update reads the sliders and updates all variants at the pace of the speed slider.
func (v *Variations) Update(dt time.Duration) {
	for _, r := range v.regressions {
		r.SetLearningRate(v.panel.Get("learningRate"))
		r.SetMiniBatchSize(v.panel.Int("miniBatchSize"))
	}
	if !v.running {
		return
	}
	if v.due(v.panel.Int("speed")) {
		v.step()
	}
}

// Trigger executes the action.
func (v *Variations) Trigger(action control.Action) error {
	switch action {
	case control.Step:
		v.step()
	case control.Toggle:
		v.toggle()
	case control.Reset:
		v.running = false
		v.clear()
	default:
		return v.unknown(action)
	}
	return nil
}

// Reset restores the initial state.
func (v *Variations) Reset() {
	v.running = false
	v.frames = 0
	v.panel.Reset()
	v.clear()
}

// Points returns the data set.
func (v *Variations) Points() []optimizer.Point {
	return v.points
}

// Regressions returns the models, one per variant.
func (v *Variations) Regressions() []*optimizer.Regression {
	return v.regressions
}

// Render draws one panel per variant with the data, the fitted line and its recent history.
func (v *Variations) Render() *render.Frame {
	f := v.frame()
	const (
		width  = 380.0
		height = 300.0
		xMax   = 10.0
		yMax   = 35.0
	)
	for k, r := range v.regressions {
		b := box{x: 30 + float64(k)*(width+20), y: 60, width: width, height: height}
		scale := func(x, y float64) render.Point {
			return b.corner(x/xMax, 1-y/yMax)
		}
		c := variantColors[r.Variant]
		f.Line(render.Gray, 1, b.corner(0, 0), b.corner(0, 1), b.corner(1, 1))
		f.Text(b.corner(0, 0), c, r.Variant.String())

		history := r.History()
		for i, h := range history {
			alpha := float64(i+1) / float64(len(history)+1)
			f.Line(render.Interpolate(render.White, c, alpha*0.3), 1, scale(0, h[1]), scale(xMax, h[0]*xMax+h[1]))
		}
		line := r.Line()
		f.Line(c, 3, scale(0, line.Predict(0)), scale(xMax, line.Predict(xMax)))

		active := make(map[int]bool)
		for _, i := range r.Active() {
			active[i] = true
		}
		for i, p := range v.points {
			f.Point(scale(p.X, p.Y), dataColor, 5)
			if active[i] {
				f.Point(scale(p.X, p.Y), activeColor, 12)
			}
		}

		f.Label(r.Variant.String()+".iterations", mlmath.FormatN(float64(r.Iteration()), 0))
		f.Label(r.Variant.String()+".loss", mlmath.Format(line.Loss(v.points)))
		f.Label(r.Variant.String()+".line", "y = "+mlmath.Format(line.M)+"x + "+mlmath.Format(line.B))
	}
	return f
}
