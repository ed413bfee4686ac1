package demo

import (
	"time"

	"github.com/drakos74/mlviz/internal/activation"
	"github.com/drakos74/mlviz/internal/control"
	mlmath "github.com/drakos74/mlviz/internal/math"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/rs/zerolog/log"
)

const (
	// ActivationName is the name of the activation functions demo.
	ActivationName = "activation"

	rotateSpeed      = 0.005
	derivativeOffset = 10.0
	plotMin          = -6.0
	plotMax          = 6.0
	plotFloor        = -2.0
	plotCeiling      = 6.0
	plotSamples      = 240
)

var (
	curveColor   = render.MustHex("#4fc3f7")
	derivColor   = render.MustHex("#ff9800")
	plotAxeColor = render.MustHex("#666666")
)

// Activation shows an activation function as a 3d surface, next to its 2d plot.
type Activation struct {
	base
	fn         activation.Function
	projection render.Projection
}

// NewActivation creates the activation functions demo.
func NewActivation(src rng.Source) *Activation {
	a := &Activation{
		base: newBase(ActivationName, src,
			[]control.Action{control.Toggle, control.Rotate, control.Reset},
			control.Slider{Name: "function", Min: 0, Max: float64(len(activation.Kinds) - 1), Step: 1, Default: float64(activation.ReLU)},
			control.Slider{Name: "param", Min: 0.01, Max: 2, Step: 0.01, Default: activation.DefaultLeakyAlpha},
			control.Slider{Name: "resolution", Min: 10, Max: 100, Step: 10, Default: 60},
			control.Slider{Name: "derivative", Min: 0, Max: 1, Step: 1, Default: 0},
			control.Slider{Name: "speed", Min: 0, Max: 5, Step: 0.5, Default: 1},
		),
		fn: activation.New(activation.ReLU),
		projection: render.Projection{
			Scale:   25,
			YOffset: 100,
			Width:   800,
			Height:  600,
		},
	}
	a.running = true
	return a
}

// Update reads the sliders and rotates the surface while auto rotation is on.
// Changing the function resets the shape parameter to its default.
func (a *Activation) Update(dt time.Duration) {
	k := activation.Kinds[a.index("function", len(activation.Kinds))]
	if k != a.fn.Kind {
		a.fn = activation.New(k)
		if k.Parametric() {
			if _, err := a.panel.Set("param", a.fn.Param); err != nil {
				log.Error().Err(err).Str("demo", a.name).Msg("could not reset param")
			}
		}
	} else if k.Parametric() {
		a.fn = a.fn.WithParam(a.panel.Get("param"))
	}
	if a.running {
		a.projection.Rotate(rotateSpeed * a.panel.Get("speed"))
	}
}

// Trigger executes the action.
func (a *Activation) Trigger(action control.Action) error {
	switch action {
	case control.Toggle:
		a.toggle()
	case control.Rotate:
		a.projection.Rotate(rotateDelta)
	case control.Reset:
		a.projection.Angle = 0
	default:
		return a.unknown(action)
	}
	return nil
}

// Reset restores the initial state.
func (a *Activation) Reset() {
	a.panel.Reset()
	a.fn = activation.New(activation.ReLU)
	a.projection.Angle = 0
	a.running = true
}

// Function returns the displayed activation function.
func (a *Activation) Function() activation.Function {
	return a.fn
}

func (a *Activation) surface(f *render.Frame, derivative bool, offset float64) {
	grid := activation.Surface(a.fn, a.panel.Int("resolution"), derivative)
	color := render.ValueColor
	if derivative {
		color = render.DerivativeColor
	}
	project := func(v activation.Vertex) render.Point {
		return a.projection.Project(v.X+offset, v.Z, v.Y)
	}
	for i, row := range grid {
		for j, v := range row {
			c := color(v.Y)
			if i+1 < len(grid) {
				f.Line(c, 1, project(v), project(grid[i+1][j]))
			}
			if j+1 < len(row) {
				f.Line(c, 1, project(v), project(row[j+1]))
			}
		}
	}
}

func (a *Activation) plot(f *render.Frame, b box) {
	scale := func(x, y float64) render.Point {
		return b.corner((x-plotMin)/(plotMax-plotMin), (plotCeiling-y)/(plotCeiling-plotFloor))
	}
	f.Line(plotAxeColor, 1, scale(plotMin, 0), scale(plotMax, 0))
	f.Line(plotAxeColor, 1, scale(0, plotFloor), scale(0, plotCeiling))

	c := activation.Sample(a.fn, plotMin, plotMax, plotSamples).Clip(plotFloor, plotCeiling)
	values := make([]render.Point, len(c.X))
	derivatives := make([]render.Point, len(c.X))
	for i, x := range c.X {
		values[i] = scale(x, c.Y[i])
		derivatives[i] = scale(x, c.DY[i])
	}
	f.Line(curveColor, 3.5, values...)
	if a.panel.Int("derivative") == 1 {
		f.Line(derivColor, 2, derivatives...)
	}
}

// Render draws the surface, the derivative surface if enabled, and the 2d plot.
func (a *Activation) Render() *render.Frame {
	f := a.frame()
	derivative := a.panel.Int("derivative") == 1
	offset := 0.0
	if derivative {
		offset = -derivativeOffset / 2
	}
	a.surface(f, false, offset)
	if derivative {
		a.surface(f, true, offset+derivativeOffset)
	}
	a.plot(f, box{x: 840, y: 40, width: 320, height: 240})

	f.Label("function", a.fn.Kind.String())
	if a.fn.Kind.Parametric() {
		f.Label("param", mlmath.Format(a.fn.Param))
	}
	f.Label("f(0)", mlmath.FormatN(a.fn.F(0), 3))
	f.Label("f'(0)", mlmath.FormatN(a.fn.D(0), 3))
	return f
}
