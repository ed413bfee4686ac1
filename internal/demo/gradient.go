package demo

import (
	"math"
	"time"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/mlviz/internal/control"
	mlmath "github.com/drakos74/mlviz/internal/math"
	"github.com/drakos74/mlviz/internal/metrics"
	"github.com/drakos74/mlviz/internal/optimizer"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/rs/zerolog/log"
)

const (
	// GradientName is the name of the global optimisation demo.
	GradientName = "gradient"

	autoDelay   = 50 * time.Millisecond
	gridStep    = 0.5
	rotateDelta = 0.1
)

var (
	currentColor = render.MustHex("#0066ff")
	bestColor    = render.MustHex("#ffd700")
)

// Gradient runs gradient descent with random restarts on the multimodal surface.
type Gradient struct {
	base
	stepper    *optimizer.Stepper
	projection render.Projection
	elapsed    time.Duration
}

// NewGradient creates the global optimisation demo.
func NewGradient(src rng.Source) *Gradient {
	return &Gradient{
		base: newBase(GradientName, src,
			[]control.Action{control.Step, control.Toggle, control.Restart, control.Rotate, control.Reset},
			control.Slider{Name: "learningRate", Min: 0.01, Max: 0.5, Step: 0.01, Default: 0.1},
			control.Slider{Name: "angle", Min: -3.14, Max: 3.14, Step: 0.01, Default: 0},
		),
		stepper:    optimizer.NewStepper(optimizer.Multimodal{}, optimizer.DefaultConfig(), src),
		projection: render.DefaultProjection(),
	}
}

func (g *Gradient) step() {
	if g.stepper.Step() {
		best, value := g.stepper.Best()
		log.Debug().Str("demo", g.name).Str("best", best.String()).Float64("value", value).Msg("improved")
	}
	metrics.Observer.Increment(metrics.Steps, g.name)
}

func (g *Gradient) restart() {
	g.stepper.Restart()
	metrics.Observer.Increment(metrics.Restarts, g.name)
}

// Update reads the sliders and, in auto mode, advances every 50ms.
func (g *Gradient) Update(dt time.Duration) {
	g.stepper.SetLearningRate(g.panel.Get("learningRate"))
	g.projection.Angle = g.panel.Get("angle")
	if g.stepper.State() != optimizer.Stepping {
		return
	}
	g.elapsed += dt
	for g.elapsed >= autoDelay {
		g.elapsed -= autoDelay
		restarts := g.stepper.Restarts()
		g.stepper.Advance()
		if g.stepper.Restarts() > restarts {
			metrics.Observer.Increment(metrics.Restarts, g.name)
		} else {
			metrics.Observer.Increment(metrics.Steps, g.name)
		}
	}
}

// Trigger executes the action.
func (g *Gradient) Trigger(action control.Action) error {
	switch action {
	case control.Step:
		g.step()
	case control.Toggle:
		g.stepper.Toggle()
		g.elapsed = 0
	case control.Restart:
		g.restart()
	case control.Rotate:
		angle := g.panel.Get("angle") + rotateDelta
		if angle > math.Pi {
			angle -= 2 * math.Pi
		}
		_, err := g.panel.Set("angle", angle)
		return err
	case control.Reset:
		g.Reset()
	default:
		return g.unknown(action)
	}
	return nil
}

// Click moves the descent to the clicked ground point, if it is within the surface bounds.
func (g *Gradient) Click(p render.Point) error {
	x, y := g.projection.Unproject(p.X, p.Y)
	if !g.stepper.MoveTo(x, y) {
		log.Debug().Float64("x", x).Float64("y", y).Msg("click out of bounds")
	}
	return nil
}

// Reset restores the initial state.
func (g *Gradient) Reset() {
	g.stepper.Reset()
	g.panel.Reset()
	g.elapsed = 0
}

// Stepper exposes the optimizer.
func (g *Gradient) Stepper() *optimizer.Stepper {
	return g.stepper
}

func (g *Gradient) project(p xmath.Vector) render.Point {
	return g.projection.Project(p[0], p[1], optimizer.Multimodal{}.F(p))
}

// Render draws the surface mesh, the descent path and the best position.
func (g *Gradient) Render() *render.Frame {
	f := g.frame()
	s := optimizer.Multimodal{}
	min, max := s.Bounds()
	for x := min; x < max; x += gridStep {
		for y := min; y < max; y += gridStep {
			z := s.F(xmath.Vector{x, y})
			p := g.projection.Project(x, y, z)
			c := render.HeightColor(z)
			f.Line(c, 1, p, g.project(xmath.Vector{x + gridStep, y}))
			f.Line(c, 1, p, g.project(xmath.Vector{x, y + gridStep}))
		}
	}

	history := g.stepper.History()
	for i := 1; i < len(history); i++ {
		f.Line(render.Red, 4, g.project(history[i-1]), g.project(history[i]))
	}
	f.Point(g.project(g.stepper.Position()), currentColor, 8)

	best, value := g.stepper.Best()
	star := g.projection.Project(best[0], best[1], value)
	f.Polygon(bestColor, render.Star(star.X, star.Y, 5, 10, 5)...)

	position := g.stepper.Position()
	f.Label("iteration", mlmath.FormatN(float64(g.stepper.Iteration()), 0))
	f.Label("restarts", mlmath.FormatN(float64(g.stepper.Restarts()), 0))
	f.Label("position", mlmath.Format(position[0])+", "+mlmath.Format(position[1]))
	f.Label("value", mlmath.FormatN(g.stepper.Value(), 4))
	f.Label("best", mlmath.FormatN(value, 4))
	f.Label("state", g.stepper.State().String())
	return f
}
