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
	// ExplorerName is the name of the one dimensional gradient descent demo.
	ExplorerName = "explorer"

	revealDelay = 500 * time.Millisecond
)

var (
	parabolaColor = render.MustHex("#667eea")
	stepColor     = render.MustHex("#27ae60")
)

// Explorer traces gradient descent on f(x) = x^2 and reveals the iterations one by one.
type Explorer struct {
	base
	records  []optimizer.Record
	revealed int
	elapsed  time.Duration
}

// NewExplorer creates the one dimensional gradient descent demo.
func NewExplorer(src rng.Source) *Explorer {
	return &Explorer{
		base: newBase(ExplorerName, src,
			[]control.Action{control.Train, control.Reset},
			control.Slider{Name: "xInit", Min: -10, Max: 10, Step: 0.1, Default: 5},
			control.Slider{Name: "learningRate", Min: 0.01, Max: 1, Step: 0.01, Default: 0.1},
			control.Slider{Name: "iterations", Min: 1, Max: 100, Step: 1, Default: 10},
		),
	}
}

// Update reveals the next iteration every 500ms, while a trace is playing.
func (e *Explorer) Update(dt time.Duration) {
	if !e.running {
		return
	}
	e.elapsed += dt
	for e.running && e.elapsed >= revealDelay {
		e.elapsed -= revealDelay
		e.revealed++
		metrics.Observer.Increment(metrics.Steps, e.name)
		if e.revealed >= len(e.records) {
			e.running = false
		}
	}
}

// Trigger executes the action.
func (e *Explorer) Trigger(action control.Action) error {
	switch action {
	case control.Train:
		if e.running {
			log.Debug().Str("demo", e.name).Msg("trace already playing")
			return nil
		}
		e.records = optimizer.Trace(optimizer.Parabola{},
			xmath.Vector{e.panel.Get("xInit")},
			e.panel.Get("learningRate"),
			e.panel.Int("iterations"))
		e.revealed = 1
		e.elapsed = 0
		e.running = true
	case control.Reset:
		e.clear()
	default:
		return e.unknown(action)
	}
	return nil
}

func (e *Explorer) clear() {
	e.records = nil
	e.revealed = 0
	e.elapsed = 0
	e.running = false
}

// Reset restores the initial state.
func (e *Explorer) Reset() {
	e.panel.Reset()
	e.clear()
}

// Records returns the iterations revealed so far.
func (e *Explorer) Records() []optimizer.Record {
	return e.records[:e.revealed]
}

// Render draws the parabola, the revealed steps and the latest iteration.
func (e *Explorer) Render() *render.Frame {
	f := e.frame()
	span := 10.0
	for _, r := range e.records {
		span = math.Max(span, math.Abs(r.Position[0]))
	}
	b := box{x: 50, y: 20, width: 700, height: 500}
	scale := func(x, y float64) render.Point {
		return b.corner((x+span)/(2*span), 1-y/(span*span))
	}

	xx := mlmath.Linspace(-span, span, 200)
	pp := make([]render.Point, len(xx))
	for i, x := range xx {
		pp[i] = scale(x, x*x)
	}
	f.Line(parabolaColor, 2, pp...)
	f.Line(render.Gray, 1, scale(-span, 0), scale(span, 0))

	records := e.Records()
	path := make([]render.Point, len(records))
	for i, r := range records {
		path[i] = scale(r.Position[0], r.Value)
		f.Point(path[i], stepColor, 5)
	}
	f.Line(stepColor, 1, path...)

	f.Label("xInit", mlmath.Format(e.panel.Get("xInit")))
	f.Label("learningRate", mlmath.Format(e.panel.Get("learningRate")))
	f.Label("iterations", mlmath.FormatN(e.panel.Get("iterations"), 0))
	if len(records) > 0 {
		last := records[len(records)-1]
		f.Point(path[len(path)-1], dlColor, 8)
		f.Label("iteration", mlmath.FormatN(float64(last.Iteration), 0))
		f.Label("x", mlmath.FormatN(last.Position[0], 6))
		f.Label("gradient", mlmath.FormatN(last.Gradient[0], 6))
		f.Label("f(x)", mlmath.FormatN(last.Value, 6))
		if len(records) > 1 {
			f.Label("dx", mlmath.FormatN(last.Position[0]-records[len(records)-2].Position[0], 6))
		}
	}
	return f
}
