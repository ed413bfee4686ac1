package demo

import (
	"time"

	"github.com/drakos74/mlviz/internal/control"
	"github.com/drakos74/mlviz/internal/curve"
	"github.com/drakos74/mlviz/internal/early"
	mlmath "github.com/drakos74/mlviz/internal/math"
	"github.com/drakos74/mlviz/internal/metrics"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/drakos74/mlviz/internal/rng"
)

const (
	// EarlyStopName is the name of the early stopping demo.
	EarlyStopName = "earlystop"

	maxEpochs  = 100
	errorStart = 2.8
)

var (
	trainColor      = render.MustHex("#3498db")
	validationColor = render.MustHex("#e74c3c")
	bestEpochColor      = render.MustHex("#27ae60")
)

// track is the error history of one training run.
type track struct {
	train      []float64
	validation []float64
}

func newTrack(start float64) track {
	return track{
		train:      []float64{start},
		validation: []float64{start},
	}
}

func (t *track) push(train, validation float64) {
	t.train = append(t.train, train)
	t.validation = append(t.validation, validation)
}

// EarlyStop trains the same model twice, once without and once with early stopping.
type EarlyStop struct {
	base
	monitor *early.Monitor
	epoch   int
	full    track
	stopped track
}

// NewEarlyStop creates the early stopping demo.
func NewEarlyStop(src rng.Source) *EarlyStop {
	e := &EarlyStop{
		base: newBase(EarlyStopName, src,
			[]control.Action{control.Toggle, control.Reset},
			control.Slider{Name: "patience", Min: 1, Max: 20, Step: 1, Default: 5},
			control.Slider{Name: "speed", Min: 1, Max: 10, Step: 1, Default: 5},
		),
		monitor: early.NewMonitor(5),
	}
	e.clear()
	return e
}

func (e *EarlyStop) clear() {
	e.epoch = 0
	e.monitor.Reset()
	e.full = newTrack(errorStart)
	e.stopped = newTrack(errorStart)
}

func (e *EarlyStop) step() {
	if e.epoch >= maxEpochs {
		e.running = false
		return
	}
	e.epoch++
	train := curve.Generate(curve.Train, e.epoch, maxEpochs, e.src)
	validation := curve.Generate(curve.Validation, e.epoch, maxEpochs, e.src)
	e.full.push(train, validation)
	if _, stopped := e.monitor.Stopped(); !stopped {
		e.stopped.push(train, validation)
		e.monitor.Check(e.epoch, validation)
	}
	metrics.Observer.Increment(metrics.Epochs, e.name)
	if e.epoch >= maxEpochs {
		e.running = false
	}
}

// Update reads the sliders and, while playing, advances an epoch at the pace of the speed slider.
func (e *EarlyStop) Update(dt time.Duration) {
	e.monitor.SetPatience(e.panel.Int("patience"))
	if !e.running {
		return
	}
	if e.due(e.panel.Int("speed")) {
		e.step()
	}
}

// Trigger executes the action.
func (e *EarlyStop) Trigger(action control.Action) error {
	switch action {
	case control.Toggle:
		e.toggle()
	case control.Reset:
		e.running = false
		e.clear()
	default:
		return e.unknown(action)
	}
	return nil
}

// Reset restores the initial state.
func (e *EarlyStop) Reset() {
	e.running = false
	e.frames = 0
	e.panel.Reset()
	e.clear()
}

// Epoch returns the number of epochs run.
func (e *EarlyStop) Epoch() int {
	return e.epoch
}

// Monitor exposes the early stopping monitor.
func (e *EarlyStop) Monitor() *early.Monitor {
	return e.monitor
}

// Render draws both training runs side by side.
func (e *EarlyStop) Render() *render.Frame {
	f := e.frame()
	left := box{x: 60, y: 60, width: 480, height: 380}
	right := box{x: 660, y: 60, width: 480, height: 380}

	chart(f, left, "without early stopping", maxEpochs+1,
		series{name: "train", values: e.full.train, color: trainColor},
		series{name: "validation", values: e.full.validation, color: validationColor},
	)
	if k, ok := argmin(e.full.validation); ok && e.epoch > 25 {
		marker(f, left, k, maxEpochs+1, render.Gray, "overfitting")
	}

	chart(f, right, "with early stopping", maxEpochs+1,
		series{name: "train", values: e.stopped.train, color: trainColor},
		series{name: "validation", values: e.stopped.validation, color: validationColor},
	)
	best, bestEpoch := e.monitor.Best()
	if bestEpoch > 0 {
		marker(f, right, bestEpoch, maxEpochs+1, bestEpochColor, "best")
	}
	stopEpoch, stopped := e.monitor.Stopped()
	if stopped {
		marker(f, right, stopEpoch, maxEpochs+1, validationColor, "stop")
	}

	f.Label("epoch", mlmath.FormatN(float64(e.epoch), 0))
	f.Label("patience", mlmath.FormatN(float64(e.monitor.Counter()), 0)+"/"+mlmath.FormatN(float64(e.monitor.Patience()), 0))
	f.Label("best", mlmath.FormatN(best, 3))
	f.Label("bestEpoch", mlmath.FormatN(float64(bestEpoch), 0))
	if stopped {
		f.Label("stopped", mlmath.FormatN(float64(stopEpoch), 0))
		f.Label("saved", mlmath.FormatN(float64(maxEpochs-stopEpoch), 0))
	}
	return f
}
