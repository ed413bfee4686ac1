package demo

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/drakos74/mlviz/internal/control"
	"github.com/drakos74/mlviz/internal/metrics"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Input is a user input for a demo.
// It carries either a slider value or an action, clicks carry also the canvas point.
type Input struct {
	Demo    string         `json:"demo"`
	Control string         `json:"control,omitempty"`
	Value   float64        `json:"value,omitempty"`
	Action  control.Action `json:"action,omitempty"`
	Point   *render.Point  `json:"point,omitempty"`
}

// Clicker is a demo that reacts to clicks on the canvas.
type Clicker interface {
	Click(p render.Point) error
}

// Info describes a registered demo.
type Info struct {
	Name    string           `json:"name"`
	ID      string           `json:"id"`
	Sliders []control.Slider `json:"sliders"`
	Actions []control.Action `json:"actions"`
}

// Loop advances all demos on every tick.
// Inputs are queued and applied at the start of the next tick,
// so that demo state is only touched by the goroutine calling Tick.
type Loop struct {
	demos []Demo
	index map[string]int
	ids   []string

	running int32
	tick    uint64

	mutex  *sync.RWMutex
	inputs []Input
	frames map[string]*render.Frame
}

// NewLoop creates a new loop for the given demos.
func NewLoop(demos ...Demo) (*Loop, error) {
	l := &Loop{
		demos:   make([]Demo, 0, len(demos)),
		index:   make(map[string]int),
		ids:     make([]string, 0, len(demos)),
		running: 1,
		mutex:   new(sync.RWMutex),
		inputs:  make([]Input, 0),
		frames:  make(map[string]*render.Frame),
	}
	for _, d := range demos {
		if _, ok := l.index[d.Name()]; ok {
			return nil, fmt.Errorf("duplicate demo '%s'", d.Name())
		}
		l.index[d.Name()] = len(l.demos)
		l.demos = append(l.demos, d)
		l.ids = append(l.ids, uuid.New().String())
	}
	return l, nil
}

// Submit queues the input for the next tick.
func (l *Loop) Submit(in Input) error {
	i, ok := l.index[in.Demo]
	if !ok {
		return fmt.Errorf("'%s': %w", in.Demo, ErrUnknownDemo)
	}
	d := l.demos[i]
	if in.Action != "" {
		if !supports(d, in.Action) {
			return fmt.Errorf("'%s' for '%s': %w", in.Action, in.Demo, control.ErrUnknownAction)
		}
	} else if !d.Panel().Has(in.Control) {
		return fmt.Errorf("'%s' for '%s': %w", in.Control, in.Demo, control.ErrUnknownControl)
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.inputs = append(l.inputs, in)
	return nil
}

func supports(d Demo, action control.Action) bool {
	if action == control.Click {
		_, ok := d.(Clicker)
		return ok
	}
	for _, a := range d.Actions() {
		if a == action {
			return true
		}
	}
	return false
}

func (l *Loop) drain() []Input {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	inputs := l.inputs
	l.inputs = make([]Input, 0)
	return inputs
}

func (l *Loop) apply(in Input) {
	d := l.demos[l.index[in.Demo]]
	var err error
	if in.Action == control.Click {
		if in.Point == nil {
			err = fmt.Errorf("click without point")
		} else {
			err = d.(Clicker).Click(*in.Point)
		}
	} else if in.Action != "" {
		err = d.Trigger(in.Action)
	} else {
		err = d.Set(in.Control, in.Value)
	}
	if err != nil {
		log.Warn().
			Err(err).
			Str("demo", in.Demo).
			Str("control", in.Control).
			Str("action", string(in.Action)).
			Msg("could not apply input")
	}
}

// Tick applies the queued inputs, then updates and renders every demo.
// It does nothing while the loop is paused.
func (l *Loop) Tick(dt time.Duration) {
	if !l.Running() {
		return
	}
	for _, in := range l.drain() {
		l.apply(in)
	}
	l.tick++
	for i, d := range l.demos {
		d.Update(dt)
		f := d.Render()
		f.ID = l.ids[i]
		f.Tick = l.tick
		l.mutex.Lock()
		l.frames[d.Name()] = f
		l.mutex.Unlock()
		metrics.Observer.Increment(metrics.Ticks, d.Name())
	}
}

// Run ticks the loop at the given interval until the context is done.
func (l *Loop) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	log.Info().
		Int("demos", len(l.demos)).
		Dur("interval", interval).
		Msg("loop started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Uint64("ticks", l.tick).Msg("loop stopped")
			return
		case <-ticker.C:
			l.Tick(interval)
		}
	}
}

// Pause stops advancing the demos, inputs keep being queued.
func (l *Loop) Pause() {
	atomic.StoreInt32(&l.running, 0)
}

// Resume continues advancing the demos.
func (l *Loop) Resume() {
	atomic.StoreInt32(&l.running, 1)
}

// Running returns true if the loop advances the demos.
func (l *Loop) Running() bool {
	return atomic.LoadInt32(&l.running) == 1
}

// Frame returns the latest frame of the demo.
func (l *Loop) Frame(name string) (*render.Frame, error) {
	if _, ok := l.index[name]; !ok {
		return nil, fmt.Errorf("'%s': %w", name, ErrUnknownDemo)
	}
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	f, ok := l.frames[name]
	if !ok {
		return render.NewFrame(name, l.ids[l.index[name]]), nil
	}
	return f, nil
}

// Demos describes the registered demos.
func (l *Loop) Demos() []Info {
	infos := make([]Info, len(l.demos))
	for i, d := range l.demos {
		infos[i] = Info{
			Name:    d.Name(),
			ID:      l.ids[i],
			Sliders: d.Panel().Sliders(),
			Actions: d.Actions(),
		}
	}
	return infos
}
