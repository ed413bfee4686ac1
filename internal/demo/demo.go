// Package demo implements the interactive demos on top of the numeric kernels.
// Each demo owns its state exclusively, it is advanced by Update and drawn by Render.
package demo

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/drakos74/mlviz/internal/control"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/drakos74/mlviz/internal/render"
)

// ErrUnknownDemo is returned for a demo name that is not registered.
var ErrUnknownDemo = errors.New("unknown demo")

// Demo is a single visualization.
type Demo interface {
	// Name is the unique name of the demo.
	Name() string
	// Panel holds the sliders of the demo.
	Panel() *control.Panel
	// Actions lists the supported one shot triggers.
	Actions() []control.Action
	// Update advances the simulation by one tick.
	Update(dt time.Duration)
	// Render draws the current state.
	Render() *render.Frame
	// Set changes a slider value, it takes effect on the next update.
	Set(name string, value float64) error
	// Trigger executes an action.
	Trigger(action control.Action) error
	// Reset restores the initial state.
	Reset()
}

// Config holds the demo overrides.
type Config struct {
	// Seed of the random source, the current time if 0.
	Seed int64 `json:"seed"`
	// TickRate is the number of ticks per second.
	TickRate int `json:"tick_rate"`
	// Sliders override the default slider ranges per demo.
	Sliders map[string][]control.Slider `json:"sliders"`
}

// Source creates the random source of the config.
func (c Config) Source() rng.Source {
	if c.Seed == 0 {
		return rng.Now()
	}
	return rng.New(c.Seed)
}

// Interval returns the tick interval, 60 ticks per second by default.
func (c Config) Interval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

type base struct {
	name    string
	panel   *control.Panel
	actions []control.Action
	src     rng.Source

	running bool
	frames  int
}

func newBase(name string, src rng.Source, actions []control.Action, sliders ...control.Slider) base {
	return base{
		name:    name,
		panel:   control.MustPanel(sliders...),
		actions: actions,
		src:     src,
	}
}

// Name returns the name of the demo.
func (b *base) Name() string {
	return b.name
}

// Panel returns the sliders of the demo.
func (b *base) Panel() *control.Panel {
	return b.panel
}

// Actions returns the supported actions.
func (b *base) Actions() []control.Action {
	return append([]control.Action{}, b.actions...)
}

// Set stores the slider value for the next update.
func (b *base) Set(name string, value float64) error {
	_, err := b.panel.Set(name, value)
	return err
}

// Running returns true if the demo advances on its own.
func (b *base) Running() bool {
	return b.running
}

func (b *base) toggle() {
	b.running = !b.running
}

// due counts the frame and returns true if it is time for a training step at the given speed.
func (b *base) due(speed int) bool {
	b.frames++
	return b.frames%int(math.Max(1, float64(11-speed))) == 0
}

// index reads the slider as an index into a list of n options.
func (b *base) index(name string, n int) int {
	i := b.panel.Int(name)
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (b *base) unknown(action control.Action) error {
	return fmt.Errorf("'%s' for '%s': %w", action, b.name, control.ErrUnknownAction)
}

func (b *base) frame() *render.Frame {
	return render.NewFrame(b.name, "")
}
