// Package control defines the user inputs of the demos.
package control

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownControl is returned for a slider the demo does not expose.
	ErrUnknownControl = errors.New("unknown control")
	// ErrUnknownAction is returned for an action the demo does not support.
	ErrUnknownAction = errors.New("unknown action")
)

// Action is a one shot trigger.
type Action string

// Actions shared across the demos.
const (
	Reset     Action = "reset"
	Train     Action = "train"
	Generate  Action = "generate"
	Toggle    Action = "toggle"
	Step      Action = "step"
	Restart   Action = "restart"
	Forward   Action = "forward"
	Backward  Action = "backward"
	Randomize Action = "randomize"
	Rotate    Action = "rotate"
	Click     Action = "click"
)

// Slider is a numeric control with a range and a step.
type Slider struct {
	Name    string  `json:"name"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// Validate checks the slider definition.
func (s Slider) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("slider without name")
	}
	if !(s.Min < s.Max) {
		return fmt.Errorf("invalid range [%v,%v] for '%s'", s.Min, s.Max, s.Name)
	}
	if s.Step < 0 {
		return fmt.Errorf("invalid step %v for '%s'", s.Step, s.Name)
	}
	if s.Default < s.Min || s.Default > s.Max {
		return fmt.Errorf("default %v out of range [%v,%v] for '%s'", s.Default, s.Min, s.Max, s.Name)
	}
	return nil
}

// Clamp snaps the value to the step grid and restricts it to the range.
// NaN maps to the default value.
func (s Slider) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.Default
	}
	if s.Step > 0 && !math.IsInf(v, 0) {
		n := math.Round((v - s.Min) / s.Step)
		v = s.Min + n*s.Step
		// drop the floating point noise of the multiplication
		v = math.Round(v*1e9) / 1e9
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Panel is the ordered set of sliders of a demo.
type Panel struct {
	sliders []Slider
	index   map[string]int
	values  map[string]float64
}

// NewPanel creates a panel with every slider at its default value.
func NewPanel(sliders ...Slider) (*Panel, error) {
	p := &Panel{
		sliders: make([]Slider, 0, len(sliders)),
		index:   make(map[string]int),
		values:  make(map[string]float64),
	}
	for _, s := range sliders {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid slider: %w", err)
		}
		if _, ok := p.index[s.Name]; ok {
			return nil, fmt.Errorf("duplicate slider '%s'", s.Name)
		}
		p.index[s.Name] = len(p.sliders)
		p.sliders = append(p.sliders, s)
		p.values[s.Name] = s.Default
	}
	return p, nil
}

// MustPanel creates a panel and panics if any slider is invalid.
func MustPanel(sliders ...Slider) *Panel {
	p, err := NewPanel(sliders...)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// Override replaces the range of the sliders with the same name.
// Unknown sliders are ignored, as well as invalid definitions.
func (p *Panel) Override(sliders ...Slider) error {
	for _, s := range sliders {
		i, ok := p.index[s.Name]
		if !ok {
			continue
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("invalid override: %w", err)
		}
		p.sliders[i] = s
		p.values[s.Name] = s.Default
	}
	return nil
}

// Set clamps and stores the value of the named slider.
func (p *Panel) Set(name string, v float64) (float64, error) {
	i, ok := p.index[name]
	if !ok {
		return 0, fmt.Errorf("'%s': %w", name, ErrUnknownControl)
	}
	v = p.sliders[i].Clamp(v)
	p.values[name] = v
	return v, nil
}

// Has returns true if the panel has a slider with the given name.
func (p *Panel) Has(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Get returns the current value of the named slider.
func (p *Panel) Get(name string) float64 {
	return p.values[name]
}

// Int returns the current value of the named slider as an integer.
func (p *Panel) Int(name string) int {
	return int(math.Round(p.values[name]))
}

// Reset moves all sliders back to their default.
func (p *Panel) Reset() {
	for _, s := range p.sliders {
		p.values[s.Name] = s.Default
	}
}

// Sliders returns the slider definitions.
func (p *Panel) Sliders() []Slider {
	return append([]Slider{}, p.sliders...)
}
