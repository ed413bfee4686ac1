package demo

import (
	"fmt"

	"github.com/drakos74/mlviz/internal/rng"
)

// Constructor creates a demo on the given random source.
type Constructor func(src rng.Source) Demo

// Constructors lists all demos in display order.
var Constructors = []Constructor{
	func(src rng.Source) Demo { return NewGradient(src) },
	func(src rng.Source) Demo { return NewPerceptron(src) },
	func(src rng.Source) Demo { return NewActivation(src) },
	func(src rng.Source) Demo { return NewExplorer(src) },
	func(src rng.Source) Demo { return NewVariations(src) },
	func(src rng.Source) Demo { return NewEarlyStop(src) },
	func(src rng.Source) Demo { return NewDropout(src) },
	func(src rng.Source) Demo { return NewBatchNorm(src) },
	func(src rng.Source) Demo { return NewMLvsDL(src) },
	func(src rng.Source) Demo { return NewNetwork(src) },
	func(src rng.Source) Demo { return NewNeuron(src) },
}

// All creates every demo, with the slider overrides of the config applied.
func All(cfg Config) ([]Demo, error) {
	src := cfg.Source()
	demos := make([]Demo, len(Constructors))
	names := make(map[string]bool)
	for i, c := range Constructors {
		d := c(src)
		if sliders, ok := cfg.Sliders[d.Name()]; ok {
			if err := d.Panel().Override(sliders...); err != nil {
				return nil, fmt.Errorf("could not configure '%s': %w", d.Name(), err)
			}
			d.Reset()
		}
		names[d.Name()] = true
		demos[i] = d
	}
	for name := range cfg.Sliders {
		if !names[name] {
			return nil, fmt.Errorf("slider overrides for '%s': %w", name, ErrUnknownDemo)
		}
	}
	return demos, nil
}
