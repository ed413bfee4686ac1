package network

import (
	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/mlviz/internal/rng"
)

// RandomActivations draws activations in [-1,1) for layers of the given sizes.
func RandomActivations(sizes []int, src rng.Source) []xmath.Vector {
	layers := make([]xmath.Vector, len(sizes))
	for l, s := range sizes {
		v := xmath.Vec(s)
		for i := range v {
			v[i] = src.Float64()*2 - 1
		}
		layers[l] = v
	}
	return layers
}

// Dropout is the result of inverted dropout on a set of layers.
type Dropout struct {
	// Activations are the activations after dropout.
	Activations []xmath.Vector
	// Masks hold the scale applied to each neuron, 0 for dropped ones.
	Masks []xmath.Vector
	// Dropped is the number of dropped neurons.
	Dropped int
}

// ApplyDropout drops hidden neurons with the given rate and scales the kept ones by 1/(1-rate).
// The input and output layers are never dropped.
func ApplyDropout(layers []xmath.Vector, rate float64, src rng.Source) Dropout {
	d := Dropout{
		Activations: make([]xmath.Vector, len(layers)),
		Masks:       make([]xmath.Vector, len(layers)),
	}
	keep := 1 - rate
	for l, layer := range layers {
		mask := xmath.Vec(len(layer))
		if l == 0 || l == len(layers)-1 {
			d.Masks[l] = mask.Op(xmath.Unit)
			d.Activations[l] = layer.Copy()
			continue
		}
		for i := range layer {
			if src.Float64() < keep {
				mask[i] = 1 / keep
			} else {
				d.Dropped++
			}
		}
		d.Masks[l] = mask
		d.Activations[l] = layer.Dop(func(x, m float64) float64 {
			return x * m
		}, mask)
	}
	return d
}
