package perceptron

import (
	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/mlviz/internal/rng"
)

// Sample is a labeled feature vector.
type Sample struct {
	Features xmath.Vector `json:"features"`
	Label    int          `json:"label"`
}

// Generate creates two clusters of n points in total, around +1 and -1 in every dimension.
// The first half of the points has label 1, the rest label 0.
func Generate(src rng.Source, n, dim int, spread float64) []Sample {
	samples := make([]Sample, n)
	for i := range samples {
		label, offset := 1, 1.0
		if i >= n/2 {
			label, offset = 0, -1.0
		}
		x := xmath.Vec(dim)
		for j := range x {
			x[j] = rng.Jitter(src, spread) + offset
		}
		samples[i] = Sample{Features: x, Label: label}
	}
	return samples
}
