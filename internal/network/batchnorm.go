package network

import (
	"math"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/mlviz/internal/buffer"
	"github.com/drakos74/mlviz/internal/rng"
)

// Epsilon keeps the normalization finite for constant batches.
const Epsilon = 1e-8

// BatchStats are the statistics of a normalized batch.
type BatchStats struct {
	Mean       float64      `json:"mean"`
	Variance   float64      `json:"variance"`
	Normalized xmath.Vector `json:"normalized"`
}

// Normalize normalizes the batch to zero mean and unit (population) variance.
func Normalize(batch []float64) BatchStats {
	stats := buffer.NewStats()
	for _, x := range batch {
		stats.Push(x)
	}
	mean := stats.Avg()
	variance := stats.Variance()
	std := math.Sqrt(variance + Epsilon)
	return BatchStats{
		Mean:     mean,
		Variance: variance,
		Normalized: xmath.Vector(batch).Op(func(x float64) float64 {
			return (x - mean) / std
		}),
	}
}

// SampleBatch draws a batch of n values in [-2,2).
func SampleBatch(src rng.Source, n int) []float64 {
	batch := make([]float64, n)
	for i := range batch {
		batch[i] = rng.Uniform(src, -2, 2)
	}
	return batch
}

// Layer holds the simulated activations and weights of a layer.
type Layer struct {
	Activations xmath.Vector `json:"activations"`
	Weights     xmath.Vector `json:"weights"`
}

const (
	simulatedLayers  = 3
	simulatedNeurons = 8
)

// SimulateLayers fabricates the layer state of a network at the given epoch.
// Without normalization the activations grow exponentially with the epochs, up to ±5.
func SimulateLayers(epoch int, normalized bool, src rng.Source) []Layer {
	layers := make([]Layer, simulatedLayers)
	scale := math.Pow(2, float64(epoch)/20)
	clip := xmath.Clip(-5, 5)
	for l := range layers {
		a := xmath.Vec(simulatedNeurons)
		w := xmath.Vec(simulatedNeurons)
		for i := 0; i < simulatedNeurons; i++ {
			if normalized {
				a[i] = rng.Jitter(src, 2)
				w[i] = src.Float64()*0.5 - 0.25
			} else {
				a[i] = clip(rng.Jitter(src, scale))
				w[i] = rng.Jitter(src, math.Min(2, scale*0.1))
			}
		}
		layers[l] = Layer{Activations: a, Weights: w}
	}
	return layers
}
