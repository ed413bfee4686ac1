// Package curve fabricates plausible training curves for illustration.
// None of the curves come out of an actual optimisation.
package curve

import (
	"fmt"
	"math"

	"github.com/drakos74/mlviz/internal/rng"
)

// Kind is a synthetic loss curve.
type Kind int

const (
	// Train is the training loss of the early stopping demo.
	Train Kind = iota
	// Validation is the validation loss of the early stopping demo, it rises after the optimum.
	Validation
	// StandardTrain is the training loss of a network without dropout.
	StandardTrain
	// StandardTest is the test loss of a network without dropout, it overfits.
	StandardTest
	// DropoutTrain is the training loss of a network with dropout.
	DropoutTrain
	// DropoutTest is the test loss of a network with dropout.
	DropoutTest
	// OverfitTrain is the training loss of a network without batch normalization.
	OverfitTrain
	// OverfitTest is the test loss of a network without batch normalization, it overfits.
	OverfitTest
	// NormalizedTrain is the training loss of a network with batch normalization.
	NormalizedTrain
	// NormalizedTest is the test loss of a network with batch normalization.
	NormalizedTest
)

// Kinds lists all curves.
var Kinds = []Kind{
	Train, Validation,
	StandardTrain, StandardTest, DropoutTrain, DropoutTest,
	OverfitTrain, OverfitTest, NormalizedTrain, NormalizedTest,
}

func (k Kind) String() string {
	switch k {
	case Train:
		return "train"
	case Validation:
		return "validation"
	case StandardTrain:
		return "standard-train"
	case StandardTest:
		return "standard-test"
	case DropoutTrain:
		return "dropout-train"
	case DropoutTest:
		return "dropout-test"
	case OverfitTrain:
		return "overfit-train"
	case OverfitTest:
		return "overfit-test"
	case NormalizedTrain:
		return "normalized-train"
	case NormalizedTest:
		return "normalized-test"
	}
	return fmt.Sprintf("curve(%d)", int(k))
}

// Overfits returns true for the curves that decay and then rise again.
func (k Kind) Overfits() bool {
	switch k {
	case Validation, StandardTest, OverfitTest:
		return true
	}
	return false
}

const (
	// Start is the initial loss of the dropout and batch norm curves.
	Start = 2.5
	// Target is the asymptote of the dropout and batch norm curves.
	Target = 0.3
	// Optimum is the lowest loss of the overfitting test curves.
	Optimum = 0.4

	trainStart = 2.8
	trainFloor = 0.15
	valOptimum = 0.4
)

// decay is an exponential decay from start towards the target asymptote.
func decay(start, target, rate, p float64) float64 {
	return target + (start-target)*math.Exp(-rate*p)
}

// overfit descends linearly to the optimum until the given progress and then rises.
func overfit(start, optimum, turn, p float64) (float64, float64, bool) {
	if p < turn {
		return start - (start-optimum)*(p/turn), 0, false
	}
	return optimum, (p - turn) / (1 - turn), true
}

// Generate returns the loss of the given curve at the given epoch.
func Generate(k Kind, epoch, maxEpochs int, src rng.Source) float64 {
	p := 0.0
	if maxEpochs > 0 {
		p = float64(epoch) / float64(maxEpochs)
	}
	switch k {
	case Train:
		v := decay(trainStart, trainFloor, 3.5, p) + rng.Jitter(src, 0.08)
		return math.Max(0.1, v)
	case Validation:
		v, o, rising := overfit(trainStart, valOptimum, 0.25, p)
		noise := rng.Jitter(src, 0.08)
		if !rising {
			return v + noise
		}
		return v + 1.2*o + noise + math.Pow(o, 1.5)*0.3
	case StandardTrain:
		return math.Max(0.05, decay(Start, Target, 4, p)-0.15*p)
	case StandardTest:
		v, o, rising := overfit(Start, Optimum, 0.3, p)
		if !rising {
			return v
		}
		return v + 1.5*o + src.Float64()*0.1
	case DropoutTrain:
		return math.Max(0.2, decay(Start, Target, 2.5, p)+rng.Jitter(src, 0.03))
	case DropoutTest:
		return math.Max(0.25, decay(Start, Target, 2.3, p)+rng.Jitter(src, 0.04))
	case OverfitTrain:
		var instability float64
		if epoch > 20 {
			instability = math.Sin(float64(epoch)*0.5) * 0.1
		}
		return math.Max(0.05, decay(Start, Target, 5, p)-0.2*p+instability)
	case OverfitTest:
		v, o, rising := overfit(Start, Optimum, 0.3, p)
		if !rising {
			return v
		}
		return v + 1.2*o + src.Float64()*0.15
	case NormalizedTrain:
		return math.Max(0.2, decay(Start, Target, 3, p)+rng.Jitter(src, 0.02))
	case NormalizedTest:
		return math.Max(0.25, decay(Start, Target, 2.8, p)+rng.Jitter(src, 0.03))
	}
	panic(fmt.Sprintf("unknown curve %v", k))
}

// Series generates the curve for all epochs in [0,maxEpochs].
func Series(k Kind, maxEpochs int, src rng.Source) []float64 {
	ss := make([]float64, maxEpochs+1)
	for e := 0; e <= maxEpochs; e++ {
		ss[e] = Generate(k, e, maxEpochs, src)
	}
	return ss
}
