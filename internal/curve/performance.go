package curve

import (
	"fmt"
	"math"
)

// Approach is a family of learning algorithms.
type Approach int

const (
	// ML is classic machine learning.
	ML Approach = iota
	// DL is deep learning.
	DL
)

func (a Approach) String() string {
	switch a {
	case ML:
		return "ml"
	case DL:
		return "dl"
	}
	return fmt.Sprintf("approach(%d)", int(a))
}

type segment struct {
	upTo  float64
	base  float64
	gain  float64
	width float64
}

var (
	mlSegments = []segment{
		{upTo: 1000, base: 50, gain: 25, width: 1000},
		{upTo: 10000, base: 75, gain: 10, width: 9000},
		{upTo: 50000, base: 85, gain: 8, width: 40000},
		{upTo: math.Inf(1), base: 93, gain: 4, width: 950000},
	}
	dlSegments = []segment{
		{upTo: 1000, base: 30, gain: 10, width: 1000},
		{upTo: 10000, base: 40, gain: 20, width: 9000},
		{upTo: 100000, base: 60, gain: 20, width: 90000},
		{upTo: 500000, base: 80, gain: 12, width: 400000},
		{upTo: math.Inf(1), base: 92, gain: 7, width: 500000},
	}
)

// Performance returns the accuracy percentage of the approach for the given dataset size.
// ML saturates at 97, DL at 99.
func Performance(a Approach, size float64) float64 {
	segments, ceiling := mlSegments, 97.0
	if a == DL {
		segments, ceiling = dlSegments, 99.0
	}
	from := 0.0
	for _, s := range segments {
		if size < s.upTo {
			return math.Min(ceiling, s.base+(size-from)/s.width*s.gain)
		}
		from = s.upTo
	}
	return ceiling
}

// Crossover returns the smallest of the given sizes where DL outperforms ML.
func Crossover(sizes []float64) (float64, bool) {
	for _, s := range sizes {
		if Performance(DL, s) > Performance(ML, s) {
			return s, true
		}
	}
	return 0, false
}

// Recommendation is the suggested approach for a dataset size.
type Recommendation string

const (
	// RecommendML means classic machine learning performs better.
	RecommendML Recommendation = "ml"
	// RecommendDL means deep learning is clearly ahead, by more than 5 points.
	RecommendDL Recommendation = "dl"
	// RecommendBoth means both approaches perform comparably.
	RecommendBoth Recommendation = "both"
)

// Recommend compares the performance of both approaches at the given dataset size.
func Recommend(size float64) Recommendation {
	ml, dl := Performance(ML, size), Performance(DL, size)
	switch {
	case ml > dl:
		return RecommendML
	case dl > ml+5:
		return RecommendDL
	}
	return RecommendBoth
}
