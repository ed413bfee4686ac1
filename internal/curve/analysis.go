package curve

import (
	"fmt"
	"math"

	"github.com/drakos74/mlviz/internal/buffer"
	mlmath "github.com/drakos74/mlviz/internal/math"
)

// Trend fits a second degree polynomial to the curve.
func Trend(ss []float64) ([]float64, error) {
	xx := mlmath.Series(1, len(ss))
	cc, err := mlmath.Fit(xx, ss, 2)
	if err != nil {
		return nil, fmt.Errorf("could not fit curve trend: %w", err)
	}
	return cc, nil
}

// OptimalEpoch estimates the epoch of the minimum loss from the curve trend.
// It returns false if the trend has no minimum within the curve.
func OptimalEpoch(ss []float64) (int, bool) {
	cc, err := Trend(ss)
	if err != nil {
		return 0, false
	}
	if cc[2] <= 0 {
		return 0, false
	}
	x, ok := mlmath.Vertex(cc)
	if !ok || x < 0 || x > float64(len(ss)-1) {
		return 0, false
	}
	return int(math.Round(x)), true
}

// Instability measures the oscillation of the curve around its trend,
// as the strongest non-constant component of the residual spectrum.
func Instability(ss []float64) (mlmath.RNum, error) {
	cc, err := Trend(ss)
	if err != nil {
		return mlmath.RNum{}, err
	}
	residual := make([]float64, len(ss))
	for i, s := range ss {
		residual[i] = s - mlmath.Eval(cc, float64(i))
	}
	peak, ok := mlmath.FFT(residual).Peak(1)
	if !ok {
		return mlmath.RNum{}, fmt.Errorf("empty spectrum for %d values", len(ss))
	}
	return peak, nil
}

// Smooth returns the moving average of the curve over the given window.
// The first values average over the points seen so far.
func Smooth(ss []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	b := buffer.NewBuffer(window)
	smooth := make([]float64, len(ss))
	for i, s := range ss {
		b.Push(s)
		smooth[i] = b.Avg()
	}
	return smooth
}
