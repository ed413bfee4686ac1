package math

import (
	"math"
	"strconv"
)

// Format formats a float with two decimals, the precision used for all labels.
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// FormatN formats a float based on the given precision
func FormatN(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}

// Finite returns true if none of the given values is NaN or Inf.
func Finite(ff ...float64) bool {
	for _, f := range ff {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Clamp restricts the value to the [min,max] range.
func Clamp(f, min, max float64) float64 {
	return math.Max(min, math.Min(max, f))
}

// Lerp interpolates linearly between a and b for the factor t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ToInt truncates each of the given floats.
func ToInt(ff []float64) []int {
	ii := make([]int, len(ff))
	for i, f := range ff {
		ii[i] = int(f)
	}
	return ii
}

// ToFloat converts the given ints to floats.
func ToFloat(ii []int) []float64 {
	ff := make([]float64, len(ii))
	for f, i := range ii {
		ff[f] = float64(i)
	}
	return ff
}
