package math

// Series creates a series of limit values multiplied by the given factor.
func Series(factor float64, limit int) []float64 {
	xx := make([]float64, 0)
	for i := 0; i < limit; i++ {
		xx = append(xx, factor*float64(i))
	}
	return xx
}

// Linspace returns n evenly spaced values over [min,max], both ends included.
// NOTE : for n < 2 it returns only the min value
func Linspace(min, max float64, n int) []float64 {
	if n < 2 {
		return []float64{min}
	}
	step := (max - min) / float64(n-1)
	xx := make([]float64, n)
	for i := 0; i < n; i++ {
		xx[i] = min + step*float64(i)
	}
	// avoid the accumulated rounding error on the last point
	xx[n-1] = max
	return xx
}

// Apply evaluates the function for each of the given values.
func Apply(xx []float64, fn func(x float64) float64) []float64 {
	yy := make([]float64, len(xx))
	for i, x := range xx {
		yy[i] = fn(x)
	}
	return yy
}
