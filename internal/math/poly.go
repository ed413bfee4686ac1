package math

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Fit fits the given series of x and y into a polynomial function of the given degree
// out put is a vector with the coefficients of the corresponding powers of x
// c[0] + c[1]x + c[2]x^2 + c[3]x^3 + ...
func Fit(x, y []float64, degree int) ([]float64, error) {

	if len(x) != len(y) {
		return nil, fmt.Errorf("inconsistent series length %d vs %d", len(x), len(y))
	}
	if len(x) <= degree {
		return nil, fmt.Errorf("not enough points %d for degree %d", len(x), degree)
	}

	a := vandermonde(x, degree)
	b := mat.NewDense(len(y), 1, y)
	c := mat.NewDense(degree+1, 1, nil)

	qr := new(mat.QR)
	qr.Factorize(a)

	err := qr.SolveTo(c, false, b)

	v := c.ColView(0)
	cc := make([]float64, v.Len())
	for i := 0; i < v.Len(); i++ {
		cc[i] = v.AtVec(i)
	}
	return cc, err
}

// Eval evaluates the polynomial with the given coefficients at x.
func Eval(cc []float64, x float64) float64 {
	var y float64
	for i := len(cc) - 1; i >= 0; i-- {
		y = y*x + cc[i]
	}
	return y
}

// Vertex returns the x of the extremum for a second degree polynomial.
// It returns false if the polynomial is degenerate, e.g. has no quadratic term.
func Vertex(cc []float64) (float64, bool) {
	if len(cc) != 3 || cc[2] == 0 {
		return 0, false
	}
	x := -cc[1] / (2 * cc[2])
	return x, Finite(x)
}

func vandermonde(a []float64, degree int) *mat.Dense {
	x := mat.NewDense(len(a), degree+1, nil)
	for i := range a {
		for j, p := 0, 1.; j <= degree; j, p = j+1, p*a[i] {
			x.Set(i, j, p)
		}
	}
	return x
}
