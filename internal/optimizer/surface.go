// Package optimizer implements gradient descent on closed-form surfaces and on a linear model.
package optimizer

import (
	"math"

	"github.com/drakos74/go-ex-machina/xmath"
)

// Surface is a target function with an analytic gradient.
type Surface interface {
	// Dim is the dimension of the parameter space.
	Dim() int
	// F evaluates the surface.
	F(p xmath.Vector) float64
	// Grad returns the analytic gradient.
	Grad(p xmath.Vector) xmath.Vector
	// Bounds returns the sampling range for every dimension.
	Bounds() (min, max float64)
}

// Multimodal is f(x,y) = 2sin(0.5x)cos(0.5y) + (x²+y²)/20 on [-10,10]².
// The sinusoidal term creates several local minima, the quadratic term a global bowl.
type Multimodal struct{}

// Dim returns 2.
func (Multimodal) Dim() int {
	return 2
}

// F evaluates the surface.
func (Multimodal) F(p xmath.Vector) float64 {
	x, y := p[0], p[1]
	return 2*math.Sin(0.5*x)*math.Cos(0.5*y) + (x*x+y*y)/20
}

// Grad returns the analytic gradient.
func (Multimodal) Grad(p xmath.Vector) xmath.Vector {
	x, y := p[0], p[1]
	return xmath.Vec(2).With(
		math.Cos(0.5*x)*math.Cos(0.5*y)+x/10,
		-math.Sin(0.5*x)*math.Sin(0.5*y)+y/10,
	)
}

// Bounds returns the grid range.
func (Multimodal) Bounds() (float64, float64) {
	return -10, 10
}

// Parabola is f(x) = x² on [-10,10].
type Parabola struct{}

// Dim returns 1.
func (Parabola) Dim() int {
	return 1
}

// F evaluates the surface.
func (Parabola) F(p xmath.Vector) float64 {
	return p[0] * p[0]
}

// Grad returns the analytic gradient.
func (Parabola) Grad(p xmath.Vector) xmath.Vector {
	return xmath.Vec(1).With(2 * p[0])
}

// Bounds returns the plotting range.
func (Parabola) Bounds() (float64, float64) {
	return -10, 10
}

// Bowl is f(p) = Σpᵢ² in the given dimension.
type Bowl struct {
	N int
}

// Dim returns the bowl dimension.
func (b Bowl) Dim() int {
	return b.N
}

// F evaluates the surface.
func (b Bowl) F(p xmath.Vector) float64 {
	return p.Dot(p)
}

// Grad returns the analytic gradient.
func (b Bowl) Grad(p xmath.Vector) xmath.Vector {
	return p.Mult(2)
}

// Bounds returns the sampling range.
func (b Bowl) Bounds() (float64, float64) {
	return -10, 10
}
