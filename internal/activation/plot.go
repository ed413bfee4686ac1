package activation

import (
	mlmath "github.com/drakos74/mlviz/internal/math"
)

// Curve is a sampled activation function.
type Curve struct {
	X  []float64 `json:"x"`
	Y  []float64 `json:"y"`
	DY []float64 `json:"dy"`
}

// Sample evaluates the function and its derivative at n points over [min,max].
func Sample(f Function, min, max float64, n int) Curve {
	xx := mlmath.Linspace(min, max, n)
	return Curve{
		X:  xx,
		Y:  mlmath.Apply(xx, f.F),
		DY: mlmath.Apply(xx, f.D),
	}
}

// Clip returns a copy of the curve with the values restricted to the visible window.
func (c Curve) Clip(min, max float64) Curve {
	clip := func(x float64) float64 {
		return mlmath.Clamp(x, min, max)
	}
	return Curve{
		X:  append([]float64{}, c.X...),
		Y:  mlmath.Apply(c.Y, clip),
		DY: mlmath.Apply(c.DY, clip),
	}
}

// SurfaceScale is the vertical exaggeration of the activation surface.
const SurfaceScale = 1.5

// SurfaceSize is the half width of the activation surface.
const SurfaceSize = 8.0

// Vertex is a point of the activation surface.
type Vertex struct {
	X, Y, Z float64
}

// Surface extrudes the activation curve along the z axis into a (resolution+1)^2 grid.
// Vertex heights are the scaled activation (or its derivative) of x.
func Surface(f Function, resolution int, derivative bool) [][]Vertex {
	if resolution < 1 {
		resolution = 1
	}
	fn := f.F
	if derivative {
		fn = f.D
	}
	grid := make([][]Vertex, resolution+1)
	for i := 0; i <= resolution; i++ {
		x := float64(i)/float64(resolution)*SurfaceSize*2 - SurfaceSize
		y := fn(x) * SurfaceScale
		row := make([]Vertex, resolution+1)
		for j := 0; j <= resolution; j++ {
			row[j] = Vertex{
				X: x,
				Y: y,
				Z: float64(j)/float64(resolution)*SurfaceSize*2 - SurfaceSize,
			}
		}
		grid[i] = row
	}
	return grid
}
