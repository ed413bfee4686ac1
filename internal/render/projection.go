package render

import (
	"math"
)

// Projection maps 3d points onto the canvas, rotating around the vertical axis.
type Projection struct {
	Angle   float64 `json:"angle"`
	Scale   float64 `json:"scale"`
	YOffset float64 `json:"y_offset"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// DefaultProjection returns the projection of the gradient descent surface.
func DefaultProjection() Projection {
	return Projection{
		Scale:   40,
		YOffset: 200,
		Width:   1600,
		Height:  800,
	}
}

// Project returns the pixel of the given point.
// The depth y is foreshortened to 30% of the scale.
func (p Projection) Project(x, y, z float64) Point {
	sin, cos := math.Sincos(p.Angle)
	xRot := x*cos - y*sin
	yRot := x*sin + y*cos
	return Point{
		X: math.Floor(xRot*p.Scale + p.Width/2),
		Y: math.Floor(-z*p.Scale + p.Height/2 - yRot*p.Scale*0.3 + p.YOffset),
	}
}

// Unproject approximates the ground point of a pixel, ignoring height and depth.
func (p Projection) Unproject(px, py float64) (float64, float64) {
	x := (px - p.Width/2) / p.Scale
	y := (p.Height/2 + p.YOffset - py) / p.Scale
	sin, cos := math.Sincos(-p.Angle)
	return x*cos - y*sin, x*sin + y*cos
}

// Rotate changes the angle by the given amount.
func (p *Projection) Rotate(delta float64) {
	p.Angle += delta
}
