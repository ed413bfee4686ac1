// Package render defines the drawing primitives a demo emits for its renderer.
package render

import (
	"math"

	mlmath "github.com/drakos74/mlviz/internal/math"
)

// Kind is the type of the primitive.
type Kind string

const (
	// PointKind is a single point, the width is the radius.
	PointKind Kind = "point"
	// LineKind is an open polyline.
	LineKind Kind = "line"
	// PolygonKind is a closed, filled shape.
	PolygonKind Kind = "polygon"
	// TextKind is a label anchored at its single point.
	TextKind Kind = "text"
)

// Point is a 2d point on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Primitive is a single drawing instruction.
type Primitive struct {
	Kind   Kind    `json:"kind"`
	Points []Point `json:"points"`
	Color  Color   `json:"color"`
	Width  float64 `json:"width,omitempty"`
	Text   string  `json:"text,omitempty"`
	Layer  string  `json:"layer,omitempty"`
}

// Frame is the ordered list of primitives for one render of a demo.
type Frame struct {
	Demo       string            `json:"demo"`
	ID         string            `json:"id"`
	Tick       uint64            `json:"tick"`
	Primitives []Primitive       `json:"primitives"`
	Labels     map[string]string `json:"labels"`
	// Dropped counts the primitives skipped for non finite coordinates.
	Dropped int `json:"dropped"`
}

// NewFrame creates a new empty frame.
func NewFrame(demo, id string) *Frame {
	return &Frame{
		Demo:       demo,
		ID:         id,
		Primitives: make([]Primitive, 0),
		Labels:     make(map[string]string),
	}
}

// Add appends the primitive, unless any of its coordinates is NaN or Inf.
func (f *Frame) Add(p Primitive) bool {
	for _, pt := range p.Points {
		if !mlmath.Finite(pt.X, pt.Y) {
			f.Dropped++
			return false
		}
	}
	f.Primitives = append(f.Primitives, p)
	return true
}

// Point adds a point of the given radius.
func (f *Frame) Point(p Point, c Color, radius float64) bool {
	return f.Add(Primitive{Kind: PointKind, Points: []Point{p}, Color: c, Width: radius})
}

// Line adds a polyline.
func (f *Frame) Line(c Color, width float64, pp ...Point) bool {
	if len(pp) < 2 {
		return false
	}
	return f.Add(Primitive{Kind: LineKind, Points: pp, Color: c, Width: width})
}

// Polygon adds a filled shape.
func (f *Frame) Polygon(c Color, pp ...Point) bool {
	if len(pp) < 3 {
		return false
	}
	return f.Add(Primitive{Kind: PolygonKind, Points: pp, Color: c})
}

// Text adds a label.
func (f *Frame) Text(p Point, c Color, text string) bool {
	return f.Add(Primitive{Kind: TextKind, Points: []Point{p}, Color: c, Text: text})
}

// Label sets a named value shown next to the drawing.
func (f *Frame) Label(key, value string) {
	f.Labels[key] = value
}

// Star returns the outline of a star with the given number of spikes, pointing up.
func Star(cx, cy float64, spikes int, outer, inner float64) []Point {
	pp := make([]Point, 0, 2*spikes)
	rot := math.Pi / 2 * 3
	step := math.Pi / float64(spikes)
	for i := 0; i < spikes; i++ {
		pp = append(pp, Point{X: cx + math.Cos(rot)*outer, Y: cy + math.Sin(rot)*outer})
		rot += step
		pp = append(pp, Point{X: cx + math.Cos(rot)*inner, Y: cy + math.Sin(rot)*inner})
		rot += step
	}
	return pp
}

// Chart maps a series into the given box, with the y range [min,max] fitted to the box height.
func Chart(values []float64, x, y, width, height, min, max float64, total int) []Point {
	if total < 2 {
		total = 2
	}
	span := max - min
	if span == 0 {
		span = 1
	}
	pp := make([]Point, 0, len(values))
	for i, v := range values {
		pp = append(pp, Point{
			X: x + float64(i)/float64(total-1)*width,
			Y: y + height - (mlmath.Clamp(v, min, max)-min)/span*height,
		})
	}
	return pp
}
