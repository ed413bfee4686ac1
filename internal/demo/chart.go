package demo

import (
	"math"

	mlmath "github.com/drakos74/mlviz/internal/math"
	"github.com/drakos74/mlviz/internal/render"
)

// box is the area of a chart on the canvas.
type box struct {
	x, y, width, height float64
}

func (b box) corner(fx, fy float64) render.Point {
	return render.Point{X: b.x + fx*b.width, Y: b.y + fy*b.height}
}

// series is a named curve of a chart.
type series struct {
	name   string
	values []float64
	color  render.Color
}

// chart draws the axes and the series into the box.
// The y range is fitted to the values, total is the number of epochs of the x axis.
func chart(f *render.Frame, b box, title string, total int, ss ...series) {
	f.Line(render.Gray, 1, b.corner(0, 0), b.corner(0, 1), b.corner(1, 1))
	f.Text(b.corner(0, 0), render.Gray, title)

	min, max := math.Inf(1), math.Inf(-1)
	for _, s := range ss {
		for _, v := range s.values {
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	if !mlmath.Finite(min, max) {
		min, max = 0, 1
	}
	f.Text(b.corner(0, 1), render.Gray, mlmath.Format(min))
	f.Text(b.corner(0, 0.05), render.Gray, mlmath.Format(max))

	for _, s := range ss {
		pp := render.Chart(s.values, b.x, b.y, b.width, b.height, min, max, total)
		f.Line(s.color, 2, pp...)
		if len(pp) > 0 {
			f.Text(pp[len(pp)-1], s.color, s.name)
		}
	}
}

// marker draws a vertical line at the given epoch.
func marker(f *render.Frame, b box, epoch, total int, c render.Color, text string) {
	if total < 2 {
		return
	}
	fx := float64(epoch) / float64(total-1)
	f.Line(c, 1, b.corner(fx, 0), b.corner(fx, 1))
	f.Text(b.corner(fx, 0), c, text)
}

// argmin returns the index of the smallest value.
func argmin(values []float64) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	k := 0
	for i, v := range values {
		if v < values[k] {
			k = i
		}
	}
	return k, true
}
