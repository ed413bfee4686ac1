package optimizer

import (
	"github.com/drakos74/go-ex-machina/xmath"
)

// Record is a single gradient descent iteration.
type Record struct {
	Iteration int          `json:"iteration"`
	Position  xmath.Vector `json:"position"`
	Gradient  xmath.Vector `json:"gradient"`
	Value     float64      `json:"value"`
}

// Trace runs n iterations of plain gradient descent from the start position.
// The returned slice holds n+1 records, the first one for the start position.
func Trace(surface Surface, start xmath.Vector, lr float64, n int) []Record {
	p := start.Copy()
	records := make([]Record, 0, n+1)
	records = append(records, record(surface, 0, p))
	for i := 1; i <= n; i++ {
		p = p.Diff(surface.Grad(p).Mult(lr))
		records = append(records, record(surface, i, p))
	}
	return records
}

func record(surface Surface, i int, p xmath.Vector) Record {
	return Record{
		Iteration: i,
		Position:  p.Copy(),
		Gradient:  surface.Grad(p),
		Value:     surface.F(p),
	}
}
