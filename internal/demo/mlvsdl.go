package demo

import (
	"time"

	"github.com/drakos74/mlviz/internal/control"
	"github.com/drakos74/mlviz/internal/curve"
	mlmath "github.com/drakos74/mlviz/internal/math"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/drakos74/mlviz/internal/rng"
)

const (
	// MLvsDLName is the name of the machine learning versus deep learning demo.
	MLvsDLName = "mlvsdl"

	maxDatasetSize = 1000000
	chartSamples   = 200
)

var (
	mlColor     = render.MustHex("#3498db")
	dlColor     = render.MustHex("#e74c3c")
	cursorColor = render.MustHex("#95a5a6")
)

// MLvsDL compares the expected performance of both approaches against the dataset size.
type MLvsDL struct {
	base
	size float64
}

// NewMLvsDL creates the machine learning versus deep learning demo.
func NewMLvsDL(src rng.Source) *MLvsDL {
	return &MLvsDL{
		base: newBase(MLvsDLName, src,
			[]control.Action{control.Reset},
			control.Slider{Name: "datasetSize", Min: 100, Max: maxDatasetSize, Step: 100, Default: 10000},
		),
		size: 10000,
	}
}

// Update reads the dataset size.
func (m *MLvsDL) Update(dt time.Duration) {
	m.size = m.panel.Get("datasetSize")
}

// Trigger executes the action.
func (m *MLvsDL) Trigger(action control.Action) error {
	if action != control.Reset {
		return m.unknown(action)
	}
	m.Reset()
	return nil
}

// Reset restores the initial state.
func (m *MLvsDL) Reset() {
	m.panel.Reset()
	m.size = m.panel.Get("datasetSize")
}

// tier picks the label of the dataset size band, split at 10k and 100k samples.
func tier(size float64, small, medium, large string) string {
	switch {
	case size < 10000:
		return small
	case size < 100000:
		return medium
	}
	return large
}

// Render draws both performance curves with a cursor at the selected dataset size.
func (m *MLvsDL) Render() *render.Frame {
	f := m.frame()
	b := box{x: 50, y: 20, width: 1000, height: 500}
	scale := func(size, performance float64) render.Point {
		return b.corner(size/maxDatasetSize, 1-performance/100)
	}
	for i := 0; i <= 5; i++ {
		y := float64(i) / 5
		f.Line(render.Gray, 1, b.corner(0, y), b.corner(1, y))
		f.Text(b.corner(0, y), render.Gray, mlmath.FormatN(100-float64(i)*20, 0)+"%")
	}

	sizes := mlmath.Linspace(0, maxDatasetSize, chartSamples)
	for _, a := range []curve.Approach{curve.ML, curve.DL} {
		c := mlColor
		if a == curve.DL {
			c = dlColor
		}
		pp := make([]render.Point, len(sizes))
		for i, s := range sizes {
			pp[i] = scale(s, curve.Performance(a, s))
		}
		f.Line(c, 3, pp...)
	}

	ml, dl := curve.Performance(curve.ML, m.size), curve.Performance(curve.DL, m.size)
	f.Line(cursorColor, 2, scale(m.size, 100), scale(m.size, 0))
	f.Point(scale(m.size, ml), mlColor, 6)
	f.Point(scale(m.size, dl), dlColor, 6)
	if s, ok := curve.Crossover(sizes); ok {
		f.Text(scale(s, curve.Performance(curve.DL, s)), dlColor, "crossover")
	}

	f.Label("size", mlmath.FormatN(m.size, 0))
	f.Label("ml", mlmath.FormatN(ml, 1)+"%")
	f.Label("dl", mlmath.FormatN(dl, 1)+"%")
	f.Label("mlTime", tier(m.size, "minutes", "< 1 hour", "few hours"))
	f.Label("dlTime", tier(m.size, "hours", "hours-days", "days-weeks"))
	f.Label("cost", tier(m.size, "low", "medium", "high"))
	f.Label("features", tier(m.size, "critical", "helpful", "optional"))
	f.Label("recommendation", string(curve.Recommend(m.size)))
	return f
}
