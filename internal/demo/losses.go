package demo

import (
	"github.com/drakos74/mlviz/internal/curve"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/drakos74/mlviz/internal/rng"
)

// losses holds the history of a set of synthetic loss curves, starting at curve.Start.
type losses struct {
	kinds  []curve.Kind
	values [][]float64
}

func newLosses(kinds ...curve.Kind) *losses {
	l := &losses{kinds: kinds}
	l.clear()
	return l
}

func (l *losses) clear() {
	l.values = make([][]float64, len(l.kinds))
	for i := range l.kinds {
		l.values[i] = []float64{curve.Start}
	}
}

// push appends the value of every curve at the given epoch.
func (l *losses) push(epoch int, src rng.Source) {
	for i, k := range l.kinds {
		l.values[i] = append(l.values[i], curve.Generate(k, epoch, maxEpochs, src))
	}
}

func (l *losses) last(k curve.Kind) float64 {
	for i, kind := range l.kinds {
		if kind == k {
			vv := l.values[i]
			return vv[len(vv)-1]
		}
	}
	return 0
}

// gap returns the last difference between the test and the train curve.
func (l *losses) gap(train, test curve.Kind) float64 {
	return l.last(test) - l.last(train)
}

func (l *losses) series(k curve.Kind, name string, c render.Color) series {
	for i, kind := range l.kinds {
		if kind == k {
			return series{name: name, values: l.values[i], color: c}
		}
	}
	return series{name: name, color: c}
}
