package demo

import (
	"math"
	"testing"
	"time"

	"github.com/drakos74/mlviz/internal/control"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplorer_Reveal(t *testing.T) {
	e := NewExplorer(rng.New(1))
	assert.Empty(t, e.Records())

	require.NoError(t, e.Trigger(control.Train))
	assert.Len(t, e.Records(), 1)
	assert.Equal(t, 5.0, e.Records()[0].Position[0])

	e.Update(400 * time.Millisecond)
	assert.Len(t, e.Records(), 1)
	e.Update(100 * time.Millisecond)
	assert.Len(t, e.Records(), 2)

	e.Update(10 * time.Second)
	assert.False(t, e.Running())
	records := e.Records()
	require.Len(t, records, 11)
	assert.InDelta(t, 5*math.Pow(0.8, 10), records[10].Position[0], 1e-9)
	assert.Equal(t, 10, records[10].Iteration)

	f := e.Render()
	assert.Equal(t, "10", f.Labels["iteration"])
}

func TestExplorer_Sliders(t *testing.T) {

	type test struct {
		x0         float64
		lr         float64
		iterations float64
		last       float64
	}

	tests := map[string]test{
		"default":   {x0: 5, lr: 0.1, iterations: 10, last: 5 * math.Pow(0.8, 10)},
		"one-shot":  {x0: 4, lr: 0.5, iterations: 1, last: 0},
		"oscillate": {x0: 1, lr: 1, iterations: 3, last: -1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := NewExplorer(rng.New(1))
			require.NoError(t, e.Set("xInit", tt.x0))
			require.NoError(t, e.Set("learningRate", tt.lr))
			require.NoError(t, e.Set("iterations", tt.iterations))
			require.NoError(t, e.Trigger(control.Train))
			e.Update(time.Minute)
			records := e.Records()
			require.Len(t, records, int(tt.iterations)+1)
			assert.InDelta(t, tt.last, records[len(records)-1].Position[0], 1e-9)
		})
	}
}

func TestExplorer_Reset(t *testing.T) {
	e := NewExplorer(rng.New(1))
	require.NoError(t, e.Trigger(control.Train))
	e.Update(time.Second)
	require.NoError(t, e.Trigger(control.Reset))
	assert.Empty(t, e.Records())
	assert.False(t, e.Running())

	// an idle explorer still shows its settings
	f := e.Render()
	assert.Equal(t, "5.00", f.Labels["xInit"])
	assert.Equal(t, "0.10", f.Labels["learningRate"])
	assert.Equal(t, "10", f.Labels["iterations"])
	assert.NotContains(t, f.Labels, "iteration")
}
