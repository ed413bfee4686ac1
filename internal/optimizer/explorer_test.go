package optimizer

import (
	"testing"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	records := Trace(Parabola{}, xmath.Vector{5}, 0.1, 3)
	require.Len(t, records, 4)

	expected := []float64{5, 4, 3.2, 2.56}
	for i, r := range records {
		assert.Equal(t, i, r.Iteration)
		assert.InDelta(t, expected[i], r.Position[0], 1e-9)
		assert.InDelta(t, 2*expected[i], r.Gradient[0], 1e-9)
		assert.InDelta(t, expected[i]*expected[i], r.Value, 1e-9)
	}
}

func TestTrace_Diverges(t *testing.T) {
	records := Trace(Parabola{}, xmath.Vector{1}, 1.5, 4)
	for i := 1; i < len(records); i++ {
		assert.Greater(t, records[i].Value, records[i-1].Value)
	}
}

func TestTrace_LeavesStartIntact(t *testing.T) {
	start := xmath.Vector{1, 2}
	Trace(Bowl{N: 2}, start, 0.1, 10)
	assert.Equal(t, xmath.Vector{1, 2}, start)
}
