package curve

import (
	"testing"

	"github.com/drakos74/mlviz/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimalEpoch(t *testing.T) {
	for _, k := range []Kind{Validation, StandardTest} {
		t.Run(k.String(), func(t *testing.T) {
			ss := Series(k, 100, rng.Constant(0))
			e, ok := OptimalEpoch(ss)
			assert.True(t, ok)
			assert.True(t, e > 40 && e < 60, "optimal epoch %d", e)
		})
	}

	_, ok := OptimalEpoch([]float64{1, 2})
	assert.False(t, ok)
}

func TestTrend(t *testing.T) {
	ss := make([]float64, 20)
	for i := range ss {
		x := float64(i)
		ss[i] = 1 + 2*x + 0.5*x*x
	}
	cc, err := Trend(ss)
	require.NoError(t, err)
	assert.InDelta(t, 1, cc[0], 1e-6)
	assert.InDelta(t, 2, cc[1], 1e-6)
	assert.InDelta(t, 0.5, cc[2], 1e-6)

	_, err = Trend([]float64{1})
	assert.Error(t, err)
}

func TestInstability(t *testing.T) {
	unstable, err := Instability(Series(OverfitTrain, 100, rng.Constant(0.5)))
	require.NoError(t, err)
	assert.Equal(t, 8, unstable.Frequency)

	stable, err := Instability(Series(NormalizedTrain, 100, rng.Constant(0.5)))
	require.NoError(t, err)
	assert.Equal(t, 1, stable.Frequency)
	assert.Greater(t, unstable.Amplitude, stable.Amplitude)
}

func TestSmooth(t *testing.T) {

	type test struct {
		window int
		smooth []float64
	}

	ss := []float64{4, 2, 6, 0, 8}

	tests := map[string]test{
		"identity": {window: 1, smooth: ss},
		"pairs":    {window: 2, smooth: []float64{4, 3, 4, 3, 4}},
		"warm-up":  {window: 3, smooth: []float64{4, 3, 4, 8.0 / 3, 14.0 / 3}},
		"invalid":  {window: 0, smooth: ss},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			smooth := Smooth(ss, tt.window)
			require.Len(t, smooth, len(ss))
			for i := range ss {
				assert.InDelta(t, tt.smooth[i], smooth[i], 1e-9)
			}
		})
	}
}
