package demo

import (
	"testing"
	"time"

	"github.com/drakos74/mlviz/internal/control"
	"github.com/drakos74/mlviz/internal/curve"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// play runs the demo at full speed for the given number of frames.
func play(t *testing.T, d Demo, frames int) {
	require.NoError(t, d.Set("speed", 10))
	require.NoError(t, d.Trigger(control.Toggle))
	for i := 0; i < frames; i++ {
		d.Update(frame)
	}
}

func TestEarlyStop_Run(t *testing.T) {
	e := NewEarlyStop(rng.New(1))
	play(t, e, maxEpochs+1)

	assert.Equal(t, maxEpochs, e.Epoch())
	assert.False(t, e.Running())
	assert.Len(t, e.full.validation, maxEpochs+1)

	stop, stopped := e.Monitor().Stopped()
	require.True(t, stopped)
	assert.Len(t, e.stopped.validation, stop+1)
	assert.Len(t, e.stopped.train, stop+1)

	_, best := e.Monitor().Best()
	assert.Less(t, best, stop)
	assert.Equal(t, stop-best, e.Monitor().Patience())
}

func TestEarlyStop_Speed(t *testing.T) {

	type test struct {
		speed  float64
		frames int
		epochs int
	}

	tests := map[string]test{
		"slow":    {speed: 1, frames: 30, epochs: 3},
		"default": {speed: 5, frames: 30, epochs: 5},
		"fast":    {speed: 10, frames: 30, epochs: 30},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := NewEarlyStop(rng.New(1))
			require.NoError(t, e.Set("speed", tt.speed))
			require.NoError(t, e.Trigger(control.Toggle))
			for i := 0; i < tt.frames; i++ {
				e.Update(frame)
			}
			assert.Equal(t, tt.epochs, e.Epoch())
		})
	}
}

func TestEarlyStop_PatienceOnNextTick(t *testing.T) {
	e := NewEarlyStop(rng.New(1))
	require.NoError(t, e.Set("patience", 10))
	assert.Equal(t, 5, e.Monitor().Patience())
	e.Update(frame)
	assert.Equal(t, 10, e.Monitor().Patience())
}

func TestEarlyStop_Reset(t *testing.T) {
	e := NewEarlyStop(rng.New(1))
	play(t, e, 50)
	require.NoError(t, e.Trigger(control.Reset))

	assert.Equal(t, 0, e.Epoch())
	assert.False(t, e.Running())
	assert.Equal(t, []float64{2.8}, e.full.validation)
	_, stopped := e.Monitor().Stopped()
	assert.False(t, stopped)
}

func TestDropout_Rates(t *testing.T) {

	type test struct {
		rate    float64
		dropped bool
	}

	tests := map[string]test{
		"none": {rate: 0},
		"high": {rate: 0.9, dropped: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d := NewDropout(rng.New(1))
			require.NoError(t, d.Set("dropoutRate", tt.rate))
			for i := 0; i < 10; i++ {
				require.NoError(t, d.Trigger(control.Step))
			}
			if tt.dropped {
				assert.Greater(t, d.TotalDropped(), 0)
			} else {
				assert.Equal(t, 0, d.TotalDropped())
			}
			current := d.Current()
			assert.Len(t, current.Activations, len(dropoutLayers))
			// the input and output layers are never dropped
			assert.Equal(t, current.Masks[0].Sum(), float64(dropoutLayers[0]))
			assert.Equal(t, current.Masks[3].Sum(), float64(dropoutLayers[3]))
		})
	}
}

func TestDropout_Run(t *testing.T) {
	d := NewDropout(rng.New(1))
	play(t, d, maxEpochs+1)

	assert.Equal(t, maxEpochs, d.Epoch())
	assert.False(t, d.Running())

	standard, dropout := d.Gaps()
	assert.Greater(t, standard, dropout)
	assert.Greater(t, standard, 1.0)
}

func TestBatchNorm_Run(t *testing.T) {
	b := NewBatchNorm(rng.New(1))
	play(t, b, maxEpochs+1)

	assert.Equal(t, maxEpochs, b.Epoch())
	assert.False(t, b.Running())
	assert.Greater(t, b.losses.last(curve.OverfitTest), b.losses.last(curve.NormalizedTest))

	overfit, normalized := b.Layers()
	for _, l := range overfit {
		for _, a := range l.Activations {
			assert.LessOrEqual(t, a, 5.0)
			assert.GreaterOrEqual(t, a, -5.0)
		}
	}
	for _, l := range normalized {
		for _, a := range l.Activations {
			assert.Less(t, a, 1.0)
			assert.GreaterOrEqual(t, a, -1.0)
		}
		for _, w := range l.Weights {
			assert.Less(t, w, 0.25)
			assert.GreaterOrEqual(t, w, -0.25)
		}
	}
}

func TestBatchNorm_Stats(t *testing.T) {
	b := NewBatchNorm(rng.New(1))
	stats := b.Stats()
	require.Len(t, stats.Normalized, batchSize)
	assert.InDelta(t, 0, stats.Normalized.Sum()/batchSize, 1e-9)
	assert.Greater(t, stats.Variance, 0.0)

	require.NoError(t, b.Trigger(control.Toggle))
	require.NoError(t, b.Trigger(control.Reset))
	assert.Equal(t, 0, b.Epoch())
	assert.False(t, b.Running())
}

func TestVariations_Step(t *testing.T) {
	v := NewVariations(rng.New(1))
	require.Len(t, v.Points(), numDataPoints)

	require.NoError(t, v.Trigger(control.Step))

	type test struct {
		iterations int
		active     int
	}

	expected := []test{
		{iterations: 1, active: numDataPoints},
		{iterations: 3, active: 1},
		{iterations: 1, active: 8},
	}
	for i, r := range v.Regressions() {
		assert.Equal(t, expected[i].iterations, r.Iteration(), r.Variant.String())
		assert.Len(t, r.Active(), expected[i].active, r.Variant.String())
	}
}

func TestVariations_MiniBatchOnNextTick(t *testing.T) {
	v := NewVariations(rng.New(1))
	require.NoError(t, v.Set("miniBatchSize", 4))
	v.Update(0)
	require.NoError(t, v.Trigger(control.Step))
	assert.Len(t, v.Regressions()[2].Active(), 4)
}

func TestVariations_Converge(t *testing.T) {
	v := NewVariations(rng.New(1))
	initial := v.Regressions()[0].Line().Loss(v.Points())
	for i := 0; i < 2000; i++ {
		require.NoError(t, v.Trigger(control.Step))
	}
	for _, r := range v.Regressions() {
		assert.Less(t, r.Line().Loss(v.Points()), initial/10, r.Variant.String())
	}
}

func TestVariations_Pace(t *testing.T) {
	v := NewVariations(rng.New(1))
	require.NoError(t, v.Trigger(control.Toggle))
	for i := 0; i < 12; i++ {
		v.Update(frame)
	}
	assert.Equal(t, 2, v.Regressions()[0].Iteration())
	assert.Equal(t, 6, v.Regressions()[1].Iteration())

	require.NoError(t, v.Trigger(control.Reset))
	assert.Equal(t, 0, v.Regressions()[0].Iteration())
	assert.False(t, v.Running())
}

func TestMLvsDL_Labels(t *testing.T) {

	type test struct {
		size           float64
		ml             string
		dl             string
		cost           string
		recommendation string
	}

	tests := map[string]test{
		"small":   {size: 1000, ml: "75.0%", dl: "40.0%", cost: "low", recommendation: "ml"},
		"default": {size: 10000, ml: "85.0%", dl: "60.0%", cost: "medium", recommendation: "ml"},
		"huge":    {size: 1000000, ml: "97.0%", dl: "99.0%", cost: "high", recommendation: "both"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := NewMLvsDL(rng.New(1))
			require.NoError(t, m.Set("datasetSize", tt.size))
			m.Update(time.Millisecond)
			f := m.Render()
			assert.Equal(t, tt.ml, f.Labels["ml"])
			assert.Equal(t, tt.dl, f.Labels["dl"])
			assert.Equal(t, tt.cost, f.Labels["cost"])
			assert.Equal(t, tt.recommendation, f.Labels["recommendation"])
		})
	}
}
