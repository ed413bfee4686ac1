package demo

import (
	"testing"
	"time"

	"github.com/drakos74/mlviz/internal/control"
	"github.com/drakos74/mlviz/internal/optimizer"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradient_Auto(t *testing.T) {
	g := NewGradient(rng.New(1))

	g.Update(time.Second)
	assert.Equal(t, 0, g.Stepper().Iteration())

	require.NoError(t, g.Trigger(control.Toggle))
	assert.Equal(t, optimizer.Stepping, g.Stepper().State())

	g.Update(20 * time.Millisecond)
	assert.Equal(t, 0, g.Stepper().Iteration())

	g.Update(30 * time.Millisecond)
	assert.Equal(t, 1, g.Stepper().Iteration())
	p := g.Stepper().Position()
	assert.InDelta(t, -0.1, p[0], 1e-9)
	assert.InDelta(t, 0, p[1], 1e-9)

	g.Update(100 * time.Millisecond)
	assert.Equal(t, 3, g.Stepper().Iteration())
}

func TestGradient_RestartOnBudget(t *testing.T) {
	g := NewGradient(rng.New(1))
	require.NoError(t, g.Trigger(control.Toggle))

	g.Update(100 * autoDelay)
	assert.Equal(t, 100, g.Stepper().Iteration())
	assert.Equal(t, 0, g.Stepper().Restarts())

	g.Update(autoDelay)
	assert.Equal(t, 0, g.Stepper().Iteration())
	assert.Equal(t, 1, g.Stepper().Restarts())
}

func TestGradient_Actions(t *testing.T) {

	type test struct {
		actions    []control.Action
		iterations int
		restarts   int
		angle      float64
	}

	tests := map[string]test{
		"step":    {actions: []control.Action{control.Step, control.Step}, iterations: 2},
		"restart": {actions: []control.Action{control.Step, control.Restart}, restarts: 1},
		"rotate":  {actions: []control.Action{control.Rotate, control.Rotate}, angle: 0.2},
		"reset":   {actions: []control.Action{control.Step, control.Restart, control.Rotate, control.Reset}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g := NewGradient(rng.New(1))
			for _, a := range tt.actions {
				require.NoError(t, g.Trigger(a))
			}
			assert.Equal(t, tt.iterations, g.Stepper().Iteration())
			assert.Equal(t, tt.restarts, g.Stepper().Restarts())
			assert.InDelta(t, tt.angle, g.Panel().Get("angle"), 1e-9)
		})
	}
}

func TestGradient_LearningRateOnNextTick(t *testing.T) {
	g := NewGradient(rng.New(1))
	require.NoError(t, g.Set("learningRate", 0.3))
	assert.InDelta(t, 0.1, g.Stepper().LearningRate(), 1e-9)

	g.Update(0)
	assert.InDelta(t, 0.3, g.Stepper().LearningRate(), 1e-9)
}

func TestGradient_Click(t *testing.T) {
	g := NewGradient(rng.New(1))
	require.NoError(t, g.Trigger(control.Step))

	require.NoError(t, g.Click(render.Point{X: 840, Y: 600}))
	p := g.Stepper().Position()
	assert.InDelta(t, 1, p[0], 1e-9)
	assert.InDelta(t, 0, p[1], 1e-9)
	assert.Equal(t, 0, g.Stepper().Iteration())

	// out of the surface bounds
	require.NoError(t, g.Click(render.Point{X: 10000, Y: 600}))
	assert.Equal(t, p, g.Stepper().Position())
}

func TestGradient_Render(t *testing.T) {
	g := NewGradient(rng.New(1))
	require.NoError(t, g.Trigger(control.Step))
	require.NoError(t, g.Trigger(control.Step))

	f := g.Render()
	assert.Equal(t, "2", f.Labels["iteration"])
	assert.Equal(t, "idle", f.Labels["state"])

	var path, stars int
	for _, p := range f.Primitives {
		if p.Kind == render.LineKind && p.Color == render.Red {
			path++
		}
		if p.Kind == render.PolygonKind {
			stars++
		}
	}
	assert.Equal(t, 2, path)
	assert.Equal(t, 1, stars)
}
