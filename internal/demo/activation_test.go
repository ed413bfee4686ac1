package demo

import (
	"testing"

	"github.com/drakos74/mlviz/internal/activation"
	"github.com/drakos74/mlviz/internal/control"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivation_Function(t *testing.T) {
	a := NewActivation(rng.New(1))
	assert.Equal(t, activation.ReLU, a.Function().Kind)

	require.NoError(t, a.Set("function", float64(activation.LeakyReLU)))
	a.Update(frame)
	assert.Equal(t, activation.LeakyReLU, a.Function().Kind)
	assert.InDelta(t, activation.DefaultLeakyAlpha, a.Function().Param, 1e-9)

	require.NoError(t, a.Set("param", 0.2))
	a.Update(frame)
	assert.InDelta(t, 0.2, a.Function().Param, 1e-9)

	// a new function starts with its own default parameter
	require.NoError(t, a.Set("function", float64(activation.ELU)))
	a.Update(frame)
	assert.Equal(t, activation.ELU, a.Function().Kind)
	assert.InDelta(t, activation.DefaultELUAlpha, a.Function().Param, 1e-9)
	assert.InDelta(t, activation.DefaultELUAlpha, a.Panel().Get("param"), 1e-9)
}

func TestActivation_Rotation(t *testing.T) {
	a := NewActivation(rng.New(1))
	assert.True(t, a.Running())

	a.Update(frame)
	assert.InDelta(t, rotateSpeed, a.projection.Angle, 1e-9)

	require.NoError(t, a.Trigger(control.Toggle))
	a.Update(frame)
	assert.InDelta(t, rotateSpeed, a.projection.Angle, 1e-9)

	require.NoError(t, a.Trigger(control.Rotate))
	assert.InDelta(t, rotateSpeed+rotateDelta, a.projection.Angle, 1e-9)

	require.NoError(t, a.Trigger(control.Reset))
	assert.Equal(t, 0.0, a.projection.Angle)
}

func TestActivation_Render(t *testing.T) {

	type test struct {
		resolution float64
		derivative float64
		lines      int
	}

	// two lines per grid vertex, minus the open edges, plus the 2 axes and the curves of the plot
	tests := map[string]test{
		"coarse":     {resolution: 10, lines: 2*11*10 + 3},
		"derivative": {resolution: 10, derivative: 1, lines: 2*(2*11*10) + 4},
		"fine":       {resolution: 20, lines: 2*21*20 + 3},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := NewActivation(rng.New(1))
			require.NoError(t, a.Set("resolution", tt.resolution))
			require.NoError(t, a.Set("derivative", tt.derivative))
			a.Update(frame)
			f := a.Render()
			assert.Len(t, f.Primitives, tt.lines)
			assert.Equal(t, "relu", f.Labels["function"])
			assert.Equal(t, 0, f.Dropped)
		})
	}
}
