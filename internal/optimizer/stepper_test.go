package optimizer

import (
	"testing"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepper_FixedPoint(t *testing.T) {

	type test struct {
		surface Surface
		start   []float64
	}

	tests := map[string]test{
		"parabola": {surface: Parabola{}, start: []float64{0}},
		"bowl-2":   {surface: Bowl{N: 2}, start: []float64{0, 0}},
		"bowl-5":   {surface: Bowl{N: 5}, start: []float64{0, 0, 0, 0, 0}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Start = tt.start
			s := NewStepper(tt.surface, cfg, rng.New(1))
			improved := s.Step()
			// ties do not count as improvement
			assert.False(t, improved)
			assert.Equal(t, xmath.Vector(tt.start), s.Position())
			assert.Equal(t, 1, s.Iteration())
		})
	}
}

func TestStepper_MultimodalOrigin(t *testing.T) {
	s := NewStepper(Multimodal{}, DefaultConfig(), rng.New(1))

	g := Multimodal{}.Grad(xmath.Vec(2))
	assert.InDelta(t, 1, g[0], 1e-12)
	assert.InDelta(t, 0, g[1], 1e-12)

	improved := s.Step()
	assert.True(t, improved)
	p := s.Position()
	assert.InDelta(t, -0.1, p[0], 1e-12)
	assert.InDelta(t, 0, p[1], 1e-12)

	best, value := s.Best()
	assert.Equal(t, p, best)
	assert.Less(t, value, 0.0)
}

func TestStepper_BestNonIncreasing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIterations = 20
	s := NewStepper(Multimodal{}, cfg, rng.New(42))

	_, last := s.Best()
	for i := 0; i < 500; i++ {
		s.Advance()
		_, value := s.Best()
		require.LessOrEqual(t, value, last, "iteration %d", i)
		last = value
	}
	assert.True(t, s.Restarts() > 0)
}

func TestStepper_Restart(t *testing.T) {
	s := NewStepper(Multimodal{}, DefaultConfig(), rng.Constant(0.75))
	s.Run(10)
	best, value := s.Best()

	s.Restart()
	assert.Equal(t, xmath.Vector{5, 5}, s.Position())
	assert.Equal(t, 0, s.Iteration())
	assert.Equal(t, 1, s.Restarts())
	assert.Equal(t, [][]float64{{5, 5}}, s.History())

	b, v := s.Best()
	assert.Equal(t, best, b)
	assert.Equal(t, value, v)
}

func TestStepper_Advance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIterations = 3
	s := NewStepper(Multimodal{}, cfg, rng.Constant(0.5))

	s.Run(3)
	assert.Equal(t, 3, s.Iteration())
	assert.Equal(t, 0, s.Restarts())

	s.Advance()
	assert.Equal(t, 0, s.Iteration())
	assert.Equal(t, 1, s.Restarts())
	assert.Equal(t, xmath.Vector{0, 0}, s.Position())
}

func TestStepper_History(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistorySize = 10
	cfg.Start = []float64{8, -6}
	s := NewStepper(Multimodal{}, cfg, rng.New(1))

	s.Run(30)
	history := s.History()
	require.Len(t, history, 10)
	assert.Equal(t, []float64(s.Position()), history[len(history)-1])
}

func TestStepper_Reset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Start = []float64{3, 4}
	s := NewStepper(Multimodal{}, cfg, rng.New(7))

	position := s.Position()
	best, value := s.Best()
	history := s.History()

	s.Toggle()
	s.SetLearningRate(0.5)
	s.Run(150)
	s.MoveTo(1, 1)

	for i := 0; i < 2; i++ {
		s.Reset()
		b, v := s.Best()
		assert.Equal(t, position, s.Position())
		assert.Equal(t, best, b)
		assert.Equal(t, value, v)
		assert.Equal(t, history, s.History())
		assert.Equal(t, 0, s.Iteration())
		assert.Equal(t, 0, s.Restarts())
		assert.Equal(t, 0.1, s.LearningRate())
		assert.Equal(t, Idle, s.State())
	}
}

func TestStepper_MoveTo(t *testing.T) {
	s := NewStepper(Multimodal{}, DefaultConfig(), rng.New(1))
	s.Run(5)

	assert.False(t, s.MoveTo(11, 0))
	assert.False(t, s.MoveTo(1))
	assert.Equal(t, 5, s.Iteration())

	assert.True(t, s.MoveTo(-2, 3))
	assert.Equal(t, xmath.Vector{-2, 3}, s.Position())
	assert.Equal(t, 0, s.Iteration())
	assert.Equal(t, [][]float64{{-2, 3}}, s.History())
}

func TestStepper_Toggle(t *testing.T) {
	s := NewStepper(Parabola{}, DefaultConfig(), rng.New(1))
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, Stepping, s.Toggle())
	assert.Equal(t, Idle, s.Toggle())
	assert.Equal(t, "idle", Idle.String())
}
