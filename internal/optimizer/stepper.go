package optimizer

import (
	"fmt"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/mlviz/internal/buffer"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/rs/zerolog/log"
)

// State is the run state of the stepper.
type State int

const (
	// Idle means the stepper only moves on explicit steps.
	Idle State = iota
	// Stepping means the stepper advances on every tick.
	Stepping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Stepping:
		return "stepping"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Config defines the stepper parameters.
// MaxIterations is the number of steps before an automatic random restart.
// HistorySize caps the trail of visited positions.
type Config struct {
	LearningRate  float64   `json:"learning_rate"`
	MaxIterations int       `json:"max_iterations"`
	HistorySize   int       `json:"history_size"`
	Start         []float64 `json:"start"`
}

// DefaultConfig returns the defaults for the multimodal surface.
func DefaultConfig() Config {
	return Config{
		LearningRate:  0.1,
		MaxIterations: 100,
		HistorySize:   100,
		Start:         []float64{0, 0},
	}
}

// Stepper runs gradient descent with random restarts on a surface.
// The best position found is kept across restarts.
type Stepper struct {
	surface Surface
	cfg     Config
	src     rng.Source

	state        State
	learningRate float64
	position     xmath.Vector
	best         xmath.Vector
	bestValue    float64
	iteration    int
	restarts     int
	history      *buffer.MultiBuffer
}

// NewStepper creates a new stepper positioned at the configured start.
func NewStepper(surface Surface, cfg Config, src rng.Source) *Stepper {
	start := xmath.Vec(surface.Dim())
	if len(cfg.Start) == surface.Dim() {
		start = start.With(cfg.Start...)
	}
	cfg.Start = start.Copy()
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 1
	}
	s := &Stepper{
		surface: surface,
		cfg:     cfg,
		src:     src,
		history: buffer.NewMultiBuffer(cfg.HistorySize),
	}
	s.Reset()
	return s
}

// Reset restores the state the stepper was created with.
func (s *Stepper) Reset() {
	start := xmath.Vector(s.cfg.Start).Copy()
	s.state = Idle
	s.learningRate = s.cfg.LearningRate
	s.position = start
	s.best = start.Copy()
	s.bestValue = s.surface.F(start)
	s.iteration = 0
	s.restarts = 0
	s.history.Clear()
	s.history.Push(start...)
}

// Step moves the position against the gradient and returns true if a new best was found.
func (s *Stepper) Step() bool {
	g := s.surface.Grad(s.position)
	s.position = s.position.Diff(g.Mult(s.learningRate))
	s.iteration++
	s.history.Push(s.position...)

	value := s.surface.F(s.position)
	if value < s.bestValue {
		s.best = s.position.Copy()
		s.bestValue = value
		log.Debug().
			Str("position", s.best.String()).
			Float64("value", value).
			Int("iteration", s.iteration).
			Msg("new best")
		return true
	}
	return false
}

// Restart jumps to a random position within the surface bounds.
// The trail is cleared, the best position is kept.
func (s *Stepper) Restart() {
	min, max := s.surface.Bounds()
	p := xmath.Vec(s.surface.Dim())
	for i := range p {
		p[i] = rng.Uniform(s.src, min, max)
	}
	s.position = p
	s.iteration = 0
	s.restarts++
	s.history.Clear()
	s.history.Push(p...)
	log.Debug().
		Str("position", p.String()).
		Int("restarts", s.restarts).
		Msg("random restart")
}

// Advance performs one step, or a restart once the iteration budget is spent.
func (s *Stepper) Advance() {
	if s.iteration < s.cfg.MaxIterations {
		s.Step()
		return
	}
	s.Restart()
}

// Run advances the stepper n times.
func (s *Stepper) Run(n int) {
	for i := 0; i < n; i++ {
		s.Advance()
	}
}

// MoveTo places the stepper at the given position, if it is within bounds.
func (s *Stepper) MoveTo(p ...float64) bool {
	if len(p) != s.surface.Dim() {
		return false
	}
	min, max := s.surface.Bounds()
	for _, x := range p {
		if x < min || x > max {
			return false
		}
	}
	s.position = xmath.Vec(len(p)).With(p...)
	s.iteration = 0
	s.history.Clear()
	s.history.Push(p...)
	return true
}

// Toggle switches between idle and stepping.
func (s *Stepper) Toggle() State {
	if s.state == Idle {
		s.state = Stepping
	} else {
		s.state = Idle
	}
	return s.state
}

// State returns the current run state.
func (s *Stepper) State() State {
	return s.state
}

// SetLearningRate changes the learning rate for the next step.
func (s *Stepper) SetLearningRate(lr float64) {
	s.learningRate = lr
}

// LearningRate returns the current learning rate.
func (s *Stepper) LearningRate() float64 {
	return s.learningRate
}

// Position returns a copy of the current position.
func (s *Stepper) Position() xmath.Vector {
	return s.position.Copy()
}

// Value returns the surface value at the current position.
func (s *Stepper) Value() float64 {
	return s.surface.F(s.position)
}

// Best returns the best position found and its value.
func (s *Stepper) Best() (xmath.Vector, float64) {
	return s.best.Copy(), s.bestValue
}

// Iteration returns the steps taken since the last (re)start.
func (s *Stepper) Iteration() int {
	return s.iteration
}

// Restarts returns the number of random restarts.
func (s *Stepper) Restarts() int {
	return s.restarts
}

// History returns the trail of positions, oldest first.
func (s *Stepper) History() [][]float64 {
	return s.history.Get()
}

// Surface returns the target surface.
func (s *Stepper) Surface() Surface {
	return s.surface
}
