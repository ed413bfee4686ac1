// Package rng isolates the randomness of the simulations behind a small interface,
// so that data generation and synthetic curves can be replayed in tests.
package rng

import (
	"math/rand"
	"time"
)

// Source is the random source used by the simulations.
type Source interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// Intn returns a value in [0,n).
	Intn(n int) int
}

// New creates a seeded source.
func New(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Now creates a source seeded with the current time.
func Now() Source {
	return New(time.Now().UnixNano())
}

// Uniform returns a value in [min,max).
func Uniform(src Source, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}

// Jitter returns a value in [-amplitude/2, amplitude/2).
func Jitter(src Source, amplitude float64) float64 {
	return (src.Float64() - 0.5) * amplitude
}

// Sequence replays the given values in a loop.
// Intn maps the next value onto [0,n).
type Sequence struct {
	values []float64
	index  int
}

// NewSequence creates a new sequence source.
func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Sequence{values: values}
}

// Float64 returns the next value of the sequence.
func (s *Sequence) Float64() float64 {
	v := s.values[s.index%len(s.values)]
	s.index++
	return v
}

// Intn returns the next value of the sequence scaled to [0,n).
func (s *Sequence) Intn(n int) int {
	i := int(s.Float64() * float64(n))
	if i >= n {
		return n - 1
	}
	return i
}

// Constant returns always the same value.
type Constant float64

// Float64 returns the constant.
func (c Constant) Float64() float64 {
	return float64(c)
}

// Intn returns the constant scaled to [0,n).
func (c Constant) Intn(n int) int {
	i := int(float64(c) * float64(n))
	if i >= n {
		return n - 1
	}
	return i
}
