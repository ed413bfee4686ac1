// Package early implements patience based early stopping on a validation loss.
package early

import (
	"math"

	"github.com/rs/zerolog/log"
)

// MinDelta is the minimum decrease of the loss that counts as improvement.
const MinDelta = 0.001

// Monitor tracks the validation loss and decides when to stop training.
type Monitor struct {
	patience  int
	minDelta  float64
	best      float64
	bestEpoch int
	counter   int
	stopped   bool
	stopEpoch int
}

// NewMonitor creates a new monitor with the given patience.
func NewMonitor(patience int) *Monitor {
	m := &Monitor{
		patience: patience,
		minDelta: MinDelta,
	}
	m.Reset()
	return m
}

// Check records the loss of the given epoch and returns true if training should stop.
// Once stopped, the monitor ignores further losses.
func (m *Monitor) Check(epoch int, loss float64) bool {
	if m.stopped {
		return true
	}
	if loss < m.best-m.minDelta {
		m.best = loss
		m.bestEpoch = epoch
		m.counter = 0
	} else {
		m.counter++
	}
	if m.counter >= m.patience {
		m.stopped = true
		m.stopEpoch = epoch
		log.Info().
			Int("epoch", epoch).
			Int("best-epoch", m.bestEpoch).
			Float64("best", m.best).
			Msg("early stop")
	}
	return m.stopped
}

// SetPatience changes the patience for the next check.
func (m *Monitor) SetPatience(patience int) {
	m.patience = patience
}

// Patience returns the number of epochs without improvement that are tolerated.
func (m *Monitor) Patience() int {
	return m.patience
}

// Best returns the best loss and the epoch it was recorded.
func (m *Monitor) Best() (float64, int) {
	return m.best, m.bestEpoch
}

// Counter returns the epochs since the last improvement.
func (m *Monitor) Counter() int {
	return m.counter
}

// Stopped returns the epoch training stopped at, if it did.
func (m *Monitor) Stopped() (int, bool) {
	return m.stopEpoch, m.stopped
}

// Reset clears the monitor, keeping the patience.
func (m *Monitor) Reset() {
	m.best = math.Inf(1)
	m.bestEpoch = 0
	m.counter = 0
	m.stopped = false
	m.stopEpoch = 0
}
