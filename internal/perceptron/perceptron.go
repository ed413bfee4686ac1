// Package perceptron implements a single neuron classifier trained with the online perceptron rule.
package perceptron

import (
	"errors"
	"fmt"
	"math"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/mlviz/internal/activation"
	"github.com/rs/zerolog/log"
)

const (
	// WeightLimit is the display range [-WeightLimit,WeightLimit] of the weights.
	WeightLimit = 5.0
	// BiasLimit is the display range [-BiasLimit,BiasLimit] of the bias.
	BiasLimit = 3.0
	// DeadZone is the error magnitude below which no update happens.
	DeadZone = 0.1
	// Threshold separates the classes for continuous activations.
	Threshold = 0.5
)

// ErrUnsupportedActivation is returned for activations other than step, sigmoid and tanh.
var ErrUnsupportedActivation = errors.New("unsupported activation")

// Config defines the initial state of the learner.
type Config struct {
	Dim          int             `json:"dim"`
	Activation   activation.Kind `json:"activation"`
	LearningRate float64         `json:"learning_rate"`
	MaxEpochs    int             `json:"max_epochs"`
	// Weights are the initial weights, all ones if empty.
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// DefaultConfig returns the 3d step perceptron with unit weights.
func DefaultConfig() Config {
	return Config{
		Dim:          3,
		Activation:   activation.Step,
		LearningRate: 0.1,
		MaxEpochs:    100,
	}
}

// Supported checks if the activation can drive the perceptron.
func Supported(k activation.Kind) bool {
	switch k {
	case activation.Step, activation.Sigmoid, activation.Tanh:
		return true
	}
	return false
}

// Learner is a perceptron with a weight vector and a bias.
type Learner struct {
	cfg Config

	weights      xmath.Vector
	bias         float64
	learningRate float64
	fn           activation.Function
	epoch        int
}

// New creates a new learner.
func New(cfg Config) (*Learner, error) {
	if !Supported(cfg.Activation) {
		return nil, fmt.Errorf("could not create perceptron for '%s': %w", cfg.Activation, ErrUnsupportedActivation)
	}
	if cfg.Dim <= 0 {
		return nil, fmt.Errorf("invalid dimension %d", cfg.Dim)
	}
	weights := xmath.Vec(cfg.Dim).Op(xmath.Unit)
	if len(cfg.Weights) > 0 {
		if len(cfg.Weights) != cfg.Dim {
			return nil, fmt.Errorf("inconsistent weights %d for dimension %d", len(cfg.Weights), cfg.Dim)
		}
		weights = xmath.Vector(cfg.Weights).Copy()
	}
	cfg.Weights = weights
	l := &Learner{cfg: cfg}
	l.Reset()
	return l, nil
}

// Predict returns the activation of the weighted sum of the features.
func (l *Learner) Predict(x xmath.Vector) float64 {
	return l.fn.F(l.weights.Dot(x) + l.bias)
}

// Classify returns the predicted class of the features.
func (l *Learner) Classify(x xmath.Vector) int {
	return l.class(l.Predict(x))
}

func (l *Learner) class(prediction float64) int {
	if l.fn.Kind == activation.Step {
		return int(prediction)
	}
	if prediction > Threshold {
		return 1
	}
	return 0
}

// TrainEpoch makes one online pass over the samples and returns the number of updates.
// The weights and bias are clamped to their display range at the end of the epoch.
func (l *Learner) TrainEpoch(samples []Sample) int {
	var errs int
	for _, s := range samples {
		err := float64(s.Label - l.Classify(s.Features))
		if math.Abs(err) > DeadZone {
			l.weights = l.weights.Add(s.Features.Mult(l.learningRate * err))
			l.bias += l.learningRate * err
			errs++
		}
	}
	l.Clamp()
	l.epoch++
	return errs
}

// Train runs epochs until one of them has no errors, or the max number of epochs is reached.
// It returns the number of epochs run and true if training converged.
func (l *Learner) Train(samples []Sample) (int, bool) {
	var epochs int
	for l.epoch < l.cfg.MaxEpochs {
		errs := l.TrainEpoch(samples)
		epochs++
		if errs == 0 {
			log.Debug().
				Int("epoch", l.epoch).
				Str("weights", l.weights.String()).
				Float64("bias", l.bias).
				Msg("perceptron converged")
			return epochs, true
		}
	}
	return epochs, false
}

// Done returns true if the max number of epochs has been reached.
func (l *Learner) Done() bool {
	return l.epoch >= l.cfg.MaxEpochs
}

// Accuracy returns the fraction of correctly classified samples.
func (l *Learner) Accuracy(samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var correct int
	for _, s := range samples {
		if l.Classify(s.Features) == s.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(samples))
}

// Clamp restricts the weights and bias to their display range.
func (l *Learner) Clamp() {
	l.weights = l.weights.Op(xmath.Clip(-WeightLimit, WeightLimit))
	l.bias = xmath.Clip(-BiasLimit, BiasLimit)(l.bias)
}

// Boundary solves the decision boundary w·x + b = 0 for the last coordinate,
// given the other ones. It returns false if the boundary is degenerate.
func (l *Learner) Boundary(x ...float64) (float64, bool) {
	n := len(l.weights) - 1
	if len(x) != n || l.weights[n] == 0 {
		return 0, false
	}
	sum := l.bias
	for i, v := range x {
		sum += l.weights[i] * v
	}
	z := -sum / l.weights[n]
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return 0, false
	}
	return z, true
}

// Reset restores the learner to the state it was created with.
func (l *Learner) Reset() {
	l.ResetWeights()
	l.learningRate = l.cfg.LearningRate
	l.fn = activation.New(l.cfg.Activation)
}

// ResetWeights restores only the initial weights and bias, and the epoch count.
func (l *Learner) ResetWeights() {
	l.weights = xmath.Vector(l.cfg.Weights).Copy()
	l.bias = l.cfg.Bias
	l.epoch = 0
}

// Restart clears the epoch count, training continues from the current weights.
func (l *Learner) Restart() {
	l.epoch = 0
}

// SetWeights replaces the weights, clamped to their display range.
func (l *Learner) SetWeights(w ...float64) error {
	if len(w) != len(l.weights) {
		return fmt.Errorf("inconsistent weights %d for dimension %d", len(w), len(l.weights))
	}
	l.weights = xmath.Vector(w).Copy().Op(xmath.Clip(-WeightLimit, WeightLimit))
	return nil
}

// SetBias replaces the bias, clamped to its display range.
func (l *Learner) SetBias(b float64) {
	l.bias = xmath.Clip(-BiasLimit, BiasLimit)(b)
}

// SetLearningRate changes the learning rate for the next update.
func (l *Learner) SetLearningRate(lr float64) {
	l.learningRate = lr
}

// SetActivation changes the activation for the next prediction.
func (l *Learner) SetActivation(k activation.Kind) error {
	if !Supported(k) {
		return fmt.Errorf("could not set '%s': %w", k, ErrUnsupportedActivation)
	}
	l.fn = activation.New(k)
	return nil
}

// Activation returns the current activation kind.
func (l *Learner) Activation() activation.Kind {
	return l.fn.Kind
}

// LearningRate returns the current learning rate.
func (l *Learner) LearningRate() float64 {
	return l.learningRate
}

// Weights returns a copy of the weights.
func (l *Learner) Weights() xmath.Vector {
	return l.weights.Copy()
}

// Bias returns the bias.
func (l *Learner) Bias() float64 {
	return l.bias
}

// Epoch returns the number of epochs since the last reset.
func (l *Learner) Epoch() int {
	return l.epoch
}

// MaxEpochs returns the epoch limit of training.
func (l *Learner) MaxEpochs() int {
	return l.cfg.MaxEpochs
}
