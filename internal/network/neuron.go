package network

import (
	"fmt"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/mlviz/internal/activation"
	"github.com/drakos74/mlviz/internal/rng"
)

// Neuron is a single sigmoid neuron trained with the delta rule.
// Training alternates a forward pass, that computes the output error,
// and a backward pass, that applies it.
type Neuron struct {
	weights      xmath.Vector
	bias         float64
	learningRate float64
	fn           activation.Function

	output  float64
	err     float64
	pending bool
	epoch   int
}

// NewNeuron creates a neuron with n inputs and random weights and bias in [-1,1).
func NewNeuron(n int, lr float64, src rng.Source) *Neuron {
	w := xmath.Vec(n)
	for i := range w {
		w[i] = rng.Uniform(src, -1, 1)
	}
	return &Neuron{
		weights:      w,
		bias:         rng.Uniform(src, -1, 1),
		learningRate: lr,
		fn:           activation.New(activation.Sigmoid),
	}
}

// Output returns the sigmoid of the weighted inputs.
func (n *Neuron) Output(x xmath.Vector) float64 {
	return n.fn.F(n.weights.Dot(x) + n.bias)
}

// Forward computes the output and the error against the target.
func (n *Neuron) Forward(x xmath.Vector, target float64) (float64, float64) {
	n.output = n.Output(x)
	n.err = target - n.output
	n.pending = true
	return n.output, n.err
}

// Backward applies the error of the last forward pass, with delta = error * y(1-y).
// It completes an epoch, if a forward pass preceded it.
func (n *Neuron) Backward(x xmath.Vector) (float64, error) {
	if len(x) != len(n.weights) {
		return 0, fmt.Errorf("input size %d does not match weights %d", len(x), len(n.weights))
	}
	delta := n.err * n.output * (1 - n.output)
	n.weights = n.weights.Add(x.Mult(n.learningRate * delta))
	n.bias += n.learningRate * delta
	if n.pending {
		n.epoch++
		n.pending = false
	}
	return delta, nil
}

// Randomize draws new weights and bias, and clears the training state.
func (n *Neuron) Randomize(src rng.Source) {
	for i := range n.weights {
		n.weights[i] = rng.Uniform(src, -1, 1)
	}
	n.bias = rng.Uniform(src, -1, 1)
	n.output = 0
	n.err = 0
	n.pending = false
	n.epoch = 0
}

// SetLearningRate changes the learning rate for the next backward pass.
func (n *Neuron) SetLearningRate(lr float64) {
	n.learningRate = lr
}

// Weights returns a copy of the weights.
func (n *Neuron) Weights() xmath.Vector {
	return n.weights.Copy()
}

// Bias returns the bias.
func (n *Neuron) Bias() float64 {
	return n.bias
}

// Error returns the error of the last forward pass.
func (n *Neuron) Error() float64 {
	return n.err
}

// Epoch returns the number of completed forward and backward passes.
func (n *Neuron) Epoch() int {
	return n.epoch
}

// Pending returns true if a forward pass waits for its backward pass.
func (n *Neuron) Pending() bool {
	return n.pending
}
