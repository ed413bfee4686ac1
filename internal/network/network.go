// Package network simulates small feed forward networks for the network diagrams.
package network

import (
	"fmt"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/mlviz/internal/activation"
	"github.com/drakos74/mlviz/internal/rng"
)

// Network is a fully connected network with sigmoid activations and no bias.
// Propagation can run at once with Forward, or layer by layer with Start and Advance.
type Network struct {
	sizes   []int
	weights []xmath.Matrix
	values  []xmath.Vector
	fn      activation.Function

	layer     int
	progress  float64
	animating bool
}

// New creates a network with the given layer sizes and random weights in [-1,1).
func New(sizes []int, src rng.Source) (*Network, error) {
	if len(sizes) < 2 {
		return nil, fmt.Errorf("network needs at least 2 layers: %v", sizes)
	}
	for i, s := range sizes {
		if s <= 0 {
			return nil, fmt.Errorf("invalid size %d for layer %d", s, i)
		}
	}
	n := &Network{
		sizes:   append([]int{}, sizes...),
		weights: make([]xmath.Matrix, len(sizes)-1),
		values:  make([]xmath.Vector, len(sizes)),
		fn:      activation.New(activation.Sigmoid),
	}
	n.Randomize(src)
	n.clear()
	return n, nil
}

// Randomize draws new weights in [-1,1).
// weights[l] maps layer l to layer l+1, one row per target neuron.
func (n *Network) Randomize(src rng.Source) {
	for l := range n.weights {
		m := xmath.Mat(n.sizes[l+1]).Of(n.sizes[l])
		for i := range m {
			for j := range m[i] {
				m[i][j] = rng.Uniform(src, -1, 1)
			}
		}
		n.weights[l] = m
	}
}

func (n *Network) clear() {
	for l, s := range n.sizes {
		n.values[l] = xmath.Vec(s)
	}
	n.layer = 0
	n.progress = 0
	n.animating = false
}

func (n *Network) propagate(l int) {
	n.values[l+1] = n.weights[l].Prod(n.values[l]).Op(n.fn.F)
}

// Reset clears the neuron values and stops a running propagation, the weights are kept.
func (n *Network) Reset() {
	n.clear()
}

// Forward propagates the input through all layers and returns the output.
func (n *Network) Forward(input xmath.Vector) (xmath.Vector, error) {
	if len(input) != n.sizes[0] {
		return nil, fmt.Errorf("input size %d does not match layer size %d", len(input), n.sizes[0])
	}
	n.clear()
	n.values[0] = input.Copy()
	for l := range n.weights {
		n.propagate(l)
	}
	n.layer = len(n.weights)
	return n.values[len(n.values)-1].Copy(), nil
}

// Start initiates an animated propagation of random inputs in [0,1).
// It returns false if a propagation is already running.
func (n *Network) Start(src rng.Source) bool {
	if n.animating {
		return false
	}
	n.clear()
	for i := range n.values[0] {
		n.values[0][i] = src.Float64()
	}
	n.animating = true
	return true
}

// Advance moves the animation forward, computing the next layer every time the progress completes.
// It returns true while the propagation is running.
func (n *Network) Advance(dp float64) bool {
	if !n.animating {
		return false
	}
	n.progress += dp
	if n.progress >= 1 {
		n.propagate(n.layer)
		n.layer++
		n.progress = 0
	}
	if n.layer >= len(n.weights) {
		n.animating = false
	}
	return n.animating
}

// Sizes returns the layer sizes.
func (n *Network) Sizes() []int {
	return append([]int{}, n.sizes...)
}

// Weight returns the weight of the connection from neuron i of layer l to neuron j of layer l+1.
func (n *Network) Weight(l, i, j int) float64 {
	return n.weights[l][j][i]
}

// Values returns a copy of the neuron values of every layer.
func (n *Network) Values() []xmath.Vector {
	vv := make([]xmath.Vector, len(n.values))
	for i, v := range n.values {
		vv[i] = v.Copy()
	}
	return vv
}

// Layer returns the layer currently propagating.
func (n *Network) Layer() int {
	return n.layer
}

// Progress returns the progress of the current layer transition in [0,1).
func (n *Network) Progress() float64 {
	return n.progress
}

// Animating returns true while a propagation is running.
func (n *Network) Animating() bool {
	return n.animating
}

// Connections returns the total number of weights.
func (n *Network) Connections() int {
	var c int
	for l := 0; l < len(n.sizes)-1; l++ {
		c += n.sizes[l] * n.sizes[l+1]
	}
	return c
}
