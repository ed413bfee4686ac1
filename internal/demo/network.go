package demo

import (
	"fmt"
	"math"
	"time"

	"github.com/drakos74/mlviz/internal/control"
	mlmath "github.com/drakos74/mlviz/internal/math"
	"github.com/drakos74/mlviz/internal/network"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/rs/zerolog/log"
)

// NetworkName is the name of the forward propagation demo.
const NetworkName = "network"

var (
	layerColors = []render.Color{
		render.MustHex("#ff6b9d"),
		render.MustHex("#4a90e2"),
		render.MustHex("#7ed321"),
	}
	positiveWeight = render.MustHex("#2ecc71")
	negativeWeight = render.MustHex("#e74c3c")
	signalColor    = render.MustHex("#ffd700")
	borderColor    = render.MustHex("#333333")
)

// Network animates forward propagation through a 3 layer network, one layer at a time.
type Network struct {
	base
	net    *network.Network
	sizes  []int
	active map[[3]int]bool
}

// NewNetwork creates the forward propagation demo.
func NewNetwork(src rng.Source) *Network {
	n := &Network{
		base: newBase(NetworkName, src,
			[]control.Action{control.Forward, control.Randomize, control.Reset},
			control.Slider{Name: "input", Min: 1, Max: 8, Step: 1, Default: 3},
			control.Slider{Name: "hidden", Min: 1, Max: 10, Step: 1, Default: 4},
			control.Slider{Name: "output", Min: 1, Max: 6, Step: 1, Default: 2},
			control.Slider{Name: "speed", Min: 1, Max: 10, Step: 1, Default: 5},
		),
		active: make(map[[3]int]bool),
	}
	n.build()
	return n
}

func (n *Network) layout() []int {
	return []int{n.panel.Int("input"), n.panel.Int("hidden"), n.panel.Int("output")}
}

func (n *Network) build() {
	sizes := n.layout()
	net, err := network.New(sizes, n.src)
	if err != nil {
		log.Error().Err(err).Str("demo", n.name).Msg("could not build network")
		return
	}
	n.net = net
	n.sizes = sizes
	n.active = make(map[[3]int]bool)
}

func sameSizes(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Update rebuilds the network if the architecture changed and advances a running propagation.
// A layer transition takes 50/speed frames.
func (n *Network) Update(dt time.Duration) {
	if !sameSizes(n.sizes, n.layout()) {
		n.build()
	}
	if !n.net.Animating() {
		return
	}
	layer := n.net.Layer()
	running := n.net.Advance(n.panel.Get("speed") / 50)
	n.active = make(map[[3]int]bool)
	if !running {
		log.Debug().Str("demo", n.name).Str("output", n.net.Values()[len(n.sizes)-1].String()).Msg("forward propagation complete")
		return
	}
	if n.net.Layer() != layer {
		return
	}
	progress := n.net.Progress()
	for i := 0; i < n.sizes[layer]; i++ {
		for j := 0; j < n.sizes[layer+1]; j++ {
			if progress > n.src.Float64()*0.5 {
				n.active[[3]int{layer, i, j}] = true
			}
		}
	}
}

// Trigger executes the action.
func (n *Network) Trigger(action control.Action) error {
	switch action {
	case control.Forward:
		n.net.Start(n.src)
	case control.Randomize:
		n.net.Randomize(n.src)
	case control.Reset:
		n.net.Reset()
		n.active = make(map[[3]int]bool)
	default:
		return n.unknown(action)
	}
	return nil
}

// Reset restores the initial state.
func (n *Network) Reset() {
	n.panel.Reset()
	n.build()
}

// Net exposes the network.
func (n *Network) Net() *network.Network {
	return n.net
}

// Render draws the connections coloured by weight and the neurons filled by their value.
func (n *Network) Render() *render.Frame {
	f := n.frame()
	const (
		width  = 1200.0
		height = 600.0
		radius = 25.0
	)
	spacing := width / float64(len(n.sizes)+1)
	position := func(l, i int) render.Point {
		return render.Point{
			X: spacing * float64(l+1),
			Y: height / float64(n.sizes[l]+1) * float64(i+1),
		}
	}

	for l := 0; l < len(n.sizes)-1; l++ {
		for i := 0; i < n.sizes[l]; i++ {
			for j := 0; j < n.sizes[l+1]; j++ {
				if n.active[[3]int{l, i, j}] {
					f.Line(signalColor, 3, position(l, i), position(l+1, j))
					continue
				}
				w := n.net.Weight(l, i, j)
				c := negativeWeight
				if w > 0 {
					c = positiveWeight
				}
				f.Line(render.Interpolate(render.White, c, 0.2+math.Abs(w)*0.3), 1+math.Abs(w), position(l, i), position(l+1, j))
			}
		}
	}

	values := n.net.Values()
	for l, layer := range values {
		color := layerColors[l%len(layerColors)]
		for i, v := range layer {
			p := position(l, i)
			if v != 0 {
				f.Point(p, render.Interpolate(render.White, color, math.Min(v, 1)), radius)
				f.Text(p, borderColor, mlmath.Format(v))
			} else {
				f.Point(p, color, radius)
			}
		}
	}

	total := 0
	for _, s := range n.sizes {
		total += s
	}
	f.Label("neurons", fmt.Sprintf("%d", total))
	f.Label("connections", fmt.Sprintf("%d", n.net.Connections()))
	f.Label("depth", fmt.Sprintf("%d", len(n.sizes)))
	if n.net.Animating() {
		f.Label("status", fmt.Sprintf("propagating layer %d to %d", n.net.Layer(), n.net.Layer()+1))
	}
	return f
}
