package demo

import (
	"fmt"
	"math"
	"time"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/mlviz/internal/control"
	mlmath "github.com/drakos74/mlviz/internal/math"
	"github.com/drakos74/mlviz/internal/metrics"
	"github.com/drakos74/mlviz/internal/network"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/rs/zerolog/log"
)

const (
	// NeuronName is the name of the single neuron demo.
	NeuronName = "neuron"

	neuronInputs    = 3
	neuronAutoDelay = 1500 * time.Millisecond
	neuronFlash     = 60
	neuronHit       = 40.0
	canvasWidth     = 1200.0
	canvasHeight    = 800.0
)

// Phase is the current propagation of the neuron demo.
type Phase int

const (
	// IdlePhase waits for the next propagation.
	IdlePhase Phase = iota
	// ForwardPhase animates the signal towards the output.
	ForwardPhase
	// BackwardPhase animates the error back to the weights.
	BackwardPhase
)

func (p Phase) String() string {
	switch p {
	case IdlePhase:
		return "idle"
	case ForwardPhase:
		return "forward"
	case BackwardPhase:
		return "backward"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

var (
	inputColor  = render.MustHex("#dc5050")
	neuronColor = render.MustHex("#3c78d2")
	biasColor   = render.MustHex("#9664c8")
	outColor    = render.MustHex("#50c864")
	updateColor = render.MustHex("#ffd700")
)

// Neuron trains a single sigmoid neuron towards a target, one animated pass at a time.
type Neuron struct {
	base
	neuron   *network.Neuron
	inputs   xmath.Vector
	target   float64
	phase    Phase
	progress float64
	elapsed  time.Duration
	flash    int
}

// NewNeuron creates the single neuron demo.
func NewNeuron(src rng.Source) *Neuron {
	n := &Neuron{
		base: newBase(NeuronName, src,
			[]control.Action{control.Forward, control.Backward, control.Toggle, control.Generate, control.Randomize, control.Reset},
			control.Slider{Name: "learningRate", Min: 0.01, Max: 1, Step: 0.01, Default: 0.1},
			control.Slider{Name: "animationSpeed", Min: 0.01, Max: 0.1, Step: 0.01, Default: 0.02},
		),
		neuron: network.NewNeuron(neuronInputs, 0.1, src),
	}
	n.sample()
	return n
}

func (n *Neuron) sample() {
	n.inputs = xmath.Vec(neuronInputs)
	for i := range n.inputs {
		n.inputs[i] = n.src.Float64()
	}
	n.target = n.src.Float64()
}

func (n *Neuron) start(p Phase) bool {
	if n.phase != IdlePhase {
		return false
	}
	n.phase = p
	n.progress = 0
	return true
}

func (n *Neuron) complete() {
	switch n.phase {
	case ForwardPhase:
		n.neuron.Forward(n.inputs, n.target)
	case BackwardPhase:
		pending := n.neuron.Pending()
		delta, err := n.neuron.Backward(n.inputs)
		if err != nil {
			log.Error().Err(err).Str("demo", n.name).Msg("could not back propagate")
			break
		}
		n.flash = neuronFlash
		if pending {
			metrics.Observer.Increment(metrics.Epochs, n.name)
		}
		log.Debug().
			Str("demo", n.name).
			Float64("delta", delta).
			Int("epoch", n.neuron.Epoch()).
			Msg("weights updated")
	}
	n.phase = IdlePhase
	n.progress = 0
}

// Update reads the sliders and advances the running propagation.
// In auto mode a forward or backward pass starts every 1.5s, alternating.
func (n *Neuron) Update(dt time.Duration) {
	n.neuron.SetLearningRate(n.panel.Get("learningRate"))
	if n.flash > 0 {
		n.flash--
	}
	if n.running {
		n.elapsed += dt
		if n.phase == IdlePhase && n.elapsed >= neuronAutoDelay {
			n.elapsed = 0
			if n.neuron.Pending() {
				n.start(BackwardPhase)
			} else {
				n.start(ForwardPhase)
			}
		}
	}
	if n.phase == IdlePhase {
		return
	}
	n.progress += n.panel.Get("animationSpeed")
	if n.progress >= 1 {
		n.complete()
	}
}

// Trigger executes the action.
func (n *Neuron) Trigger(action control.Action) error {
	switch action {
	case control.Forward:
		n.start(ForwardPhase)
	case control.Backward:
		n.start(BackwardPhase)
	case control.Toggle:
		n.toggle()
		n.elapsed = 0
	case control.Generate:
		n.target = n.src.Float64()
	case control.Randomize, control.Reset:
		n.neuron.Randomize(n.src)
		n.phase = IdlePhase
		n.progress = 0
		n.flash = 0
	default:
		return n.unknown(action)
	}
	return nil
}

func inputPosition(i int) render.Point {
	return render.Point{X: canvasWidth / 5, Y: canvasHeight/4 + float64(i)*canvasHeight/4}
}

// Click draws a new value for the clicked input neuron.
func (n *Neuron) Click(p render.Point) error {
	for i := range n.inputs {
		c := inputPosition(i)
		if math.Hypot(p.X-c.X, p.Y-c.Y) < neuronHit {
			n.inputs[i] = n.src.Float64()
		}
	}
	return nil
}

// Reset restores the initial state.
func (n *Neuron) Reset() {
	n.running = false
	n.elapsed = 0
	n.panel.Reset()
	n.phase = IdlePhase
	n.progress = 0
	n.flash = 0
	n.neuron.Randomize(n.src)
	n.sample()
}

// Neuron exposes the trained neuron.
func (n *Neuron) Neuron() *network.Neuron {
	return n.neuron
}

// Phase returns the running propagation.
func (n *Neuron) Phase() Phase {
	return n.phase
}

// Render draws the inputs, the neuron with its bias and the output, with the signal in flight.
func (n *Neuron) Render() *render.Frame {
	f := n.frame()
	center := render.Point{X: canvasWidth / 2, Y: canvasHeight / 2}
	output := render.Point{X: canvasWidth * 4 / 5, Y: canvasHeight / 2}
	bias := render.Point{X: center.X, Y: center.Y - 120}

	weights := n.neuron.Weights()
	for i, x := range n.inputs {
		p := inputPosition(i)
		c := render.Interpolate(render.Gray, neuronColor, math.Min(math.Abs(weights[i]), 1))
		if n.flash > 0 {
			c = updateColor
		}
		f.Line(c, 2+2*math.Abs(weights[i]), p, center)
		f.Text(render.Point{X: (p.X + center.X) / 2, Y: (p.Y + center.Y) / 2}, c, mlmath.Format(weights[i]))
		f.Point(p, inputColor, neuronHit)
		f.Text(p, render.White, mlmath.Format(x))
		if n.phase == ForwardPhase {
			f.Point(render.Point{X: mlmath.Lerp(p.X, center.X, n.progress), Y: mlmath.Lerp(p.Y, center.Y, n.progress)}, updateColor, 6)
		}
	}

	f.Line(neuronColor, 3, center, output)
	if n.phase == BackwardPhase {
		f.Point(render.Point{X: mlmath.Lerp(output.X, center.X, n.progress), Y: center.Y}, inputColor, 6)
	}
	f.Point(center, neuronColor, 50)
	biasC := biasColor
	if n.flash > 0 {
		biasC = updateColor
	}
	f.Point(bias, biasC, 25)
	f.Text(bias, render.White, mlmath.Format(n.neuron.Bias()))
	f.Point(output, outColor, 40)
	f.Text(output, render.White, mlmath.Format(n.neuron.Output(n.inputs)))

	f.Label("phase", n.phase.String())
	f.Label("target", mlmath.FormatN(n.target, 3))
	f.Label("output", mlmath.FormatN(n.neuron.Output(n.inputs), 3))
	f.Label("error", mlmath.FormatN(n.neuron.Error(), 3))
	f.Label("epoch", mlmath.FormatN(float64(n.neuron.Epoch()), 0))
	return f
}
