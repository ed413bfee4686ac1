package demo

import (
	"fmt"
	"time"

	"github.com/drakos74/mlviz/internal/activation"
	"github.com/drakos74/mlviz/internal/control"
	mlmath "github.com/drakos74/mlviz/internal/math"
	"github.com/drakos74/mlviz/internal/metrics"
	"github.com/drakos74/mlviz/internal/perceptron"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/rs/zerolog/log"
)

const (
	// PerceptronName is the name of the perceptron demo.
	PerceptronName = "perceptron"

	epochDelay    = 100 * time.Millisecond
	boundaryRange = 5.0
	boundaryGrid  = 20
)

// weightSliders hold the weights of the three inputs, the bias has its own slider.
var weightSliders = []string{"w1", "w2", "w3"}

// perceptronActivations maps the activation slider onto the supported functions.
var perceptronActivations = []activation.Kind{activation.Step, activation.Sigmoid, activation.Tanh}

var (
	positiveColor = render.MustHex("#27ae60")
	negativeColor = render.MustHex("#e74c3c")
	planeColor    = render.MustHex("#667eea")
)

// Perceptron trains a 3 input perceptron on two point clusters.
type Perceptron struct {
	base
	learner    *perceptron.Learner
	samples    []perceptron.Sample
	projection render.Projection
	elapsed    time.Duration
	// synced holds the weight and bias slider values last exchanged with the learner.
	synced []float64
}

// NewPerceptron creates the perceptron demo.
func NewPerceptron(src rng.Source) *Perceptron {
	learner, err := perceptron.New(perceptron.DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("could not create perceptron: %v", err))
	}
	p := &Perceptron{
		base: newBase(PerceptronName, src,
			[]control.Action{control.Train, control.Toggle, control.Generate, control.Reset},
			control.Slider{Name: "learningRate", Min: 0.01, Max: 1, Step: 0.01, Default: 0.1},
			control.Slider{Name: "numPoints", Min: 10, Max: 200, Step: 10, Default: 100},
			control.Slider{Name: "spread", Min: 0.5, Max: 5, Step: 0.5, Default: 2},
			control.Slider{Name: "activation", Min: 0, Max: 2, Step: 1, Default: 0},
			control.Slider{Name: "w1", Min: -perceptron.WeightLimit, Max: perceptron.WeightLimit, Step: 0.1, Default: 1},
			control.Slider{Name: "w2", Min: -perceptron.WeightLimit, Max: perceptron.WeightLimit, Step: 0.1, Default: 1},
			control.Slider{Name: "w3", Min: -perceptron.WeightLimit, Max: perceptron.WeightLimit, Step: 0.1, Default: 1},
			control.Slider{Name: "bias", Min: -perceptron.BiasLimit, Max: perceptron.BiasLimit, Step: 0.1, Default: 0},
		),
		learner: learner,
		projection: render.Projection{
			Scale:  40,
			Width:  800,
			Height: 600,
		},
	}
	p.generate()
	p.sync()
	return p
}

// sync writes the learner weights and bias to their sliders.
func (p *Perceptron) sync() {
	w := p.learner.Weights()
	values := append(w, p.learner.Bias())
	names := append(append([]string{}, weightSliders...), "bias")
	p.synced = make([]float64, len(names))
	for i, name := range names {
		v, err := p.panel.Set(name, values[i])
		if err != nil {
			log.Error().Err(err).Str("demo", p.name).Str("slider", name).Msg("could not sync weight")
		}
		p.synced[i] = v
	}
}

// manual applies the weight and bias sliders the user moved since the last sync.
func (p *Perceptron) manual() {
	w := p.learner.Weights()
	var changed bool
	for i, name := range weightSliders {
		if v := p.panel.Get(name); v != p.synced[i] {
			w[i] = v
			p.synced[i] = v
			changed = true
		}
	}
	if changed {
		if err := p.learner.SetWeights(w...); err != nil {
			log.Error().Err(err).Str("demo", p.name).Msg("could not set weights")
		}
	}
	b := len(weightSliders)
	if v := p.panel.Get("bias"); v != p.synced[b] {
		p.learner.SetBias(v)
		p.synced[b] = v
	}
}

func (p *Perceptron) generate() {
	p.samples = perceptron.Generate(p.src, p.panel.Int("numPoints"), 3, p.panel.Get("spread"))
}

// epoch trains once over the samples, training stops at zero errors or at the epoch limit.
func (p *Perceptron) epoch() {
	if p.learner.Done() {
		p.running = false
		log.Debug().Str("demo", p.name).Int("epoch", p.learner.Epoch()).Msg("epoch limit reached")
		return
	}
	errs := p.learner.TrainEpoch(p.samples)
	p.sync()
	metrics.Observer.Increment(metrics.Epochs, p.name)
	if p.learner.Done() || errs == 0 {
		p.running = false
		log.Info().
			Str("demo", p.name).
			Int("epoch", p.learner.Epoch()).
			Float64("accuracy", p.learner.Accuracy(p.samples)).
			Msg("training complete")
	}
}

// Update reads the sliders and, while training, runs an epoch every 100ms.
func (p *Perceptron) Update(dt time.Duration) {
	p.learner.SetLearningRate(p.panel.Get("learningRate"))
	k := perceptronActivations[p.index("activation", len(perceptronActivations))]
	if k != p.learner.Activation() {
		if err := p.learner.SetActivation(k); err != nil {
			log.Error().Err(err).Str("demo", p.name).Msg("could not set activation")
		}
	}
	p.manual()
	if !p.running {
		return
	}
	p.elapsed += dt
	for p.running && p.elapsed >= epochDelay {
		p.elapsed -= epochDelay
		p.epoch()
	}
}

// Trigger executes the action.
func (p *Perceptron) Trigger(action control.Action) error {
	switch action {
	case control.Train:
		if !p.running {
			p.manual()
			p.learner.Restart()
			p.running = true
			p.elapsed = 0
			p.epoch()
		}
	case control.Toggle:
		p.toggle()
	case control.Generate:
		p.generate()
	case control.Reset:
		p.running = false
		p.learner.ResetWeights()
		p.sync()
	default:
		return p.unknown(action)
	}
	return nil
}

// Reset restores the initial state.
func (p *Perceptron) Reset() {
	p.running = false
	p.elapsed = 0
	p.panel.Reset()
	p.learner.Reset()
	p.generate()
	p.sync()
}

// Learner exposes the perceptron.
func (p *Perceptron) Learner() *perceptron.Learner {
	return p.learner
}

// Samples returns the current data set.
func (p *Perceptron) Samples() []perceptron.Sample {
	return p.samples
}

// Render draws the points coloured by label and the decision plane as a wireframe.
func (p *Perceptron) Render() *render.Frame {
	f := p.frame()
	for _, s := range p.samples {
		c := negativeColor
		if s.Label == 1 {
			c = positiveColor
		}
		f.Point(p.projection.Project(s.Features[0], s.Features[2], s.Features[1]), c, 4)
	}

	step := 2 * boundaryRange / boundaryGrid
	for i := 0; i <= boundaryGrid; i++ {
		x := -boundaryRange + float64(i)*step
		row := make([]render.Point, 0, boundaryGrid+1)
		for j := 0; j <= boundaryGrid; j++ {
			y := -boundaryRange + float64(j)*step
			z, ok := p.learner.Boundary(x, y)
			if !ok {
				continue
			}
			row = append(row, p.projection.Project(x, z, y))
		}
		f.Line(planeColor, 1, row...)
	}

	w := p.learner.Weights()
	f.Label("weights", fmt.Sprintf("%s, %s, %s", mlmath.Format(w[0]), mlmath.Format(w[1]), mlmath.Format(w[2])))
	f.Label("bias", mlmath.Format(p.learner.Bias()))
	f.Label("activation", p.learner.Activation().String())
	f.Label("epoch", mlmath.FormatN(float64(p.learner.Epoch()), 0))
	f.Label("accuracy", mlmath.FormatN(p.learner.Accuracy(p.samples)*100, 1)+"%")
	return f
}
