package demo

import (
	"time"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/mlviz/internal/control"
	"github.com/drakos74/mlviz/internal/curve"
	mlmath "github.com/drakos74/mlviz/internal/math"
	"github.com/drakos74/mlviz/internal/metrics"
	"github.com/drakos74/mlviz/internal/network"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/drakos74/mlviz/internal/rng"
)

// DropoutName is the name of the dropout demo.
const DropoutName = "dropout"

// dropoutLayers are the layer sizes of the dropout network.
var dropoutLayers = []int{4, 8, 8, 3}

var (
	standardColor = render.MustHex("#e74c3c")
	dropoutColor  = render.MustHex("#2ecc71")
	droppedColor  = render.MustHex("#95a5a6")
	scaledColor   = render.MustHex("#8e44ad")
	testColor     = render.MustHex("#e67e22")
)

// Dropout compares a standard network with one trained with dropout.
type Dropout struct {
	base
	standard     []xmath.Vector
	dropout      network.Dropout
	steps        int
	processed    int
	totalDropped int
	epoch        int
	losses       *losses
}

// NewDropout creates the dropout demo.
func NewDropout(src rng.Source) *Dropout {
	d := &Dropout{
		base: newBase(DropoutName, src,
			[]control.Action{control.Step, control.Toggle, control.Reset},
			control.Slider{Name: "dropoutRate", Min: 0, Max: 0.9, Step: 0.05, Default: 0.5},
			control.Slider{Name: "speed", Min: 1, Max: 10, Step: 1, Default: 3},
		),
		losses: newLosses(curve.StandardTrain, curve.StandardTest, curve.DropoutTrain, curve.DropoutTest),
	}
	d.clear()
	return d
}

func (d *Dropout) clear() {
	d.steps = 0
	d.processed = 0
	d.totalDropped = 0
	d.epoch = 0
	d.losses.clear()
	d.standard = network.RandomActivations(dropoutLayers, d.src)
	d.dropout = network.ApplyDropout(network.RandomActivations(dropoutLayers, d.src), 0, d.src)
}

// step samples new activations and applies dropout to the second network.
func (d *Dropout) step() {
	d.steps++
	d.standard = network.RandomActivations(dropoutLayers, d.src)
	d.dropout = network.ApplyDropout(network.RandomActivations(dropoutLayers, d.src), d.panel.Get("dropoutRate"), d.src)
	d.totalDropped += d.dropout.Dropped
	for _, n := range dropoutLayers {
		d.processed += n
	}
}

func (d *Dropout) epochStep() {
	if d.epoch >= maxEpochs {
		d.running = false
		return
	}
	d.epoch++
	d.losses.push(d.epoch, d.src)
	metrics.Observer.Increment(metrics.Epochs, d.name)
}

// Update advances a training step and an epoch at the pace of the speed slider.
func (d *Dropout) Update(dt time.Duration) {
	if !d.running {
		return
	}
	if d.due(d.panel.Int("speed")) {
		d.step()
		d.epochStep()
	}
}

// Trigger executes the action.
func (d *Dropout) Trigger(action control.Action) error {
	switch action {
	case control.Step:
		d.step()
	case control.Toggle:
		d.toggle()
	case control.Reset:
		d.running = false
		d.clear()
	default:
		return d.unknown(action)
	}
	return nil
}

// Reset restores the initial state.
func (d *Dropout) Reset() {
	d.running = false
	d.frames = 0
	d.panel.Reset()
	d.clear()
}

// Epoch returns the number of epochs run.
func (d *Dropout) Epoch() int {
	return d.epoch
}

// TotalDropped returns the number of neurons dropped since the last reset.
func (d *Dropout) TotalDropped() int {
	return d.totalDropped
}

// Current returns the latest dropout pass.
func (d *Dropout) Current() network.Dropout {
	return d.dropout
}

// Gaps returns the last test minus train loss of the standard and the dropout network.
func (d *Dropout) Gaps() (float64, float64) {
	return d.losses.gap(curve.StandardTrain, curve.StandardTest), d.losses.gap(curve.DropoutTrain, curve.DropoutTest)
}

func (d *Dropout) drawNetwork(f *render.Frame, x float64, layers, masks []xmath.Vector, c render.Color) {
	const (
		spacing = 150.0
		top     = 50.0
		height  = 300.0
		radius  = 18.0
	)
	position := func(l, i int) render.Point {
		n := float64(len(layers[l]))
		return render.Point{X: x + float64(l)*spacing, Y: top + (float64(i)+1)*height/(n+1)}
	}
	kept := func(l, i int) bool {
		return masks == nil || masks[l][i] > 0
	}
	for l := 0; l < len(layers)-1; l++ {
		for i := range layers[l] {
			for j := range layers[l+1] {
				if !kept(l, i) || !kept(l+1, j) {
					continue
				}
				f.Line(c, 0.5, position(l, i), position(l+1, j))
			}
		}
	}
	for l, layer := range layers {
		for i, a := range layer {
			p := position(l, i)
			switch {
			case !kept(l, i):
				f.Point(p, droppedColor, radius)
				f.Text(p, standardColor, "x")
			case masks != nil && masks[l][i] > 1:
				f.Point(p, render.Interpolate(render.White, c, (a+1)/2), radius)
				f.Text(render.Point{X: p.X, Y: p.Y - radius}, scaledColor, "x"+mlmath.FormatN(masks[l][i], 1))
			default:
				f.Point(p, render.Interpolate(render.White, c, (a+1)/2), radius)
			}
		}
	}
}

// Render draws both networks and their loss curves.
func (d *Dropout) Render() *render.Frame {
	f := d.frame()
	d.drawNetwork(f, 100, d.standard, nil, standardColor)
	d.drawNetwork(f, 700, d.dropout.Activations, d.dropout.Masks, dropoutColor)

	chart(f, box{x: 60, y: 420, width: 480, height: 260}, "standard", maxEpochs+1,
		d.losses.series(curve.StandardTrain, "train", trainColor),
		d.losses.series(curve.StandardTest, "test", testColor),
	)
	chart(f, box{x: 660, y: 420, width: 480, height: 260}, "dropout", maxEpochs+1,
		d.losses.series(curve.DropoutTrain, "train", trainColor),
		d.losses.series(curve.DropoutTest, "test", testColor),
	)

	standardGap, dropoutGap := d.Gaps()
	f.Label("rate", mlmath.FormatN(d.panel.Get("dropoutRate")*100, 0)+"%")
	f.Label("step", mlmath.FormatN(float64(d.steps), 0))
	f.Label("processed", mlmath.FormatN(float64(d.processed), 0))
	f.Label("dropped", mlmath.FormatN(float64(d.totalDropped), 0))
	f.Label("epoch", mlmath.FormatN(float64(d.epoch), 0))
	f.Label("standardGap", mlmath.Format(standardGap))
	f.Label("dropoutGap", mlmath.Format(dropoutGap))
	return f
}
