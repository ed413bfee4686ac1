package demo

import (
	"time"

	"github.com/drakos74/mlviz/internal/control"
	"github.com/drakos74/mlviz/internal/curve"
	mlmath "github.com/drakos74/mlviz/internal/math"
	"github.com/drakos74/mlviz/internal/metrics"
	"github.com/drakos74/mlviz/internal/network"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/drakos74/mlviz/internal/rng"
)

const (
	// BatchNormName is the name of the batch normalization demo.
	BatchNormName = "batchnorm"

	batchSize = 32
)

// BatchNorm compares a network without and with batch normalization.
type BatchNorm struct {
	base
	epoch      int
	losses     *losses
	overfit    []network.Layer
	normalized []network.Layer
	stats      []network.BatchStats
}

// NewBatchNorm creates the batch normalization demo.
func NewBatchNorm(src rng.Source) *BatchNorm {
	b := &BatchNorm{
		base: newBase(BatchNormName, src,
			[]control.Action{control.Toggle, control.Reset},
			control.Slider{Name: "speed", Min: 1, Max: 10, Step: 1, Default: 5},
		),
		losses: newLosses(curve.OverfitTrain, curve.OverfitTest, curve.NormalizedTrain, curve.NormalizedTest),
	}
	b.clear()
	return b
}

func (b *BatchNorm) clear() {
	b.epoch = 0
	b.losses.clear()
	b.stats = make([]network.BatchStats, 0)
	b.simulate()
}

func (b *BatchNorm) simulate() {
	b.overfit = network.SimulateLayers(b.epoch, false, b.src)
	b.normalized = network.SimulateLayers(b.epoch, true, b.src)
	b.stats = append(b.stats, network.Normalize(network.SampleBatch(b.src, batchSize)))
}

func (b *BatchNorm) step() {
	if b.epoch >= maxEpochs {
		b.running = false
		return
	}
	b.epoch++
	b.losses.push(b.epoch, b.src)
	b.simulate()
	metrics.Observer.Increment(metrics.Epochs, b.name)
}

// Update advances an epoch at the pace of the speed slider.
func (b *BatchNorm) Update(dt time.Duration) {
	if !b.running {
		return
	}
	if b.due(b.panel.Int("speed")) {
		b.step()
	}
}

// Trigger executes the action.
func (b *BatchNorm) Trigger(action control.Action) error {
	switch action {
	case control.Toggle:
		b.toggle()
	case control.Reset:
		b.running = false
		b.clear()
	default:
		return b.unknown(action)
	}
	return nil
}

// Reset restores the initial state.
func (b *BatchNorm) Reset() {
	b.running = false
	b.frames = 0
	b.panel.Reset()
	b.clear()
}

// Epoch returns the number of epochs run.
func (b *BatchNorm) Epoch() int {
	return b.epoch
}

// Stats returns the latest batch statistics.
func (b *BatchNorm) Stats() network.BatchStats {
	return b.stats[len(b.stats)-1]
}

// Layers returns the simulated layers without and with normalization.
func (b *BatchNorm) Layers() ([]network.Layer, []network.Layer) {
	return b.overfit, b.normalized
}

func (b *BatchNorm) drawLayers(f *render.Frame, x float64, layers []network.Layer, normalized bool) {
	const (
		spacing = 160.0
		top     = 80.0
		height  = 240.0
	)
	for l, layer := range layers {
		lx := x + float64(l)*spacing
		n := float64(len(layer.Activations))
		for i, a := range layer.Activations {
			p := render.Point{X: lx, Y: top + (float64(i)+1)*height/(n+1)}
			f.Point(p, render.ValueColor(a), 8+mlmath.Clamp(a*a, 0, 10))
			if l < len(layers)-1 {
				next := render.Point{X: lx + spacing, Y: p.Y}
				f.Line(render.Gray, mlmath.Clamp(layer.Weights[i]*4, 0.5, 4), p, next)
			}
		}
		if normalized && l > 0 {
			stats := b.Stats()
			f.Text(render.Point{X: lx, Y: top + height + 20}, dropoutColor, "BatchNorm")
			f.Text(render.Point{X: lx, Y: top + height + 35}, render.Gray, "μ="+mlmath.Format(stats.Mean))
			f.Text(render.Point{X: lx, Y: top + height + 45}, render.Gray, "σ²="+mlmath.Format(stats.Variance))
		}
	}
}

// Render draws both networks and their loss curves.
func (b *BatchNorm) Render() *render.Frame {
	f := b.frame()
	b.drawLayers(f, 120, b.overfit, false)
	b.drawLayers(f, 720, b.normalized, true)
	f.Text(render.Point{X: 300, Y: 30}, standardColor, "Without Batch Normalization")
	f.Text(render.Point{X: 900, Y: 30}, dropoutColor, "With Batch Normalization")

	chart(f, box{x: 60, y: 420, width: 480, height: 260}, "without batch norm", maxEpochs+1,
		b.losses.series(curve.OverfitTrain, "train", trainColor),
		b.losses.series(curve.OverfitTest, "test", testColor),
	)
	chart(f, box{x: 660, y: 420, width: 480, height: 260}, "with batch norm", maxEpochs+1,
		b.losses.series(curve.NormalizedTrain, "train", trainColor),
		b.losses.series(curve.NormalizedTest, "test", testColor),
	)

	f.Label("epoch", mlmath.FormatN(float64(b.epoch), 0))
	f.Label("overfitTrain", mlmath.FormatN(b.losses.last(curve.OverfitTrain), 3))
	f.Label("overfitTest", mlmath.FormatN(b.losses.last(curve.OverfitTest), 3))
	f.Label("normalizedTrain", mlmath.FormatN(b.losses.last(curve.NormalizedTrain), 3))
	f.Label("normalizedTest", mlmath.FormatN(b.losses.last(curve.NormalizedTest), 3))
	return f
}
