package optimizer

import (
	"fmt"

	"github.com/drakos74/mlviz/internal/buffer"
	"github.com/drakos74/mlviz/internal/rng"
)

// Variant is the amount of data used for each gradient update.
type Variant int

const (
	// Batch uses all points for each update.
	Batch Variant = iota
	// Stochastic uses a single random point for each update.
	Stochastic
	// MiniBatch uses a random subset of points for each update.
	MiniBatch
)

// Variants lists all the gradient descent variants.
var Variants = []Variant{Batch, Stochastic, MiniBatch}

func (v Variant) String() string {
	switch v {
	case Batch:
		return "batch"
	case Stochastic:
		return "stochastic"
	case MiniBatch:
		return "mini-batch"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// Point is a 2d data point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is the model y = M*x + B.
type Line struct {
	M float64 `json:"m"`
	B float64 `json:"b"`
}

// Predict evaluates the line at x.
func (l Line) Predict(x float64) float64 {
	return l.M*x + l.B
}

// Loss returns the mean squared error of the line over the given points.
func (l Line) Loss(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		e := l.Predict(p.X) - p.Y
		sum += e * e
	}
	return sum / float64(len(points))
}

// Gradient returns the MSE gradient over the points at the given indices.
// The error is taken as prediction - target and averaged over the indices.
func (l Line) Gradient(points []Point, indices []int) (dm, db float64) {
	if len(indices) == 0 {
		return 0, 0
	}
	for _, i := range indices {
		p := points[i]
		e := l.Predict(p.X) - p.Y
		dm += e * p.X
		db += e
	}
	n := float64(len(indices))
	return dm / n, db / n
}

// GenerateLine creates n points around y = m*x + b with x in [0,10) and the given noise amplitude.
func GenerateLine(src rng.Source, n int, m, b, noise float64) []Point {
	points := make([]Point, n)
	for i := range points {
		x := src.Float64() * 10
		points[i] = Point{
			X: x,
			Y: m*x + b + rng.Jitter(src, noise),
		}
	}
	return points
}

// RegressionConfig holds the parameters of the linear regression.
type RegressionConfig struct {
	LearningRate  float64 `json:"learning_rate"`
	MiniBatchSize int     `json:"mini_batch_size"`
	HistorySize   int     `json:"history_size"`
}

// DefaultRegressionConfig returns the default regression parameters.
func DefaultRegressionConfig() RegressionConfig {
	return RegressionConfig{
		LearningRate:  0.01,
		MiniBatchSize: 8,
		HistorySize:   50,
	}
}

// Regression fits a line to the data with one of the gradient descent variants.
type Regression struct {
	Variant Variant
	cfg     RegressionConfig
	src     rng.Source

	line      Line
	iteration int
	active    []int
	history   *buffer.MultiBuffer
}

// NewRegression creates a new regression starting at the zero line.
func NewRegression(variant Variant, cfg RegressionConfig, src rng.Source) *Regression {
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 1
	}
	if cfg.MiniBatchSize <= 0 {
		cfg.MiniBatchSize = 1
	}
	return &Regression{
		Variant: variant,
		cfg:     cfg,
		src:     src,
		history: buffer.NewMultiBuffer(cfg.HistorySize),
	}
}

// Step performs one update on the given points.
func (r *Regression) Step(points []Point) {
	if len(points) == 0 {
		return
	}
	r.active = r.indices(len(points))
	dm, db := r.line.Gradient(points, r.active)
	r.line.M -= r.cfg.LearningRate * dm
	r.line.B -= r.cfg.LearningRate * db
	r.iteration++
	r.history.Push(r.line.M, r.line.B)
}

func (r *Regression) indices(n int) []int {
	switch r.Variant {
	case Stochastic:
		return []int{r.src.Intn(n)}
	case MiniBatch:
		ii := make([]int, r.cfg.MiniBatchSize)
		for i := range ii {
			ii[i] = r.src.Intn(n)
		}
		return ii
	}
	ii := make([]int, n)
	for i := range ii {
		ii[i] = i
	}
	return ii
}

// StepsPerTick is the number of updates the variant performs on each tick.
func (r *Regression) StepsPerTick() int {
	if r.Variant == Stochastic {
		return 3
	}
	return 1
}

// SetLearningRate changes the learning rate for the next update.
func (r *Regression) SetLearningRate(lr float64) {
	r.cfg.LearningRate = lr
}

// SetMiniBatchSize changes the number of points drawn for the next mini-batch update.
func (r *Regression) SetMiniBatchSize(n int) {
	if n > 0 {
		r.cfg.MiniBatchSize = n
	}
}

// Reset moves the model back to the zero line.
func (r *Regression) Reset() {
	r.line = Line{}
	r.iteration = 0
	r.active = nil
	r.history.Clear()
}

// Line returns the current model.
func (r *Regression) Line() Line {
	return r.line
}

// Iteration returns the number of updates so far.
func (r *Regression) Iteration() int {
	return r.iteration
}

// Active returns the indices used in the last update.
func (r *Regression) Active() []int {
	ii := make([]int, len(r.active))
	copy(ii, r.active)
	return ii
}

// History returns the (m,b) pairs of the last updates, oldest first.
func (r *Regression) History() [][]float64 {
	return r.history.Get()
}
