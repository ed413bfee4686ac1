package main

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/drakos74/mlviz/internal/activation"
	"github.com/drakos74/mlviz/internal/curve"
	"github.com/drakos74/mlviz/internal/early"
	mlmath "github.com/drakos74/mlviz/internal/math"
	"github.com/drakos74/mlviz/internal/optimizer"
	"github.com/drakos74/mlviz/internal/perceptron"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
)

const (
	epochs   = 100
	patience = 5
)

type section func(w io.Writer, src rng.Source) error

var sections = map[string]section{
	"curves":     curves,
	"earlystop":  earlyStop,
	"explorer":   explorer,
	"gradient":   gradient,
	"perceptron": perceptrons,
	"variations": variations,
	"mlvsdl":     mlVsDL,
}

func names() []string {
	nn := make([]string, 0, len(sections))
	for n := range sections {
		nn = append(nn, n)
	}
	sort.Strings(nn)
	return nn
}

// report prints the given sections in order.
func report(w io.Writer, names []string, src rng.Source) error {
	for _, name := range names {
		s, ok := sections[name]
		if !ok {
			return fmt.Errorf("unknown section '%s'", name)
		}
		fmt.Fprintf(w, "\n== %s\n\n", name)
		if err := s(w, src); err != nil {
			return fmt.Errorf("could not print %s: %w", name, err)
		}
	}
	return nil
}

func plot(w io.Writer, caption string, data []float64) {
	fmt.Fprintln(w, asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption(caption)))
	fmt.Fprintln(w)
}

func table(w io.Writer, header []string, rows [][]string) {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.AppendBulk(rows)
	t.Render()
}

func curves(w io.Writer, src rng.Source) error {
	rows := make([][]string, 0, len(curve.Kinds))
	for _, k := range curve.Kinds {
		ss := curve.Series(k, epochs, src)
		optimal := "-"
		if e, ok := curve.OptimalEpoch(ss); ok && k.Overfits() {
			optimal = fmt.Sprintf("%d", e)
		}
		peak, err := curve.Instability(ss)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			k.String(),
			mlmath.Format(ss[0]),
			mlmath.Format(ss[len(ss)-1]),
			optimal,
			mlmath.FormatN(peak.Amplitude, 3),
		})
		if k.Overfits() {
			plot(w, k.String(), curve.Smooth(ss, 5))
		}
	}
	table(w, []string{"curve", "start", "end", "optimal epoch", "instability"}, rows)
	return nil
}

func earlyStop(w io.Writer, src rng.Source) error {
	validation := curve.Series(curve.Validation, epochs, src)
	m := early.NewMonitor(patience)
	for e, loss := range validation {
		if m.Check(e, loss) {
			break
		}
	}
	plot(w, curve.Validation.String(), validation)
	best, bestEpoch := m.Best()
	stop, stopped := m.Stopped()
	rows := [][]string{{
		fmt.Sprintf("%d", patience),
		fmt.Sprintf("%d", bestEpoch),
		mlmath.Format(best),
		fmt.Sprintf("%v", stopped),
		fmt.Sprintf("%d", stop),
	}}
	table(w, []string{"patience", "best epoch", "best loss", "stopped", "stop epoch"}, rows)
	return nil
}

func explorer(w io.Writer, src rng.Source) error {
	records := optimizer.Trace(optimizer.Parabola{}, xmath.Vector{5}, 0.1, 20)
	xx := make([]float64, len(records))
	rows := make([][]string, len(records))
	for i, r := range records {
		xx[i] = r.Position[0]
		rows[i] = []string{
			fmt.Sprintf("%d", r.Iteration),
			mlmath.FormatN(r.Position[0], 6),
			mlmath.FormatN(r.Gradient[0], 6),
			mlmath.FormatN(r.Value, 6),
		}
	}
	plot(w, "x of f(x) = x^2", xx)
	table(w, []string{"iteration", "x", "gradient", "f(x)"}, rows)
	return nil
}

func gradient(w io.Writer, src rng.Source) error {
	s := optimizer.NewStepper(optimizer.Multimodal{}, optimizer.DefaultConfig(), src)
	values := make([]float64, 0, 300)
	for i := 0; i < 300; i++ {
		s.Step()
		values = append(values, s.Value())
	}
	plot(w, "f(x, y) on the multimodal surface", values)
	best, value := s.Best()
	table(w, []string{"iterations", "restarts", "best position", "best value"}, [][]string{{
		fmt.Sprintf("%d", s.Iteration()),
		fmt.Sprintf("%d", s.Restarts()),
		fmt.Sprintf("(%s, %s)", mlmath.Format(best[0]), mlmath.Format(best[1])),
		mlmath.FormatN(value, 4),
	}})
	return nil
}

func perceptrons(w io.Writer, src rng.Source) error {
	samples := perceptron.Generate(src, 100, 3, 2)
	rows := make([][]string, 0, 3)
	for _, k := range []activation.Kind{activation.Step, activation.Sigmoid, activation.Tanh} {
		cfg := perceptron.DefaultConfig()
		cfg.Activation = k
		l, err := perceptron.New(cfg)
		if err != nil {
			return err
		}
		n, converged := l.Train(samples)
		rows = append(rows, []string{
			k.String(),
			fmt.Sprintf("%d", n),
			fmt.Sprintf("%v", converged),
			l.Weights().String(),
			mlmath.Format(l.Bias()),
			mlmath.FormatN(100*l.Accuracy(samples), 1) + "%",
		})
	}
	table(w, []string{"activation", "epochs", "converged", "weights", "bias", "accuracy"}, rows)
	return nil
}

func variations(w io.Writer, src rng.Source) error {
	points := optimizer.GenerateLine(src, 20, 2, 10, 5)
	rows := make([][]string, 0, len(optimizer.Variants))
	for _, v := range optimizer.Variants {
		r := optimizer.NewRegression(v, optimizer.DefaultRegressionConfig(), src)
		losses := make([]float64, 0, 500)
		for i := 0; i < 500; i++ {
			r.Step(points)
			losses = append(losses, math.Log10(1+r.Line().Loss(points)))
		}
		plot(w, fmt.Sprintf("log10(1 + loss) of %s", v), losses)
		rows = append(rows, []string{
			v.String(),
			fmt.Sprintf("%d", r.Iteration()),
			mlmath.Format(r.Line().M),
			mlmath.Format(r.Line().B),
			mlmath.Format(r.Line().Loss(points)),
		})
	}
	table(w, []string{"variant", "iterations", "m", "b", "loss"}, rows)
	return nil
}

func mlVsDL(w io.Writer, src rng.Source) error {
	sizes := make([]float64, 0, 50)
	for e := 2.0; e <= 6; e += 0.1 {
		sizes = append(sizes, math.Round(math.Pow(10, e)))
	}
	ml := make([]float64, len(sizes))
	dl := make([]float64, len(sizes))
	for i, s := range sizes {
		ml[i] = curve.Performance(curve.ML, s)
		dl[i] = curve.Performance(curve.DL, s)
	}
	plot(w, "ml accuracy over log10(size)", ml)
	plot(w, "dl accuracy over log10(size)", dl)

	rows := make([][]string, 0, 5)
	for _, s := range []float64{100, 1000, 10000, 100000, 1000000} {
		rows = append(rows, []string{
			mlmath.FormatN(s, 0),
			mlmath.FormatN(curve.Performance(curve.ML, s), 1),
			mlmath.FormatN(curve.Performance(curve.DL, s), 1),
			string(curve.Recommend(s)),
		})
	}
	table(w, []string{"size", "ml", "dl", "recommendation"}, rows)
	if c, ok := curve.Crossover(sizes); ok {
		fmt.Fprintf(w, "dl outperforms ml from %s samples\n", mlmath.FormatN(c, 0))
	}
	return nil
}
