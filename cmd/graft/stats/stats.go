// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stats implements a command to report
// the support of the placements in a jplace file.
package stats

import (
	"fmt"
	"os"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/graft/jplace"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: "stats [--plot <file>] <jplace-file>...",
	Short: "report the support of the placements",
	Long: `
Command stats reads one or more placement files in jplace format and reports
summary statistics of the best like weight ratio of each placement group:
the number of groups, and the mean, standard deviation, and median of the
weights.

One or more placement files must be given as arguments of the command.

If the flag --plot is defined, a histogram of the best weights will be saved
into the indicated file; the image format is deduced from the file
extension.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var plotFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&plotFile, "plot", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting placement file")
	}

	var best []float64
	for _, a := range args {
		w, err := bestWeights(a)
		if err != nil {
			return err
		}
		best = append(best, w...)
	}
	if len(best) == 0 {
		return fmt.Errorf("no placements found")
	}
	slices.Sort(best)

	fmt.Fprintf(c.Stdout(), "placements: %d\n", len(best))
	fmt.Fprintf(c.Stdout(), "mean: %.6f\n", stat.Mean(best, nil))
	fmt.Fprintf(c.Stdout(), "stdDev: %.6f\n", stat.StdDev(best, nil))
	fmt.Fprintf(c.Stdout(), "median: %.6f\n", stat.Quantile(0.5, stat.Empirical, best, nil))

	if plotFile != "" {
		if err := histogram(best); err != nil {
			return err
		}
	}
	return nil
}

func bestWeights(name string) ([]float64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := jplace.Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}

	var best []float64
	for _, pg := range res.Placements {
		max := 0.0
		for _, h := range pg.Hypotheses {
			if h.Weight > max {
				max = h.Weight
			}
		}
		best = append(best, max)
	}
	return best, nil
}

func histogram(vals []float64) error {
	p := plot.New()
	p.Title.Text = "best placement weights"
	p.X.Label.Text = "like weight ratio"
	p.Y.Label.Text = "placements"

	h, err := plotter.NewHist(plotter.Values(vals), 20)
	if err != nil {
		return err
	}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, plotFile); err != nil {
		return fmt.Errorf("on file %q: %v", plotFile, err)
	}
	return nil
}
