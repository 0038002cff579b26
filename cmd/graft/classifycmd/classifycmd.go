// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package classifycmd implements a command to classify reads
// from their phylogenetic placements.
package classifycmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/js-arias/command"
	"github.com/js-arias/graft/classify"
	"github.com/js-arias/graft/jplace"
	"github.com/js-arias/graft/project"
)

var Command = &command.Command{
	Usage: `classify [--cutoff <value>]
	[-o|--output <file>]
	<project-file> [<jplace-file>...]`,
	Short: "classify reads from their placements",
	Long: `
Command classify reads the placements of query reads on the reference tree of
a graft project and reports the best supported taxonomic path of each read.

The first argument of the command is the name of the project file. The
project must define a taxonomy table.

One or more placement files, in jplace format, can be given as additional
arguments. If no file is given, the placement file defined in the project
will be used. Multiple files are processed in parallel.

The confidence of each rank is the sum of the placement weights that support
the rank label. By default, a rank is reported if its confidence is at least
0.75; use the flag --cutoff to set a different value.

The output is a tab-delimited table with the following columns:

	file            the identifier of the source file of the read
	read            the read identifier
	classification  the accepted rank labels, separated by "; "
	confidence      the confidence of each rank, separated by "; "

The output will be printed in the standard output. Use the flag --output, or
-o, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var cutoff float64
var output string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&cutoff, "cutoff", 0.75, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if cutoff < 0 || cutoff > 1 {
		return c.UsageError("--cutoff must be in [0,1]")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	tx, err := p.TaxonomyTable()
	if err != nil {
		return err
	}

	files := args[1:]
	if len(files) == 0 {
		pf := p.Path(project.Placements)
		if pf == "" {
			return fmt.Errorf("placements not defined in project %q", args[0])
		}
		files = []string{pf}
	}

	asg, err := classifyFiles(tx, files)
	if err != nil {
		return err
	}

	w := c.Stdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := writeClassification(w, asg); err != nil {
		if output != "" {
			err = fmt.Errorf("on file %q: %v", output, err)
		}
		return err
	}
	return nil
}

type fileResult struct {
	asg classify.Assignments
	err error
}

// classifyFiles classifies each placement file
// on its own goroutine
// and merges the results when all files are done.
func classifyFiles(tx classify.Taxonomy, files []string) (classify.Assignments, error) {
	results := make([]fileResult, len(files))

	var wg sync.WaitGroup
	for i, fn := range files {
		wg.Add(1)
		go func(i int, fn string) {
			defer wg.Done()
			asg, err := classifyFile(tx, fn)
			results[i] = fileResult{asg: asg, err: err}
		}(i, fn)
	}
	wg.Wait()

	out := make(classify.Assignments)
	for i, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("on file %q: %v", files[i], r.err)
		}
		for suffix, reads := range r.asg {
			m, ok := out[suffix]
			if !ok {
				m = make(map[string]classify.Classification)
				out[suffix] = m
			}
			for id, cl := range reads {
				m[id] = cl
			}
		}
	}
	return out, nil
}

func classifyFile(tx classify.Taxonomy, name string) (classify.Assignments, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := jplace.Read(f)
	if err != nil {
		return nil, err
	}
	return classify.Assign(tx, res, cutoff)
}

func writeClassification(w io.Writer, asg classify.Assignments) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'

	if err := tsv.Write([]string{"file", "read", "classification", "confidence"}); err != nil {
		return err
	}

	suffixes := make([]string, 0, len(asg))
	for s := range asg {
		suffixes = append(suffixes, s)
	}
	slices.Sort(suffixes)

	for _, s := range suffixes {
		reads := make([]string, 0, len(asg[s]))
		for id := range asg[s] {
			reads = append(reads, id)
		}
		slices.Sort(reads)

		for _, id := range reads {
			cl := asg[s][id]
			conf := make([]string, 0, len(cl.Confidence))
			for _, cv := range cl.Confidence {
				conf = append(conf, strconv.FormatFloat(cv, 'g', -1, 64))
			}
			row := []string{
				s,
				id,
				strings.Join(cl.Path, "; "),
				strings.Join(conf, "; "),
			}
			if err := tsv.Write(row); err != nil {
				return err
			}
		}
	}

	tsv.Flush()
	return tsv.Error()
}
