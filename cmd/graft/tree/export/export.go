// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package export implements a command to export
// a placement reference tree
// as a time calibrated tree file.
package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/graft/tree"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `export [--name <name>] [--age <value>]
	[-o|--output <file>]
	<tree-file>`,
	Short: "export a placement tree as a time tree file",
	Long: `
Command export reads a tree in parenthetical ("newick") notation, with or
without jplace edge identifiers, and writes it as a tab-delimited time tree
file, so it can be used by time tree tooling.

The argument of the command is the name of the tree file.

By default, the tree will be named "tree". Use the flag --name to set a
different name. Branch lengths are interpreted in million years; by default
the age of the root will be calculated from the largest branch length
between any terminal and the root. To set a different root age, use the
flag --age, with a value in million years.

The output will be printed in the standard output. Use the flag --output, or
-o, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

const millionYears = 1_000_000

var treeName string
var rootAge float64
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "name", "tree", "")
	c.Flags().Float64Var(&rootAge, "age", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting tree file")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	t, _, err := tree.ReadNewick(f)
	if err != nil {
		return fmt.Errorf("on file %q: %v", args[0], err)
	}

	// Write the tree as plain newick,
	// without edge identifiers,
	// for the time tree reader.
	var buf bytes.Buffer
	if err := t.Newick(&buf); err != nil {
		return err
	}
	tc, err := timetree.Newick(&buf, treeName, int64(rootAge*millionYears))
	if err != nil {
		return fmt.Errorf("on file %q: %v", args[0], err)
	}

	w := c.Stdout()
	if output != "" {
		of, err := os.Create(output)
		if err != nil {
			return err
		}
		defer of.Close()
		w = of
	}
	if err := tc.TSV(w); err != nil {
		if output != "" {
			err = fmt.Errorf("on file %q: %v", output, err)
		}
		return err
	}
	return nil
}
