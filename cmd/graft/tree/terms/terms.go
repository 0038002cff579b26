// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of terminals of a tree.
package terms

import (
	"fmt"
	"os"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/graft/tree"
)

var Command = &command.Command{
	Usage: "terms <tree-file>...",
	Short: "print a list of tree terminals",
	Long: `
Command terms reads one or more trees in parenthetical ("newick") notation,
with or without jplace edge identifiers, and prints the name of the
terminals of the trees in the standard output.

One or more tree files must be given as arguments of the command.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting tree file")
	}

	terms := make(map[string]bool)
	for _, a := range args {
		t, err := readTree(a)
		if err != nil {
			return err
		}
		for _, nm := range t.Terms() {
			terms[nm] = true
		}
	}

	ls := make([]string, 0, len(terms))
	for nm := range terms {
		ls = append(ls, nm)
	}
	slices.Sort(ls)

	for _, term := range ls {
		fmt.Fprintf(c.Stdout(), "%s\n", term)
	}
	return nil
}

func readTree(name string) (*tree.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, _, err := tree.ReadNewick(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}
