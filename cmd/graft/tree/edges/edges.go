// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package edges implements a command to print
// the edge identifier table of a placement tree.
package edges

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/graft/tree"
)

var Command = &command.Command{
	Usage: "edges <tree-file>",
	Short: "print the edge identifiers of a placement tree",
	Long: `
Command edges reads a tree with jplace edge identifiers and prints a
tab-delimited table with each edge identifier, the branch length of the
edge, and the name of the node at the child side of the edge (empty for
internal nodes).

The argument of the command is the name of the tree file.
	`,
	Run: run,
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

	_, edges, err := tree.ReadNewick(f)
	if err != nil {
		return fmt.Errorf("on file %q: %v", args[0], err)
	}

	tsv := csv.NewWriter(c.Stdout())
	tsv.Comma = '\t'
	if err := tsv.Write([]string{"edge", "length", "node"}); err != nil {
		return err
	}
	for _, id := range edges.IDs() {
		n := edges.Node(id)
		l, _ := n.Length()
		row := []string{
			strconv.Itoa(id),
			strconv.FormatFloat(l, 'g', -1, 64),
			n.Name(),
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}
	tsv.Flush()
	return tsv.Error()
}
