// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rootcmd implements a command to reroot
// an inferred tree by the reference tree of a project.
package rootcmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/graft/project"
	"github.com/js-arias/graft/reroot"
	"github.com/js-arias/graft/tree"
)

var Command = &command.Command{
	Usage: `reroot [-o|--output <file>]
	<project-file> <tree-file>`,
	Short: "reroot a tree by the project reference tree",
	Long: `
Command reroot reads a newly inferred tree, usually made without respect to
any particular root, and moves its root so that it matches the root
bipartition of the rooted reference tree defined in a graft project. The
total branch length of the tree is preserved.

The first argument of the command is the name of the project file; the
project must define a reference tree. The second argument is the tree to be
rerooted, in parenthetical ("newick") notation.

If the topology of the tree is incompatible with the reference bipartition,
the command will fail reporting the tree as paraphyletic; in that case an
externally rooted tree must be used instead.

The rerooted tree will be printed in the standard output. Use the flag
--output, or -o, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting project file and tree file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	ref, err := p.ReferenceTree()
	if err != nil {
		return err
	}

	target, err := readTree(args[1])
	if err != nil {
		return err
	}

	rt, err := reroot.Reroot(ref, target)
	if errors.Is(err, reroot.ErrParaphyletic) {
		return fmt.Errorf("tree %q cannot be rerooted: %v", args[1], err)
	}
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
	if err := rt.Newick(w); err != nil {
		if output != "" {
			err = fmt.Errorf("on file %q: %v", output, err)
		}
		return err
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
