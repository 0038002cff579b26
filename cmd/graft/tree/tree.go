// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree is a metapackage for commands
// that dealt with placement reference trees.
package tree

import (
	"github.com/js-arias/command"
	"github.com/js-arias/graft/cmd/graft/tree/edges"
	"github.com/js-arias/graft/cmd/graft/tree/export"
	"github.com/js-arias/graft/cmd/graft/tree/rootcmd"
	"github.com/js-arias/graft/cmd/graft/tree/terms"
)

var Command = &command.Command{
	Usage: "tree <command> [<argument>...]",
	Short: "commands for placement reference trees",
}

func init() {
	Command.Add(edges.Command)
	Command.Add(export.Command)
	Command.Add(rootcmd.Command)
	Command.Add(terms.Command)
}
