// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Graft is a tool for taxonomic classification of sequence reads
// from their phylogenetic placements on a reference tree.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/graft/cmd/graft/classifycmd"
	"github.com/js-arias/graft/cmd/graft/set"
	"github.com/js-arias/graft/cmd/graft/stats"
	"github.com/js-arias/graft/cmd/graft/tree"
)

var app = &command.Command{
	Usage: "graft <command> [<argument>...]",
	Short: "a tool for placement-based taxonomic classification",
}

func init() {
	app.Add(classifycmd.Command)
	app.Add(set.Command)
	app.Add(stats.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
