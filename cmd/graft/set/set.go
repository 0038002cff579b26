// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package set implements a command to set
// the dataset files of a graft project.
package set

import (
	"errors"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/graft/project"
)

var Command = &command.Command{
	Usage: `set [--taxonomy <file>] [--reftree <file>]
	[--placements <file>]
	<project-file>`,
	Short: "set the dataset files of a graft project",
	Long: `
Command set adds one or more dataset files to a graft project. If no project
file exists, a new project will be created.

The argument of the command is the name of the project file.

The flag --taxonomy sets the taxonomy table of the reference package, a comma
separated file in which the first field is the taxon identifier and the
fields from the sixth onwards are the rank labels of the taxon.

The flag --reftree sets the rooted reference tree, a file in parenthetical
("newick") notation.

The flag --placements sets the placement results, a file in the jplace
format.

Setting a dataset to an empty path removes the dataset from the project.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var taxFile string
var refTreeFile string
var placementsFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&taxFile, "taxonomy", "", "")
	c.Flags().StringVar(&refTreeFile, "reftree", "", "")
	c.Flags().StringVar(&placementsFile, "placements", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	sets := map[project.Dataset]string{
		project.Taxonomy:   taxFile,
		project.RefTree:    refTreeFile,
		project.Placements: placementsFile,
	}
	for s, path := range sets {
		if path == "" {
			continue
		}
		p.Add(s, path)
	}

	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
