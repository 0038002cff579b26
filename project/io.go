// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/graft/classify"
	"github.com/js-arias/graft/jplace"
	"github.com/js-arias/graft/tree"
)

// TaxonomyTable reads the taxonomy table
// as defined in a project.
func (p *Project) TaxonomyTable() (classify.Taxonomy, error) {
	name := p.Path(Taxonomy)
	if name == "" {
		return nil, fmt.Errorf("taxonomy not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tx, err := classify.ReadTaxonomy(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return tx, nil
}

// ReferenceTree reads the rooted reference tree
// as defined in a project.
func (p *Project) ReferenceTree() (*tree.Tree, error) {
	name := p.Path(RefTree)
	if name == "" {
		return nil, fmt.Errorf("reference tree not defined in project %q", p.name)
	}

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

// PlacementResult reads the placement results
// as defined in a project.
func (p *Project) PlacementResult() (*jplace.Result, error) {
	name := p.Path(Placements)
	if name == "" {
		return nil, fmt.Errorf("placements not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := jplace.Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return res, nil
}
