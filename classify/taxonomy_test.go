// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package classify_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/graft/classify"
)

var taxonomyTable = `tax_id,parent_id,rank,tax_name,root,kingdom,phylum
1,131567,phylum,Proteobacteria,cellular organisms,Bacteria,Proteobacteria
2,131567,superkingdom,Archaea,cellular organisms,Archaea,,
9,1,no rank,unclassified,
`

func TestReadTaxonomy(t *testing.T) {
	tx, err := classify.ReadTaxonomy(strings.NewReader(taxonomyTable))
	if err != nil {
		t.Fatalf("unable to read taxonomy: %v", err)
	}

	want := classify.Taxonomy{
		"1": {"Root", "Bacteria", "Proteobacteria"},
		"2": {"Root", "Archaea"},
		"9": {"Root"},
	}
	if !reflect.DeepEqual(tx, want) {
		t.Errorf("taxonomy: got %v, want %v", tx, want)
	}
}
