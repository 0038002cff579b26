// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package jplace_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/graft/jplace"
)

var document = `{
	"version": 3,
	"tree": "((A:0.1{0},B:0.2{1}):0.05{2},C:0.3{3});",
	"fields": ["classification", "edge_num", "likelihood", "like_weight_ratio"],
	"placements": [
		{
			"p": [
				["1", 0, -1000.5, 0.8],
				[2, 1, -1001.5, 0.2]
			],
			"nm": [
				["read1_0", 1],
				["read2_1", 2]
			]
		}
	]
}`

func TestRead(t *testing.T) {
	res, err := jplace.Read(strings.NewReader(document))
	if err != nil {
		t.Fatalf("unable to read document: %v", err)
	}

	if res.Version != 3 {
		t.Errorf("version: got %d, want %d", res.Version, 3)
	}
	if !strings.Contains(res.Tree, "{0}") {
		t.Errorf("tree: got %q, want edge identifiers", res.Tree)
	}
	if len(res.Placements) != 1 {
		t.Fatalf("placements: got %d, want 1", len(res.Placements))
	}

	pl := res.Placements[0]
	if len(pl.Hypotheses) != 2 {
		t.Fatalf("hypotheses: got %d, want 2", len(pl.Hypotheses))
	}
	// a numeric taxon identifier is normalized to a string
	ids := []string{pl.Hypotheses[0].TaxID, pl.Hypotheses[1].TaxID}
	if !reflect.DeepEqual(ids, []string{"1", "2"}) {
		t.Errorf("taxon IDs: got %v, want [1 2]", ids)
	}
	if w := pl.Hypotheses[0].Weight; math.Abs(w-0.8) > 1e-10 {
		t.Errorf("weight: got %v, want %v", w, 0.8)
	}

	reads := []jplace.QueryRead{
		{Name: "read1_0", Multiplicity: 1},
		{Name: "read2_1", Multiplicity: 2},
	}
	if !reflect.DeepEqual(pl.Reads, reads) {
		t.Errorf("reads: got %v, want %v", pl.Reads, reads)
	}
}

func TestReadMissingField(t *testing.T) {
	in := `{
		"version": 3,
		"tree": "(A:0.1{0},B:0.2{1});",
		"fields": ["edge_num", "likelihood"],
		"placements": []
	}`

	_, err := jplace.Read(strings.NewReader(in))
	if err == nil {
		t.Fatalf("expecting error %q", jplace.ErrMissingField)
	}
	if !errors.Is(err, jplace.ErrMissingField) {
		t.Errorf("got error %q, want %q", err, jplace.ErrMissingField)
	}
}
