// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package jplace reads the results
// of a phylogenetic placement program
// in the jplace format
// (a JSON document with a reference tree
// and a list of placed query reads).
package jplace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrMissingField is the error produced
// when a jplace document does not declare
// a field required for classification.
var ErrMissingField = errors.New("required field missing")

// Fields required on any jplace document
// used for classification.
const (
	weightField         = "like_weight_ratio"
	classificationField = "classification"
)

// A Hypothesis is a candidate placement
// for a group of reads:
// a reference taxon
// with the confidence of the placement.
type Hypothesis struct {
	TaxID  string  // identifier of the taxon at the placement edge
	Weight float64 // like weight ratio of the placement

	// Classification is the raw value
	// of the "classification" field of the hypothesis,
	// carried for report output only.
	Classification string
}

// A QueryRead is a query sequence
// assigned to a placement.
// The last character of the name
// identifies the source file of the read.
type QueryRead struct {
	Name         string
	Multiplicity int
}

// A Placement is a group of reads
// with a shared set of placement hypotheses.
type Placement struct {
	Hypotheses []Hypothesis
	Reads      []QueryRead
}

// A Result is the content of a jplace document.
type Result struct {
	Version    int
	Tree       string // reference tree text, with edge identifiers
	Fields     []string
	Placements []Placement
}

// Read reads a jplace document.
// It fails if the document does not declare
// the "like_weight_ratio" and "classification" fields
// used for the classification of the reads.
func Read(r io.Reader) (*Result, error) {
	var doc struct {
		Version    int      `json:"version"`
		Tree       string   `json:"tree"`
		Fields     []string `json:"fields"`
		Placements []struct {
			P  [][]any `json:"p"`
			NM [][]any `json:"nm"`
		} `json:"placements"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("jplace: %v", err)
	}

	wf := fieldIndex(doc.Fields, weightField)
	cf := fieldIndex(doc.Fields, classificationField)
	if wf < 0 || cf < 0 {
		return nil, fmt.Errorf("jplace: %w: want %q and %q", ErrMissingField, weightField, classificationField)
	}

	res := &Result{
		Version: doc.Version,
		Tree:    doc.Tree,
		Fields:  doc.Fields,
	}
	for i, pg := range doc.Placements {
		var pl Placement
		for _, row := range pg.P {
			if len(row) <= wf || len(row) <= cf {
				return nil, fmt.Errorf("jplace: placement %d: incomplete hypothesis", i)
			}
			w, ok := row[wf].(float64)
			if !ok {
				return nil, fmt.Errorf("jplace: placement %d: invalid weight %v", i, row[wf])
			}
			cl, _ := row[cf].(string)
			pl.Hypotheses = append(pl.Hypotheses, Hypothesis{
				TaxID:          idString(row[0]),
				Weight:         w,
				Classification: cl,
			})
		}
		for _, nm := range pg.NM {
			if len(nm) == 0 {
				return nil, fmt.Errorf("jplace: placement %d: read without name", i)
			}
			name, ok := nm[0].(string)
			if !ok {
				return nil, fmt.Errorf("jplace: placement %d: invalid read name %v", i, nm[0])
			}
			mult := 1
			if len(nm) > 1 {
				if m, ok := nm[1].(float64); ok {
					mult = int(m)
				}
			}
			pl.Reads = append(pl.Reads, QueryRead{Name: name, Multiplicity: mult})
		}
		res.Placements = append(res.Placements, pl)
	}
	return res, nil
}

func fieldIndex(fields []string, name string) int {
	for i, f := range fields {
		if f == name {
			return i
		}
	}
	return -1
}

// idString normalizes a taxon identifier,
// that can be stored as a JSON string or number.
func idString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}
