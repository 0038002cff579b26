// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package classify consolidates
// the placement hypotheses of each read
// into a single best supported taxonomic path,
// by a rank by rank cumulative confidence vote.
package classify

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/js-arias/graft/jplace"
)

// HighConfidence is the confidence mass
// required to accept the full taxonomic path
// of a placement that maps to a single taxon,
// without a rank by rank vote.
const HighConfidence = 0.98

// Errors produced by malformed placement data.
var (
	// ErrNoTaxon is the error produced
	// when a placement refers to a taxon
	// that is not in the taxonomy.
	ErrNoTaxon = errors.New("taxon not in taxonomy")

	// ErrNoHypotheses is the error produced
	// by a placement without any hypothesis.
	ErrNoHypotheses = errors.New("placement without hypotheses")
)

// A Classification is a consolidated taxonomic path,
// from the root towards the tips,
// with the cumulative confidence of each rank.
// An empty path means that no classification
// reached the confidence cutoff.
type Classification struct {
	Path       []string
	Confidence []float64
}

// Assignments are the classifications of a set of reads,
// keyed first by the file origin suffix of the read
// and then by the bare read identifier.
type Assignments map[string]map[string]Classification

// Assign consolidates the placements of a jplace result
// into a single classification per read.
// A rank is accepted if its cumulative confidence
// is at least the given cutoff.
func Assign(tx Taxonomy, res *jplace.Result, cutoff float64) (Assignments, error) {
	out := make(Assignments)
	for i, pg := range res.Placements {
		best, err := consolidate(tx, pg.Hypotheses, cutoff)
		if err != nil {
			return nil, fmt.Errorf("placement %d: %w", i, err)
		}
		for _, rd := range pg.Reads {
			suffix, id := splitRead(rd.Name)
			m, ok := out[suffix]
			if !ok {
				m = make(map[string]Classification)
				out[suffix] = m
			}
			m[id] = best
		}
	}
	return out, nil
}

// splitRead splits a read name
// into its file origin suffix
// (the last character of the name)
// and the bare read identifier.
func splitRead(name string) (suffix, id string) {
	if len(name) < 2 {
		return name, ""
	}
	return name[len(name)-1:], name[:len(name)-2]
}

// A group is a set of hypotheses
// merged into a single taxon,
// with their summed confidence.
type group struct {
	c float64
	p []string
}

func consolidate(tx Taxonomy, hyp []jplace.Hypothesis, cutoff float64) (Classification, error) {
	seen := make(map[string]*group)
	for _, h := range hyp {
		if g, ok := seen[h.TaxID]; ok {
			g.c += h.Weight
			continue
		}
		p, ok := tx[h.TaxID]
		if !ok {
			return Classification{}, fmt.Errorf("%w: %q", ErrNoTaxon, h.TaxID)
		}
		seen[h.TaxID] = &group{c: h.Weight, p: p}
	}
	if len(seen) == 0 {
		return Classification{}, ErrNoHypotheses
	}

	if len(seen) == 1 {
		for _, g := range seen {
			if g.c >= HighConfidence {
				conf := make([]float64, len(g.p))
				for i := range conf {
					conf[i] = g.c
				}
				return Classification{
					Path:       slices.Clone(g.p),
					Confidence: conf,
				}, nil
			}
		}
	}

	groups := make([]*group, 0, len(seen))
	for _, g := range seen {
		groups = append(groups, g)
	}
	return vote(groups, cutoff), nil
}

// vote selects,
// rank by rank,
// the label with the maximum cumulative confidence,
// stopping at the first rank below the cutoff.
// On equal confidence the greatest label is selected.
func vote(groups []*group, cutoff float64) Classification {
	maxLen := 0
	for _, g := range groups {
		maxLen = max(maxLen, len(g.p))
	}

	var cl Classification
	for i := 0; i < maxLen; i++ {
		cum := make(map[string]float64)
		for _, g := range groups {
			if i < len(g.p) {
				cum[g.p[i]] += g.c
			}
		}

		best := math.Inf(-1)
		var label string
		for lb, c := range cum {
			if c > best || (c == best && lb > label) {
				best, label = c, lb
			}
		}
		if best < cutoff {
			break
		}
		cl.Path = append(cl.Path, label)
		cl.Confidence = append(cl.Confidence, best)
	}
	return cl
}
