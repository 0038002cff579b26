// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package classify

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Taxonomy maps a taxon identifier
// to its ordered list of rank labels,
// from the most inclusive rank towards the tips.
// Every path starts with the synthetic "Root" label.
type Taxonomy map[string][]string

// ReadTaxonomy reads a taxonomy table
// from a comma separated file,
// as stored in a taxtastic reference package.
//
// The first field of each record is the taxon identifier
// and the fields from the sixth onwards
// are the rank labels of the taxon.
// Empty fields are ignored.
// A header row starting with "tax_id" is skipped.
func ReadTaxonomy(r io.Reader) (Taxonomy, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	tx := make(Taxonomy)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := cr.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("taxonomy: on row %d: %v", ln, err)
		}

		fields := make([]string, 0, len(row))
		for _, f := range row {
			if f != "" {
				fields = append(fields, f)
			}
		}
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "tax_id" {
			continue
		}

		var ranks []string
		if len(fields) > 5 {
			ranks = fields[5:]
		}
		tx[fields[0]] = append([]string{"Root"}, ranks...)
	}
	return tx, nil
}
