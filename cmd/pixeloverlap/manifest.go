package main

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/carbocation/pfx"
	"github.com/carbocation/segoverlap"
)

// getFileSlice reads the named column from a delimited manifest with a header
// row. Blank and repeated entries are skipped.
func getFileSlice(manifest, column string) ([]string, error) {
	data, err := segoverlap.ReadAllFromLocalFileOrGoogleStorage(manifest, client)
	if err != nil {
		return nil, err
	}

	data, err = segoverlap.MaybeDecompressBytes(data)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = segoverlap.DetermineDelimiterFromBytes(data)
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	if len(recs) < 1 {
		return nil, fmt.Errorf("Manifest %s is empty", manifest)
	}

	colIdx := -1
	for i, col := range recs[0] {
		if col == column {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return nil, fmt.Errorf("Manifest %s has no column named %q (columns: %v)", manifest, column, recs[0])
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, len(recs)-1)
	for _, cols := range recs[1:] {
		file := cols[colIdx]
		if file == "" {
			continue
		}
		if _, exists := seen[file]; exists {
			continue
		}
		seen[file] = struct{}{}
		out = append(out, file)
	}

	return out, nil
}
