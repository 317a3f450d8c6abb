package segoverlap

import (
	"bytes"
	"io"
	"strings"

	"github.com/csimplestring/go-csv/detector"
)

// Delimiters that we accept for IJV and manifest files. The detector will
// otherwise happily pick letters or digits out of short files.
const permittedDelimiters = "\t,; |"

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. It falls back to a comma.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()

	for _, v := range d.DetectDelimiter(r, '"') {
		if v == "" {
			continue
		}

		if delim := rune(v[0]); strings.ContainsRune(permittedDelimiters, delim) {
			return delim
		}
	}

	return ','
}

// DetermineDelimiterFromBytes is DetermineDelimiter for data that is already
// in memory. The data is not consumed.
func DetermineDelimiterFromBytes(data []byte) rune {
	return DetermineDelimiter(bytes.NewReader(data))
}
