package overlay

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/carbocation/segoverlap"
	"github.com/carbocation/segoverlap/overlap"
	"github.com/gocarina/gocsv"
)

// IJVRow is one line of an IJV file: row i, column j, object label. A
// coordinate may be listed more than once when objects overlap.
type IJVRow struct {
	I     int    `csv:"i"`
	J     int    `csv:"j"`
	Label uint32 `csv:"label"`
}

// ParseIJV reads a delimited i/j/label file with a header row over a width x
// height domain. The data may be compressed and the delimiter is sniffed.
func ParseIJV(data []byte, width, height int) (overlap.Labeling, error) {
	out := overlap.Labeling{Width: width, Height: height}

	data, err := segoverlap.MaybeDecompressBytes(data)
	if err != nil {
		return out, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}

	rdr := csv.NewReader(bytes.NewReader(data))
	rdr.Comma = segoverlap.DetermineDelimiterFromBytes(data)
	rdr.TrimLeadingSpace = rdr.Comma != ' '

	rows := make([]IJVRow, 0)
	if err := gocsv.UnmarshalCSV(rdr, &rows); err != nil {
		return out, pfx.Err(err)
	}

	for _, row := range rows {
		out.Add(row.I, row.J, row.Label)
	}

	if err := out.Validate(); err != nil {
		return out, pfx.Err(fmt.Errorf("IJV data: %w", err))
	}

	return out, nil
}

// WriteIJV writes a labeling as a comma-delimited IJV file with a header.
func WriteIJV(w io.Writer, l overlap.Labeling) error {
	rows := make([]IJVRow, 0, len(l.Points))
	for _, p := range l.Points {
		rows = append(rows, IJVRow{I: p.I, J: p.J, Label: p.Label})
	}

	return pfx.Err(gocsv.Marshal(&rows, w))
}
