package records

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	kerrors "github.com/PolarWolf314/rollcall/internal/errors"
)

// Encode serializes records as CSV: the Header row followed by one row per
// record in table order.
//
// A field containing a carriage return is ErrInvalidFormat: the CSV reader
// folds "\r\n" inside a quoted field to "\n", so Decode could not return it
// unchanged.
func Encode(recs []Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	for i, r := range recs {
		fields := r.Fields()
		for col, v := range fields {
			if strings.ContainsRune(v, '\r') {
				return nil, fmt.Errorf("%w: row %d %s contains a carriage return",
					kerrors.ErrInvalidFormat, i, Header[col])
			}
		}
		if err := w.Write(fields); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing records: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode parses a payload produced by Encode. The first row must match Header
// exactly; anything else is reported as ErrInvalidFormat.
func Decode(data []byte) ([]Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	// Row width is checked below so the error names the offending line.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", kerrors.ErrInvalidFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidFormat, err)
	}
	if !slices.Equal(header, Header) {
		return nil, fmt.Errorf("%w: unexpected header %q", kerrors.ErrInvalidFormat, header)
	}

	recs := []Record{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidFormat, err)
		}
		if len(row) != len(Header) {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, expected %d",
				kerrors.ErrInvalidFormat, line, len(row), len(Header))
		}
		recs = append(recs, FromFields(row))
	}

	return recs, nil
}
