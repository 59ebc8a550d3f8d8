package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table renders rows as aligned, space-separated columns.
type Table struct {
	Header []string
	Rows   [][]string

	// Format, if set, colors the cell at the given column of a data row.
	// Widths are measured before formatting.
	Format func(col int, cell string) string
}

// Render writes the table to w.
func (t Table) Render(w io.Writer) error {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	if err := writeRow(w, t.Header, widths, func(_ int, s string) string { return Heading.Sprint(s) }); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writeRow(w, row, widths, t.Format); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, row []string, widths []int, format func(int, string) string) error {
	var b strings.Builder
	for i, cell := range row {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		text := cell
		if format != nil {
			text = format(i, cell)
		}
		b.WriteString(text)
		// The last column is not padded.
		if i < len(row)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
	}
	_, err := fmt.Fprintln(w, b.String())
	return err
}
