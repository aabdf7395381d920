// Package export writes flattened collections as CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrEmpty is returned when a table has no rows; an empty export is not
// written at all.
var ErrEmpty = errors.New("no data to export")

// Table is a collection flattened to human-readable columns.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t Table) Len() int { return len(t.Rows) }

// WriteCSV writes the header row followed by every row. Fields containing
// commas, quotes or newlines are quoted.
func WriteCSV(w io.Writer, t Table) error {
	if len(t.Rows) == 0 {
		return ErrEmpty
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("row %d has %d fields, want %d", i, len(row), len(t.Headers))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FileName is the download name used by the original exports,
// e.g. todos_2024-03-04.csv.
func FileName(prefix string, day string) string {
	return fmt.Sprintf("%s_%s.csv", prefix, day)
}
