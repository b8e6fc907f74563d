// Package csvx writes the CSV tables exported for further processing and
// visualisation. Files are UTF-8 with a byte order mark so they open
// cleanly in spreadsheet tools.
package csvx

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Empty is the placeholder written for absent optional values.
const Empty = "-"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// OrEmpty returns the value, or the Empty placeholder when it is blank.
func OrEmpty(value string) string {
	if value == "" {
		return Empty
	}
	return value
}

// WriteTable writes a header row followed by data rows.
func WriteTable(w io.Writer, header []string, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("csvx.WriteTable: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csvx.WriteTable: header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csvx.WriteTable: row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csvx.WriteTable: flush: %w", err)
	}
	return nil
}
