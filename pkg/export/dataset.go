package export

import (
	"errors"
	"fmt"
)

// Dataset is a table of string cells. Every row holds one cell per header.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// Append adds a row.
func (d *Dataset) Append(cells ...string) {
	d.Rows = append(d.Rows, cells)
}

func (d Dataset) validate() error {
	if len(d.Headers) == 0 {
		return errors.New("dataset has no columns")
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Headers) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(d.Headers))
		}
	}
	return nil
}
