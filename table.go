package reconcile

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Row is a single record keyed by column name. Values read from CSV are
// strings; values built from JSON keep their decoded type.
type Row map[string]any

// Table is an ordered set of rows sharing a column list. Column order is
// the order of first appearance in the source file.
type Table struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the table holds no rows.
func (t *Table) Empty() bool { return t == nil || len(t.Rows) == 0 }

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ReadCSVTable parses a CSV stream into a table. The first line is the
// header; every cell is kept as a string.
func ReadCSVTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read csv header: %w", err)
	}

	t := &Table{Columns: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read csv record: %w", err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
}
