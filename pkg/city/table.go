// Package city finds which named city polygon contains a coordinate.
package city

import "slices"

// Required columns of a Table.
const (
	GeometryColumn = "geometry"
	NameColumn     = "city_name"
)

// Row is one record of a Table, keyed by column name.
type Row map[string]any

// Table is an ordered set of rows over declared columns. Only the geometry
// and city_name columns are read; any others are carried as-is. A Table is
// not modified by lookups and may be shared between goroutines.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row. Keys outside the declared columns are kept but ignored
// by lookups.
func (t *Table) Append(r Row) *Table {
	t.Rows = append(t.Rows, r)
	return t
}

// HasColumn reports whether name is a declared column.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// missingColumns returns the required columns not declared on t.
func (t *Table) missingColumns() []string {
	var missing []string
	for _, c := range []string{GeometryColumn, NameColumn} {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}
