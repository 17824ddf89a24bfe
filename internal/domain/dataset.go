package domain

import "time"

// Row is one data row of a Dataset. Line is the 1-based physical line of the
// row in its source file and identifies the row across copies.
type Row struct {
	Line   int
	Values []string
}

// Dataset is an ordered collection of rows sharing one column set. The column
// set is fixed when the dataset is loaded.
type Dataset struct {
	Source      string
	Columns     []string
	Rows        []Row
	Fingerprint string
	LoadedAt    time.Time
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// ColumnIndex returns the position of name in Columns, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether name is one of the dataset's columns.
func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// Value returns the cell of row i in column name, or "" when the column does
// not exist.
func (d *Dataset) Value(i int, name string) string {
	idx := d.ColumnIndex(name)
	if idx < 0 || idx >= len(d.Rows[i].Values) {
		return ""
	}
	return d.Rows[i].Values[idx]
}

// Clone returns a deep copy sharing no mutable storage with d.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := d.empty()
	out.Rows = make([]Row, len(d.Rows))
	for i, r := range d.Rows {
		out.Rows[i] = r.clone()
	}
	return out
}

// Filter returns a deep copy holding only the rows for which keep returns
// true, in source order.
func (d *Dataset) Filter(keep func(Row) bool) *Dataset {
	out := d.empty()
	out.Rows = make([]Row, 0)
	for _, r := range d.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r.clone())
		}
	}
	return out
}

func (d *Dataset) empty() *Dataset {
	cols := make([]string, len(d.Columns))
	copy(cols, d.Columns)
	return &Dataset{
		Source:      d.Source,
		Columns:     cols,
		Fingerprint: d.Fingerprint,
		LoadedAt:    d.LoadedAt,
	}
}

func (r Row) clone() Row {
	vals := make([]string, len(r.Values))
	copy(vals, r.Values)
	return Row{Line: r.Line, Values: vals}
}
