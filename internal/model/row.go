// internal/model/row.go
package model

// Row is one record from the input dataset, keyed by column name.
// Values are scalars (string, number) or nil for absent cells.
type Row map[string]any

// Merged returns a copy of the row with extra fields layered on top.
// The original row is never mutated.
func (r Row) Merged(extra map[string]any) Row {
    merged := make(Row, len(r)+len(extra))
    for k, v := range r {
        merged[k] = v
    }
    for k, v := range extra {
        merged[k] = v
    }
    return merged
}

// Dataset holds the loaded rows plus the ordered column list.
type Dataset struct {
    Columns []string
    Rows    []Row
}

// HasColumn reports whether the dataset contains the given column.
func (d *Dataset) HasColumn(name string) bool {
    for _, c := range d.Columns {
        if c == name {
            return true
        }
    }
    return false
}
