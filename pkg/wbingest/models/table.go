package models

import (
	"bytes"
	"encoding/json"
)

// Table is an extracted table: ordered column names plus ordered rows.
// Header uniqueness is not enforced. When two columns share a name, lookups
// by name resolve to the right-most one.
type Table struct {
	// IndexName is the header of the column promoted to the row index (optional).
	IndexName string `json:"index_name,omitempty"`
	// Index holds one label per row when the table is indexed, typically timestamps.
	Index []Value `json:"index,omitempty"`
	// Columns is the ordered list of column names.
	Columns []string `json:"columns"`
	// Rows holds one slice per row, aligned with Columns.
	Rows [][]Value `json:"rows"`
}

// NewTable returns an empty table with the given columns.
func NewTable(columns []string) *Table {
	if columns == nil {
		columns = []string{}
	}
	return &Table{Columns: columns, Rows: [][]Value{}}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no data rows. A table carrying only a
// header is empty but still valid.
func (t *Table) Empty() bool { return t.Len() == 0 }

// Indexed reports whether rows carry index labels.
func (t *Table) Indexed() bool { return t != nil && t.Index != nil }

// ColumnIndex returns the position of the right-most column called name, or -1.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i := len(t.Columns) - 1; i >= 0; i-- {
		if t.Columns[i] == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a column called name exists.
func (t *Table) HasColumn(name string) bool { return t.ColumnIndex(name) >= 0 }

// Value returns the cell at row for the named column, or an empty value.
func (t *Table) Value(row int, column string) Value {
	c := t.ColumnIndex(column)
	if c < 0 || row < 0 || row >= t.Len() || c >= len(t.Rows[row]) {
		return Value{}
	}
	return t.Rows[row][c]
}

// Column returns a copy of every value in the named column.
func (t *Table) Column(name string) []Value {
	c := t.ColumnIndex(name)
	if c < 0 {
		return nil
	}
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		if c < len(row) {
			out[i] = row[c]
		}
	}
	return out
}

// AppendRow adds a row, padding or truncating it to the column count.
func (t *Table) AppendRow(values ...Value) {
	row := make([]Value, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

// AddColumn appends a column whose value in row i is fill(i).
func (t *Table) AddColumn(name string, fill func(row int) Value) {
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], fill(i))
	}
}

// Set replaces the cell at row for the named column.
func (t *Table) Set(row int, column string, v Value) bool {
	c := t.ColumnIndex(column)
	if c < 0 || row < 0 || row >= len(t.Rows) {
		return false
	}
	t.Rows[row][c] = v
	return true
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	c := &Table{
		IndexName: t.IndexName,
		Columns:   append([]string{}, t.Columns...),
		Rows:      make([][]Value, len(t.Rows)),
	}
	if t.Index != nil {
		c.Index = append([]Value{}, t.Index...)
	}
	for i, row := range t.Rows {
		c.Rows[i] = append([]Value{}, row...)
	}
	return c
}

// TableSet is an insertion-ordered mapping from name to table.
type TableSet struct {
	names  []string
	tables map[string]*Table
}

// NewTableSet returns an empty set.
func NewTableSet() *TableSet {
	return &TableSet{tables: make(map[string]*Table)}
}

// Set stores t under name. Replacing an existing name keeps its position.
func (s *TableSet) Set(name string, t *Table) {
	if _, ok := s.tables[name]; !ok {
		s.names = append(s.names, name)
	}
	s.tables[name] = t
}

// Get returns the table stored under name.
func (s *TableSet) Get(name string) (*Table, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.tables[name]
	return t, ok
}

// Names returns the table names in insertion order.
func (s *TableSet) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s.names...)
}

// Len returns the number of tables.
func (s *TableSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// MarshalJSON encodes the set as an object whose keys keep insertion order.
func (s *TableSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.tables[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
