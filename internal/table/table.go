// Package table implements the column-typed table that bridges CyREST's
// column model. Columns carry one of the remote value types, cells can
// hold a missing-value marker distinct from every typed value, and
// missing values survive a round trip through JSON in both directions.
package table

import (
	"fmt"

	"github.com/cytoscape/cyrest-go/internal/cyrest"
)

// Type is a column value type, named exactly as CyREST names it.
type Type string

const (
	Integer    Type = "Integer"
	Long       Type = "Long"
	Double     Type = "Double"
	Boolean    Type = "Boolean"
	String     Type = "String"
	StringList Type = "List"
)

// TypeFromRemote maps a remote column type declaration onto the local
// type system. Unsupported remote types fail loudly rather than
// silently truncating.
func TypeFromRemote(s string) (Type, error) {
	switch Type(s) {
	case Integer, Long, Double, Boolean, String, StringList:
		return Type(s), nil
	default:
		return "", fmt.Errorf("table: unsupported remote column type %q", s)
	}
}

// Value is one cell: either a typed value or the missing marker.
type Value struct {
	present bool
	v       any
}

// Null is the missing-value marker.
func Null() Value { return Value{} }

func Int(v int64) Value        { return Value{present: true, v: v} }
func Float(v float64) Value    { return Value{present: true, v: v} }
func Bool(v bool) Value        { return Value{present: true, v: v} }
func Str(v string) Value       { return Value{present: true, v: v} }
func Strings(v []string) Value { return Value{present: true, v: v} }

// IsNull reports whether the cell holds the missing marker.
func (v Value) IsNull() bool { return !v.present }

// JSON returns the value in the shape the JSON encoder should emit:
// nil for the missing marker, the typed value otherwise.
func (v Value) JSON() any {
	if !v.present {
		return nil
	}
	return v.v
}

func (v Value) AsInt() (int64, bool) {
	i, ok := v.v.(int64)
	return i, ok && v.present
}

func (v Value) AsFloat() (float64, bool) {
	f, ok := v.v.(float64)
	return f, ok && v.present
}

func (v Value) AsBool() (bool, bool) {
	b, ok := v.v.(bool)
	return b, ok && v.present
}

func (v Value) AsString() (string, bool) {
	s, ok := v.v.(string)
	return s, ok && v.present
}

func (v Value) AsStrings() ([]string, bool) {
	s, ok := v.v.([]string)
	return s, ok && v.present
}

// Equal compares two cells, treating missing markers as equal to each
// other and unequal to every typed value.
func (v Value) Equal(o Value) bool {
	if v.present != o.present {
		return false
	}
	if !v.present {
		return true
	}
	a, aok := v.v.([]string)
	b, bok := o.v.([]string)
	if aok || bok {
		if !aok || !bok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}
	return v.v == o.v
}

// DecodeColumn converts a remote column's raw JSON values into typed
// cells. JSON null becomes the missing marker.
func DecodeColumn(typ Type, raw []any) ([]Value, error) {
	out := make([]Value, len(raw))
	for i, rv := range raw {
		if rv == nil {
			out[i] = Null()
			continue
		}
		switch typ {
		case Integer, Long:
			f, ok := rv.(float64)
			if !ok {
				return nil, fmt.Errorf("table: row %d: expected number for %s column, got %T", i, typ, rv)
			}
			out[i] = Int(int64(f))
		case Double:
			f, ok := rv.(float64)
			if !ok {
				return nil, fmt.Errorf("table: row %d: expected number for Double column, got %T", i, rv)
			}
			out[i] = Float(f)
		case Boolean:
			b, ok := rv.(bool)
			if !ok {
				return nil, fmt.Errorf("table: row %d: expected bool for Boolean column, got %T", i, rv)
			}
			out[i] = Bool(b)
		case String:
			s, ok := rv.(string)
			if !ok {
				return nil, fmt.Errorf("table: row %d: expected string for String column, got %T", i, rv)
			}
			out[i] = Str(s)
		case StringList:
			items, ok := rv.([]any)
			if !ok {
				return nil, fmt.Errorf("table: row %d: expected list for List column, got %T", i, rv)
			}
			ss := make([]string, len(items))
			for j, it := range items {
				s, ok := it.(string)
				if !ok {
					return nil, fmt.Errorf("table: row %d: expected string list element, got %T", i, it)
				}
				ss[j] = s
			}
			out[i] = Strings(ss)
		default:
			return nil, fmt.Errorf("table: unsupported column type %q", typ)
		}
	}
	return out, nil
}

// Column is one named, typed column of cells.
type Column struct {
	Name   string
	Type   Type
	Values []Value
}

// NewColumn builds a column from cells.
func NewColumn(name string, typ Type, values ...Value) *Column {
	return &Column{Name: name, Type: typ, Values: values}
}

// Table is an ordered set of equal-length columns. A table fetched from
// Cytoscape is additionally keyed by the SUID of each row.
type Table struct {
	cols    []*Column
	byName  map[string]int
	suids   []int64
	rowBySU map[int64]int
}

// New builds a table from columns, validating that lengths agree.
func New(cols ...*Column) (*Table, error) {
	t := &Table{byName: make(map[string]int, len(cols))}
	for _, col := range cols {
		if err := t.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// AddColumn appends a column, validating its length against the rows
// already present.
func (t *Table) AddColumn(col *Column) error {
	if _, dup := t.byName[col.Name]; dup {
		return cyrest.Validationf("duplicate column %q", col.Name)
	}
	if len(t.cols) > 0 && len(col.Values) != t.RowCount() {
		return cyrest.Validationf("column %q has %d rows, table has %d",
			col.Name, len(col.Values), t.RowCount())
	}
	t.byName[col.Name] = len(t.cols)
	t.cols = append(t.cols, col)
	return nil
}

// SetSUIDs keys the table's rows by SUID. SUIDs must be unique and match
// the row count.
func (t *Table) SetSUIDs(suids []int64) error {
	if len(t.cols) > 0 && len(suids) != t.RowCount() {
		return cyrest.Validationf("%d SUIDs for %d rows", len(suids), t.RowCount())
	}
	rowBySU := make(map[int64]int, len(suids))
	for i, s := range suids {
		if _, dup := rowBySU[s]; dup {
			return cyrest.Validationf("duplicate SUID %d", s)
		}
		rowBySU[s] = i
	}
	t.suids = suids
	t.rowBySU = rowBySU
	return nil
}

// SUIDs returns the row keys, or nil for a table that is not keyed.
func (t *Table) SUIDs() []int64 { return t.suids }

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if len(t.cols) == 0 {
		return len(t.suids)
	}
	return len(t.cols[0].Values)
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Cell returns the cell at (SUID, column) for a keyed table.
func (t *Table) Cell(suid int64, column string) (Value, bool) {
	row, ok := t.rowBySU[suid]
	if !ok {
		return Value{}, false
	}
	col, ok := t.Column(column)
	if !ok {
		return Value{}, false
	}
	return col.Values[row], true
}

// Records flattens the table into one JSON-ready map per row, with
// missing markers emitted as nulls. This is the bulk-upload wire shape.
func (t *Table) Records() []map[string]any {
	out := make([]map[string]any, t.RowCount())
	for row := range out {
		rec := make(map[string]any, len(t.cols))
		for _, col := range t.cols {
			rec[col.Name] = col.Values[row].JSON()
		}
		out[row] = rec
	}
	return out
}
