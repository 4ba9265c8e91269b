package source

import (
	"encoding/json"
	"math"
	"strconv"
)

// Row is one flattened record. Values are JSON scalars as decoded
// (string, json.Number, bool, nil), arrays, or float64 once a column has
// been coerced. NaN in a coerced column marks a missing value.
type Row map[string]any

// Table is an in-memory dataset with columns in first-seen order.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether any row carried the column.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Float returns a coerced numeric cell, or NaN when missing.
func (r Row) Float(col string) float64 {
	if f, ok := r[col].(float64); ok {
		return f
	}
	return math.NaN()
}

// String returns a string cell and whether the cell held a string.
func (r Row) String(col string) (string, bool) {
	s, ok := r[col].(string)
	return s, ok
}

// FormatValue renders a cell for tabular output. Missing values and nulls
// render as the empty string.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
