package source

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NumericColumns are coerced to numbers before aggregation.
var NumericColumns = []string{
	"prompt_tokens",
	"completion_tokens",
	"total_tokens",
	"latency_ms",
	"cost_usd",
	"input_chars",
	"output_chars",
}

// CoerceNumeric converts each named column present in t to float64 in place.
// Values that cannot be read as a number become NaN (missing) instead of
// failing. Columns absent from the whole table are left absent. It returns
// how many non-null values were discarded.
func CoerceNumeric(t *Table, cols []string) int {
	discarded := 0
	for _, col := range cols {
		if !t.HasColumn(col) {
			continue
		}
		for _, row := range t.Rows {
			v := row[col]
			f, ok := ToFloat(v)
			if !ok {
				f = math.NaN()
				if v != nil {
					discarded++
				}
			}
			row[col] = f
		}
	}
	return discarded
}

// ToFloat reads a decoded JSON value as a number. Numeric strings and
// booleans convert; null, NaN, ±Inf, objects and arrays do not.
func ToFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch x := v.(type) {
	case float64:
		f = x
	case json.Number:
		f, err = strconv.ParseFloat(x.String(), 64)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	case bool:
		if x {
			f = 1
		}
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FilterStatus keeps only rows whose status is one of allowed and returns
// the number of rows dropped. Rows with a missing or non-string status are
// dropped too.
func FilterStatus(t *Table, allowed []string) int {
	ok := make(map[string]struct{}, len(allowed))
	for _, s := range allowed {
		ok[s] = struct{}{}
	}

	kept := t.Rows[:0]
	for _, row := range t.Rows {
		status, isStr := row.String("status")
		if !isStr {
			continue
		}
		if _, keep := ok[status]; keep {
			kept = append(kept, row)
		}
	}
	dropped := len(t.Rows) - len(kept)
	clear(t.Rows[len(kept):])
	t.Rows = kept
	return dropped
}
