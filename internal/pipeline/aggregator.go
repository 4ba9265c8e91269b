// Package pipeline loads cleaned record tables and aggregates per-model metrics.
package pipeline

import (
	"math"
	"sort"

	"github.com/theirongolddev/llmsim/internal/model"
	"github.com/theirongolddev/llmsim/internal/source"
)

// groupRows buckets rows by model, skipping rows without one.
// Keys are returned in ascending order.
func groupRows(t *source.Table) ([]string, map[string][]source.Row) {
	groups := make(map[string][]source.Row)
	for _, row := range t.Rows {
		v, ok := row["model"]
		if !ok || v == nil {
			continue
		}
		name := source.FormatValue(v)
		groups[name] = append(groups[name], row)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, groups
}

func column(rows []source.Row, col string) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = row.Float(col)
	}
	return out
}

func countErrors(rows []source.Row) int {
	n := 0
	for _, row := range rows {
		if s, _ := row.String("status"); s == model.StatusError {
			n++
		}
	}
	return n
}

// AggregateModels computes one summary per model, ordered by model name.
func AggregateModels(t *source.Table) []model.ModelSummary {
	names, groups := groupRows(t)

	summaries := make([]model.ModelSummary, 0, len(names))
	for _, name := range names {
		rows := groups[name]
		latency := column(rows, "latency_ms")
		cost := column(rows, "cost_usd")

		summaries = append(summaries, model.ModelSummary{
			Model:           name,
			Requests:        len(rows),
			Errors:          countErrors(rows),
			MedianLatencyMs: Median(latency),
			P95LatencyMs:    Percentile(latency, 95),
			MeanTotalTokens: Mean(column(rows, "total_tokens")),
			MedianCostUSD:   Median(cost),
			TotalCostUSD:    Sum(cost),
		})
	}
	return summaries
}

// TopByCost returns up to n rows with the highest cost_usd. Ties keep their
// input order and rows with a missing cost sort last.
func TopByCost(t *source.Table, n int) []source.Row {
	rows := make([]source.Row, len(t.Rows))
	copy(rows, t.Rows)

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Float("cost_usd"), rows[j].Float("cost_usd")
		switch {
		case math.IsNaN(a):
			return false
		case math.IsNaN(b):
			return true
		default:
			return a > b
		}
	})

	if n < 0 {
		n = 0
	}
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// CostByModel sums cost per model, highest first.
func CostByModel(t *source.Table) []model.ModelValue {
	names, groups := groupRows(t)
	values := make([]model.ModelValue, 0, len(names))
	for _, name := range names {
		values = append(values, model.ModelValue{
			Model: name,
			Value: Sum(column(groups[name], "cost_usd")),
		})
	}
	sortDescending(values)
	return values
}

// ErrorsByModel counts error rows per model, highest first. Models without
// errors are left out.
func ErrorsByModel(t *source.Table) []model.ModelValue {
	names, groups := groupRows(t)
	var values []model.ModelValue
	for _, name := range names {
		if n := countErrors(groups[name]); n > 0 {
			values = append(values, model.ModelValue{Model: name, Value: float64(n)})
		}
	}
	sortDescending(values)
	return values
}

// LatencyValues returns every non-missing latency in table order.
func LatencyValues(t *source.Table) []float64 {
	return present(column(t.Rows, "latency_ms"))
}

func sortDescending(values []model.ModelValue) {
	sort.SliceStable(values, func(i, j int) bool {
		return values[i].Value > values[j].Value
	})
}
