package pipeline

import (
	"fmt"

	"github.com/theirongolddev/llmsim/internal/source"
)

// LoadResult holds the cleaned table and what cleaning threw away.
type LoadResult struct {
	Table       *source.Table
	TotalRows   int
	Uncoercible int
	Dropped     int
}

// Load reads the dataset at path, coerces the numeric columns and keeps only
// rows whose status is in statuses.
func Load(path string, statuses []string) (*LoadResult, error) {
	table, err := source.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return Clean(table, statuses), nil
}

// Clean runs the coercion and status filter steps over an already read table.
func Clean(table *source.Table, statuses []string) *LoadResult {
	result := &LoadResult{
		Table:     table,
		TotalRows: len(table.Rows),
	}
	result.Uncoercible = source.CoerceNumeric(table, source.NumericColumns)
	result.Dropped = source.FilterStatus(table, statuses)
	return result
}
