package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/theirongolddev/llmsim/internal/model"
	"github.com/theirongolddev/llmsim/internal/source"
)

// WriteSummary writes one CSV row per model with a header of
// model.SummaryColumns.
func WriteSummary(w io.Writer, summaries []model.ModelSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.SummaryColumns); err != nil {
		return err
	}
	for _, s := range summaries {
		rec := []string{
			s.Model,
			strconv.Itoa(s.Requests),
			strconv.Itoa(s.Errors),
			source.FormatValue(s.MedianLatencyMs),
			source.FormatValue(s.P95LatencyMs),
			source.FormatValue(s.MeanTotalTokens),
			source.FormatValue(s.MedianCostUSD),
			source.FormatValue(s.TotalCostUSD),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRows writes rows under the given columns. Cells a row lacks are empty.
func WriteRows(w io.Writer, columns []string, rows []source.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	rec := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			rec[i] = source.FormatValue(row[col])
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeFile creates path and hands it to fn, reporting the close error when
// fn succeeded.
func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path) //nolint:gosec // path built from configured output dir
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := fn(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
