// Package report writes the CSV tables and PNG charts for a cleaned dataset.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"

	"github.com/theirongolddev/llmsim/internal/model"
	"github.com/theirongolddev/llmsim/internal/pipeline"
	"github.com/theirongolddev/llmsim/internal/source"
)

// Output file names, relative to the output directory.
const (
	SummaryFile       = "model_summary.csv"
	LatencyHistFile   = "latency_hist.png"
	CostByModelFile   = "cost_by_model.png"
	ErrorsByModelFile = "errors_by_model.png"
)

// TopFile names the top-N costly requests table.
func TopFile(n int) string {
	return fmt.Sprintf("top_%d_costly_requests.csv", n)
}

// Options controls where and how a report is written.
type Options struct {
	OutputDir string
	TopN      int
	HistBins  int
	Size      ChartSize
	Palette   Palette
}

// Result is what Write produced.
type Result struct {
	Summaries []model.ModelSummary
	Top       []source.Row
	Files     []string
}

// Write aggregates the table and writes every output file into
// opts.OutputDir, creating it if needed. Files already written stay on disk
// when a later one fails.
func Write(opts Options, t *source.Table) (*Result, error) {
	if err := os.MkdirAll(opts.OutputDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	res := &Result{
		Summaries: pipeline.AggregateModels(t),
		Top:       pipeline.TopByCost(t, opts.TopN),
	}

	emit := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(opts.OutputDir, name)
		if err := writeFile(path, fn); err != nil {
			return err
		}
		res.Files = append(res.Files, path)
		return nil
	}

	if err := emit(SummaryFile, func(w io.Writer) error {
		return WriteSummary(w, res.Summaries)
	}); err != nil {
		return res, err
	}
	if err := emit(TopFile(opts.TopN), func(w io.Writer) error {
		return WriteRows(w, t.Columns, res.Top)
	}); err != nil {
		return res, err
	}

	hist, err := LatencyHistogram(pipeline.LatencyValues(t), opts.HistBins, opts.Palette.Hist)
	if err != nil {
		return res, fmt.Errorf("latency histogram: %w", err)
	}
	cost, err := BarByModel("Total cost by model", "USD", pipeline.CostByModel(t), opts.Palette.Cost)
	if err != nil {
		return res, fmt.Errorf("cost chart: %w", err)
	}
	errs, err := BarByModel("Errors by model", "error count", pipeline.ErrorsByModel(t), opts.Palette.Errors)
	if err != nil {
		return res, fmt.Errorf("errors chart: %w", err)
	}

	for _, c := range []struct {
		name string
		p    *plot.Plot
	}{
		{LatencyHistFile, hist},
		{CostByModelFile, cost},
		{ErrorsByModelFile, errs},
	} {
		if err := emit(c.name, func(w io.Writer) error {
			return WritePNG(w, c.p, opts.Size)
		}); err != nil {
			return res, err
		}
	}

	return res, nil
}
