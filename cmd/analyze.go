package cmd

import (
	"github.com/spf13/cobra"

	"github.com/theirongolddev/llmsim/internal/config"
	"github.com/theirongolddev/llmsim/internal/pipeline"
	"github.com/theirongolddev/llmsim/internal/report"
	"github.com/theirongolddev/llmsim/internal/tui/theme"
)

var (
	flagIn     string
	flagOutDir string
	flagTop    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarise a dataset into CSV tables and PNG charts",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&flagIn, "in", "i", "", "Dataset file (default from config)")
	analyzeCmd.Flags().StringVarP(&flagOutDir, "out-dir", "o", "", "Output directory (default from config)")
	analyzeCmd.Flags().IntVar(&flagTop, "top", 0, "Rows in the costly requests table (default from config)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	defer syncLog(log)
	applyAnalyzeFlags(cmd, &cfg)
	if err := cfg.Report.Validate(); err != nil {
		return err
	}
	_, err := analyzeDataset(cfg)
	return err
}

func applyAnalyzeFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("in") {
		c.Paths.Dataset = flagIn
	}
	if flags.Changed("out-dir") {
		c.Paths.OutputDir = flagOutDir
	}
	if flags.Changed("top") {
		c.Report.TopN = flagTop
	}
}

// loadDataset is the shared load and clean path used by analyze and models.
func loadDataset(c config.Config) (*pipeline.LoadResult, error) {
	result, err := pipeline.Load(c.Paths.Dataset, c.Report.Statuses)
	if err != nil {
		return nil, err
	}

	log.Infow("loaded dataset",
		"path", c.Paths.Dataset,
		"rows", result.TotalRows,
		"kept", len(result.Table.Rows),
	)
	if result.Uncoercible > 0 {
		log.Warnw("numeric values could not be parsed and were treated as missing", "count", result.Uncoercible)
	}
	if result.Dropped > 0 {
		log.Infow("dropped rows with an unexpected status", "count", result.Dropped)
	}
	return result, nil
}

func analyzeDataset(c config.Config) (*report.Result, error) {
	loaded, err := loadDataset(c)
	if err != nil {
		return nil, err
	}

	res, err := report.Write(report.Options{
		OutputDir: c.Paths.OutputDir,
		TopN:      c.Report.TopN,
		HistBins:  c.Report.HistBins,
		Size:      report.ChartSize{WidthIn: c.Report.ChartWidthIn, HeightIn: c.Report.ChartHeightIn},
		Palette:   chartPalette(theme.Active),
	}, loaded.Table)
	if res != nil {
		for _, f := range res.Files {
			log.Infow("wrote", "path", f)
		}
	}
	if err != nil {
		return res, err
	}

	log.Infow("report complete", "models", len(res.Summaries), "dir", c.Paths.OutputDir)
	return res, nil
}

// chartPalette takes chart colours from the theme, keeping the defaults for
// any colour that does not parse.
func chartPalette(t theme.Theme) report.Palette {
	return report.Palette{
		Hist:   report.HexColor(t.Chart.Hist, report.DefaultPalette.Hist),
		Cost:   report.HexColor(t.Chart.Cost, report.DefaultPalette.Cost),
		Errors: report.HexColor(t.Chart.Errors, report.DefaultPalette.Errors),
	}
}
