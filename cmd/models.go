package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/llmsim/internal/cli"
	"github.com/theirongolddev/llmsim/internal/pipeline"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Print the per-model summary without writing files",
	RunE:  runModels,
}

func init() {
	modelsCmd.Flags().StringVarP(&flagIn, "in", "i", "", "Dataset file (default from config)")
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, _ []string) error {
	defer syncLog(log)
	if cmd.Flags().Changed("in") {
		cfg.Paths.Dataset = flagIn
	}

	result, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	summaries := pipeline.AggregateModels(result.Table)
	if len(summaries) == 0 {
		fmt.Fprintln(out, "\n  No ok/error rows in the dataset.")
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("MODEL SUMMARY  %s", cfg.Paths.Dataset)))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.SummaryTable(summaries)))
	if result.Dropped > 0 {
		fmt.Fprintln(out, cli.RenderWarning(fmt.Sprintf("%d rows with another status were skipped", result.Dropped)))
	}
	fmt.Fprintln(out)

	fmt.Fprint(out, cli.RenderModelBars("Total cost by model", pipeline.CostByModel(result.Table), cli.FormatCost))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderModelBars("Errors by model", pipeline.ErrorsByModel(result.Table), func(v float64) string {
		return cli.FormatNumber(int64(v))
	}))

	if latency := pipeline.LatencyValues(result.Table); len(latency) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Latency  %s\n", cli.RenderSparkline(cli.Histogram(latency, 40)))
	}
	return nil
}
