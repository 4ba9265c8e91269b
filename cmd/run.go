package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a dataset, then analyze it",
	RunE:  runAll,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runAll(_ *cobra.Command, _ []string) error {
	defer syncLog(log)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := generateDataset(cfg); err != nil {
		return err
	}
	_, err := analyzeDataset(cfg)
	return err
}
