package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/llmsim/internal/config"
	"github.com/theirongolddev/llmsim/internal/generator"
)

var (
	flagRecords   int
	flagErrorRate float64
	flagSeed      int64
	flagOut       string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic dataset of API call records",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&flagRecords, "records", "n", 0, "Number of records (default from config)")
	generateCmd.Flags().Float64Var(&flagErrorRate, "error-rate", 0, "Fraction of failed requests (default from config)")
	generateCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Random seed, 0 seeds from the clock (default from config)")
	generateCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Dataset file (default from config)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	defer syncLog(log)
	applyGenerateFlags(cmd, &cfg)
	return generateDataset(cfg)
}

// applyGenerateFlags overrides config values with the flags the user set.
func applyGenerateFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("records") {
		c.Generator.Records = flagRecords
	}
	if flags.Changed("error-rate") {
		c.Generator.ErrorRate = flagErrorRate
	}
	if flags.Changed("seed") {
		c.Generator.Seed = flagSeed
	}
	if flags.Changed("out") {
		c.Paths.Dataset = flagOut
	}
}

// generateDataset builds the configured number of records, checks each one
// and writes them as JSON Lines to the dataset path.
func generateDataset(c config.Config) error {
	g, err := generator.New(c.Generator, c.Pricing, generator.NewRand(c.Generator.Seed))
	if err != nil {
		return err
	}

	records := g.Generate()
	failed := 0
	for _, r := range records {
		if err := generator.CheckRecord(r, c.Pricing); err != nil {
			return fmt.Errorf("generated an invalid record: %w", err)
		}
		if r.Failed() {
			failed++
		}
	}

	if err := generator.WriteFile(c.Paths.Dataset, records); err != nil {
		return err
	}
	log.Infow("wrote dataset",
		"path", c.Paths.Dataset,
		"records", len(records),
		"errors", failed,
	)
	return nil
}
