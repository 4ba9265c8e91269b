package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/llmsim/internal/config"
	"github.com/theirongolddev/llmsim/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	defer syncLog(log)

	vals := tui.NewSetupValues(cfg)
	if err := tui.NewSetupForm(vals).RunWithContext(cmd.Context()); err != nil {
		return fmt.Errorf("setup form: %w", err)
	}
	if err := vals.Apply(&cfg); err != nil {
		return err
	}

	if err := config.Save(configPath, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	log.Infow("saved config", "path", configPath)
	fmt.Fprintln(cmd.OutOrStdout(), "  Run `llmsim setup` anytime to reconfigure.")
	return nil
}
