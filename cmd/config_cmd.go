package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/llmsim/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "# Config file: %s\n", configPath)
	if config.Exists(configPath) {
		fmt.Fprintln(out, "# Status: loaded (LLMSIM_* environment overrides applied)")
	} else {
		fmt.Fprintln(out, "# Status: using defaults (no config file)")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "# Warning: %v\n", err)
	}
	fmt.Fprintln(out)

	if err := toml.NewEncoder(out).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "# Run `llmsim setup` to reconfigure.")
	return nil
}
