// Package cmd implements the llmsim CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/llmsim/internal/config"
	"github.com/theirongolddev/llmsim/internal/logging"
	"github.com/theirongolddev/llmsim/internal/tui/theme"
)

var (
	flagConfig   string
	flagQuiet    bool
	flagLogLevel string
)

// Populated by the root PersistentPreRunE before any subcommand runs.
var (
	cfg        config.Config
	configPath string
	log        = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "llmsim",
	Short: "Synthetic LLM API call generator and reporter",
	Long: "Generate a synthetic dataset of LLM API call records and summarise it\n" +
		"into per-model CSV tables and PNG charts.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runAll,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// setup loads the config and builds the logger shared by all commands.
func setup(cmd *cobra.Command, _ []string) error {
	configPath = flagConfig
	if configPath == "" {
		configPath = config.Path()
	}

	loaded, err := config.Load(cmd.Context(), configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	l, err := logging.New(os.Stderr, cfg.Log.Level, flagQuiet)
	if err != nil {
		return err
	}
	log = l
	theme.SetActive(cfg.Appearance.Theme)

	log.Debugw("config loaded", "path", configPath, "exists", config.Exists(configPath))
	return nil
}

// syncLog flushes buffered log output; errors from syncing a terminal are
// not interesting.
func syncLog(l *zap.SugaredLogger) {
	_ = l.Sync()
}
