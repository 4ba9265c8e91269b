// Package config loads and validates llmsim configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/llmsim/internal/model"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all llmsim configuration.
type Config struct {
	Paths      PathsConfig      `toml:"paths"`
	Generator  GeneratorConfig  `toml:"generator"`
	Report     ReportConfig     `toml:"report"`
	Pricing    PricingConfig    `toml:"pricing"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// PathsConfig holds the dataset file and report output locations.
type PathsConfig struct {
	Dataset   string `toml:"dataset" env:"LLMSIM_DATASET,overwrite"`
	OutputDir string `toml:"output_dir" env:"LLMSIM_OUTPUT_DIR,overwrite"`
}

// GeneratorConfig controls synthetic record generation.
type GeneratorConfig struct {
	Records      int         `toml:"records" env:"LLMSIM_RECORDS,overwrite"`
	ErrorRate    float64     `toml:"error_rate" env:"LLMSIM_ERROR_RATE,overwrite"`
	Seed         int64       `toml:"seed" env:"LLMSIM_SEED,overwrite"` // 0 = seed from the clock
	StartTime    string      `toml:"start_time,omitempty"`            // RFC 3339; empty = now
	IntervalSecs int         `toml:"interval_secs"`
	Models       []ModelSpec `toml:"models"`
	ErrorReasons []string    `toml:"error_reasons"`
}

// ModelSpec is one simulated model and its base latency.
type ModelSpec struct {
	Name          string  `toml:"name"`
	BaseLatencyMs float64 `toml:"base_latency_ms"`
}

// ReportConfig controls the aggregate reporter.
type ReportConfig struct {
	TopN          int      `toml:"top_n"`
	HistBins      int      `toml:"hist_bins"`
	Statuses      []string `toml:"statuses"`
	ChartWidthIn  float64  `toml:"chart_width_in"`
	ChartHeightIn float64  `toml:"chart_height_in"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" env:"LLMSIM_THEME,overwrite"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `toml:"level" env:"LLMSIM_LOG_LEVEL,overwrite"`
}

// DefaultModels is the simulated model set with base latencies in ms.
var DefaultModels = []ModelSpec{
	{Name: "gpt-4o-mini", BaseLatencyMs: 80},
	{Name: "gpt-4o", BaseLatencyMs: 220},
	{Name: "gpt-3.5-turbo", BaseLatencyMs: 120},
	{Name: "gpt-4-legacy", BaseLatencyMs: 350},
	{Name: "codex-lite", BaseLatencyMs: 90},
	{Name: "gpt-4-cheap", BaseLatencyMs: 300},
	{Name: "gpt-3.5-cheap", BaseLatencyMs: 150},
	{Name: "gpt-4-highlatency", BaseLatencyMs: 900},
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	models := make([]ModelSpec, len(DefaultModels))
	copy(models, DefaultModels)

	return Config{
		Paths: PathsConfig{
			Dataset:   filepath.Join("data", "llm_api_responses.jsonl"),
			OutputDir: "outputs",
		},
		Generator: GeneratorConfig{
			Records:      500,
			ErrorRate:    0.03,
			IntervalSecs: 2,
			Models:       models,
			ErrorReasons: append([]string(nil), model.DefaultErrorReasons...),
		},
		Report: ReportConfig{
			TopN:          20,
			HistBins:      60,
			Statuses:      []string{model.StatusOK, model.StatusError},
			ChartWidthIn:  8,
			ChartHeightIn: 4,
		},
		Pricing: PricingConfig{
			PromptPer1K:     0.03,
			CompletionPer1K: 0.06,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "llmsim")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "llmsim")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads the config file at path, falling back to defaults when it does
// not exist, then applies LLMSIM_* environment overrides.
func Load(ctx context.Context, path string) (Config, error) {
	return LoadWith(ctx, path, envconfig.OsLookuper())
}

// LoadWith is Load with an explicit environment source.
func LoadWith(ctx context.Context, path string, env envconfig.Lookuper) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: env,
	}); err != nil {
		return cfg, fmt.Errorf("applying environment: %w", err)
	}

	return cfg, nil
}

// Save writes the config to path, creating its directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks the generator and report settings.
func (c Config) Validate() error {
	if err := c.Generator.Validate(); err != nil {
		return err
	}
	if err := c.Pricing.Validate(); err != nil {
		return err
	}
	return c.Report.Validate()
}

// Validate checks the reporter settings.
func (r ReportConfig) Validate() error {
	switch {
	case r.TopN < 0:
		return fmt.Errorf("%w: report.top_n must be >= 0, got %d", ErrInvalid, r.TopN)
	case r.HistBins < 1:
		return fmt.Errorf("%w: report.hist_bins must be >= 1, got %d", ErrInvalid, r.HistBins)
	case len(r.Statuses) == 0:
		return fmt.Errorf("%w: report.statuses is empty", ErrInvalid)
	case r.ChartWidthIn <= 0 || r.ChartHeightIn <= 0:
		return fmt.Errorf("%w: chart size must be positive", ErrInvalid)
	}
	return nil
}

// Validate checks that the generator can produce records.
func (g GeneratorConfig) Validate() error {
	if g.Records < 0 {
		return fmt.Errorf("%w: generator.records must be >= 0, got %d", ErrInvalid, g.Records)
	}
	if g.ErrorRate < 0 || g.ErrorRate > 1 {
		return fmt.Errorf("%w: generator.error_rate must be in [0, 1], got %g", ErrInvalid, g.ErrorRate)
	}
	if g.IntervalSecs < 1 {
		return fmt.Errorf("%w: generator.interval_secs must be >= 1, got %d", ErrInvalid, g.IntervalSecs)
	}
	if len(g.Models) == 0 {
		return fmt.Errorf("%w: generator.models is empty", ErrInvalid)
	}
	for _, m := range g.Models {
		if m.Name == "" {
			return fmt.Errorf("%w: model with empty name", ErrInvalid)
		}
		if m.BaseLatencyMs <= 0 {
			return fmt.Errorf("%w: model %s: base_latency_ms must be > 0", ErrInvalid, m.Name)
		}
	}
	if g.ErrorRate > 0 && len(g.ErrorReasons) == 0 {
		return fmt.Errorf("%w: generator.error_reasons is empty but error_rate is %g", ErrInvalid, g.ErrorRate)
	}
	if _, err := g.Start(); err != nil {
		return err
	}
	return nil
}

// Start returns the timestamp of the first generated record.
// An empty StartTime means the current UTC time.
func (g GeneratorConfig) Start() (time.Time, error) {
	if g.StartTime == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, g.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: generator.start_time: %w", ErrInvalid, err)
	}
	return t.UTC(), nil
}

// Interval returns the spacing between consecutive record timestamps.
func (g GeneratorConfig) Interval() time.Duration {
	return time.Duration(g.IntervalSecs) * time.Second
}
