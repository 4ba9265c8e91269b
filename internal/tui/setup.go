package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/llmsim/internal/config"
	"github.com/theirongolddev/llmsim/internal/tui/theme"
)

// SetupValues holds the setup form's editable fields as text.
type SetupValues struct {
	Dataset   string
	OutputDir string
	Records   string
	ErrorRate string
	Theme     string
}

// NewSetupValues seeds the form from an existing configuration.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		Dataset:   cfg.Paths.Dataset,
		OutputDir: cfg.Paths.OutputDir,
		Records:   strconv.Itoa(cfg.Generator.Records),
		ErrorRate: strconv.FormatFloat(cfg.Generator.ErrorRate, 'f', -1, 64),
		Theme:     cfg.Appearance.Theme,
	}
}

// NewSetupForm builds the setup wizard bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to llmsim").
				Description("Generate synthetic LLM API call records and report on them.\n\n"),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Dataset file").
				Description("Where generated records are written and read back from.").
				Value(&v.Dataset).
				Validate(nonEmpty("dataset path")),
			huh.NewInput().
				Title("Output directory").
				Description("CSV tables and PNG charts go here.").
				Value(&v.OutputDir).
				Validate(nonEmpty("output directory")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Records per run").
				Value(&v.Records).
				Validate(validateRecords),
			huh.NewInput().
				Title("Error rate").
				Description("Fraction of requests that fail, between 0 and 1.").
				Value(&v.ErrorRate).
				Validate(validateErrorRate),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
		),
	).WithTheme(huh.ThemeDracula())
}

// Apply copies the form values into cfg and activates the chosen theme.
func (v SetupValues) Apply(cfg *config.Config) error {
	if err := nonEmpty("dataset path")(v.Dataset); err != nil {
		return err
	}
	if err := nonEmpty("output directory")(v.OutputDir); err != nil {
		return err
	}
	if err := validateRecords(v.Records); err != nil {
		return err
	}
	if err := validateErrorRate(v.ErrorRate); err != nil {
		return err
	}
	if !theme.Known(v.Theme) {
		return fmt.Errorf("%w: unknown theme %q", config.ErrInvalid, v.Theme)
	}

	records, _ := strconv.Atoi(strings.TrimSpace(v.Records))
	rate, _ := strconv.ParseFloat(strings.TrimSpace(v.ErrorRate), 64)

	cfg.Paths.Dataset = strings.TrimSpace(v.Dataset)
	cfg.Paths.OutputDir = strings.TrimSpace(v.OutputDir)
	cfg.Generator.Records = records
	cfg.Generator.ErrorRate = rate
	cfg.Appearance.Theme = v.Theme
	theme.SetActive(v.Theme)
	return nil
}

func nonEmpty(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: %s is required", config.ErrInvalid, what)
		}
		return nil
	}
}

func validateRecords(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("%w: records must be a whole number >= 0", config.ErrInvalid)
	}
	return nil
}

func validateErrorRate(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 || f > 1 {
		return fmt.Errorf("%w: error rate must be between 0 and 1", config.ErrInvalid)
	}
	return nil
}
