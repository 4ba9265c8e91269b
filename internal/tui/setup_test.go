package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/llmsim/internal/config"
	"github.com/theirongolddev/llmsim/internal/tui/theme"
)

func TestSetupValuesApply(t *testing.T) {
	t.Cleanup(func() { theme.SetActive("flexoki-dark") })

	cfg := config.DefaultConfig()
	v := NewSetupValues(cfg)
	v.Dataset = " data/calls.jsonl "
	v.OutputDir = "out"
	v.Records = "250"
	v.ErrorRate = "0.1"
	v.Theme = "tokyo-night"

	require.NoError(t, v.Apply(&cfg))
	assert.Equal(t, "data/calls.jsonl", cfg.Paths.Dataset)
	assert.Equal(t, "out", cfg.Paths.OutputDir)
	assert.Equal(t, 250, cfg.Generator.Records)
	assert.InDelta(t, 0.1, cfg.Generator.ErrorRate, 1e-12)
	assert.Equal(t, "tokyo-night", theme.Active.Name)
}

func TestSetupValuesApplyRejects(t *testing.T) {
	cases := map[string]func(v *SetupValues){
		"empty dataset":   func(v *SetupValues) { v.Dataset = "  " },
		"negative count":  func(v *SetupValues) { v.Records = "-1" },
		"not a number":    func(v *SetupValues) { v.Records = "lots" },
		"rate above one":  func(v *SetupValues) { v.ErrorRate = "1.5" },
		"unknown theme":   func(v *SetupValues) { v.Theme = "solarized" },
		"empty directory": func(v *SetupValues) { v.OutputDir = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			v := NewSetupValues(cfg)
			mutate(v)

			err := v.Apply(&cfg)
			require.ErrorIs(t, err, config.ErrInvalid)
			def := config.DefaultConfig()
			assert.Equal(t, def.Paths, cfg.Paths, "config untouched on error")
			assert.Equal(t, def.Generator.Records, cfg.Generator.Records)
		})
	}
}
