package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/llmsim/internal/model"
	"github.com/theirongolddev/llmsim/internal/tui/theme"
)

const sampleDataset = `{"request_id":"req_000000","model":"gpt-4o","latency_ms":120,"total_tokens":300,"prompt_tokens":200,"completion_tokens":100,"status":"ok","error":null,"cost_usd":0.004}
{"request_id":"req_000001","model":"codex-lite","latency_ms":900,"total_tokens":80,"prompt_tokens":50,"completion_tokens":30,"status":"error","error":"timeout","cost_usd":0.001}
{"request_id":"req_000002","model":"gpt-4o","latency_ms":340,"total_tokens":500,"prompt_tokens":300,"completion_tokens":200,"status":"ok","error":null,"cost_usd":0.009}
{"request_id":"req_000003","model":"gpt-4o","latency_ms":50,"status":"pending","cost_usd":3}
`

func loadedApp(t *testing.T) App {
	t.Helper()
	theme.SetActive("flexoki-dark")

	path := filepath.Join(t.TempDir(), "calls.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(sampleDataset), 0o600))

	a := NewApp(Options{
		Dataset:  path,
		Statuses: []string{model.StatusOK, model.StatusError},
		TopN:     20,
		HistBins: 20,
	})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	msg := loadDataCmd(a.opts)()
	m, _ = m.Update(msg)
	return m.(App)
}

func TestLoadDataCmd(t *testing.T) {
	a := loadedApp(t)

	require.True(t, a.loaded)
	require.NoError(t, a.data.Err)
	require.Len(t, a.data.Summaries, 2)
	assert.Equal(t, "codex-lite", a.data.Summaries[0].Model)
	assert.Equal(t, 1, a.data.Result.Dropped)
	assert.Len(t, a.data.Top, 3)
	assert.Equal(t, []model.ModelValue{{Model: "codex-lite", Value: 1}}, a.data.ErrorsByModel)
}

func TestViewShowsModelsTab(t *testing.T) {
	out := ansi.Strip(loadedApp(t).View())

	assert.Contains(t, out, "Per-model summary")
	assert.Contains(t, out, "gpt-4o")
	assert.Contains(t, out, "Total cost by model")
}

func TestTabKeysSwitchTabs(t *testing.T) {
	a := loadedApp(t)

	cases := []struct {
		key   rune
		tab   int
		title string
	}{
		{'c', tabCostly, "Top 3 requests by cost"},
		{'l', tabLatency, "Latency distribution (ms)"},
		{'e', tabErrors, "Errors by model"},
		{'m', tabModels, "Per-model summary"},
	}
	for _, tc := range cases {
		m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tc.key}})
		a = m.(App)
		assert.Equal(t, tc.tab, a.activeTab, "key %q", tc.key)
		assert.Contains(t, ansi.Strip(a.View()), tc.title, "key %q", tc.key)
	}

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tabErrors, m.(App).activeTab, "left wraps around")
}

func TestViewShowsLoadError(t *testing.T) {
	a := NewApp(Options{Dataset: filepath.Join(t.TempDir(), "missing.jsonl")})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m, _ = m.Update(loadDataCmd(a.opts)())

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Could not load dataset")
	assert.Contains(t, out, "loading dataset")
}

func TestViewTooNarrow(t *testing.T) {
	a := NewApp(Options{})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.True(t, strings.Contains(m.View(), "Terminal too narrow"))
}

func TestHelpToggle(t *testing.T) {
	a := loadedApp(t)

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Contains(t, ansi.Strip(m.View()), "Keyboard Shortcuts")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.False(t, m.(App).showHelp)
}
