package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/llmsim/internal/cli"
	"github.com/theirongolddev/llmsim/internal/tui/components"
	"github.com/theirongolddev/llmsim/internal/tui/theme"
)

func (a App) renderErrorsTab(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder

	counts := make([]components.HBar, len(a.data.ErrorsByModel))
	for i, v := range a.data.ErrorsByModel {
		counts[i] = components.HBar{Label: v.Model, Value: v.Value, Text: cli.FormatNumber(int64(v.Value))}
	}
	body := muted.Render("No errors in the dataset.")
	if len(counts) > 0 {
		body = components.HBars(counts, t.Red, innerW)
	}
	b.WriteString(components.ContentCard("Errors by model", body, cw))
	b.WriteString("\n")

	labelW, peak := 0, 0.0
	rates := make([]float64, len(a.data.Summaries))
	for i, s := range a.data.Summaries {
		labelW = max(labelW, len(s.Model))
		if s.Requests > 0 {
			rates[i] = float64(s.Errors) / float64(s.Requests)
		}
		peak = max(peak, rates[i])
	}

	barW := max(innerW-labelW-9, 10)
	lines := make([]string, 0, len(a.data.Summaries))
	for i, s := range a.data.Summaries {
		lines = append(lines, components.ErrorRateBar(s.Model, rates[i], peak, labelW, barW))
	}
	if len(lines) > 0 {
		b.WriteString(components.ContentCard("Error rate by model", strings.Join(lines, "\n"), cw))
	}

	return b.String()
}
