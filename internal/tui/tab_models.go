package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/llmsim/internal/cli"
	"github.com/theirongolddev/llmsim/internal/tui/components"
	"github.com/theirongolddev/llmsim/internal/tui/theme"
)

// Tab indexes, matching components.Tabs.
const (
	tabModels = iota
	tabCostly
	tabLatency
	tabErrors
)

func (a App) renderModelsTab(cw int) string {
	t := theme.Active
	summaries := a.data.Summaries

	var requests, errs int
	var cost float64
	for _, s := range summaries {
		requests += s.Requests
		errs += s.Errors
		cost += s.TotalCostUSD
	}
	errRate := 0.0
	if requests > 0 {
		errRate = float64(errs) / float64(requests)
	}

	res := a.data.Result
	dropped := ""
	if res != nil && res.Dropped > 0 {
		dropped = fmt.Sprintf("%d rows dropped", res.Dropped)
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Requests", Value: cli.FormatNumber(int64(requests)), Note: dropped},
		{Label: "Models", Value: fmt.Sprintf("%d", len(summaries))},
		{Label: "Total Cost", Value: cli.FormatCost(cost)},
		{Label: "Error Rate", Value: cli.FormatPercent(errRate), Note: fmt.Sprintf("%d errors", errs)},
	}, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)
	const numW = 10
	nameW := max(innerW-7*(numW+1), 12)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.BlueBright).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	costStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s %*s %*s",
		nameW, "Model",
		numW, "Requests", numW, "Errors",
		numW, "p50 ms", numW, "p95 ms",
		numW, "Avg Tok",
		numW, "p50 Cost", numW, "Total")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	for _, s := range summaries {
		body.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(s.Model, nameW))))
		body.WriteString(valueStyle.Render(fmt.Sprintf(" %*s", numW, cli.FormatNumber(int64(s.Requests)))))
		es := valueStyle
		if s.Errors > 0 {
			es = errStyle
		}
		body.WriteString(es.Render(fmt.Sprintf(" %*d", numW, s.Errors)))
		body.WriteString(valueStyle.Render(fmt.Sprintf(" %*s %*s %*s",
			numW, cli.FormatMs(s.MedianLatencyMs),
			numW, cli.FormatMs(s.P95LatencyMs),
			numW, cli.FormatTokens(s.MeanTotalTokens))))
		body.WriteString(costStyle.Render(fmt.Sprintf(" %*s %*s",
			numW, cli.FormatCost(s.MedianCostUSD),
			numW, cli.FormatCost(s.TotalCostUSD))))
		body.WriteString("\n")
	}
	if len(summaries) == 0 {
		body.WriteString(mutedStyle.Render("No ok/error rows in the dataset."))
	}

	b.WriteString(components.ContentCard("Per-model summary", strings.TrimRight(body.String(), "\n"), cw))
	b.WriteString("\n")

	costBars := make([]components.HBar, len(a.data.CostByModel))
	for i, v := range a.data.CostByModel {
		costBars[i] = components.HBar{Label: v.Model, Value: v.Value, Text: cli.FormatCost(v.Value)}
	}
	if len(costBars) > 0 {
		b.WriteString(components.ContentCard("Total cost by model",
			components.HBars(costBars, t.Green, innerW), cw))
	}

	return b.String()
}
