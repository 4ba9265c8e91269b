package tui

import (
	"math"
	"strings"

	"github.com/theirongolddev/llmsim/internal/cli"
	"github.com/theirongolddev/llmsim/internal/tui/components"
	"github.com/theirongolddev/llmsim/internal/tui/theme"
)

func (a App) renderLatencyTab(cw, contentH int) string {
	t := theme.Active
	values := a.data.Latency
	innerW := components.CardInnerWidth(cw)

	var b strings.Builder
	if len(values) == 0 {
		b.WriteString(components.ContentCard("Latency distribution (ms)", "No latency values.", cw))
		return b.String()
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	bins := a.opts.HistBins
	if bins <= 0 {
		bins = 60
	}
	chartH := max(contentH/2-4, 4)
	chart := components.Histogram(cli.Histogram(values, bins), cli.FormatMs(lo), cli.FormatMs(hi),
		t.Accent, innerW, chartH)
	b.WriteString(components.ContentCard("Latency distribution (ms)", chart, cw))
	b.WriteString("\n")

	p50 := make([]components.HBar, 0, len(a.data.Summaries))
	p95 := make([]components.HBar, 0, len(a.data.Summaries))
	for _, s := range a.data.Summaries {
		p50 = append(p50, components.HBar{Label: s.Model, Value: zeroIfNaN(s.MedianLatencyMs), Text: cli.FormatMs(s.MedianLatencyMs)})
		p95 = append(p95, components.HBar{Label: s.Model, Value: zeroIfNaN(s.P95LatencyMs), Text: cli.FormatMs(s.P95LatencyMs)})
	}

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Median latency by model", components.HBars(p50, t.Blue, components.CardInnerWidth(halves[0])), halves[0]),
		components.ContentCard("p95 latency by model", components.HBars(p95, t.Orange, components.CardInnerWidth(halves[1])), halves[1]),
	}))

	return b.String()
}

func zeroIfNaN(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}
