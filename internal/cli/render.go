package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/llmsim/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	costStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

func ruleLine(left, mid, right string, widths []int) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
	return b.String()
}

// RenderTable renders a bordered table with headers and rows. The first
// column is left-aligned, the rest right-aligned. A row holding the single
// cell "---" renders as a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(ruleLine("╭", "┬", "╮", widths))

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		b.WriteString(ruleLine("├", "┼", "┤", widths))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(ruleLine("├", "┼", "┤", widths))
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			var padded string
			if i == 0 {
				padded = fmt.Sprintf(" %-*s ", widths[i], cell)
			} else {
				padded = fmt.Sprintf(" %*s ", widths[i], cell)
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	b.WriteString(ruleLine("╰", "┴", "╯", widths))
	return b.String()
}

// SummaryTable builds the per-model table with a totals row.
func SummaryTable(summaries []model.ModelSummary) Table {
	t := Table{
		Title:   "Per-model summary",
		Headers: []string{"Model", "Requests", "Errors", "p50 Latency", "p95 Latency", "Avg Tokens", "p50 Cost", "Total Cost"},
	}

	var requests, errors int
	var cost float64
	for _, s := range summaries {
		t.Rows = append(t.Rows, []string{
			s.Model,
			FormatNumber(int64(s.Requests)),
			strconv.Itoa(s.Errors),
			FormatMs(s.MedianLatencyMs),
			FormatMs(s.P95LatencyMs),
			FormatTokens(s.MeanTotalTokens),
			FormatCost(s.MedianCostUSD),
			FormatCost(s.TotalCostUSD),
		})
		requests += s.Requests
		errors += s.Errors
		cost += s.TotalCostUSD
	}

	if len(summaries) > 1 {
		t.Rows = append(t.Rows, []string{"---"})
		t.Rows = append(t.Rows, []string{
			"TOTAL",
			FormatNumber(int64(requests)),
			strconv.Itoa(errors),
			"", "", "", "",
			FormatCost(cost),
		})
	}
	return t
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderHorizontalBar renders one labelled bar chart entry.
func RenderHorizontalBar(label string, value, maxValue float64, labelWidth, maxWidth int, formatted string) string {
	barLen := 0
	if maxValue > 0 {
		barLen = int(value / maxValue * float64(maxWidth))
	}
	if barLen < 0 {
		barLen = 0
	}
	bar := strings.Repeat("█", barLen)
	return fmt.Sprintf("  %-*s %s %s", labelWidth, label, costStyle.Render(bar), mutedStyle.Render(formatted))
}

// RenderModelBars renders a titled bar list for per-model values.
func RenderModelBars(title string, values []model.ModelValue, format func(float64) string) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	if len(values) == 0 {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render("(none)"))
		b.WriteString("\n")
		return b.String()
	}

	peak, labelWidth := 0.0, 0
	for _, v := range values {
		peak = max(peak, v.Value)
		labelWidth = max(labelWidth, len(v.Model))
	}
	for _, v := range values {
		b.WriteString(RenderHorizontalBar(v.Model, v.Value, peak, labelWidth, 30, format(v.Value)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderWarning renders a one-line notice in the error color.
func RenderWarning(msg string) string {
	return errorStyle.Render("  ! " + msg)
}

// Histogram counts values into n equal-width bins across their range.
// NaN and infinite values are not counted.
func Histogram(values []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return nil
	}

	lo, hi := finite[0], finite[0]
	for _, v := range finite[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	counts := make([]float64, n)
	width := (hi - lo) / float64(n)
	for _, v := range finite {
		idx := 0
		if width > 0 {
			idx = min(max(int((v-lo)/width), 0), n-1)
		}
		counts[idx]++
	}
	return counts
}
