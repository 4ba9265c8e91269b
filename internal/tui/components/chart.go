package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/llmsim/internal/tui/theme"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// mergeBins sums adjacent histogram bins until at most n remain.
func mergeBins(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	group := int(math.Ceil(float64(len(values)) / float64(n)))
	out := make([]float64, 0, n)
	for i := 0; i < len(values); i += group {
		sum := 0.0
		for _, v := range values[i:min(i+group, len(values))] {
			sum += v
		}
		out = append(out, sum)
	}
	return out
}

// Histogram renders bin counts as vertical bars over a y axis. When the bins
// do not fit the width, adjacent bins are merged. lo and hi label the x axis.
func Histogram(counts []float64, lo, hi string, color lipgloss.Color, width, height int) string {
	if len(counts) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(counts, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range counts {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	tickStep := chartTickStep(peak)
	for int(math.Ceil(peak/tickStep)) > max(height/2, 2) {
		tickStep *= 2
	}
	ceiling := math.Ceil(peak/tickStep) * tickStep
	intervals := max(int(math.Round(ceiling/tickStep)), 1)
	rowsPerTick := max(height/intervals, 1)
	chartH := rowsPerTick * intervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	chartW := max(width-yLabelW-1, 5)
	counts = mergeBins(counts, chartW)
	barW := max(chartW/len(counts), 1)

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		top := ceiling * float64(row) / float64(chartH)
		bottom := ceiling * float64(row-1) / float64(chartH)

		label := ""
		if row%rowsPerTick == 0 {
			label = formatChartLabel(tickStep * float64(row/rowsPerTick))
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		for _, v := range counts {
			switch {
			case v >= top:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * float64(len(blocks)))
				idx = min(max(idx, 0), len(blocks)-1)
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(space.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := barW * len(counts)
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))
	b.WriteString("\n")

	gap := max(axisLen-len(lo)-len(hi), 1)
	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW+1) + lo + strings.Repeat(" ", gap) + hi))
	return b.String()
}

// HBar is one row of a horizontal bar list.
type HBar struct {
	Label string
	Value float64
	Text  string
}

// HBars renders labelled horizontal bars scaled to the largest value.
func HBars(bars []HBar, color lipgloss.Color, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW, textW, peak := 0, 0, 0.0
	for _, bar := range bars {
		labelW = max(labelW, lipgloss.Width(bar.Label))
		textW = max(textW, lipgloss.Width(bar.Text))
		peak = max(peak, bar.Value)
	}
	barMax := max(width-labelW-textW-2, 4)

	labelStyle := lipgloss.NewStyle().Foreground(t.BlueBright).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, len(bars))
	for i, bar := range bars {
		n := 0
		if peak > 0 {
			n = int(bar.Value / peak * float64(barMax))
		}
		n = min(max(n, 0), barMax)
		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s", labelW, bar.Label)) +
			space.Render(" ") +
			barStyle.Render(strings.Repeat("█", n)) +
			space.Render(strings.Repeat(" ", barMax-n+1)) +
			textStyle.Render(fmt.Sprintf("%*s", textW, bar.Text))
	}
	return strings.Join(lines, "\n")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
