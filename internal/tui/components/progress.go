package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/llmsim/internal/tui/theme"
)

// ColorForErrorRate returns green/yellow/orange/red for an error fraction.
// The default generator rate of 3% sits in the green band.
func ColorForErrorRate(rate float64) string {
	t := theme.Active
	switch {
	case rate >= 0.10:
		return string(t.Red)
	case rate >= 0.06:
		return string(t.Orange)
	case rate >= 0.04:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// ErrorRateBar renders a labelled bar for an error rate. The bar is scaled
// against scaleMax so small rates remain visible.
func ErrorRateBar(label string, rate, scaleMax float64, labelW, barWidth int) string {
	t := theme.Active

	if rate < 0 {
		rate = 0
	}
	fill := 0.0
	if scaleMax > 0 {
		fill = min(rate/scaleMax, 1)
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForErrorRate(rate)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForErrorRate(rate))).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(fill) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", rate*100))
}
