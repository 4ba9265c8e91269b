// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Missing is shown for statistics with no input values.
const Missing = "-"

// FormatTokens formats a token count with human-readable suffixes.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M", 1234567890 -> "1.2B"
func FormatTokens(n float64) string {
	if math.IsNaN(n) {
		return Missing
	}
	abs := math.Abs(n)

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", n/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	default:
		return humanize.FormatFloat("#.", n)
	}
}

// FormatCost formats a USD cost value. Per-request costs are fractions of a
// cent, so small values keep four decimals.
func FormatCost(cost float64) string {
	if math.IsNaN(cost) {
		return Missing
	}
	if cost >= 1000 {
		return "$" + humanize.Comma(int64(math.Round(cost)))
	}
	if cost >= 100 {
		return fmt.Sprintf("$%.0f", cost)
	}
	if cost >= 1 {
		return fmt.Sprintf("$%.2f", cost)
	}
	return fmt.Sprintf("$%.4f", cost)
}

// FormatMs formats a latency in milliseconds.
func FormatMs(ms float64) string {
	if math.IsNaN(ms) {
		return Missing
	}
	if ms >= 10_000 {
		return fmt.Sprintf("%.1fs", ms/1000)
	}
	return humanize.FormatFloat("#,###.", ms) + "ms"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	if math.IsNaN(f) {
		return Missing
	}
	return fmt.Sprintf("%.1f%%", f*100)
}
