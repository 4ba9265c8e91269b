package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/llmsim/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	tests := []struct {
		total, n int
		want     []int
	}{
		{100, 4, []int{25, 25, 25, 25}},
		{10, 3, []int{4, 3, 3}},
		{7, 1, []int{7}},
		{5, 0, nil},
	}
	for _, tt := range tests {
		got := LayoutRow(tt.total, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
				break
			}
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Requests", Value: "500", Note: "12 rows dropped"},
		{Label: "Models", Value: "8"},
		{Label: "Total Cost", Value: "$12.34"},
	}, 91)

	lines := strings.Split(row, "\n")
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 91 {
			t.Errorf("line %d: width=%d, want 91", i, w)
		}
	}

	plain := ansi.Strip(row)
	for _, want := range []string{"Requests", "500", "12 rows dropped", "$12.34"} {
		if !strings.Contains(plain, want) {
			t.Errorf("metric row missing %q", want)
		}
	}
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}

	// Rows below the short card must still carry background styling.
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI styling: %q", i, lines[i])
		}
		if w := lipgloss.Width(lines[i]); w != 44 {
			t.Errorf("line %d: width=%d, want 44", i, w)
		}
	}
}

func TestContentCardTitle(t *testing.T) {
	theme.SetActive("flexoki-dark")

	plain := ansi.Strip(ContentCard("Errors by model", "gpt-4o  3", 40))
	lines := strings.Split(plain, "\n")
	if len(lines) != 4 {
		t.Fatalf("card lines = %d, want 4 (border, title, body, border)", len(lines))
	}
	if !strings.Contains(lines[1], "Errors by model") {
		t.Errorf("title line = %q", lines[1])
	}
	if got := CardInnerWidth(40); got != 36 {
		t.Errorf("CardInnerWidth(40) = %d, want 36", got)
	}
}
