package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/llmsim/internal/cli"
	"github.com/theirongolddev/llmsim/internal/source"
	"github.com/theirongolddev/llmsim/internal/tui/components"
	"github.com/theirongolddev/llmsim/internal/tui/theme"
)

var costlyColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Request", Width: 12},
	{Title: "Model", Width: 20},
	{Title: "Status", Width: 15},
	{Title: "Prompt", Width: 8},
	{Title: "Compl.", Width: 8},
	{Title: "Latency", Width: 9},
	{Title: "Cost", Width: 10},
}

func newCostlyTable() table.Model {
	t := theme.Active

	tbl := table.New(
		table.WithColumns(costlyColumns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(t.Accent).
		BorderForeground(t.Border).
		BorderBottom(true).
		Bold(true)
	styles.Cell = styles.Cell.Foreground(t.TextPrimary)
	styles.Selected = styles.Selected.
		Foreground(t.TextPrimary).
		Background(t.SurfaceHover).
		Bold(true)
	tbl.SetStyles(styles)
	return tbl
}

// costlyRows turns top-cost dataset rows into table rows.
func costlyRows(rows []source.Row) []table.Row {
	out := make([]table.Row, len(rows))
	for i, row := range rows {
		id, _ := row.String("request_id")
		mdl := source.FormatValue(row["model"])
		status := source.FormatValue(row["status"])
		if reason, ok := row.String("error"); ok {
			status += " (" + reason + ")"
		}
		out[i] = table.Row{
			strconv.Itoa(i + 1),
			id,
			mdl,
			status,
			cli.FormatTokens(row.Float("prompt_tokens")),
			cli.FormatTokens(row.Float("completion_tokens")),
			cli.FormatMs(row.Float("latency_ms")),
			cli.FormatCost(row.Float("cost_usd")),
		}
	}
	return out
}

// resizeCostly fits the table into the content card for the current size.
func (a *App) resizeCostly() {
	// tab bar, status bar, card border + title, table header
	a.costly.SetHeight(max(a.contentHeight()-5, 3))
	a.costly.SetWidth(components.CardInnerWidth(a.contentWidth()))
}

func (a App) renderCostlyTab(cw int) string {
	t := theme.Active
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	title := fmt.Sprintf("Top %d requests by cost", len(a.data.Top))
	if len(a.data.Top) == 0 {
		return components.ContentCard(title, hint.Render("No requests with a cost."), cw)
	}

	pos := fmt.Sprintf("%d/%d  j/k to move", a.costly.Cursor()+1, len(a.data.Top))
	return components.ContentCard(title+"  "+hint.Render(pos), a.costly.View(), cw)
}
