package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderFinanceTab(cw int) string {
	t := theme.Active
	s := a.summary
	var b strings.Builder

	cards := []components.Metric{
		{Label: "Total costs", Value: cli.FormatEuro(s.TotalCosts), Color: t.Orange},
		{Label: "Avg margin", Value: fmt.Sprintf("%.1f%%", s.AvgMargin), Color: t.Signed(s.AvgMargin)},
		{Label: "Cumulative cash flow", Value: cli.FormatEuro(s.CumulativeCashFlow), Color: t.Signed(s.CumulativeCashFlow)},
		{Label: "Avg net cash flow", Value: cli.FormatEuro(a.runway.AvgNetCashFlow),
			Note: fmt.Sprintf("last %d months", a.cfg.General.RollingWindow), Color: t.Signed(a.runway.AvgNetCashFlow)},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)

	// Cost breakdown bars
	innerW := components.CardInnerWidth(halves[0])
	nameW := 16
	amountW := 10
	barW := max(innerW-nameW-amountW-2, 4)

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var costBody strings.Builder
	top := 0.0
	if len(a.costLines) > 0 {
		top = a.costLines[0].Amount
	}
	for i, line := range a.costLines {
		if line.Amount <= 0 {
			continue
		}
		n := 0
		if top > 0 {
			n = int(line.Amount / top * float64(barW))
		}
		costBody.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(line.Category, nameW))))
		costBody.WriteString(barStyle.Render(strings.Repeat("█", n)))
		costBody.WriteString(spaceStyle.Render(strings.Repeat(" ", barW-n+1)))
		costBody.WriteString(amountStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatEuro(line.Amount))))
		if i < len(a.costLines)-1 {
			costBody.WriteString("\n")
		}
	}

	// Cash position sparkline + runway
	bank := series(a.records, func(r model.MonthlyRecord) float64 { return r.BankBalance })
	cash := series(a.records, func(r model.MonthlyRecord) float64 { return r.NetCashFlow })
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	var cashBody strings.Builder
	cashBody.WriteString(labelStyle.Render("bank      "))
	cashBody.WriteString(components.Sparkline(bank, t.Signed(s.FinalBankBalance)))
	cashBody.WriteString("\n")
	cashBody.WriteString(labelStyle.Render("cash flow "))
	cashBody.WriteString(components.Sparkline(cash, t.Blue))
	cashBody.WriteString("\n\n")
	cashBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", "lowest balance")))
	cashBody.WriteString(nameStyle.Render(fmt.Sprintf("%s (month %d)", cli.FormatEuro(a.runway.LowestBalance), a.runway.LowestMonth)))
	cashBody.WriteString("\n")
	cashBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", "runway")))
	cashBody.WriteString(nameStyle.Render(cli.FormatRunway(a.runway.MonthsOfRunway)))
	cashBody.WriteString("\n")
	cashBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", "loan payments")))
	cashBody.WriteString(nameStyle.Render(cli.FormatEuro(s.TotalLoanPayments)))

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Cost Breakdown  "+cli.FormatEuro(a.costTotals.Total), costBody.String(), halves[0]),
		components.ContentCard("Cash", cashBody.String(), halves[1]),
	}))
	b.WriteString("\n")

	// Quarterly P&L
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	var qBody strings.Builder
	qBody.WriteString(headerStyle.Render(fmt.Sprintf("%-9s %12s %12s %12s", "Quarter", "Revenue", "Costs", "Profit")))
	for _, q := range a.quarters {
		qBody.WriteString("\n")
		qBody.WriteString(nameStyle.Render(fmt.Sprintf("%-9s %12s %12s ", q.Label, cli.FormatEuro(q.Revenue), cli.FormatEuro(q.Costs))))
		profitStyle := lipgloss.NewStyle().Foreground(t.Signed(q.Profit)).Background(t.Surface)
		qBody.WriteString(profitStyle.Render(fmt.Sprintf("%12s", cli.FormatEuro(q.Profit))))
	}
	b.WriteString(components.ContentCard("Quarterly P&L", qBody.String(), cw))

	return b.String()
}
