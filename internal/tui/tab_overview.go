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

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.summary
	var b strings.Builder

	// Row 1: headline cards
	cards := []components.Metric{
		{Label: "Revenue", Value: cli.FormatEuro(s.TotalRevenue),
			Note: cli.FormatEuro(s.FinalRevenue) + " last month", Color: t.Blue},
		{Label: "Profit", Value: cli.FormatEuro(s.TotalProfit),
			Note: fmt.Sprintf("%d/%d months positive", s.PositiveMonths, s.Months), Color: t.Signed(s.TotalProfit)},
		{Label: "Customers", Value: cli.FormatNumber(int64(s.FinalTotalCustomers)),
			Note: fmt.Sprintf("+%d / -%d churned", s.AcquiredCustomers, s.ChurnedCustomers), Color: t.Cyan},
		{Label: "Bank", Value: cli.FormatEuro(s.FinalBankBalance),
			Note: "low " + cli.FormatEuro(s.LowestCashPosition), Color: t.Signed(s.FinalBankBalance)},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: revenue and profit charts
	labels := monthLabels(a.records)
	revenue := series(a.records, func(r model.MonthlyRecord) float64 { return r.TotalRevenue })
	profit := series(a.records, func(r model.MonthlyRecord) float64 { return r.Profit })

	chartH := 8
	if a.isCompactLayout() {
		chartH = 6
		b.WriteString(components.ContentCard("Monthly Revenue",
			components.BarChart(revenue, labels, t.Blue, components.CardInnerWidth(cw), chartH), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Monthly Profit",
			components.BarChart(profit, labels, t.Green, components.CardInnerWidth(cw), chartH), cw))
		b.WriteString("\n")
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Monthly Revenue",
				components.BarChart(revenue, labels, t.Blue, components.CardInnerWidth(halves[0]), chartH), halves[0]),
			components.ContentCard("Monthly Profit",
				components.BarChart(profit, labels, t.Green, components.CardInnerWidth(halves[1]), chartH), halves[1]),
		}))
		b.WriteString("\n")
	}

	// Row 3: milestones + validation
	halves := components.LayoutRow(cw, 2)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	milestones := [][2]string{
		{"Break-even", cli.FormatMonth(s.BreakEvenMonth)},
		{"Cash-flow positive", cli.FormatMonth(s.CashFlowPositiveMonth)},
		{"Collaborator full-time", cli.FormatMonth(s.FullTimeMonth)},
		{"Founder support starts", cli.FormatMonth(s.SupportStartMonth)},
		{"Runway", cli.FormatRunway(a.runway.MonthsOfRunway)},
	}
	var mBody strings.Builder
	for _, m := range milestones {
		mBody.WriteString(labelStyle.Render(fmt.Sprintf("%-24s", m[0])))
		mBody.WriteString(valueStyle.Render(m[1]))
		mBody.WriteString("\n")
	}
	share := 0.0
	if s.Months > 0 {
		share = float64(s.PositiveMonths) / float64(s.Months)
	}
	mBody.WriteString(labelStyle.Render(fmt.Sprintf("%-24s", "Profitable months")))
	mBody.WriteString(components.ProgressBar(share, max(components.CardInnerWidth(halves[0])-30, 6)))

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Milestones", mBody.String(), halves[0]),
		components.ContentCard("Checks", a.renderChecks(components.CardInnerWidth(halves[1])), halves[1]),
	}))

	return b.String()
}

// renderChecks lists validation findings, errors first.
func (a App) renderChecks(innerW int) string {
	t := theme.Active
	okStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	errs := a.report.Errors()
	warns := a.report.Warnings()
	if len(errs) == 0 && len(warns) == 0 {
		return okStyle.Render("✓ all checks passed")
	}

	const limit = 4
	var lines []string
	for _, v := range errs {
		lines = append(lines, errStyle.Render(truncStr("✗ "+violationText(v), innerW)))
	}
	for _, v := range warns {
		lines = append(lines, warnStyle.Render(truncStr("! "+violationText(v), innerW)))
	}
	if len(lines) > limit {
		extra := len(lines) - limit
		lines = append(lines[:limit], dimStyle.Render(fmt.Sprintf("  … %d more", extra)))
	}
	return strings.Join(lines, "\n")
}

func violationText(v model.Violation) string {
	if v.Month > 0 {
		return fmt.Sprintf("M%d %s", v.Month, v.Message)
	}
	return v.Message
}
