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

var drawCategories = []string{
	model.DrawLegalSetup,
	model.DrawInfrastructureSetup,
	model.DrawMarketingBoost,
	model.DrawFounderSupport,
	model.DrawOperatingDeficit,
}

func (a App) renderLoanTab(cw int) string {
	t := theme.Active
	p := a.plan
	s := a.summary

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if p.Scenario.Amount <= 0 {
		return components.ContentCard("Loan", mutedStyle.Render(
			fmt.Sprintf("Scenario %q carries no loan. Press n to cycle scenarios.", a.cfg.Loan.Scenario)), cw)
	}

	var b strings.Builder
	cards := []components.Metric{
		{Label: "Principal", Value: cli.FormatEuro(p.Scenario.Amount),
			Note: fmt.Sprintf("%.2f%% over %d months", p.Scenario.AnnualRate*100, p.Scenario.TermMonths), Color: t.Magenta},
		{Label: "Net after fee", Value: cli.FormatEuro(p.Net), Note: "fee " + cli.FormatEuro(p.SetupFee)},
		{Label: "Repaid so far", Value: cli.FormatEuro(s.TotalLoanPayments)},
		{Label: "ROI", Value: fmt.Sprintf("%.1f%%", s.ROI), Color: t.Signed(s.ROI)},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	labelStyle := mutedStyle
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	row := func(sb *strings.Builder, label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", label)))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteString("\n")
	}

	// Allocation and unlocked benefits
	var alloc strings.Builder
	alloc.WriteString(headerStyle.Render(p.Allocation.Strategy))
	alloc.WriteString("\n")
	row(&alloc, "marketing", cli.FormatEuro(p.Allocation.Marketing))
	row(&alloc, "team", cli.FormatEuro(p.Allocation.Team))
	row(&alloc, "infrastructure", cli.FormatEuro(p.Allocation.Infrastructure))
	row(&alloc, "reserve", cli.FormatEuro(p.Allocation.Reserve))
	row(&alloc, "founder", cli.FormatEuro(p.Allocation.Founder))
	alloc.WriteString("\n")
	row(&alloc, "infra tier", orNone(p.Benefits.InfrastructureTier))
	row(&alloc, "team tier", orNone(p.Benefits.TeamTier))
	row(&alloc, "founder tier", orNone(p.Benefits.FounderTier))

	// Ledger
	innerW := components.CardInnerWidth(halves[1])
	var ledger strings.Builder
	rate := 0.0
	if p.Net > 0 {
		rate = s.TotalInvested / p.Net
	}
	ledger.WriteString(components.GaugeBar("deployed", rate, string(t.Magenta),
		cli.FormatEuro(s.RemainingFunds)+" left", 9, max(innerW-30, 8)))
	ledger.WriteString("\n\n")
	for _, cat := range drawCategories {
		var total float64
		for _, r := range a.records {
			total += r.DrawAmount(cat)
		}
		row(&ledger, cat, cli.FormatEuro(total))
	}

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Allocation", strings.TrimSuffix(alloc.String(), "\n"), halves[0]),
		components.ContentCard("Deployment Ledger", strings.TrimSuffix(ledger.String(), "\n"), halves[1]),
	}))
	b.WriteString("\n")

	balance := series(a.records, func(r model.MonthlyRecord) float64 { return r.LoanBalance })
	payments := series(a.records, func(r model.MonthlyRecord) float64 { return r.LoanPayment })
	var trend strings.Builder
	trend.WriteString(labelStyle.Render("balance  "))
	trend.WriteString(components.Sparkline(balance, t.Magenta))
	trend.WriteString(valueStyle.Render("  " + cli.FormatEuro(lastOf(balance))))
	trend.WriteString("\n")
	trend.WriteString(labelStyle.Render("payment  "))
	trend.WriteString(components.Sparkline(payments, t.Orange))
	trend.WriteString(valueStyle.Render("  " + cli.FormatEuro(lastOf(payments)) + "/mo"))
	b.WriteString(components.ContentCard("Repayment", trend.String(), cw))

	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func lastOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return v[len(v)-1]
}
