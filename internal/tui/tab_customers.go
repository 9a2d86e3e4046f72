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

func (a App) renderCustomersTab(cw int) string {
	t := theme.Active
	s := a.summary
	var b strings.Builder

	cards := []components.Metric{
		{Label: "Customers", Value: cli.FormatNumber(int64(s.FinalTotalCustomers)), Color: t.Cyan},
		{Label: "From marketing", Value: cli.FormatNumber(int64(s.MarketingCustomers)),
			Note: "avg CAC " + cli.FormatEuro(s.AvgCAC)},
		{Label: "Organic", Value: cli.FormatNumber(int64(s.OrganicCustomers))},
		{Label: "Websites", Value: cli.FormatNumber(int64(s.WebsitesCreated)),
			Note: cli.FormatEuro(s.TotalWebsiteRevenue) + " revenue"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	customers := series(a.records, func(r model.MonthlyRecord) float64 { return float64(r.TotalCustomers) })
	b.WriteString(components.ContentCard("Active Customers",
		components.BarChart(customers, monthLabels(a.records), t.Cyan, components.CardInnerWidth(cw), 8), cw))
	b.WriteString("\n")

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	halves := components.LayoutRow(cw, 2)

	// Tiers
	var tierBody strings.Builder
	tierBody.WriteString(headerStyle.Render(fmt.Sprintf("%-11s %8s %8s %8s %7s", "Tier", "Active", "Gained", "Churned", "Share")))
	tierBody.WriteString("\n")
	for i, ts := range a.tiers {
		nameStyle := lipgloss.NewStyle().Foreground(t.TierColor(i)).Background(t.Surface)
		tierBody.WriteString(nameStyle.Render(fmt.Sprintf("%-11s", ts.Tier)))
		tierBody.WriteString(valueStyle.Render(fmt.Sprintf(" %8d %8d %8d", ts.Customers, ts.Acquired, ts.Churned)))
		tierBody.WriteString(mutedStyle.Render(fmt.Sprintf(" %6.1f%%", ts.SharePercent)))
		if i < len(a.tiers)-1 {
			tierBody.WriteString("\n")
		}
	}

	// Channels
	innerW := components.CardInnerWidth(halves[1])
	nameW := max(innerW-30, 10)
	var chanBody strings.Builder
	chanBody.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %10s %8s %10s", nameW, "Channel", "Spend", "Cust.", "CAC")))
	chanBody.WriteString("\n")
	for i, c := range a.channels {
		chanBody.WriteString(valueStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(c.Channel, nameW))))
		chanBody.WriteString(mutedStyle.Render(fmt.Sprintf(" %10s %8d %10s",
			cli.FormatEuro(c.Spend), c.Customers, cli.FormatEuro(c.AvgCAC))))
		if i < len(a.channels)-1 {
			chanBody.WriteString("\n")
		}
	}

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Tiers", tierBody.String(), halves[0]),
		components.ContentCard("Marketing Channels", chanBody.String(), halves[1]),
	}))
	b.WriteString("\n")

	// Quarters
	var qBody strings.Builder
	qBody.WriteString(headerStyle.Render(fmt.Sprintf("%-9s %8s %8s %8s %9s", "Quarter", "New", "Churned", "End", "Websites")))
	for _, q := range a.quarters {
		qBody.WriteString("\n")
		qBody.WriteString(valueStyle.Render(fmt.Sprintf("%-9s %8d %8d %8d %9d",
			q.Label, q.NewCustomers, q.Churned, q.EndCustomers, q.NewWebsites)))
	}
	b.WriteString(components.ContentCard("By Quarter", qBody.String(), cw))

	return b.String()
}
