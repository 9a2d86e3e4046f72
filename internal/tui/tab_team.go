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

func (a App) renderTeamTab(cw int) string {
	t := theme.Active
	s := a.summary
	var b strings.Builder

	collab := "freelance"
	if s.FinalFullTime {
		collab = "full-time"
	}
	cards := []components.Metric{
		{Label: "Designers", Value: fmt.Sprintf("%d", s.FinalDesigners),
			Note: fmt.Sprintf("peak %d, avg %.1f", s.PeakDesigners, s.AvgDesigners)},
		{Label: "Designer costs", Value: cli.FormatEuro(s.TotalDesignerCosts)},
		{Label: "Collaborator", Value: collab,
			Note: cli.FormatEuro(s.TotalCompensation) + " paid"},
		{Label: "Founder support", Value: cli.FormatEuro(s.TotalFounderSupport),
			Note: fmt.Sprintf("%d months", s.SupportMonths)},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	designers := series(a.records, func(r model.MonthlyRecord) float64 { return float64(r.Designers) })
	b.WriteString(components.ContentCard("Designers",
		components.BarChart(designers, monthLabels(a.records), t.Yellow, components.CardInnerWidth(cw), 6), cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)

	// Utilization gauges for the last months
	innerW := components.CardInnerWidth(halves[0])
	barW := max(innerW-30, 8)
	var utilBody strings.Builder
	recent := a.records
	if len(recent) > 6 {
		recent = recent[len(recent)-6:]
	}
	for i, r := range recent {
		note := fmt.Sprintf("%d/%d %s", r.Designers, r.RequiredDesigners, r.StaffingAction)
		utilBody.WriteString(components.GaugeBar(r.Label(), r.Utilization, components.ColorForLoad(r.Utilization), note, 7, barW))
		if i < len(recent)-1 {
			utilBody.WriteString("\n")
		}
	}

	// Staffing events
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	hireStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	fireStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	urgentStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	var events []string
	for _, r := range a.records {
		switch r.StaffingAction {
		case model.StaffHire:
			events = append(events, hireStyle.Render(fmt.Sprintf("%s  hire → %d", r.Label(), r.Designers)))
		case model.StaffEmergencyHire:
			events = append(events, urgentStyle.Render(fmt.Sprintf("%s  emergency hire → %d", r.Label(), r.Designers)))
		case model.StaffFire:
			events = append(events, fireStyle.Render(fmt.Sprintf("%s  release → %d", r.Label(), r.Designers)))
		}
		if r.PersonnelHire {
			events = append(events, hireStyle.Render(fmt.Sprintf("%s  reinvestment hire", r.Label())))
		}
	}
	if s.FullTimeMonth > 0 {
		events = append(events, labelStyle.Render(fmt.Sprintf("month %d  collaborator goes full-time", s.FullTimeMonth)))
	}
	if len(events) == 0 {
		events = []string{labelStyle.Render("no staffing changes")}
	}
	if len(events) > 8 {
		events = events[len(events)-8:]
	}

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Utilization", utilBody.String(), halves[0]),
		components.ContentCard("Staffing Events", strings.Join(events, "\n"), halves[1]),
	}))

	return b.String()
}
