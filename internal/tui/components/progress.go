package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a share (0-1) as a block bar with its percentage.
// Higher is better: low shares show red, high shares green.
func ProgressBar(share float64, width int) string {
	t := theme.Active
	share = max(0, min(share, 1))
	filled := int(math.Round(share * float64(width)))

	color := t.Green
	switch {
	case share < 0.25:
		color = t.Red
	case share < 0.5:
		color = t.Orange
	case share < 0.75:
		color = t.Yellow
	}

	bar := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	track := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return bar.Render(strings.Repeat("█", filled)) +
		track.Render(strings.Repeat("░", width-filled)) +
		bar.Bold(true).Render(fmt.Sprintf(" %.0f%%", share*100))
}

// ColorForLoad returns green/yellow/orange/red for a designer utilization.
// Utilization above 1 means the team is overloaded.
func ColorForLoad(util float64) string {
	t := theme.Active
	switch {
	case util > 1:
		return string(t.Red)
	case util >= 0.9:
		return string(t.Orange)
	case util >= 0.6:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// GaugeBar renders a labelled gauge. pct is clamped to 0..1 for the bar;
// note is printed after the percentage.
func GaugeBar(label string, pct float64, color string, note string, labelW, barWidth int) string {
	t := theme.Active

	shown := max(0, min(pct, 1))

	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Background(t.Surface).Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(shown) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100)) +
		spaceStyle.Render("  ") +
		noteStyle.Render(note)
}
