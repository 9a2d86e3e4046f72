package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the active run on the right.
func RenderStatusBar(width int, scenario, strategy string, seed int64, runTime string, running bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " [?]help  [r]eseed  [q]uit"
	right := fmt.Sprintf("%s · %s · seed %d", scenario, strategy, seed)
	switch {
	case running:
		right += " · running… "
	case runTime != "":
		right += " · " + runTime + " "
	default:
		right += " "
	}

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
