package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTableLinesShareWidth(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Costs",
		Headers: []string{"Category", "Amount"},
		Rows: [][]string{
			{"marketing", FormatEuro(12500)},
			{"legal", FormatEuro(99.5)},
			{"---"},
			{"TOTAL", FormatEuro(12599.5)},
		},
	})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	// title, top rule, header, header rule, 2 rows, rule, total, bottom rule
	if len(lines) != 9 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	want := lipgloss.Width(lines[1])
	for i, line := range lines[1:] {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d: %q", i+1, w, want, line)
		}
	}
	if !strings.Contains(out, "€12,500") {
		t.Errorf("missing amount:\n%s", out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("empty table = %q", got)
	}
}

func TestRenderSparklineIncludesLosses(t *testing.T) {
	got := []rune(RenderSparkline([]float64{-100, 0, 100}))
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0] != '▁' || got[2] != '█' {
		t.Fatalf("sparkline = %q", string(got))
	}
}
