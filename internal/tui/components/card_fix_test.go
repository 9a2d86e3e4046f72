package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/runway/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowPadsShortCards(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}

	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no background styling: %q", i, lines[i])
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Revenue", Value: "€12,000"},
		{Label: "Profit", Value: "-€300", Color: theme.Active.Red},
		{Label: "Customers", Value: "42", Note: "+5 this month"},
	}, 90)

	if w := lipgloss.Width(row); w != 90 {
		t.Fatalf("row width = %d, want 90", w)
	}
	if !strings.Contains(row, "Customers") {
		t.Fatal("missing card label")
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		sum := 0
		for _, w := range LayoutRow(100, n) {
			sum += w
		}
		if sum != 100 {
			t.Errorf("n=%d: widths sum to %d", n, sum)
		}
	}
	if LayoutRow(100, 0) != nil {
		t.Error("n=0 should return nil")
	}
}

func TestBarChartHandlesLosses(t *testing.T) {
	out := BarChart([]float64{-500, 200, 1000}, []string{"Jan", "Feb", "Mar"}, theme.Active.Blue, 40, 6)
	if out == "" {
		t.Fatal("empty chart")
	}
	if !strings.Contains(out, "Jan") {
		t.Fatalf("missing x-axis label:\n%s", out)
	}
}

func TestTabVisualWidth(t *testing.T) {
	tab := Tabs[0]
	if got, want := TabVisualWidth(tab, true), len(tab.Name)+2; got != want {
		t.Errorf("active width = %d, want %d", got, want)
	}
	if got, want := TabVisualWidth(tab, false), len(tab.Name)+4; got != want {
		t.Errorf("inactive width = %d, want %d", got, want)
	}
	if TabIdxByKey('l') != 4 || TabIdxByKey('z') != -1 {
		t.Error("TabIdxByKey mismatch")
	}
}

func TestCompactAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.5, "0.50"},
		{400, "400"},
		{1200, "1.2k"},
		{2000, "2k"},
		{3500000, "3.5M"},
	}
	for _, tt := range tests {
		if got := compactAmount(tt.in); got != tt.want {
			t.Errorf("compactAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestYScaleCoversPeak(t *testing.T) {
	for _, peak := range []float64{1, 37, 1000, 48250} {
		y := newYScale(peak, 8)
		if y.top < peak {
			t.Errorf("peak %v: top %v below peak", peak, y.top)
		}
		if y.ticks > 4 {
			t.Errorf("peak %v: %d ticks for height 8", peak, y.ticks)
		}
		if y.label(y.rows()) == "" {
			t.Errorf("peak %v: no label on top row", peak)
		}
	}
}

func TestBarSeriesSampleKeepsEnds(t *testing.T) {
	s := newBarSeries([]float64{1, -2, 3, 4, -5}, []string{"a", "b", "c", "d", "e"})
	got := s.sample(3)
	if got.mag[0] != 1 || got.mag[2] != 5 || !got.loss[2] {
		t.Fatalf("sample = %+v", got)
	}
	if got.labels[0] != "a" || got.labels[2] != "e" {
		t.Fatalf("labels = %v", got.labels)
	}
}

func TestXAxisLabelsSkipCollisions(t *testing.T) {
	line := xAxisLabels([]string{"Jan26", "Feb", "Mar", "Apr", "May"}, 3, 14)
	if !strings.HasPrefix(line, "Jan26") {
		t.Fatalf("line = %q", line)
	}
	if strings.Contains(line, "Feb") {
		t.Fatalf("Feb should collide with Jan26: %q", line)
	}
	if !strings.HasSuffix(line, "May") {
		t.Fatalf("last label missing: %q", line)
	}
}
