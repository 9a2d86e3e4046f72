package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values scaled between
// min(0, lowest) and the highest value.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := 0.0, values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		idx = max(0, min(idx, len(blocks)-1))
		buf.WriteRune(blocks[idx]) //nolint:gosec // bounds checked above
	}

	return style.Render(buf.String())
}

// barSeries is a month series prepared for BarChart. Bars show magnitudes;
// loss marks the months whose value was negative.
type barSeries struct {
	mag    []float64
	loss   []bool
	labels []string // nil when labels do not line up with values
}

func newBarSeries(values []float64, labels []string) barSeries {
	s := barSeries{
		mag:  make([]float64, len(values)),
		loss: make([]bool, len(values)),
	}
	for i, v := range values {
		s.mag[i] = math.Abs(v)
		s.loss[i] = v < 0
	}
	if len(labels) == len(values) {
		s.labels = labels
	}
	return s
}

func (s barSeries) peak() float64 {
	p := 0.0
	for _, v := range s.mag {
		p = max(p, v)
	}
	return p
}

// sample keeps n evenly spaced months, first and last included. n >= 2.
func (s barSeries) sample(n int) barSeries {
	out := barSeries{mag: make([]float64, n), loss: make([]bool, n)}
	if s.labels != nil {
		out.labels = make([]string, n)
	}
	last := len(s.mag) - 1
	for i := range n {
		src := i * last / (n - 1)
		out.mag[i] = s.mag[src]
		out.loss[i] = s.loss[src]
		if s.labels != nil {
			out.labels[i] = s.labels[src]
		}
	}
	return out
}

// yScale maps amounts to chart rows using round tick steps.
type yScale struct {
	step        float64
	top         float64
	ticks       int
	rowsPerTick int
}

func newYScale(peak float64, height int) yScale {
	if peak <= 0 {
		peak = 1
	}
	step := niceStep(peak)
	maxTicks := max(height/2, 2)
	for math.Ceil(peak/step) > float64(maxTicks) {
		step *= 2
	}
	ticks := max(int(math.Ceil(peak/step)), 1)
	return yScale{
		step:        step,
		top:         float64(ticks) * step,
		ticks:       ticks,
		rowsPerTick: max(height/ticks, 2),
	}
}

func (y yScale) rows() int { return y.ticks * y.rowsPerTick }

// label returns the tick label for a row, or "" between ticks.
func (y yScale) label(row int) string {
	if row%y.rowsPerTick != 0 {
		return ""
	}
	return compactAmount(y.step * float64(row/y.rowsPerTick))
}

// BarChart renders a month series as vertical bars. Negative months are
// drawn by magnitude in the theme's loss color.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	s := newBarSeries(values, labels)
	y := newYScale(s.peak(), height)
	labelW := max(len(compactAmount(y.top))+1, 4)
	plotW := max(width-labelW-1, 5)

	n := len(s.mag)
	barW, gap := plotW, 0
	if n > 1 {
		gap = 1
		barW = (plotW - (n - 1)) / n
		if barW < 2 {
			s = s.sample(max((plotW+1)/3, 2))
			n = len(s.mag)
			barW = 2
		}
	}
	barW = min(barW, 6)
	axisLen := n*barW + (n-1)*gap

	blank := lipgloss.NewStyle().Background(t.Surface)
	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	loss := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	var b strings.Builder
	rows := y.rows()
	for row := rows; row >= 1; row-- {
		hi := y.top * float64(row) / float64(rows)
		lo := y.top * float64(row-1) / float64(rows)
		bar := lipgloss.NewStyle().Foreground(barShade(t, color, float64(row)/float64(rows))).Background(t.Surface)

		b.WriteString(axis.Render(fmt.Sprintf("%*s│", labelW, y.label(row))))
		for i, v := range s.mag {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			style := bar
			if s.loss[i] {
				style = loss
			}
			b.WriteString(barCell(v, lo, hi, barW, style, blank))
		}
		b.WriteString("\n")
	}

	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", labelW, "0", strings.Repeat("─", axisLen))))
	if line := xAxisLabels(s.labels, barW+gap, axisLen); line != "" {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", labelW+1)))
		b.WriteString(axis.Render(line))
	}
	return b.String()
}

// barShade brightens the top of the chart.
func barShade(t theme.Theme, base lipgloss.Color, height float64) lipgloss.Color {
	switch {
	case height > 0.8:
		return t.AccentBright
	case height > 0.5:
		return base
	default:
		return t.Accent
	}
}

// barCell renders one bar's slice of a row spanning (lo, hi].
func barCell(v, lo, hi float64, w int, bar, empty lipgloss.Style) string {
	eighths := []rune(" ▁▂▃▄▅▆▇█")
	switch {
	case v >= hi:
		return bar.Render(strings.Repeat("█", w))
	case v > lo:
		idx := min(max(int((v-lo)/(hi-lo)*8), 1), 8)
		return bar.Render(strings.Repeat(string(eighths[idx]), w))
	}
	return empty.Render(strings.Repeat(" ", w))
}

// xAxisLabels lays month labels under their bars, skipping any that would
// collide. The last month is always attempted.
func xAxisLabels(labels []string, pitch, axisLen int) string {
	n := len(labels)
	if n == 0 || axisLen <= 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", axisLen))
	free := 0

	step := max(1, n*8/(axisLen+1))
	for i := 0; i < n; i += step {
		pos := i * pitch
		if pos < free || pos >= axisLen {
			continue
		}
		lbl := []rune(labels[i])
		end := min(pos+len(lbl), axisLen)
		if end-pos < 3 {
			continue
		}
		copy(line[pos:end], lbl)
		free = end + 1
	}

	if n > 1 {
		lbl := []rune(labels[n-1])
		pos := min((n-1)*pitch, axisLen-len(lbl))
		if pos >= free && pos >= 0 {
			copy(line[pos:], lbl)
		}
	}
	return strings.TrimRight(string(line), " ")
}

// niceStep picks a 1, 2 or 5 x 10^k tick step giving about five ticks.
func niceStep(peak float64) float64 {
	rough := peak / 5
	mag := math.Pow(10, math.Floor(math.Log10(rough)))
	switch r := rough / mag; {
	case r < 1.5:
		return mag
	case r < 3.5:
		return 2 * mag
	}
	return 5 * mag
}

// compactAmount shortens axis amounts: 1500 -> 1.5k, 2000000 -> 2M.
func compactAmount(v float64) string {
	units := []struct {
		div    float64
		suffix string
	}{{1e9, "B"}, {1e6, "M"}, {1e3, "k"}}
	for _, u := range units {
		if v >= u.div {
			q := v / u.div
			if q == math.Trunc(q) {
				return fmt.Sprintf("%.0f%s", q, u.suffix)
			}
			return fmt.Sprintf("%.1f%s", q, u.suffix)
		}
	}
	if v >= 1 || v == 0 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
