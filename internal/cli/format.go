// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatEuro formats a currency amount with a euro sign and thousands separators.
// e.g., 1234.5 -> "€1,235", 99.5 -> "€99.50", -2100 -> "-€2,100"
func FormatEuro(v float64) string {
	if v < 0 {
		return "-" + FormatEuro(-v)
	}
	if v >= 1000 {
		return "€" + FormatNumber(int64(math.Round(v)))
	}
	return printer.Sprintf("€%.2f", v)
}

// FormatEuroCents always keeps two decimals.
func FormatEuroCents(v float64) string {
	if v < 0 {
		return "-" + FormatEuroCents(-v)
	}
	return printer.Sprintf("€%.2f", v)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats a change in euros with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatEuro(delta)
	}
	return FormatEuro(delta)
}

// FormatMonth formats a 1-based month index, or "never" for 0.
func FormatMonth(m int) string {
	if m <= 0 {
		return "never"
	}
	return fmt.Sprintf("month %d", m)
}

// FormatRunway formats a runway estimate in months; negative means not burning.
func FormatRunway(months float64) string {
	if months < 0 {
		return "not burning"
	}
	return fmt.Sprintf("%.1f months", months)
}
