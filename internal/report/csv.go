// Package report writes forecast records as CSV sections.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/runway/internal/model"
)

// Section is one CSV file: a header and a row per month.
type Section struct {
	Name   string // file name, e.g. cash_flow.csv
	Header []string
	Row    func(model.MonthlyRecord) []string
}

// Money renders a currency amount rounded half away from zero to cents.
func Money(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

// Percent renders a percentage with one decimal.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).Round(1).StringFixed(1)
}

func itoa(n int) string { return strconv.Itoa(n) }

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Sections returns the sections that apply to a run. The reinvestment
// section needs at least one triggered month; loan sections need a loan.
func Sections(records []model.MonthlyRecord, loanAmount float64) []Section {
	out := []Section{
		customerGrowth(),
		websiteProduction(),
		financialPerformance(),
		teamOperations(),
		marketingAcquisition(channelNames(records)),
		cashFlow(),
	}
	for _, r := range records {
		if r.ReinvestmentTriggered {
			out = append(out, reinvestmentAnalysis())
			break
		}
	}
	if loanAmount > 0 {
		out = append(out, loanImpact(), loanInvestments())
	}
	return append(out, ledger(channelNames(records)))
}

// Write renders one section to w.
func Write(w io.Writer, sec Section, records []model.MonthlyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sec.Header); err != nil {
		return fmt.Errorf("writing %s header: %w", sec.Name, err)
	}
	for _, r := range records {
		if err := cw.Write(sec.Row(r)); err != nil {
			return fmt.Errorf("writing %s month %d: %w", sec.Name, r.Month, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAll writes every applicable section into dir and returns the paths written.
func WriteAll(dir string, records []model.MonthlyRecord, loanAmount float64) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report dir: %w", err)
	}

	var paths []string
	for _, sec := range Sections(records, loanAmount) {
		path := filepath.Join(dir, sec.Name)
		if err := writeFile(path, sec, records); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, sec Section, records []model.MonthlyRecord) (err error) {
	f, err := os.Create(path) //nolint:gosec // user-chosen export dir
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return Write(f, sec, records)
}

func channelNames(records []model.MonthlyRecord) []string {
	if len(records) == 0 {
		return nil
	}
	names := make([]string, 0, len(records[0].Channels))
	for _, c := range records[0].Channels {
		names = append(names, c.Name)
	}
	return names
}
