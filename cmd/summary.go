package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Forecast totals, milestones and acquisition summary",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	fc, err := loadForecast(cmd)
	if err != nil {
		return err
	}
	if len(fc.Records) == 0 {
		fmt.Println("\n  Nothing to summarize.")
		return nil
	}
	s := pipeline.Summarize(fc.Records, fc.Scenario.Amount)
	runway := pipeline.Runway(fc.Records, fc.Config.General.RollingWindow)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SUMMARY  %s / %s  %d months",
		fc.Config.Loan.Scenario, fc.Config.Loan.Strategy, s.Months)))
	fmt.Println()

	collab := "freelance"
	if s.FinalFullTime {
		collab = "full-time"
	}

	rows := [][]string{
		{"Customers (final)", cli.FormatNumber(int64(s.FinalTotalCustomers))},
		{"  basic / pro / enterprise", fmt.Sprintf("%d / %d / %d",
			s.FinalCustomers[0], s.FinalCustomers[1], s.FinalCustomers[2])},
		{"Acquired / churned", fmt.Sprintf("%d / %d", s.AcquiredCustomers, s.ChurnedCustomers)},
		{"Websites delivered", cli.FormatNumber(int64(s.WebsitesCreated))},
		{"---"},
		{"SaaS revenue", cli.FormatEuro(s.TotalSaaSRevenue)},
		{"Website revenue", cli.FormatEuro(s.TotalWebsiteRevenue)},
		{"Total revenue", cli.FormatEuro(s.TotalRevenue)},
		{"Total costs", cli.FormatEuro(s.TotalCosts)},
		{"Total profit", cli.FormatEuro(s.TotalProfit)},
		{"Average margin", fmt.Sprintf("%.1f%%", s.AvgMargin)},
		{"Profitable months", fmt.Sprintf("%d of %d (%s)", s.PositiveMonths, s.Months,
			cli.FormatPercent(float64(s.PositiveMonths)/float64(max(s.Months, 1))))},
		{"Monthly revenue change", cli.FormatDelta(s.FinalRevenue, fc.Records[0].TotalRevenue)},
		{"---"},
		{"Final bank balance", cli.FormatEuro(s.FinalBankBalance)},
		{"Lowest cash position", cli.FormatEuro(s.LowestCashPosition)},
		{"Cumulative cash flow", cli.FormatEuro(s.CumulativeCashFlow)},
		{"Runway", cli.FormatRunway(runway.MonthsOfRunway)},
		{"---"},
		{"Designers (final / peak)", fmt.Sprintf("%d / %d", s.FinalDesigners, s.PeakDesigners)},
		{"Collaborator", fmt.Sprintf("%s, %s paid", collab, cli.FormatEuro(s.TotalCompensation))},
		{"Founder support", fmt.Sprintf("%s over %d months", cli.FormatEuro(s.TotalFounderSupport), s.SupportMonths)},
		{"Reinvested", fmt.Sprintf("%s in %d months", cli.FormatEuro(s.TotalReinvested), s.ReinvestmentMonths)},
	}
	if s.LoanAmount > 0 {
		rows = append(rows,
			[]string{"---"},
			[]string{"Loan", cli.FormatEuro(s.LoanAmount)},
			[]string{"Deployed / remaining", fmt.Sprintf("%s / %s",
				cli.FormatEuro(s.TotalInvested), cli.FormatEuro(s.RemainingFunds))},
			[]string{"Loan payments", cli.FormatEuro(s.TotalLoanPayments)},
			[]string{"ROI", fmt.Sprintf("%.1f%%", s.ROI)},
		)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	fmt.Println()

	fmt.Print(cli.RenderKeyValues("Milestones", [][2]string{
		{"Cash-flow positive", cli.FormatMonth(s.CashFlowPositiveMonth)},
		{"Break-even", cli.FormatMonth(s.BreakEvenMonth)},
		{"Founder support starts", cli.FormatMonth(s.SupportStartMonth)},
		{"Collaborator full-time", cli.FormatMonth(s.FullTimeMonth)},
	}))
	fmt.Println()

	channels := pipeline.AggregateChannels(fc.Records)
	chRows := make([][]string, 0, len(channels)+2)
	for _, ch := range channels {
		chRows = append(chRows, []string{
			ch.Channel,
			cli.FormatEuro(ch.Spend),
			cli.FormatNumber(int64(ch.Customers)),
			cli.FormatEuroCents(ch.AvgCAC),
			fmt.Sprintf("%.1f%%", ch.SharePercent),
		})
	}
	chRows = append(chRows,
		[]string{"---"},
		[]string{"TOTAL", cli.FormatEuro(s.TotalMarketingSpend),
			cli.FormatNumber(int64(s.MarketingCustomers)), cli.FormatEuroCents(s.AvgCAC), ""},
	)
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Marketing",
		Headers: []string{"Channel", "Spend", "Customers", "Avg CAC", "Share"},
		Rows:    chRows,
	}))
	fmt.Printf("  Organic customers: %s\n\n", cli.FormatNumber(int64(s.OrganicCustomers)))

	return nil
}
