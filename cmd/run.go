package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/pipeline"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Month-by-month forecast table",
	RunE:  runMonthly,
}

var flagFrom, flagTo int

func init() {
	runCmd.Flags().IntVar(&flagFrom, "from", 1, "First month to show")
	runCmd.Flags().IntVar(&flagTo, "to", 0, "Last month to show (default: horizon)")
	rootCmd.AddCommand(runCmd)
}

func runMonthly(cmd *cobra.Command, _ []string) error {
	fc, err := loadForecast(cmd)
	if err != nil {
		return err
	}

	records := pipeline.FilterByMonth(fc.Records, flagFrom, flagTo)
	if len(records) == 0 {
		fmt.Println("\n  No months in the selected range.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FORECAST  %s / %s  %d months",
		fc.Config.Loan.Scenario, fc.Config.Loan.Strategy, len(fc.Records))))
	fmt.Println()

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Month),
			r.Label(),
			cli.FormatNumber(int64(r.TotalCustomers)),
			fmt.Sprintf("+%d/-%d", r.NewCustomersTotal, r.ChurnedTotal),
			fmt.Sprintf("%d", r.Designers),
			cli.FormatEuro(r.TotalRevenue),
			cli.FormatEuro(r.TotalCosts),
			cli.Signed(r.Profit),
			cli.FormatEuro(r.BankBalance),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Month", "Customers", "Flow", "Design", "Revenue", "Costs", "Profit", "Bank"},
		Rows:    rows,
	}))

	profit := make([]float64, len(records))
	bank := make([]float64, len(records))
	for i, r := range records {
		profit[i] = r.Profit
		bank[i] = r.BankBalance
	}
	fmt.Printf("\n  Profit  %s\n", cli.RenderSparkline(profit))
	fmt.Printf("  Bank    %s\n\n", cli.RenderSparkline(bank))
	return nil
}
