package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/pipeline"

	"github.com/spf13/cobra"
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Cost breakdown by category and quarter",
	RunE:  runCosts,
}

func init() {
	rootCmd.AddCommand(costsCmd)
}

func runCosts(cmd *cobra.Command, _ []string) error {
	fc, err := loadForecast(cmd)
	if err != nil {
		return err
	}
	totals, lines := pipeline.AggregateCostBreakdown(fc.Records)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("COST BREAKDOWN  %d months", len(fc.Records))))
	fmt.Println()

	rows := make([][]string, 0, len(lines)+2)
	for _, line := range lines {
		if line.Amount == 0 {
			continue
		}
		rows = append(rows, []string{line.Category, cli.FormatEuro(line.Amount), fmt.Sprintf("%.1f%%", line.SharePercent)})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", cli.FormatEuro(totals.Total), ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Category",
		Headers: []string{"Category", "Amount", "Share"},
		Rows:    rows,
	}))
	if totals.Server > 0 {
		fmt.Printf("  Server costs (in variable): %s\n", cli.FormatEuro(totals.Server))
	}
	fmt.Println()

	// Top categories as bars
	top := lines
	if len(top) > 5 {
		top = top[:5]
	}
	if len(top) > 0 && top[0].Amount > 0 {
		for _, line := range top {
			fmt.Println(cli.RenderHorizontalBar(fmt.Sprintf("%-16s", line.Category), line.Amount, top[0].Amount, 30))
		}
		fmt.Println()
	}

	quarters := pipeline.AggregateQuarters(fc.Records)
	qRows := make([][]string, 0, len(quarters))
	for _, q := range quarters {
		qRows = append(qRows, []string{
			q.Label,
			cli.FormatEuro(q.Revenue),
			cli.FormatEuro(q.Costs),
			cli.FormatEuro(q.Profit),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Quarter",
		Headers: []string{"Quarter", "Revenue", "Costs", "Profit"},
		Rows:    qRows,
	}))
	fmt.Println()

	return nil
}
