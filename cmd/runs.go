package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/pipeline"
	"github.com/theirongolddev/runway/internal/store"

	"github.com/spf13/cobra"
)

var flagRunsDB string

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List, show and delete runs stored with export --db",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	runsCmd.PersistentFlags().StringVar(&flagRunsDB, "db", "runway.db", "SQLite file with stored runs")
	runsCmd.AddCommand(runsShowCmd, runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

func openRuns() (*store.Store, error) {
	return store.Open(flagRunsDB)
}

func runRunsList(_ *cobra.Command, _ []string) error {
	st, err := openRuns()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	runs, err := st.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Printf("\n  No runs stored in %s.\n\n", flagRunsDB)
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.Scenario,
			r.Strategy,
			fmt.Sprintf("%d", r.Seed),
			fmt.Sprintf("%d", r.Months),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Run", "Scenario", "Strategy", "Seed", "Months", "Stored"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runRunsShow(_ *cobra.Command, args []string) error {
	st, err := openRuns()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	records, err := st.LoadMonths(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("run %s not found", args[0])
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Label(),
			cli.FormatNumber(int64(r.TotalCustomers)),
			cli.FormatEuro(r.TotalRevenue),
			cli.FormatEuro(r.TotalCosts),
			cli.FormatEuro(r.Profit),
			cli.FormatEuro(r.BankBalance),
			cli.FormatEuro(r.LoanDeployed),
		})
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle("RUN " + args[0]))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Customers", "Revenue", "Costs", "Profit", "Bank", "Deployed"},
		Rows:    rows,
	}))

	quarters := pipeline.AggregateQuarters(records)
	profit := make([]float64, len(quarters))
	for i, q := range quarters {
		profit[i] = q.Profit
	}
	fmt.Printf("\n  Quarterly profit  %s\n\n", cli.RenderSparkline(profit))
	return nil
}

func runRunsDelete(_ *cobra.Command, args []string) error {
	st, err := openRuns()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.DeleteRun(args[0]); err != nil {
		return err
	}
	fmt.Printf("  Deleted run %s\n", args[0])
	return nil
}
