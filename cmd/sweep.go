package cmd

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/pipeline"
	"github.com/theirongolddev/runway/internal/store"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagSweepScenarios  []string
	flagSweepStrategies []string
	flagWorkers         int
	flagSweepDB         string
	flagSortBy          string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare every loan scenario against every allocation strategy",
	RunE:  runSweep,
}

func init() {
	sweepCmd.Flags().StringSliceVar(&flagSweepScenarios, "scenarios", nil, "Scenarios to include (default: all)")
	sweepCmd.Flags().StringSliceVar(&flagSweepStrategies, "strategies", nil, "Strategies to include (default: all)")
	sweepCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 0, "Parallel runs (default: GOMAXPROCS)")
	sweepCmd.Flags().StringVar(&flagSweepDB, "db", "", "SQLite file to store the outcomes in")
	sweepCmd.Flags().StringVar(&flagSortBy, "sort", "roi", "Sort by: roi, profit, cashflow, customers")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var (
		bar     *progressbar.ProgressBar
		barOnce sync.Once
	)
	progress := func(_, total int) {
		if flagQuiet {
			return
		}
		barOnce.Do(func() {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("  sweeping"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		})
		_ = bar.Add(1)
	}

	outcomes, err := pipeline.Sweep(commandContext(cmd), cfg, pipeline.SweepOptions{
		Scenarios:  flagSweepScenarios,
		Strategies: flagSweepStrategies,
		Workers:    flagWorkers,
		Progress:   progress,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	if len(outcomes) == 0 {
		fmt.Println("\n  No scenario/strategy pairs to run.")
		return nil
	}
	logger.Debug("sweep done", zap.Int("outcomes", len(outcomes)))

	// Recommend points into its input and keeps the first of equal outcomes,
	// so it ranks a copy in sweep order.
	recs := pipeline.Recommend(append([]model.Outcome(nil), outcomes...))
	if err := sortOutcomes(outcomes, flagSortBy); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SWEEP  %d runs  %d months  seed %d",
		len(outcomes), cfg.General.Months, cfg.General.Seed)))
	fmt.Println()

	rows := make([][]string, 0, len(outcomes))
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			rows = append(rows, []string{o.Scenario, o.Strategy, "error", o.Err.Error(), "", "", "", ""})
			continue
		}
		s := o.Summary
		rows = append(rows, []string{
			o.Scenario,
			o.Strategy,
			cli.FormatEuro(s.LoanAmount),
			cli.FormatEuro(s.TotalRevenue),
			cli.FormatEuro(s.TotalProfit),
			cli.FormatEuro(s.CumulativeCashFlow),
			cli.FormatNumber(int64(s.FinalTotalCustomers)),
			fmt.Sprintf("%.1f%%", s.ROI),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Scenario", "Strategy", "Loan", "Revenue", "Profit", "Cash flow", "Customers", "ROI"},
		Rows:    rows,
	}))
	fmt.Println()

	fmt.Print(cli.RenderKeyValues("Recommendations", [][2]string{
		{"Best ROI", describeOutcome(recs.BestROI, func(s model.Summary) string { return fmt.Sprintf("%.1f%%", s.ROI) })},
		{"Best cash flow", describeOutcome(recs.BestCashFlow, func(s model.Summary) string { return cli.FormatEuro(s.CumulativeCashFlow) })},
		{"Most customers", describeOutcome(recs.BestGrowth, func(s model.Summary) string { return cli.FormatNumber(int64(s.FinalTotalCustomers)) })},
		{"Best profit", describeOutcome(recs.BestProfit, func(s model.Summary) string { return cli.FormatEuro(s.NetProfitAfterLoan) })},
		{"Conservative", describeOutcome(recs.Conservative, func(s model.Summary) string { return cli.FormatEuro(s.LoanAmount) })},
	}))
	fmt.Println()

	if failed > 0 {
		fmt.Fprintln(os.Stderr, cli.Warn(fmt.Sprintf("  %d run(s) failed", failed)))
	}

	if flagSweepDB != "" {
		st, err := store.Open(flagSweepDB)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		id, err := st.SaveSweep(outcomes)
		if err != nil {
			return fmt.Errorf("saving sweep: %w", err)
		}
		fmt.Printf("  Saved sweep %s to %s\n\n", id, flagSweepDB)
	}
	return nil
}

func describeOutcome(o *model.Outcome, value func(model.Summary) string) string {
	if o == nil {
		return "none"
	}
	return fmt.Sprintf("%s / %s (%s)", o.Scenario, o.Strategy, value(o.Summary))
}

// sortOutcomes orders successful outcomes by key, descending. Failed runs go last.
func sortOutcomes(outcomes []model.Outcome, key string) error {
	var metric func(model.Summary) float64
	switch key {
	case "roi":
		metric = func(s model.Summary) float64 { return s.ROI }
	case "profit":
		metric = func(s model.Summary) float64 { return s.TotalProfit }
	case "cashflow":
		metric = func(s model.Summary) float64 { return s.CumulativeCashFlow }
	case "customers":
		metric = func(s model.Summary) float64 { return float64(s.FinalTotalCustomers) }
	default:
		return fmt.Errorf("unknown sort key %q (use roi, profit, cashflow or customers)", key)
	}
	sort.SliceStable(outcomes, func(i, j int) bool {
		a, b := outcomes[i], outcomes[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		return metric(a.Summary) > metric(b.Summary)
	})
	return nil
}
