package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/loan"

	"github.com/spf13/cobra"
)

var flagSchedule bool

var loanCmd = &cobra.Command{
	Use:   "loan",
	Short: "Loan terms, allocation, unlocked benefits and deployment",
	RunE:  runLoan,
}

func init() {
	loanCmd.Flags().BoolVar(&flagSchedule, "schedule", false, "Print the full amortization schedule")
	rootCmd.AddCommand(loanCmd)
}

func runLoan(cmd *cobra.Command, _ []string) error {
	fc, err := loadForecast(cmd)
	if err != nil {
		return err
	}
	plan, err := engine.PlanFor(fc.Config)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LOAN  %s / %s", plan.Scenario.Name, plan.Allocation.Strategy)))
	fmt.Println()

	if plan.Scenario.Amount <= 0 {
		fmt.Printf("  Scenario %q carries no loan.\n\n", plan.Scenario.Name)
		return nil
	}

	sc := plan.Scenario
	schedule := loan.Schedule(sc)
	var firstPayment, regularPayment float64
	if len(schedule) > 0 {
		firstPayment = schedule[0].Payment
		regularPayment = schedule[len(schedule)-1].Payment
	}

	fmt.Print(cli.RenderKeyValues("Terms", [][2]string{
		{"Principal", cli.FormatEuro(sc.Amount)},
		{"Annual rate", fmt.Sprintf("%.2f%%", sc.AnnualRate*100)},
		{"Term", fmt.Sprintf("%d months (%d interest-only)", sc.TermMonths, sc.InterestOnlyMonths)},
		{"Setup fee", cli.FormatEuro(plan.SetupFee)},
		{"Net amount", cli.FormatEuro(plan.Net)},
		{"First payment", cli.FormatEuroCents(firstPayment)},
		{"Regular payment", cli.FormatEuroCents(regularPayment)},
		{"Total interest", cli.FormatEuro(loan.TotalInterest(sc))},
	}))
	fmt.Println()

	a := plan.Allocation
	share := func(v float64) string {
		if plan.Net <= 0 {
			return ""
		}
		return fmt.Sprintf("%.0f%%", v/plan.Net*100)
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Allocation",
		Headers: []string{"Category", "Amount", "Share"},
		Rows: [][]string{
			{"marketing", cli.FormatEuro(a.Marketing), share(a.Marketing)},
			{"team", cli.FormatEuro(a.Team), share(a.Team)},
			{"infrastructure", cli.FormatEuro(a.Infrastructure), share(a.Infrastructure)},
			{"reserve", cli.FormatEuro(a.Reserve), share(a.Reserve)},
			{"founder", cli.FormatEuro(a.Founder), share(a.Founder)},
			{"---"},
			{"TOTAL", cli.FormatEuro(a.Total()), share(a.Total())},
		},
	}))

	b := plan.Benefits
	fmt.Print(cli.RenderKeyValues("Unlocked benefits", [][2]string{
		{"Infrastructure", benefitLine(b.InfrastructureTier, fmt.Sprintf("churn -%.0f%%, variable costs -%.0f%%, %s/month",
			b.ChurnReduction*100, b.VariableCostReduction*100, cli.FormatEuro(b.InfrastructureMonthly)))},
		{"Team", benefitLine(b.TeamTier, fmt.Sprintf("capacity +%.0f%%, full-time threshold x%.2f",
			b.CapacityBoost*100, b.FullTimeMultiplier))},
		{"Founder", benefitLine(b.FounderTier, fmt.Sprintf("organic +%.0f%%", b.OrganicBoost*100))},
	}))
	fmt.Println()

	// Draws per month
	var drawRows [][]string
	for _, r := range fc.Records {
		if len(r.Draws) == 0 {
			continue
		}
		parts := make([]string, 0, len(r.Draws))
		for _, d := range r.Draws {
			parts = append(parts, fmt.Sprintf("%s %s", d.Category, cli.FormatEuro(d.Amount)))
		}
		drawRows = append(drawRows, []string{
			r.Label(),
			strings.Join(parts, ", "),
			cli.FormatEuro(r.RemainingFunds),
			fmt.Sprintf("%.1f%%", r.DeploymentRate),
		})
	}
	if len(drawRows) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Deployment",
			Headers: []string{"Month", "Draws", "Remaining", "Deployed"},
			Rows:    drawRows,
		}))
		fmt.Println()
	}

	if flagSchedule {
		rows := make([][]string, 0, len(schedule))
		for _, in := range schedule {
			rows = append(rows, []string{
				fmt.Sprintf("%d", in.Month),
				cli.FormatEuroCents(in.Payment),
				cli.FormatEuroCents(in.Interest),
				cli.FormatEuroCents(in.Principal),
				cli.FormatEuroCents(in.Balance),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Amortization",
			Headers: []string{"#", "Payment", "Interest", "Principal", "Balance"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	return nil
}

func benefitLine(tier, detail string) string {
	if tier == "" {
		return "none"
	}
	return tier + ": " + detail
}
