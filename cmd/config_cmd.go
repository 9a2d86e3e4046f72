// Package cmd implements the runway CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", path)
	if config.Exists(path) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Months:          %d\n", cfg.General.Months)
	fmt.Printf("    Start month:     %s\n", cfg.General.StartMonth)
	fmt.Printf("    Seed:            %d\n", cfg.General.Seed)
	fmt.Printf("    Rolling window:  %d\n", cfg.General.RollingWindow)
	fmt.Println()

	fmt.Println("  [Loan]")
	fmt.Printf("    Scenario:        %s\n", cfg.Loan.Scenario)
	fmt.Printf("    Strategy:        %s\n", cfg.Loan.Strategy)
	fmt.Printf("    Setup fee rate:  %.2f%%\n", cfg.Loan.SetupFeeRate*100)
	fmt.Println()

	fmt.Println("  [Scenarios]")
	for _, s := range cfg.Loan.Scenarios {
		fmt.Printf("    %-14s €%.0f at %.2f%% over %d months (%d interest-only)\n",
			s.Name, s.Amount, s.AnnualRate*100, s.TermMonths, s.InterestOnlyMonths)
	}
	fmt.Println()

	fmt.Println("  [Strategies]")
	for _, s := range cfg.Loan.Strategies {
		fmt.Printf("    %-14s mkt %.0f%%  team %.0f%%  infra %.0f%%  reserve %.0f%%  founder %.0f%%\n",
			s.Name, s.Marketing*100, s.Team*100, s.Infrastructure*100, s.Reserve*100, s.Founder*100)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	if err := config.Validate(cfg); err != nil {
		fmt.Printf("  %v\n", err)
	}
	fmt.Println("  Run `runway setup` to reconfigure.")
	return nil
}
