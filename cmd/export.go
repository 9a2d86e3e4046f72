package cmd

import (
	"fmt"

	"github.com/theirongolddev/runway/internal/report"
	"github.com/theirongolddev/runway/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagExportDir string
	flagExportDB  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write CSV reports and optionally store the run in SQLite",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportDir, "dir", "d", "reports", "Directory for the CSV files (empty to skip)")
	exportCmd.Flags().StringVar(&flagExportDB, "db", "", "SQLite file to store the run in")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if flagExportDir == "" && flagExportDB == "" {
		return fmt.Errorf("nothing to do: set --dir or --db")
	}

	fc, err := loadForecast(cmd)
	if err != nil {
		return err
	}

	fmt.Println()
	if flagExportDir != "" {
		paths, err := report.WriteAll(flagExportDir, fc.Records, fc.Scenario.Amount)
		if err != nil {
			return err
		}
		fmt.Printf("  Wrote %d reports to %s\n", len(paths), flagExportDir)
		for _, p := range paths {
			fmt.Printf("    %s\n", p)
		}
	}

	if flagExportDB != "" {
		st, err := store.Open(flagExportDB)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		id, err := st.SaveRun(store.Run{
			Scenario: fc.Config.Loan.Scenario,
			Strategy: fc.Config.Loan.Strategy,
			Seed:     fc.Config.General.Seed,
			Months:   len(fc.Records),
		}, fc.Records)
		if err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		fmt.Printf("  Stored run %s in %s\n", id, flagExportDB)
	}
	fmt.Println()
	return nil
}
