package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/runway/internal/cli"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/pipeline"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config and the forecast's invariants",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Config: %s\n\n", path)

	if err := config.Validate(cfg); err != nil {
		var verr *config.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		fmt.Print(cli.RenderKeyValues("Config problems", problemPairs(verr.Problems)))
		fmt.Println()
		return fmt.Errorf("%d config problem(s)", len(verr.Problems))
	}
	fmt.Println("  Config OK")

	records, err := engine.Run(commandContext(cmd), cfg, engine.NewRandom(cfg.General.Seed))
	if err != nil {
		return err
	}
	report := pipeline.Validate(cfg, records)

	rows := make([][]string, 0, len(report.Violations))
	for _, v := range report.Violations {
		month := "run"
		if v.Month > 0 {
			month = fmt.Sprintf("%d", v.Month)
		}
		rows = append(rows, []string{month, v.Check, string(v.Severity), v.Message})
	}
	if len(rows) > 0 {
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Findings",
			Headers: []string{"Month", "Check", "Severity", "Message"},
			Rows:    rows,
		}))
	}

	errs, warns := len(report.Errors()), len(report.Warnings())
	fmt.Printf("\n  %d months checked: %d error(s), %d warning(s)\n\n", len(records), errs, warns)
	if !report.OK() {
		return fmt.Errorf("forecast failed %d check(s)", errs)
	}
	return nil
}

func problemPairs(problems []string) [][2]string {
	pairs := make([][2]string, len(problems))
	for i, p := range problems {
		pairs[i] = [2]string{fmt.Sprintf("%d.", i+1), p}
	}
	return pairs
}
