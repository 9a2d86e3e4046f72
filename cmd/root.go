package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/logging"
	"github.com/theirongolddev/runway/internal/model"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig   string
	flagMonths   int
	flagSeed     int64
	flagScenario string
	flagStrategy string
	flagQuiet    bool
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "runway",
	Short: "Monthly cash-flow forecast for a small SaaS and web studio",
	Long: "Simulate customers, staffing, costs, loan deployment and cash month by month,\n" +
		"then compare loan scenarios and allocation strategies.",
	SilenceUsage: true,
	RunE:         runMonthly,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (TOML or YAML, default ~/.config/runway/config.toml)")
	rootCmd.PersistentFlags().IntVarP(&flagMonths, "months", "m", 0, "Forecast horizon in months (12-36)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Random seed (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagScenario, "scenario", "s", "", "Loan scenario name")
	rootCmd.PersistentFlags().StringVarP(&flagStrategy, "strategy", "a", "", "Allocation strategy name")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// configPath resolves the config file from --config, RUNWAY_CONFIG, then the default.
func configPath(env config.Env) string {
	switch {
	case flagConfig != "":
		return flagConfig
	case env.ConfigPath != "":
		return env.ConfigPath
	default:
		return config.Path()
	}
}

// loadConfig is the shared config path used by all commands: file, then
// RUNWAY_* environment overrides, then flags.
func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	env, err := config.ParseEnv()
	if err != nil {
		return config.Config{}, "", err
	}

	path := configPath(env)
	cfg, err := config.LoadFile(path)
	if err != nil {
		return config.Config{}, path, err
	}
	cfg = env.Apply(cfg)

	if flagMonths > 0 {
		cfg = config.ExtendSchedules(cfg, flagMonths)
	}
	if cmd.Flags().Changed("seed") {
		cfg.General.Seed = flagSeed
	}
	if flagScenario != "" {
		cfg.Loan.Scenario = flagScenario
	}
	if flagStrategy != "" {
		cfg.Loan.Strategy = flagStrategy
	}
	return cfg, path, nil
}

func newLogger() (*zap.Logger, error) {
	return logging.New(flagVerbose)
}

// forecast is the result of loadForecast.
type forecast struct {
	Config   config.Config
	Scenario config.LoanScenario
	Records  []model.MonthlyRecord
}

// loadForecast loads the effective config and runs the simulation once.
func loadForecast(cmd *cobra.Command) (*forecast, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	scenario, err := cfg.ActiveScenario()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	defer func() { _ = logger.Sync() }()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Simulating %d months (%s / %s, seed %d)...\n",
			cfg.General.Months, cfg.Loan.Scenario, cfg.Loan.Strategy, cfg.General.Seed)
	}

	start := time.Now()
	records, err := engine.Run(commandContext(cmd), cfg, engine.NewRandom(cfg.General.Seed), engine.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	logger.Debug("forecast done", zap.Int("months", len(records)), zap.Duration("elapsed", time.Since(start)))

	return &forecast{Config: cfg, Scenario: scenario, Records: records}, nil
}

// commandContext returns the command's context, or Background when run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
