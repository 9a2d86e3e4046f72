// Package config holds the forecast parameters and loads them from disk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

// Config holds every parameter table a forecast run reads.
// It is plain data: the engine receives it by value.
type Config struct {
	General      GeneralConfig      `toml:"general" yaml:"general"`
	Appearance   AppearanceConfig   `toml:"appearance" yaml:"appearance"`
	Pricing      PricingConfig      `toml:"pricing" yaml:"pricing"`
	Customers    CustomerConfig     `toml:"customers" yaml:"customers"`
	Marketing    MarketingConfig    `toml:"marketing" yaml:"marketing"`
	Staffing     StaffingConfig     `toml:"staffing" yaml:"staffing"`
	Collaborator CollaboratorConfig `toml:"collaborator" yaml:"collaborator"`
	Founder      FounderConfig      `toml:"founder" yaml:"founder"`
	Reinvestment ReinvestmentConfig `toml:"reinvestment" yaml:"reinvestment"`
	Costs        CostConfig         `toml:"costs" yaml:"costs"`
	Loan         LoanConfig         `toml:"loan" yaml:"loan"`
	Validation   ValidationLimits   `toml:"validation" yaml:"validation"`
}

// GeneralConfig holds the horizon and run settings.
type GeneralConfig struct {
	Months        int    `toml:"months" yaml:"months"`
	StartMonth    string `toml:"start_month" yaml:"start_month"` // YYYY-MM
	Seed          int64  `toml:"seed" yaml:"seed"`
	RollingWindow int    `toml:"rolling_window" yaml:"rolling_window"`
}

// Start parses StartMonth.
func (g GeneralConfig) Start() (time.Time, error) {
	t, err := time.Parse("2006-01", g.StartMonth)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing start_month %q: %w", g.StartMonth, err)
	}
	return t, nil
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" yaml:"theme"`
}

// PricingConfig holds recurring prices and one-time website package prices.
type PricingConfig struct {
	Monthly TierValues `toml:"monthly" yaml:"monthly"`
	Website TierValues `toml:"website" yaml:"website"`
}

// CustomerConfig holds distribution, churn, upgrade and website attachment rules.
type CustomerConfig struct {
	Distribution TierValues    `toml:"distribution" yaml:"distribution"`
	Churn        ChurnConfig   `toml:"churn" yaml:"churn"`
	Upgrades     UpgradeConfig `toml:"upgrades" yaml:"upgrades"`
	Websites     WebsiteConfig `toml:"websites" yaml:"websites"`
}

// ChurnConfig is an age-phased table of annual churn rates.
type ChurnConfig struct {
	EarlyMonths int        `toml:"early_months" yaml:"early_months"`
	Early       TierValues `toml:"early" yaml:"early"`
	Late        TierValues `toml:"late" yaml:"late"`
}

// UpgradeConfig holds monthly upgrade fractions.
type UpgradeConfig struct {
	BasicToPro      float64 `toml:"basic_to_pro" yaml:"basic_to_pro"`
	ProToEnterprise float64 `toml:"pro_to_enterprise" yaml:"pro_to_enterprise"`
}

// WebsiteConfig holds website package conversion rates.
type WebsiteConfig struct {
	EarlyMonths      int        `toml:"early_months" yaml:"early_months"`
	Early            TierValues `toml:"early" yaml:"early"`
	Late             TierValues `toml:"late" yaml:"late"`
	CancellationRate float64    `toml:"cancellation_rate" yaml:"cancellation_rate"`
}

// MarketingConfig holds paid channels, the organic schedule and boost efficiency.
type MarketingConfig struct {
	Channels        []Channel        `toml:"channels" yaml:"channels"`
	Organic         []int            `toml:"organic" yaml:"organic"`
	BoostEfficiency []EfficiencyTier `toml:"boost_efficiency" yaml:"boost_efficiency"`
}

// Channel is a paid acquisition channel.
type Channel struct {
	Name       string    `toml:"name" yaml:"name"`
	BoostShare float64   `toml:"boost_share" yaml:"boost_share"`
	CAC        []CACTier `toml:"cac" yaml:"cac"`
	Schedule   []float64 `toml:"schedule" yaml:"schedule"`
}

// CACTier maps a spend level to a cost per acquired customer.
type CACTier struct {
	Spend float64 `toml:"spend" yaml:"spend"`
	CAC   float64 `toml:"cac" yaml:"cac"`
}

// EfficiencyTier is a marginal efficiency band for loan-funded marketing.
type EfficiencyTier struct {
	UpTo       float64 `toml:"up_to" yaml:"up_to"`
	Efficiency float64 `toml:"efficiency" yaml:"efficiency"`
}

// StaffingConfig holds designer capacity and hysteresis thresholds.
type StaffingConfig struct {
	Capacity        TierValues `toml:"capacity" yaml:"capacity"`
	Salary          float64    `toml:"salary" yaml:"salary"`
	FirstHire       float64    `toml:"first_hire_threshold" yaml:"first_hire_threshold"`
	SubsequentHire  float64    `toml:"subsequent_hire_threshold" yaml:"subsequent_hire_threshold"`
	Fire            float64    `toml:"fire_threshold" yaml:"fire_threshold"`
	Emergency       float64    `toml:"emergency_threshold" yaml:"emergency_threshold"`
	Buffer          float64    `toml:"buffer" yaml:"buffer"`
	FireAfterMonths int        `toml:"fire_after_months" yaml:"fire_after_months"`
}

// CollaboratorConfig holds profit-share compensation terms.
type CollaboratorConfig struct {
	FreelanceProfitShare float64 `toml:"freelance_profit_share" yaml:"freelance_profit_share"`
	ProjectRevenueShare  float64 `toml:"project_revenue_share" yaml:"project_revenue_share"`
	FullTimeProfitShare  float64 `toml:"fulltime_profit_share" yaml:"fulltime_profit_share"`
	FullTimeSalary       float64 `toml:"fulltime_salary" yaml:"fulltime_salary"`
	FullTimeThreshold    float64 `toml:"fulltime_threshold" yaml:"fulltime_threshold"`
	ShareThreshold       float64 `toml:"share_threshold" yaml:"share_threshold"`
	MaxIterations        int     `toml:"max_iterations" yaml:"max_iterations"`
	Tolerance            float64 `toml:"tolerance" yaml:"tolerance"`
}

// FounderConfig holds the founder support breakpoint table.
type FounderConfig struct {
	MinProfit   float64      `toml:"min_profit" yaml:"min_profit"`
	MinSupport  float64      `toml:"min_support" yaml:"min_support"`
	MaxSupport  float64      `toml:"max_support" yaml:"max_support"`
	Breakpoints []Breakpoint `toml:"breakpoints" yaml:"breakpoints"`
}

// Breakpoint maps a profit level to a support payment.
type Breakpoint struct {
	Profit  float64 `toml:"profit" yaml:"profit"`
	Support float64 `toml:"support" yaml:"support"`
}

// ReinvestmentConfig holds the margin-triggered reinvestment policy.
type ReinvestmentConfig struct {
	MarginThreshold    float64 `toml:"margin_threshold" yaml:"margin_threshold"` // percent
	Fraction           float64 `toml:"fraction" yaml:"fraction"`
	MarketingShare     float64 `toml:"marketing_share" yaml:"marketing_share"`
	PersonnelShare     float64 `toml:"personnel_share" yaml:"personnel_share"`
	MinTrigger         float64 `toml:"min_trigger" yaml:"min_trigger"`
	MaxMarketingBoost  float64 `toml:"max_marketing_boost" yaml:"max_marketing_boost"`
	PersonnelThreshold float64 `toml:"personnel_threshold" yaml:"personnel_threshold"`
	MaxPersonnelFund   float64 `toml:"max_personnel_fund" yaml:"max_personnel_fund"`
}

// CostConfig holds fixed and variable operating costs.
type CostConfig struct {
	Fixed           []NamedCost  `toml:"fixed" yaml:"fixed"`
	PerEmployee     float64      `toml:"per_employee" yaml:"per_employee"`
	VariableMonthly TierValues   `toml:"variable_monthly" yaml:"variable_monthly"`
	VariableYearly  TierValues   `toml:"variable_yearly" yaml:"variable_yearly"`
	ServerTiers     []ServerTier `toml:"server_tiers" yaml:"server_tiers"`
	LLMBase         float64      `toml:"llm_base" yaml:"llm_base"`
	LLMTiers        []LLMTier    `toml:"llm_tiers" yaml:"llm_tiers"`
	Legal           []LegalCost  `toml:"legal" yaml:"legal"`
}

// NamedCost is a recurring monthly line item.
type NamedCost struct {
	Name   string  `toml:"name" yaml:"name"`
	Amount float64 `toml:"amount" yaml:"amount"`
}

// ServerTier prices hosting for customer counts at or above Customers.
type ServerTier struct {
	Customers int     `toml:"customers" yaml:"customers"`
	Cost      float64 `toml:"cost" yaml:"cost"`
}

// LLMTier applies when rolling average profit is strictly above Above.
type LLMTier struct {
	Above float64 `toml:"above" yaml:"above"`
	Cost  float64 `toml:"cost" yaml:"cost"`
}

// LegalCost is a one-off cost charged in a given month.
type LegalCost struct {
	Month  int     `toml:"month" yaml:"month"`
	Name   string  `toml:"name" yaml:"name"`
	Amount float64 `toml:"amount" yaml:"amount"`
}

// LoanConfig selects a scenario and strategy from the catalogues.
type LoanConfig struct {
	Scenario       string               `toml:"scenario" yaml:"scenario"`
	Strategy       string               `toml:"strategy" yaml:"strategy"`
	SetupFeeRate   float64              `toml:"setup_fee_rate" yaml:"setup_fee_rate"`
	Scenarios      []LoanScenario       `toml:"scenarios" yaml:"scenarios"`
	Strategies     []Strategy           `toml:"strategies" yaml:"strategies"`
	Infrastructure []InfrastructureTier `toml:"infrastructure" yaml:"infrastructure"`
	Team           []TeamTier           `toml:"team" yaml:"team"`
	Founder        []FounderTier        `toml:"founder" yaml:"founder"`
}

// LoanScenario holds a loan's terms.
type LoanScenario struct {
	Name               string  `toml:"name" yaml:"name"`
	Amount             float64 `toml:"amount" yaml:"amount"`
	AnnualRate         float64 `toml:"annual_rate" yaml:"annual_rate"`
	TermMonths         int     `toml:"term_months" yaml:"term_months"`
	InterestOnlyMonths int     `toml:"interest_only_months" yaml:"interest_only_months"`
}

// Strategy splits the net loan amount across spending categories.
type Strategy struct {
	Name           string  `toml:"name" yaml:"name"`
	Description    string  `toml:"description" yaml:"description"`
	Marketing      float64 `toml:"marketing" yaml:"marketing"`
	Team           float64 `toml:"team" yaml:"team"`
	Infrastructure float64 `toml:"infrastructure" yaml:"infrastructure"`
	Reserve        float64 `toml:"reserve" yaml:"reserve"`
	Founder        float64 `toml:"founder" yaml:"founder"`
}

// Sum returns the total of all shares.
func (s Strategy) Sum() float64 {
	return s.Marketing + s.Team + s.Infrastructure + s.Reserve + s.Founder
}

// InfrastructureTier is unlocked by an infrastructure allocation at or above Threshold.
type InfrastructureTier struct {
	Name                  string  `toml:"name" yaml:"name"`
	Threshold             float64 `toml:"threshold" yaml:"threshold"`
	MonthlyCost           float64 `toml:"monthly_cost" yaml:"monthly_cost"`
	SetupCost             float64 `toml:"setup_cost" yaml:"setup_cost"`
	ChurnReduction        float64 `toml:"churn_reduction" yaml:"churn_reduction"`
	VariableCostReduction float64 `toml:"variable_cost_reduction" yaml:"variable_cost_reduction"`
}

// TeamTier is unlocked by a team allocation at or above Threshold.
type TeamTier struct {
	Name                        string  `toml:"name" yaml:"name"`
	Threshold                   float64 `toml:"threshold" yaml:"threshold"`
	CapacityBoost               float64 `toml:"capacity_boost" yaml:"capacity_boost"`
	FullTimeThresholdMultiplier float64 `toml:"fulltime_threshold_multiplier" yaml:"fulltime_threshold_multiplier"`
}

// FounderTier is unlocked by a founder allocation at or above Threshold.
type FounderTier struct {
	Name         string  `toml:"name" yaml:"name"`
	Threshold    float64 `toml:"threshold" yaml:"threshold"`
	OrganicBoost float64 `toml:"organic_boost" yaml:"organic_boost"`
}

// ValidationLimits are sanity bounds for post-hoc validation.
type ValidationLimits struct {
	MaxDesigners      int     `toml:"max_designers" yaml:"max_designers"`
	MinMonthlyProfit  float64 `toml:"min_monthly_profit" yaml:"min_monthly_profit"`
	MaxMarketingSpend float64 `toml:"max_marketing_spend" yaml:"max_marketing_spend"`
	MaxOverloadMonths int     `toml:"max_overload_months" yaml:"max_overload_months"`
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "runway")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "runway")
}

// Path returns the full path to the default config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the default config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads a TOML or YAML config file over the defaults.
// A missing file yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // user-supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing yaml config: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	return cfg, nil
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes the config as TOML, or YAML for a .yaml/.yml path.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user-supplied config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding yaml config: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	default:
		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
	}
	return nil
}

// Exists returns true if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
