package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/runway/internal/acquisition"
	"github.com/theirongolddev/runway/internal/cohort"
	"github.com/theirongolddev/runway/internal/compensation"
	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/costs"
	"github.com/theirongolddev/runway/internal/loan"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/reinvest"
	"github.com/theirongolddev/runway/internal/staffing"
)

// simulation owns all state threaded from one month to the next.
type simulation struct {
	cfg   config.Config
	rng   RandomSource
	log   *zap.Logger
	start time.Time

	scenario config.LoanScenario
	alloc    loan.Allocation
	benefits loan.Benefits
	ledger   *loan.Ledger

	marketingLeft float64 // undrawn marketing allocation
	founderLeft   float64 // undrawn founder allocation
	capital       float64 // setup spend that left the bank

	book       cohort.Book
	sites      cohort.Websites
	staff      staffing.State
	controller staffing.Controller
	collab     compensation.Status
	fund       reinvest.Fund

	profits        []float64
	cumProfit      float64
	cumCashFlow    float64
	prevCashFlow   float64
	prevMargin     float64
	overloadStreak int
}

func newSimulation(cfg config.Config, rng RandomSource, log *zap.Logger) (*simulation, error) {
	start, err := cfg.General.Start()
	if err != nil {
		return nil, err
	}
	plan, err := PlanFor(cfg)
	if err != nil {
		return nil, err
	}
	return &simulation{
		cfg:           cfg,
		rng:           rng,
		log:           log,
		start:         start,
		scenario:      plan.Scenario,
		alloc:         plan.Allocation,
		benefits:      plan.Benefits,
		ledger:        loan.NewLedger(plan.Net),
		marketingLeft: plan.Allocation.Marketing,
		founderLeft:   plan.Allocation.Founder,
		controller:    staffing.NewController(cfg.Staffing),
		profits:       make([]float64, 0, cfg.General.Months),
	}, nil
}

// month runs the fixed per-month step order and returns the record.
func (s *simulation) month(m int) model.MonthlyRecord {
	cfg := s.cfg
	rec := model.MonthlyRecord{Month: m, Date: s.start.AddDate(0, m-1, 0)}
	log := s.log.With(zap.Int("month", m))

	// Loan service.
	rec.LoanPayment = loan.MonthlyPayment(s.scenario, m)
	rec.LoanBalance = loan.Balance(s.scenario, m-1)

	// Churn, then upgrades.
	rec.Churned = s.book.ApplyChurn(cfg.Customers.Churn, s.benefits.ChurnReduction, s.rng)
	rec.ChurnedTotal = rec.Churned.Total()
	up := s.book.ApplyUpgrades(cfg.Customers.Upgrades)
	rec.UpgradesBasicToPro = up.BasicToPro
	rec.UpgradesProToEnt = up.ProToEnterprise

	// Marketing: schedule + loan boost + reinvestment boost.
	decision := s.fund.Decide(cfg.Reinvestment, s.prevCashFlow, s.prevMargin)
	legal := costs.Legal(cfg.Costs, m)
	setup := s.setupCost(m)
	available := max(0, s.ledger.Remaining()-legal-setup)
	boost := loan.MarketingBoost(s.marketingLeft, cfg.General.Months-m+1, available)
	efficiency := acquisition.BoostEfficiency(cfg.Marketing.BoostEfficiency, boost)

	rec.Channels = make([]model.ChannelResult, 0, len(cfg.Marketing.Channels))
	for _, ch := range cfg.Marketing.Channels {
		spend := acquisition.Spend{
			Base:         ch.Schedule[m-1],
			LoanBoost:    boost * ch.BoostShare,
			Reinvestment: decision.Marketing * ch.BoostShare,
		}
		res := acquisition.ChannelMonth(ch, spend, efficiency)
		rec.Channels = append(rec.Channels, res)
		rec.MarketingSpend += res.Spend
		rec.MarketingCustomers += res.Customers
	}
	rec.LoanMarketingBoost = boost

	// Organic reach, then placement into cohorts.
	rec.OrganicCustomers = acquisition.Organic(cfg.Marketing.Organic, m, s.benefits.OrganicBoost)
	rec.NewCustomers = acquisition.Distribute(rec.MarketingCustomers, rec.OrganicCustomers, cfg.Customers.Distribution)
	rec.NewCustomersTotal = rec.NewCustomers.Total()
	s.book.Add(rec.NewCustomers)
	rec.Customers = s.book.Counts()
	rec.CohortAges = s.book.AgeLengths()
	rec.TotalCustomers = rec.Customers.Total()

	// Website packages.
	rec.NewWebsites = s.sites.Attach(rec.Customers, cohort.ConversionRates(cfg.Customers.Websites, m))
	rec.NewWebsitesTotal = rec.NewWebsites.Total()
	rec.Websites = s.sites.Cumulative()
	rec.WebsitesTotal = rec.Websites.Total()

	// Staffing.
	if decision.Hire {
		s.staff.Designers++
		log.Info("reinvestment hire", zap.Int("designers", s.staff.Designers))
	}
	workload := staffing.Workload(rec.NewWebsites, cfg.Staffing.Capacity, s.benefits.CapacityBoost)
	rec.RequiredDesigners = staffing.Required(workload, cfg.Staffing.Buffer)
	before := s.staff.Designers
	s.staff, rec.StaffingAction = s.controller.Step(s.staff, rec.RequiredDesigners, staffing.Utilization(workload, before))
	if rec.StaffingAction == model.StaffEmergencyHire {
		log.Warn("emergency hire",
			zap.Int("designers", s.staff.Designers),
			zap.Int("previous", before),
			zap.Float64("workload", workload),
		)
	}
	rec.Designers = s.staff.Designers
	rec.Utilization = staffing.Utilization(workload, rec.Designers)
	if rec.Utilization > 1 {
		s.overloadStreak++
		if s.overloadStreak > cfg.Validation.MaxOverloadMonths {
			log.Warn("designers overloaded", zap.Int("streak", s.overloadStreak), zap.Float64("utilization", rec.Utilization))
		}
	} else {
		s.overloadStreak = 0
	}

	// Revenue.
	for _, t := range model.Tiers {
		rec.SaaSRevenue += float64(rec.Customers[t]) * cfg.Pricing.Monthly.Of(t)
		rec.WebsiteRevenueGross += float64(rec.NewWebsites[t]) * cfg.Pricing.Website.Of(t)
	}
	rec.Cancellations = rec.WebsiteRevenueGross * cfg.Customers.Websites.CancellationRate
	rec.WebsiteRevenue = rec.WebsiteRevenueGross - rec.Cancellations
	rec.TotalRevenue = rec.SaaSRevenue + rec.WebsiteRevenue

	// Costs. Profit-dependent inputs read prior months only.
	prior := compensation.RollingAverage(s.profits, cfg.General.RollingWindow)
	if s.collab.Update(m, prior, cfg.Collaborator.FullTimeThreshold, s.benefits.FullTimeMultiplier) {
		log.Warn("collaborator switched to full time", zap.Float64("rolling_avg_profit", prior))
	}
	rec.FullTime = s.collab.FullTime
	rec.Employees = costs.Employees(rec.FullTime, rec.Designers)

	variable := costs.VariableCosts(cfg.Costs, rec.Customers, s.benefits.VariableCostReduction)
	base := costs.BaseCosts(cfg.Costs, costs.Inputs{
		Month:            m,
		Marketing:        rec.MarketingSpend,
		Designers:        rec.Designers,
		DesignerSalary:   cfg.Staffing.Salary,
		FullTime:         rec.FullTime,
		Infrastructure:   s.benefits.InfrastructureMonthly,
		RollingAvgProfit: prior,
	})
	rec.VariableCosts = variable.Total
	rec.ServerCosts = variable.Server
	rec.DesignerCosts = base.Designers
	rec.FixedCosts = base.Fixed
	rec.InfrastructureCosts = base.Infrastructure
	rec.LLMCosts = base.LLM
	rec.PerEmployeeCosts = base.PerEmployee
	rec.LegalCosts = base.Legal

	// Compensation fixed point, then founder support.
	preliminary := rec.TotalRevenue - variable.Total - base.Total() - rec.LoanPayment
	rec.ProfitBeforeComp = preliminary
	comp := compensation.Resolve(cfg.Collaborator, preliminary, rec.WebsiteRevenue, rec.FullTime)
	if !comp.Converged {
		log.Warn("compensation did not converge",
			zap.Int("iterations", comp.Iterations),
			zap.Float64("preliminary_profit", preliminary),
			zap.Float64("pay", comp.Pay.Total()),
		)
	}
	rec.Compensation = comp.Pay.Total()
	rec.CompSalary = comp.Pay.Salary
	rec.CompProfitShare = comp.Pay.ProfitShare
	rec.CompProjectShare = comp.Pay.ProjectShare
	rec.CompIterations = comp.Iterations
	rec.CompConverged = comp.Converged
	rec.FounderSupport = compensation.FounderSupport(cfg.Founder, comp.Profit)

	// Finalize profit and cash.
	rec.Profit = comp.Profit - rec.FounderSupport
	rec.TotalCosts = variable.Total + base.Total() + rec.Compensation + rec.FounderSupport + rec.LoanPayment
	rec.NetCashFlow = rec.Profit
	if rec.TotalRevenue > 0 {
		rec.CashFlowMargin = rec.NetCashFlow / rec.TotalRevenue * 100
	}
	s.profits = append(s.profits, rec.Profit)
	s.cumProfit += rec.Profit
	s.cumCashFlow += rec.NetCashFlow
	s.capital += setup
	rec.CumulativeProfit = s.cumProfit
	rec.CumulativeCashFlow = s.cumCashFlow
	rec.RollingAvgProfit = compensation.RollingAverage(s.profits, cfg.General.RollingWindow)
	rec.BankBalance = s.ledger.Net() - s.capital + s.cumCashFlow

	// Deployment ledger.
	s.deploy(&rec, legal, setup, boost)
	if err := s.ledger.Check(); err != nil {
		log.Error("loan ledger out of balance", zap.Error(err))
	}

	rec.ReinvestmentTriggered = decision.Triggered
	rec.MarketingReinvestment = decision.Marketing
	rec.PersonnelFund = s.fund.Personnel
	rec.PersonnelHire = decision.Hire
	rec.TotalReinvested = s.fund.TotalReinvested

	// Feed forward for next month's reinvestment decision.
	s.prevCashFlow = rec.NetCashFlow
	s.prevMargin = rec.CashFlowMargin

	log.Debug("month complete",
		zap.Int("customers", rec.TotalCustomers),
		zap.Float64("revenue", rec.TotalRevenue),
		zap.Float64("profit", rec.Profit),
		zap.Float64("remaining_funds", rec.RemainingFunds),
	)
	return rec
}

// setupCost is the one-off infrastructure setup charged in month 1.
func (s *simulation) setupCost(m int) float64 {
	if m != 1 {
		return 0
	}
	return s.benefits.InfrastructureSetup
}

// deploy draws this month's categories against the remaining loan funds in
// a fixed order. Each draw is capped by what is left.
func (s *simulation) deploy(rec *model.MonthlyRecord, legal, setup, boost float64) {
	var covered float64
	draw := func(category string, amount float64) float64 {
		d, ok := s.ledger.Draw(category, amount)
		if ok {
			rec.Draws = append(rec.Draws, d)
			rec.LoanDeployed += d.Amount
		}
		return d.Amount
	}

	covered += draw(model.DrawLegalSetup, legal)
	draw(model.DrawInfrastructureSetup, setup)

	mkt := draw(model.DrawMarketingBoost, boost)
	s.marketingLeft -= mkt
	covered += mkt

	founder := draw(model.DrawFounderSupport, min(rec.FounderSupport, s.founderLeft))
	s.founderLeft -= founder
	covered += founder

	draw(model.DrawOperatingDeficit, max(0, -rec.NetCashFlow-covered))

	rec.TotalInvested = s.ledger.Invested()
	rec.RemainingFunds = s.ledger.Remaining()
	rec.DeploymentRate = s.ledger.DeploymentRate()
}
