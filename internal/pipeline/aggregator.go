// Package pipeline derives summaries, validation reports and scenario
// comparisons from forecast records.
package pipeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/theirongolddev/runway/internal/model"
)

// Summarize computes horizon aggregates from a run's records. loanAmount is
// the gross loan principal used for ROI.
func Summarize(records []model.MonthlyRecord, loanAmount float64) model.Summary {
	var s model.Summary
	s.Months = len(records)
	s.LoanAmount = loanAmount
	if len(records) == 0 {
		return s
	}

	s.LowestCashPosition = math.Inf(1)
	var marginSum, designerSum float64

	for _, r := range records {
		s.TotalSaaSRevenue += r.SaaSRevenue
		s.TotalWebsiteRevenue += r.WebsiteRevenue
		s.TotalRevenue += r.TotalRevenue
		s.TotalCosts += r.TotalCosts
		s.TotalProfit += r.Profit
		s.TotalCompensation += r.Compensation
		s.TotalFounderSupport += r.FounderSupport
		s.TotalDesignerCosts += r.DesignerCosts
		s.TotalMarketingSpend += r.MarketingSpend
		s.TotalLoanPayments += r.LoanPayment

		s.MarketingCustomers += r.MarketingCustomers
		s.OrganicCustomers += r.OrganicCustomers
		s.AcquiredCustomers += r.NewCustomersTotal
		s.ChurnedCustomers += r.ChurnedTotal
		s.WebsitesCreated += r.NewWebsitesTotal

		designerSum += float64(r.Designers)
		s.PeakDesigners = max(s.PeakDesigners, r.Designers)
		marginSum += r.CashFlowMargin
		s.LowestCashPosition = math.Min(s.LowestCashPosition, r.BankBalance)

		switch {
		case r.Profit > 0:
			s.PositiveMonths++
		case r.Profit < 0:
			s.NegativeMonths++
		}

		if r.FullTime {
			s.FullTimeMonths++
			if s.FullTimeMonth == 0 {
				s.FullTimeMonth = r.Month
			}
		} else {
			s.FreelanceMonths++
		}

		if r.FounderSupport > 0 {
			s.SupportMonths++
			if s.SupportStartMonth == 0 {
				s.SupportStartMonth = r.Month
			}
		}
		if r.ReinvestmentTriggered {
			s.ReinvestmentMonths++
			s.MarketingReinvestment += r.MarketingReinvestment
		}
		if s.BreakEvenMonth == 0 && r.CumulativeProfit > 0 {
			s.BreakEvenMonth = r.Month
		}
		if s.CashFlowPositiveMonth == 0 && r.NetCashFlow > 0 {
			s.CashFlowPositiveMonth = r.Month
		}
	}

	n := float64(len(records))
	s.AvgDesigners = designerSum / n
	s.AvgMargin = marginSum / n
	if s.MarketingCustomers > 0 {
		s.AvgCAC = s.TotalMarketingSpend / float64(s.MarketingCustomers)
	}
	if s.SupportMonths > 0 {
		s.AvgSupport = s.TotalFounderSupport / float64(s.SupportMonths)
	}

	last := records[len(records)-1]
	s.FinalCustomers = last.Customers
	s.FinalTotalCustomers = last.TotalCustomers
	s.FinalWebsites = last.WebsitesTotal
	s.FinalDesigners = last.Designers
	s.FinalUtilization = last.Utilization
	s.FinalFullTime = last.FullTime
	s.FinalRevenue = last.TotalRevenue
	s.FinalCosts = last.TotalCosts
	s.FinalProfit = last.Profit
	s.FinalMargin = last.CashFlowMargin
	s.CumulativeProfit = last.CumulativeProfit
	s.CumulativeCashFlow = last.CumulativeCashFlow
	s.FinalBankBalance = last.BankBalance
	s.TotalReinvested = last.TotalReinvested
	s.TotalInvested = last.TotalInvested
	s.RemainingFunds = last.RemainingFunds

	// Profit is already net of loan payments.
	s.NetProfitAfterLoan = s.TotalProfit
	if loanAmount > 0 {
		s.ROI = s.NetProfitAfterLoan / loanAmount * 100
	}
	return s
}

// AggregateQuarters rolls monthly records up into calendar quarters, oldest first.
func AggregateQuarters(records []model.MonthlyRecord) []model.QuarterStats {
	var quarters []model.QuarterStats
	index := make(map[string]int)

	for _, r := range records {
		q := (int(r.Date.Month())-1)/3 + 1
		label := fmt.Sprintf("%d-Q%d", r.Date.Year(), q)
		i, ok := index[label]
		if !ok {
			i = len(quarters)
			index[label] = i
			quarters = append(quarters, model.QuarterStats{Label: label, Start: r.Date})
		}
		qs := &quarters[i]
		qs.Months++
		qs.Revenue += r.TotalRevenue
		qs.Costs += r.TotalCosts
		qs.Profit += r.Profit
		qs.NewCustomers += r.NewCustomersTotal
		qs.Churned += r.ChurnedTotal
		qs.EndCustomers = r.TotalCustomers
		qs.NewWebsites += r.NewWebsitesTotal
	}
	return quarters
}

// AggregateChannels computes per-channel totals sorted by spend descending.
func AggregateChannels(records []model.MonthlyRecord) []model.ChannelStats {
	byName := make(map[string]*model.ChannelStats)
	totalCustomers := 0

	for _, r := range records {
		for _, c := range r.Channels {
			cs, ok := byName[c.Name]
			if !ok {
				cs = &model.ChannelStats{Channel: c.Name}
				byName[c.Name] = cs
			}
			cs.Spend += c.Spend
			cs.Customers += c.Customers
			totalCustomers += c.Customers
		}
	}

	channels := make([]model.ChannelStats, 0, len(byName))
	for _, cs := range byName {
		if cs.Customers > 0 {
			cs.AvgCAC = cs.Spend / float64(cs.Customers)
		}
		if totalCustomers > 0 {
			cs.SharePercent = float64(cs.Customers) / float64(totalCustomers) * 100
		}
		channels = append(channels, *cs)
	}
	sort.Slice(channels, func(i, j int) bool {
		if channels[i].Spend != channels[j].Spend {
			return channels[i].Spend > channels[j].Spend
		}
		return channels[i].Channel < channels[j].Channel
	})
	return channels
}

// AggregateTiers computes per-tier acquisition, churn and final counts.
func AggregateTiers(records []model.MonthlyRecord) []model.TierStats {
	tiers := make([]model.TierStats, len(model.Tiers))
	for i, t := range model.Tiers {
		tiers[i].Tier = t
	}
	if len(records) == 0 {
		return tiers
	}

	for _, r := range records {
		for i, t := range model.Tiers {
			tiers[i].Acquired += r.NewCustomers[t]
			tiers[i].Churned += r.Churned[t]
		}
	}
	last := records[len(records)-1]
	for i, t := range model.Tiers {
		tiers[i].Customers = last.Customers[t]
		tiers[i].Websites = last.Websites[t]
		if last.TotalCustomers > 0 {
			tiers[i].SharePercent = float64(last.Customers[t]) / float64(last.TotalCustomers) * 100
		}
	}
	return tiers
}

// Runway estimates how many months the final bank balance lasts at the
// average net cash flow of the trailing window.
func Runway(records []model.MonthlyRecord, window int) model.RunwayStats {
	rs := model.RunwayStats{ProjectedMonths: len(records), MonthsOfRunway: -1}
	if len(records) == 0 {
		return rs
	}

	rs.LowestBalance = math.Inf(1)
	for _, r := range records {
		if r.BankBalance < rs.LowestBalance {
			rs.LowestBalance = r.BankBalance
			rs.LowestMonth = r.Month
		}
	}

	last := records[len(records)-1]
	rs.BankBalance = last.BankBalance

	start := max(0, len(records)-max(window, 1))
	var sum float64
	for _, r := range records[start:] {
		sum += r.NetCashFlow
	}
	rs.AvgNetCashFlow = sum / float64(len(records)-start)
	if rs.AvgNetCashFlow < 0 {
		rs.MonthsOfRunway = math.Max(0, rs.BankBalance) / -rs.AvgNetCashFlow
	}
	return rs
}

// FilterByMonth returns records with from <= Month <= to. Zero bounds are open.
func FilterByMonth(records []model.MonthlyRecord, from, to int) []model.MonthlyRecord {
	if from <= 0 && to <= 0 {
		return records
	}
	var out []model.MonthlyRecord
	for _, r := range records {
		if from > 0 && r.Month < from {
			continue
		}
		if to > 0 && r.Month > to {
			continue
		}
		out = append(out, r)
	}
	return out
}
