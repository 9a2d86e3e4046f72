package pipeline

import "github.com/theirongolddev/runway/internal/model"

// Recommendations picks standout outcomes from a sweep. A nil field means
// no successful outcome qualified. Only loan scenarios compete on ROI.
type Recommendations struct {
	BestROI      *model.Outcome
	BestCashFlow *model.Outcome
	BestGrowth   *model.Outcome
	BestProfit   *model.Outcome
	// Conservative is the smallest loan that still returns a positive ROI.
	Conservative *model.Outcome
}

// Recommend ranks outcomes. Ties keep the earlier outcome.
func Recommend(outcomes []model.Outcome) Recommendations {
	var r Recommendations
	better := func(cur *model.Outcome, cand *model.Outcome, key func(model.Summary) float64) *model.Outcome {
		if cur == nil || key(cand.Summary) > key(cur.Summary) {
			return cand
		}
		return cur
	}

	for i := range outcomes {
		o := &outcomes[i]
		if o.Err != nil {
			continue
		}
		if o.Summary.LoanAmount > 0 {
			r.BestROI = better(r.BestROI, o, func(s model.Summary) float64 { return s.ROI })
		}
		r.BestCashFlow = better(r.BestCashFlow, o, func(s model.Summary) float64 { return s.CumulativeCashFlow })
		r.BestGrowth = better(r.BestGrowth, o, func(s model.Summary) float64 { return float64(s.FinalTotalCustomers) })
		r.BestProfit = better(r.BestProfit, o, func(s model.Summary) float64 { return s.NetProfitAfterLoan })

		if o.Summary.ROI > 0 && (r.Conservative == nil || o.Summary.LoanAmount < r.Conservative.Summary.LoanAmount) {
			r.Conservative = o
		}
	}
	return r
}
