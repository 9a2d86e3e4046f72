package loan

import (
	"fmt"
	"math"

	"github.com/theirongolddev/runway/internal/model"
)

// LedgerTolerance bounds floating-point drift in the ledger invariant.
const LedgerTolerance = 0.01

// Ledger tracks deployment of the net loan amount. Every draw moves money
// from Remaining to Invested, so Invested + Remaining == Net.
type Ledger struct {
	net       float64
	invested  float64
	remaining float64
}

// NewLedger starts a ledger with the full net amount undeployed.
func NewLedger(net float64) *Ledger {
	return &Ledger{net: net, remaining: net}
}

// Draw deploys up to amount for a category and returns the draw actually
// made, capped by the remaining funds. A zero draw reports ok false.
func (l *Ledger) Draw(category string, amount float64) (model.Draw, bool) {
	if amount <= 0 || l.remaining <= 0 {
		return model.Draw{Category: category}, false
	}
	amt := math.Min(amount, l.remaining)
	l.invested += amt
	l.remaining -= amt
	return model.Draw{Category: category, Amount: amt}, true
}

// Net returns the disbursed amount the ledger started with.
func (l *Ledger) Net() float64 { return l.net }

// Invested returns the total deployed so far.
func (l *Ledger) Invested() float64 { return l.invested }

// Remaining returns the undeployed funds.
func (l *Ledger) Remaining() float64 { return l.remaining }

// DeploymentRate returns the deployed share of the net amount in percent.
func (l *Ledger) DeploymentRate() float64 {
	if l.net <= 0 {
		return 0
	}
	return l.invested / l.net * 100
}

// Check verifies Invested + Remaining == Net within LedgerTolerance.
func (l *Ledger) Check() error {
	return CheckBalance(l.invested, l.remaining, l.net)
}

// CheckBalance verifies a recorded ledger position.
func CheckBalance(invested, remaining, net float64) error {
	if diff := invested + remaining - net; math.Abs(diff) > LedgerTolerance {
		return fmt.Errorf("ledger imbalance: invested %.2f + remaining %.2f != net %.2f", invested, remaining, net)
	}
	return nil
}
