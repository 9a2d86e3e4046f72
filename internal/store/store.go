// Package store exports forecast runs and sweep outcomes to SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/runway/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store is a SQLite export sink.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening export db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run identifies one forecast run.
type Run struct {
	ID        string
	Scenario  string
	Strategy  string
	Seed      int64
	Months    int
	CreatedAt time.Time
}

// SaveRun stores a run with its months and draws and returns the new run ID.
func (s *Store) SaveRun(run Run, records []model.MonthlyRecord) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	created := s.now().UTC().Format(time.RFC3339)

	_, err = tx.Exec(`INSERT INTO runs (run_id, scenario, strategy, seed, months, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, run.Scenario, run.Strategy, run.Seed, len(records), created)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	monthStmt, err := tx.Prepare(`INSERT INTO months
		(run_id, month, date, basic, pro, enterprise, total_customers, new_customers, churned,
		 websites, designers, utilization, staffing_action, full_time,
		 saas_revenue, website_revenue, total_revenue, marketing_spend, compensation,
		 founder_support, loan_payment, total_costs, profit, cumulative_profit,
		 net_cash_flow, cumulative_cash_flow, bank_balance, loan_balance, total_invested, remaining_funds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer func() { _ = monthStmt.Close() }()

	drawStmt, err := tx.Prepare(`INSERT INTO draws (run_id, month, seq, category, amount)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer func() { _ = drawStmt.Close() }()

	for _, r := range records {
		fullTime := 0
		if r.FullTime {
			fullTime = 1
		}
		_, err = monthStmt.Exec(
			id, r.Month, r.Label(),
			r.Customers[model.Basic], r.Customers[model.Pro], r.Customers[model.Enterprise],
			r.TotalCustomers, r.NewCustomersTotal, r.ChurnedTotal,
			r.WebsitesTotal, r.Designers, r.Utilization, r.StaffingAction, fullTime,
			r.SaaSRevenue, r.WebsiteRevenue, r.TotalRevenue, r.MarketingSpend, r.Compensation,
			r.FounderSupport, r.LoanPayment, r.TotalCosts, r.Profit, r.CumulativeProfit,
			r.NetCashFlow, r.CumulativeCashFlow, r.BankBalance, r.LoanBalance, r.TotalInvested, r.RemainingFunds,
		)
		if err != nil {
			return "", fmt.Errorf("inserting month %d: %w", r.Month, err)
		}

		for seq, d := range r.Draws {
			if _, err := drawStmt.Exec(id, r.Month, seq, d.Category, d.Amount); err != nil {
				return "", fmt.Errorf("inserting draw %s month %d: %w", d.Category, r.Month, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`SELECT run_id, scenario, strategy, seed, months, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Scenario, &r.Strategy, &r.Seed, &r.Months, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadMonths reads the stored columns of a run back into records, draws included.
func (s *Store) LoadMonths(runID string) ([]model.MonthlyRecord, error) {
	rows, err := s.db.Query(`SELECT
		month, date, basic, pro, enterprise, total_customers, new_customers, churned,
		websites, designers, utilization, staffing_action, full_time,
		saas_revenue, website_revenue, total_revenue, marketing_spend, compensation,
		founder_support, loan_payment, total_costs, profit, cumulative_profit,
		net_cash_flow, cumulative_cash_flow, bank_balance, loan_balance, total_invested, remaining_funds
		FROM months WHERE run_id = ? ORDER BY month`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.MonthlyRecord
	for rows.Next() {
		var r model.MonthlyRecord
		var date string
		var action sql.NullString
		var fullTime int
		err := rows.Scan(
			&r.Month, &date,
			&r.Customers[model.Basic], &r.Customers[model.Pro], &r.Customers[model.Enterprise],
			&r.TotalCustomers, &r.NewCustomersTotal, &r.ChurnedTotal,
			&r.WebsitesTotal, &r.Designers, &r.Utilization, &action, &fullTime,
			&r.SaaSRevenue, &r.WebsiteRevenue, &r.TotalRevenue, &r.MarketingSpend, &r.Compensation,
			&r.FounderSupport, &r.LoanPayment, &r.TotalCosts, &r.Profit, &r.CumulativeProfit,
			&r.NetCashFlow, &r.CumulativeCashFlow, &r.BankBalance, &r.LoanBalance, &r.TotalInvested, &r.RemainingFunds,
		)
		if err != nil {
			return nil, err
		}
		r.Date, _ = time.Parse("2006-01", date)
		r.StaffingAction = action.String
		r.FullTime = fullTime != 0
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	drawRows, err := s.db.Query(`SELECT month, category, amount FROM draws
		WHERE run_id = ? ORDER BY month, seq`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = drawRows.Close() }()

	monthIdx := make(map[int]int, len(records))
	for i, r := range records {
		monthIdx[r.Month] = i
	}

	for drawRows.Next() {
		var month int
		var d model.Draw
		if err := drawRows.Scan(&month, &d.Category, &d.Amount); err != nil {
			return nil, err
		}
		if idx, ok := monthIdx[month]; ok {
			records[idx].Draws = append(records[idx].Draws, d)
			records[idx].LoanDeployed += d.Amount
		}
	}
	return records, drawRows.Err()
}

// SaveSweep stores every outcome of a sweep under a new sweep ID.
func (s *Store) SaveSweep(outcomes []model.Outcome) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	created := s.now().UTC().Format(time.RFC3339)

	for _, o := range outcomes {
		errText := ""
		if o.Err != nil {
			errText = o.Err.Error()
		}
		sm := o.Summary
		_, err = tx.Exec(`INSERT INTO sweep_outcomes
			(sweep_id, scenario, strategy, loan_amount, total_revenue, total_profit, loan_payments,
			 final_cash_flow, final_customers, break_even_month, roi, error, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, o.Scenario, o.Strategy, sm.LoanAmount, sm.TotalRevenue, sm.TotalProfit, sm.TotalLoanPayments,
			sm.CumulativeCashFlow, sm.FinalTotalCustomers, sm.BreakEvenMonth, sm.ROI, errText, created,
		)
		if err != nil {
			return "", fmt.Errorf("inserting outcome %s/%s: %w", o.Scenario, o.Strategy, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// OutcomeCount returns the number of stored outcomes for a sweep.
func (s *Store) OutcomeCount(sweepID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM sweep_outcomes WHERE sweep_id = ?", sweepID).Scan(&count)
	return count, err
}

// DeleteRun removes a run with its months and draws.
func (s *Store) DeleteRun(runID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	return err
}
