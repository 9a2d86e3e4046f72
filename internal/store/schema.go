package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id               TEXT PRIMARY KEY,
    scenario             TEXT NOT NULL,
    strategy             TEXT NOT NULL,
    seed                 INTEGER NOT NULL,
    months               INTEGER NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS months (
    run_id               TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    month                INTEGER NOT NULL,
    date                 TEXT NOT NULL,
    basic                INTEGER,
    pro                  INTEGER,
    enterprise           INTEGER,
    total_customers      INTEGER,
    new_customers        INTEGER,
    churned              INTEGER,
    websites             INTEGER,
    designers            INTEGER,
    utilization          REAL,
    staffing_action      TEXT,
    full_time            INTEGER NOT NULL DEFAULT 0,
    saas_revenue         REAL,
    website_revenue      REAL,
    total_revenue        REAL,
    marketing_spend      REAL,
    compensation         REAL,
    founder_support      REAL,
    loan_payment         REAL,
    total_costs          REAL,
    profit               REAL,
    cumulative_profit    REAL,
    net_cash_flow        REAL,
    cumulative_cash_flow REAL,
    bank_balance         REAL,
    loan_balance         REAL,
    total_invested       REAL,
    remaining_funds      REAL,
    PRIMARY KEY (run_id, month)
);

CREATE TABLE IF NOT EXISTS draws (
    run_id               TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    month                INTEGER NOT NULL,
    seq                  INTEGER NOT NULL,
    category             TEXT NOT NULL,
    amount               REAL NOT NULL,
    PRIMARY KEY (run_id, month, seq)
);

CREATE TABLE IF NOT EXISTS sweep_outcomes (
    sweep_id             TEXT NOT NULL,
    scenario             TEXT NOT NULL,
    strategy             TEXT NOT NULL,
    loan_amount          REAL,
    total_revenue        REAL,
    total_profit         REAL,
    loan_payments        REAL,
    final_cash_flow      REAL,
    final_customers      INTEGER,
    break_even_month     INTEGER,
    roi                  REAL,
    error                TEXT,
    created_at           TEXT NOT NULL,
    PRIMARY KEY (sweep_id, scenario, strategy)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_sweep_created ON sweep_outcomes(created_at);
`
