package domain

// Account category names as they appear in the freee trial P&L. The API
// reports them in Japanese regardless of request locale.
const (
	CategorySales   = "収入金額"
	CategoryExpense = "経費"
)

// BalanceLine is a single row of a trial P&L: an account item with its
// closing balance in yen, or the pre-aggregated category total when
// TotalLine is set. At most one total row exists per category and it is
// authoritative over summing the item rows.
type BalanceLine struct {
	AccountCategoryName string
	AccountItemName     string // empty on category total rows
	TotalLine           bool
	ClosingBalance      int64
}

// ProfitAndLoss is the trial_pl section of a trial balance report.
type ProfitAndLoss struct {
	FiscalYear int
	Balances   []BalanceLine
}

// TrialBalance is a point-in-time trial balance snapshot for one fiscal
// scope. It is fetched fresh per report generation and never mutated.
type TrialBalance struct {
	TrialPL *ProfitAndLoss
}

// PL returns the profit-and-loss section and whether the snapshot is
// structurally complete. An incomplete snapshot reduces to zero-valued
// aggregates; it is not an error.
func (t *TrialBalance) PL() (*ProfitAndLoss, bool) {
	if t == nil || t.TrialPL == nil || t.TrialPL.Balances == nil {
		return nil, false
	}
	return t.TrialPL, true
}
