package domain

// MonthlyProgress holds the derived month-over-month and year-to-date
// figures for one report cycle. Amounts are yen, rates are percentages.
type MonthlyProgress struct {
	CurrentSales           int64 // fiscal-year cumulative
	CurrentExpenses        int64 // fiscal-year cumulative
	CurrentProfit          int64
	LastSales              int64 // previous month only
	LastExpenses           int64 // previous month only
	SalesGrowthRate        float64
	ExpenseGrowthRate      float64
	ProfitMargin           float64
	MonthlyExpenseIncrease int64
}

// TaxEstimate is a quick-calculation income tax estimate derived from
// yearly sales and expenses.
type TaxEstimate struct {
	Income        int64
	TaxableIncome int64
	EstimatedTax  int64
	CurrentRate   float64 // marginal rate, percent

	// Lower bracket data. Zero-valued with HasLowerBracket false when the
	// payer is already in the lowest bracket.
	HasLowerBracket  bool
	NextBracketLimit int64
	NextRate         float64
	// Additional deductible expense needed to drop one bracket. Negative
	// means the payer is already below the threshold; callers treat that
	// as "no further reduction needed".
	AmountToNextBracket int64
}

// FlaggedDeal is a deal that requires a receipt but has none attached,
// reduced to what the notification needs. Output only, never persisted.
type FlaggedDeal struct {
	ID                  int64
	Date                string
	URL                 string // deep link into the accounting service
	Amount              int64
	AccountItemNames    []string
	PaymentDescriptions []string // wallet txn descriptions, when matched
}

// ExpenseItem is one row of the expense breakdown.
type ExpenseItem struct {
	Name   string
	Amount int64
}

// DailyReport is the aggregate produced once per generation cycle and
// handed straight to the message renderer.
type DailyReport struct {
	CompanyID        int64
	Deals            []FlaggedDeal
	MonthlyProgress  MonthlyProgress
	ExpenseBreakdown []ExpenseItem
	FiscalYear       int
	TaxEstimate      TaxEstimate
}
