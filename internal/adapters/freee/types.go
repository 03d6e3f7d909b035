package freee

// Wire types for the freee accounting API responses this bot consumes.
// Nullable fields mirror the API's JSON (account_item_name is null on
// category total rows).

type trialBalanceResponse struct {
	TrialPL *trialPL `json:"trial_pl"`
}

type trialPL struct {
	FiscalYear int          `json:"fiscal_year"`
	Balances   []balanceRow `json:"balances"`
}

type balanceRow struct {
	AccountCategoryName string  `json:"account_category_name"`
	AccountItemName     *string `json:"account_item_name"`
	TotalLine           bool    `json:"total_line"`
	ClosingBalance      int64   `json:"closing_balance"`
}

type dealsResponse struct {
	Deals []dealRow `json:"deals"`
}

type dealRow struct {
	ID        int64            `json:"id"`
	IssueDate string           `json:"issue_date"`
	Amount    int64            `json:"amount"`
	Details   []dealDetailRow  `json:"details"`
	Receipts  []dealReceiptRow `json:"receipts"`
	Payments  []dealPaymentRow `json:"payments"`
}

type dealDetailRow struct {
	AccountItemID int64 `json:"account_item_id"`
}

type dealReceiptRow struct {
	ID int64 `json:"id"`
}

type dealPaymentRow struct {
	ID                 int64  `json:"id"`
	Date               string `json:"date"`
	FromWalletableType string `json:"from_walletable_type"`
	FromWalletableID   int64  `json:"from_walletable_id"`
	Amount             int64  `json:"amount"`
}

type walletTxnsResponse struct {
	WalletTxns []walletTxnRow `json:"wallet_txns"`
}

type walletTxnRow struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	Amount       int64  `json:"amount"`
	WalletableID int64  `json:"walletable_id"`
	Description  string `json:"description"`
}
