package domain

// Deal is a transaction record sourced from the accounting API. Immutable,
// fetched per request.
type Deal struct {
	ID        int64
	IssueDate string // YYYY-MM-DD
	Amount    int64
	Details   []DealDetail
	Receipts  []Receipt
	Payments  []Payment
}

// DealDetail is one line of a deal, referencing the account item it was
// booked against.
type DealDetail struct {
	AccountItemID int64
}

// Receipt is an evidence attachment on a deal. Only its presence matters
// to the receipt-requirement filter.
type Receipt struct {
	ID int64
}

// Payment is a settlement record on a deal, used to join the deal against
// wallet transactions.
type Payment struct {
	ID                 int64
	Date               string
	FromWalletableType string
	FromWalletableID   int64
	Amount             int64
}

// WalletTxn is a bank/wallet transaction from the accounting API, carrying
// the human-readable description the deal itself lacks.
type WalletTxn struct {
	ID           int64
	Date         string
	Amount       int64
	WalletableID int64
	Description  string
}
