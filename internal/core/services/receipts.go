package services

import (
	"fmt"

	"github.com/884js/freee-line-notifier/internal/core/domain"
)

// dealJournalURLFormat deep-links a deal into the accounting service's
// journal view.
const dealJournalURLFormat = "https://secure.freee.co.jp/reports/journals?deal_id=%d&openExternalBrowser=1"

// filterFlaggedDeals returns the deals that require a receipt but have none
// attached. A deal qualifies when at least one of its detail lines is booked
// against an account item in rules and it carries zero receipts. Input
// ordering is preserved. When walletTxns is non-nil, each payment is joined
// against it for a human-readable description.
func filterFlaggedDeals(deals []domain.Deal, rules []domain.ReceiptRule, walletTxns []domain.WalletTxn) []domain.FlaggedDeal {
	flagged := make([]domain.FlaggedDeal, 0)

	for _, deal := range deals {
		if len(deal.Receipts) > 0 {
			continue
		}

		names := matchedRuleNames(deal.Details, rules)
		if len(names) == 0 {
			continue
		}

		fd := domain.FlaggedDeal{
			ID:               deal.ID,
			Date:             deal.IssueDate,
			URL:              fmt.Sprintf(dealJournalURLFormat, deal.ID),
			Amount:           deal.Amount,
			AccountItemNames: names,
		}

		if walletTxns != nil {
			for _, payment := range deal.Payments {
				if desc, ok := findWalletTxnDescription(payment, walletTxns); ok {
					fd.PaymentDescriptions = append(fd.PaymentDescriptions, desc)
				}
			}
		}

		flagged = append(flagged, fd)
	}

	return flagged
}

// matchedRuleNames collects the allow-list name for every detail line that
// references a receipt-required account item. Unmatched lines are dropped.
func matchedRuleNames(details []domain.DealDetail, rules []domain.ReceiptRule) []string {
	var names []string
	for _, detail := range details {
		for _, rule := range rules {
			if rule.ID == detail.AccountItemID {
				names = append(names, rule.Name)
				break
			}
		}
	}
	return names
}

// findWalletTxnDescription joins a payment to a wallet transaction by exact
// match on date, amount and walletable id.
func findWalletTxnDescription(payment domain.Payment, walletTxns []domain.WalletTxn) (string, bool) {
	for _, txn := range walletTxns {
		if txn.Date == payment.Date && txn.Amount == payment.Amount && txn.WalletableID == payment.FromWalletableID {
			return txn.Description, true
		}
	}
	return "", false
}
