package services

import (
	"sort"
	"strings"

	"github.com/884js/freee-line-notifier/internal/core/domain"
)

// reduceCategory extracts one category's aggregate from a trial balance.
// The category's total row is authoritative when present; otherwise the
// non-total lines accepted by fallback are summed. Incomplete snapshots
// reduce to zero.
func reduceCategory(tb *domain.TrialBalance, category string, fallback func(domain.BalanceLine) bool) int64 {
	pl, ok := tb.PL()
	if !ok {
		return 0
	}

	for _, line := range pl.Balances {
		if line.TotalLine && line.AccountCategoryName == category {
			return line.ClosingBalance
		}
	}

	var sum int64
	for _, line := range pl.Balances {
		if !line.TotalLine && fallback(line) {
			sum += line.ClosingBalance
		}
	}
	return sum
}

// salesAmount reduces the sales category. The fallback keeps revenue item
// rows while excluding cost-of-sales rows.
func salesAmount(tb *domain.TrialBalance) int64 {
	return reduceCategory(tb, domain.CategorySales, func(line domain.BalanceLine) bool {
		return strings.Contains(line.AccountItemName, "売上") &&
			!strings.Contains(line.AccountItemName, "原価")
	})
}

// expenseAmount reduces the expense category.
func expenseAmount(tb *domain.TrialBalance) int64 {
	return reduceCategory(tb, domain.CategoryExpense, func(line domain.BalanceLine) bool {
		return strings.Contains(line.AccountItemName, "費") ||
			strings.Contains(line.AccountItemName, "経費")
	})
}

// expenseBreakdown lists the expense item rows with a positive closing
// balance, largest first. Total rows and unnamed rows are skipped.
func expenseBreakdown(tb *domain.TrialBalance) []domain.ExpenseItem {
	pl, ok := tb.PL()
	if !ok {
		return nil
	}

	items := make([]domain.ExpenseItem, 0, len(pl.Balances))
	for _, line := range pl.Balances {
		if line.AccountCategoryName != domain.CategoryExpense || line.TotalLine {
			continue
		}
		if line.ClosingBalance <= 0 || line.AccountItemName == "" {
			continue
		}
		items = append(items, domain.ExpenseItem{
			Name:   line.AccountItemName,
			Amount: line.ClosingBalance,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Amount > items[j].Amount
	})
	return items
}
