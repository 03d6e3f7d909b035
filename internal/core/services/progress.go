package services

import "github.com/884js/freee-line-notifier/internal/core/domain"

// computeMonthlyProgress derives growth rates, margin and deltas from the
// current-month, last-month and year-to-date snapshots. The year-to-date
// snapshot is the source for cumulative sales/expenses; the two monthly
// snapshots only feed the month-over-month figures. Any structurally
// incomplete snapshot yields an all-zero result instead of failing the
// report.
func computeMonthlyProgress(currentMonth, lastMonth, yearToDate *domain.TrialBalance) domain.MonthlyProgress {
	if _, ok := currentMonth.PL(); !ok {
		return domain.MonthlyProgress{}
	}
	if _, ok := lastMonth.PL(); !ok {
		return domain.MonthlyProgress{}
	}
	if _, ok := yearToDate.PL(); !ok {
		return domain.MonthlyProgress{}
	}

	currentSales := salesAmount(yearToDate)
	currentExpenses := expenseAmount(yearToDate)
	currentProfit := currentSales - currentExpenses

	currentMonthSales := salesAmount(currentMonth)
	lastMonthSales := salesAmount(lastMonth)
	currentMonthExpenses := expenseAmount(currentMonth)
	lastMonthExpenses := expenseAmount(lastMonth)

	return domain.MonthlyProgress{
		CurrentSales:           currentSales,
		CurrentExpenses:        currentExpenses,
		CurrentProfit:          currentProfit,
		LastSales:              lastMonthSales,
		LastExpenses:           lastMonthExpenses,
		SalesGrowthRate:        growthRate(currentMonthSales, lastMonthSales),
		ExpenseGrowthRate:      growthRate(currentMonthExpenses, lastMonthExpenses),
		ProfitMargin:           ratio(currentProfit, currentSales),
		MonthlyExpenseIncrease: currentMonthExpenses - lastMonthExpenses,
	}
}

// growthRate is the month-over-month change in percent. A non-positive
// previous value yields zero rather than a division by zero or a
// sign-flipped rate.
func growthRate(current, previous int64) float64 {
	if previous <= 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// ratio is part/whole in percent, zero when whole is non-positive.
func ratio(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
