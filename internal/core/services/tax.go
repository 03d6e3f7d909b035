package services

import (
	"math"

	"github.com/884js/freee-line-notifier/internal/core/domain"
)

// Deductions applied before bracket selection: the basic deduction plus
// the blue-return (preferential filing) special deduction.
const (
	basicDeduction      = 480_000
	blueReturnDeduction = 650_000
	totalDeduction      = basicDeduction + blueReturnDeduction
)

// taxBracket is one tier of the progressive income tax table under the
// quick-calculation method: tax = taxableIncome*rate - deduction.
type taxBracket struct {
	Limit       int64 // upper bound of taxable income, inclusive
	RatePercent int64
	Deduction   int64
}

// National income tax brackets. Ordered ascending by limit; the last entry
// is the unbounded catch-all.
var taxBrackets = []taxBracket{
	{Limit: 1_950_000, RatePercent: 5, Deduction: 0},
	{Limit: 3_300_000, RatePercent: 10, Deduction: 97_500},
	{Limit: 6_950_000, RatePercent: 20, Deduction: 427_500},
	{Limit: 9_000_000, RatePercent: 23, Deduction: 636_000},
	{Limit: 18_000_000, RatePercent: 33, Deduction: 1_536_000},
	{Limit: 40_000_000, RatePercent: 40, Deduction: 2_796_000},
	{Limit: math.MaxInt64, RatePercent: 45, Deduction: 4_796_000},
}

// estimateTax computes the quick-calculation income tax estimate for the
// given yearly sales and expenses. Taxable income is clamped at zero; the
// function returns a complete estimate for any finite input.
func estimateTax(sales, expenses int64) domain.TaxEstimate {
	income := sales - expenses
	taxableIncome := income - totalDeduction
	if taxableIncome < 0 {
		taxableIncome = 0
	}

	idx := len(taxBrackets) - 1
	for i, b := range taxBrackets {
		if taxableIncome <= b.Limit {
			idx = i
			break
		}
	}
	bracket := taxBrackets[idx]

	// Integer division floors the product exactly; the bracket deduction
	// is an integer so no further rounding happens.
	estimatedTax := taxableIncome*bracket.RatePercent/100 - bracket.Deduction

	estimate := domain.TaxEstimate{
		Income:        income,
		TaxableIncome: taxableIncome,
		EstimatedTax:  estimatedTax,
		CurrentRate:   float64(bracket.RatePercent),
	}

	// The next lower bracket is the threshold worth knowing about: spend
	// AmountToNextBracket more in deductible expenses and the marginal
	// rate drops one tier.
	if idx > 0 {
		lower := taxBrackets[idx-1]
		estimate.HasLowerBracket = true
		estimate.NextBracketLimit = lower.Limit
		estimate.NextRate = float64(lower.RatePercent)
		estimate.AmountToNextBracket = taxableIncome - lower.Limit
	}

	return estimate
}
