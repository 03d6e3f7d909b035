package clients

import (
	"context"

	"github.com/884js/freee-line-notifier/internal/core/domain"
)

// TrialBalanceQuery selects the fiscal scope of a trial balance request.
// EndMonth zero requests the full fiscal year.
type TrialBalanceQuery struct {
	CompanyID  int64
	FiscalYear int
	EndMonth   int
}

// AccountingClient is the external accounting API, bound to one company's
// credentials. GetTrialBalance reports a missing accounting period as an
// error matching apperrors.ErrPeriodNotFound; all other failures are
// ordinary errors.
type AccountingClient interface {
	GetTrialBalance(ctx context.Context, q TrialBalanceQuery) (*domain.TrialBalance, error)
	GetDeals(ctx context.Context, companyID int64) ([]domain.Deal, error)
	GetWalletTxns(ctx context.Context, companyID int64) ([]domain.WalletTxn, error)
}

// AccountingProvider hands out an AccountingClient for a linked company,
// taking care of credential exchange.
type AccountingProvider interface {
	ClientFor(ctx context.Context, company domain.Company) (AccountingClient, error)
}
