package services

import (
	"context"

	"github.com/884js/freee-line-notifier/internal/core/domain"
)

// ReportSvcFacade defines report generation operations.
type ReportSvcFacade interface {
	// GenerateDailyReport builds the full daily report for a LINE user.
	// Returns apperrors.ErrNotLinked when the user has no linked company.
	GenerateDailyReport(ctx context.Context, lineUserID string) (*domain.DailyReport, error)

	// ListFlaggedDeals returns the receipt-required deals for a LINE user,
	// enriched with wallet transaction descriptions.
	ListFlaggedDeals(ctx context.Context, lineUserID string) ([]domain.FlaggedDeal, error)
}

// BroadcastSvcFacade defines the scheduled broadcast operation.
type BroadcastSvcFacade interface {
	// BroadcastDailyReports generates and delivers a report for every
	// registered user. Per-recipient failures are logged and skipped,
	// never aborting the batch.
	BroadcastDailyReports(ctx context.Context) error
}
