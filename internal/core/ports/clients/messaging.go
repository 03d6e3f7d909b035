package clients

import (
	"context"

	"github.com/884js/freee-line-notifier/internal/core/domain"
)

// ReportNotifier renders and delivers an assembled daily report to one
// recipient on the messaging platform.
type ReportNotifier interface {
	PushDailyReport(ctx context.Context, lineUserID string, report *domain.DailyReport) error
}
