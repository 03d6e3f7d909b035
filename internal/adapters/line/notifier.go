package line

import (
	"context"
	"time"

	"github.com/884js/freee-line-notifier/internal/core/domain"
	portsclients "github.com/884js/freee-line-notifier/internal/core/ports/clients"
)

// Notifier renders daily reports and pushes them over the Messaging API.
type Notifier struct {
	client *Client
	now    func() time.Time
}

// NewNotifier creates a notifier over an existing client.
func NewNotifier(client *Client) *Notifier {
	return &Notifier{client: client, now: time.Now}
}

// Ensure Notifier implements the ReportNotifier port
var _ portsclients.ReportNotifier = (*Notifier)(nil)

// PushDailyReport renders the report as a flex message and pushes it.
func (n *Notifier) PushDailyReport(ctx context.Context, lineUserID string, report *domain.DailyReport) error {
	return n.client.Push(ctx, lineUserID, NewDailyReportMessage(report, n.now()))
}
