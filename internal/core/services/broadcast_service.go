package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/884js/freee-line-notifier/internal/core/domain"
	portsclients "github.com/884js/freee-line-notifier/internal/core/ports/clients"
	portsrepo "github.com/884js/freee-line-notifier/internal/core/ports/repositories"
	portssvc "github.com/884js/freee-line-notifier/internal/core/ports/services"
	"github.com/884js/freee-line-notifier/internal/metrics"
)

// broadcastService fans the daily report out to every registered user.
type broadcastService struct {
	BaseService
	userRepo portsrepo.UserRepository
	reports  portssvc.ReportSvcFacade
	notifier portsclients.ReportNotifier
}

// NewBroadcastService creates a new broadcast service
func NewBroadcastService(userRepo portsrepo.UserRepository, reports portssvc.ReportSvcFacade, notifier portsclients.ReportNotifier) portssvc.BroadcastSvcFacade {
	return &broadcastService{
		userRepo: userRepo,
		reports:  reports,
		notifier: notifier,
	}
}

// Ensure broadcastService implements the BroadcastSvcFacade interface
var _ portssvc.BroadcastSvcFacade = (*broadcastService)(nil)

// BroadcastDailyReports generates and delivers a report for every
// registered user. Each recipient is an independent unit of work: a
// failure is logged and counted, never cancelling the rest of the batch.
func (s *broadcastService) BroadcastDailyReports(ctx context.Context) error {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users for broadcast: %w", err)
	}

	s.LogInfo(ctx, "Starting daily report broadcast", slog.Int("recipients", len(users)))

	var wg sync.WaitGroup
	for _, user := range users {
		wg.Add(1)
		go func(u domain.User) {
			defer wg.Done()
			s.deliverTo(ctx, u)
		}(user)
	}
	wg.Wait()

	return nil
}

func (s *broadcastService) deliverTo(ctx context.Context, user domain.User) {
	report, err := s.reports.GenerateDailyReport(ctx, user.LineUserID)
	if err != nil {
		metrics.BroadcastFailures.WithLabelValues("generate").Inc()
		s.LogError(ctx, err, "Daily report generation failed",
			slog.String("line_user_id", user.LineUserID))
		return
	}

	if err := s.notifier.PushDailyReport(ctx, user.LineUserID, report); err != nil {
		metrics.BroadcastFailures.WithLabelValues("deliver").Inc()
		s.LogError(ctx, err, "Daily report delivery failed",
			slog.String("line_user_id", user.LineUserID))
		return
	}

	metrics.BroadcastDeliveries.Inc()
}
