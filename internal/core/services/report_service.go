package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/884js/freee-line-notifier/internal/apperrors"
	"github.com/884js/freee-line-notifier/internal/core/domain"
	portsclients "github.com/884js/freee-line-notifier/internal/core/ports/clients"
	portsrepo "github.com/884js/freee-line-notifier/internal/core/ports/repositories"
	portssvc "github.com/884js/freee-line-notifier/internal/core/ports/services"
	"github.com/884js/freee-line-notifier/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// jst is the reporting timezone; fiscal scoping follows the Japanese
// calendar regardless of where the process runs.
var jst = time.FixedZone("Asia/Tokyo", 9*60*60)

// reportService assembles daily reports from the accounting API.
type reportService struct {
	BaseService
	userRepo   portsrepo.UserRepository
	accounting portsclients.AccountingProvider
	rules      []domain.ReceiptRule
	now        func() time.Time
}

// ReportServiceOption is a functional option for configuring the report service
type ReportServiceOption func(*reportService)

// WithReceiptRules overrides the built-in receipt-required allow-list.
func WithReceiptRules(rules []domain.ReceiptRule) ReportServiceOption {
	return func(s *reportService) {
		s.rules = rules
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ReportServiceOption {
	return func(s *reportService) {
		s.now = now
	}
}

// NewReportService creates a new report service with the provided options
func NewReportService(userRepo portsrepo.UserRepository, accounting portsclients.AccountingProvider, options ...ReportServiceOption) portssvc.ReportSvcFacade {
	svc := &reportService{
		userRepo:   userRepo,
		accounting: accounting,
		rules:      domain.DefaultReceiptRules,
		now:        time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportService implements the ReportSvcFacade interface
var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// GenerateDailyReport builds the full daily report for a LINE user: the
// deals and three trial balance snapshots are fetched concurrently, then
// reduced into monthly progress, the tax estimate, the expense breakdown
// and the flagged-deal list.
func (s *reportService) GenerateDailyReport(ctx context.Context, lineUserID string) (*domain.DailyReport, error) {
	company, err := s.linkedCompany(ctx, lineUserID)
	if err != nil {
		return nil, err
	}

	client, err := s.accounting.ClientFor(ctx, *company)
	if err != nil {
		return nil, fmt.Errorf("failed to build accounting client: %w", err)
	}

	now := s.now().In(jst)
	currentYear, currentMonth := now.Year(), int(now.Month())
	lastMonthYear, lastMonth := currentYear, currentMonth-1
	if currentMonth == 1 {
		lastMonthYear, lastMonth = currentYear-1, 12
	}

	companyID := company.FreeeCompanyID

	var (
		deals                         []domain.Deal
		currentTB, lastTB, yearToDate *domain.TrialBalance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		deals, err = client.GetDeals(gctx, companyID)
		return err
	})
	g.Go(func() error {
		var err error
		currentTB, err = s.trialBalanceWithFallback(gctx, client, companyID, currentYear, currentMonth)
		return err
	})
	g.Go(func() error {
		var err error
		lastTB, err = s.trialBalanceWithFallback(gctx, client, companyID, lastMonthYear, lastMonth)
		return err
	})
	g.Go(func() error {
		var err error
		yearToDate, err = s.trialBalanceWithFallback(gctx, client, companyID, currentYear, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	progress := computeMonthlyProgress(currentTB, lastTB, yearToDate)

	fiscalYear := currentYear
	if pl, ok := yearToDate.PL(); ok {
		fiscalYear = pl.FiscalYear
	}

	report := &domain.DailyReport{
		CompanyID:        companyID,
		Deals:            filterFlaggedDeals(deals, s.rules, nil),
		MonthlyProgress:  progress,
		ExpenseBreakdown: expenseBreakdown(yearToDate),
		FiscalYear:       fiscalYear,
		TaxEstimate:      estimateTax(progress.CurrentSales, progress.CurrentExpenses),
	}

	metrics.ReportsGenerated.Inc()
	s.LogInfo(ctx, "Daily report assembled",
		slog.Int64("company_id", companyID),
		slog.Int("fiscal_year", report.FiscalYear),
		slog.Int("flagged_deals", len(report.Deals)))
	return report, nil
}

// ListFlaggedDeals returns the receipt-required deals for a LINE user,
// enriched with wallet transaction descriptions.
func (s *reportService) ListFlaggedDeals(ctx context.Context, lineUserID string) ([]domain.FlaggedDeal, error) {
	company, err := s.linkedCompany(ctx, lineUserID)
	if err != nil {
		return nil, err
	}

	client, err := s.accounting.ClientFor(ctx, *company)
	if err != nil {
		return nil, fmt.Errorf("failed to build accounting client: %w", err)
	}

	var (
		deals      []domain.Deal
		walletTxns []domain.WalletTxn
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		deals, err = client.GetDeals(gctx, company.FreeeCompanyID)
		return err
	})
	g.Go(func() error {
		var err error
		walletTxns, err = client.GetWalletTxns(gctx, company.FreeeCompanyID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return filterFlaggedDeals(deals, s.rules, walletTxns), nil
}

// linkedCompany resolves a LINE user to their active company, surfacing
// missing links as apperrors.ErrNotLinked.
func (s *reportService) linkedCompany(ctx context.Context, lineUserID string) (*domain.Company, error) {
	user, err := s.userRepo.FindUserByLineID(ctx, lineUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || user.ActiveCompany == nil {
		return nil, apperrors.ErrNotLinked
	}
	return user.ActiveCompany, nil
}

// trialBalanceWithFallback fetches a trial balance, retrying once against
// the previous fiscal year when the requested accounting period does not
// exist upstream. A month-scoped request falls back to the previous year's
// full-year scope (month 12). Any other failure, including a failure of
// the fallback itself, propagates unchanged.
func (s *reportService) trialBalanceWithFallback(ctx context.Context, client portsclients.AccountingClient, companyID int64, year, endMonth int) (*domain.TrialBalance, error) {
	tb, err := client.GetTrialBalance(ctx, portsclients.TrialBalanceQuery{
		CompanyID:  companyID,
		FiscalYear: year,
		EndMonth:   endMonth,
	})
	if err == nil {
		return tb, nil
	}
	if !errors.Is(err, apperrors.ErrPeriodNotFound) {
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year not found, falling back to previous year",
		slog.Int("fiscal_year", year),
		slog.Int64("company_id", companyID))

	fallback := portsclients.TrialBalanceQuery{
		CompanyID:  companyID,
		FiscalYear: year - 1,
	}
	if endMonth != 0 {
		fallback.EndMonth = 12
	}
	return client.GetTrialBalance(ctx, fallback)
}
