package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/884js/freee-line-notifier/internal/apperrors"
	"github.com/884js/freee-line-notifier/internal/core/domain"
	portsclients "github.com/884js/freee-line-notifier/internal/core/ports/clients"
	portssvc "github.com/884js/freee-line-notifier/internal/core/ports/services"
	"github.com/884js/freee-line-notifier/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByLineID(ctx context.Context, lineUserID string) (*domain.User, error) {
	args := m.Called(ctx, lineUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) DeleteUserByLineID(ctx context.Context, lineUserID string) error {
	args := m.Called(ctx, lineUserID)
	return args.Error(0)
}

// --- Mock AccountingProvider / AccountingClient ---
type MockAccountingProvider struct {
	mock.Mock
}

func (m *MockAccountingProvider) ClientFor(ctx context.Context, company domain.Company) (portsclients.AccountingClient, error) {
	args := m.Called(ctx, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(portsclients.AccountingClient), args.Error(1)
}

type MockAccountingClient struct {
	mock.Mock
}

func (m *MockAccountingClient) GetTrialBalance(ctx context.Context, q portsclients.TrialBalanceQuery) (*domain.TrialBalance, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockAccountingClient) GetDeals(ctx context.Context, companyID int64) ([]domain.Deal, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockAccountingClient) GetWalletTxns(ctx context.Context, companyID int64) ([]domain.WalletTxn, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletTxn), args.Error(1)
}

// --- Test Suite ---
type ReportServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockUserRepository
	mockProvider *MockAccountingProvider
	mockClient   *MockAccountingClient
	service      portssvc.ReportSvcFacade

	lineUserID string
	company    domain.Company
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.mockProvider = new(MockAccountingProvider)
	suite.mockClient = new(MockAccountingClient)

	suite.lineUserID = "U1234567890"
	suite.company = domain.Company{
		CompanyID:      "c-1",
		FreeeCompanyID: 555,
		RefreshToken:   "refresh-token",
	}

	// Mid-May in JST, so the report scopes to 2024/05 with 2024/04 as the
	// previous month.
	clock := func() time.Time {
		return time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	}
	suite.service = services.NewReportService(suite.mockRepo, suite.mockProvider, services.WithClock(clock))
}

func (suite *ReportServiceTestSuite) linkUser() {
	user := &domain.User{
		UserID:        "u-1",
		LineUserID:    suite.lineUserID,
		ActiveCompany: &suite.company,
	}
	suite.mockRepo.On("FindUserByLineID", mock.Anything, suite.lineUserID).Return(user, nil).Once()
	suite.mockProvider.On("ClientFor", mock.Anything, suite.company).Return(suite.mockClient, nil).Once()
}

// statement builds a structurally complete snapshot from category totals.
func statement(fiscalYear int, sales, expenses int64) *domain.TrialBalance {
	return &domain.TrialBalance{
		TrialPL: &domain.ProfitAndLoss{
			FiscalYear: fiscalYear,
			Balances: []domain.BalanceLine{
				{AccountCategoryName: domain.CategorySales, TotalLine: true, ClosingBalance: sales},
				{AccountCategoryName: domain.CategoryExpense, TotalLine: true, ClosingBalance: expenses},
			},
		},
	}
}

func query(companyID int64, year, endMonth int) portsclients.TrialBalanceQuery {
	return portsclients.TrialBalanceQuery{CompanyID: companyID, FiscalYear: year, EndMonth: endMonth}
}

// --- Test Cases ---

func (suite *ReportServiceTestSuite) TestGenerateDailyReport_NotLinkedUser() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByLineID", ctx, suite.lineUserID).Return(nil, nil).Once()

	report, err := suite.service.GenerateDailyReport(ctx, suite.lineUserID)

	suite.Require().ErrorIs(err, apperrors.ErrNotLinked)
	suite.Nil(report)
	suite.mockProvider.AssertNotCalled(suite.T(), "ClientFor", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestGenerateDailyReport_LinkedWithoutCompany() {
	ctx := context.Background()
	user := &domain.User{UserID: "u-1", LineUserID: suite.lineUserID}
	suite.mockRepo.On("FindUserByLineID", ctx, suite.lineUserID).Return(user, nil).Once()

	report, err := suite.service.GenerateDailyReport(ctx, suite.lineUserID)

	suite.Require().ErrorIs(err, apperrors.ErrNotLinked)
	suite.Nil(report)
}

func (suite *ReportServiceTestSuite) TestGenerateDailyReport_Success() {
	ctx := context.Background()
	suite.linkUser()

	cid := suite.company.FreeeCompanyID
	deals := []domain.Deal{
		{
			ID:        10,
			IssueDate: "2024-05-02",
			Amount:    4_400,
			Details:   []domain.DealDetail{{AccountItemID: 626477503}}, // 通信費
		},
		{
			ID:       11,
			Details:  []domain.DealDetail{{AccountItemID: 626477503}},
			Receipts: []domain.Receipt{{ID: 1}},
		},
	}

	suite.mockClient.On("GetDeals", mock.Anything, cid).Return(deals, nil).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 5)).
		Return(statement(2024, 500_000, 200_000), nil).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 4)).
		Return(statement(2024, 400_000, 160_000), nil).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 0)).
		Return(statement(2024, 4_000_000, 1_500_000), nil).Once()

	report, err := suite.service.GenerateDailyReport(ctx, suite.lineUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal(cid, report.CompanyID)
	suite.Equal(2024, report.FiscalYear)

	// Cumulative figures come from the year-to-date snapshot, growth from
	// the two monthly snapshots.
	suite.Equal(int64(4_000_000), report.MonthlyProgress.CurrentSales)
	suite.Equal(int64(1_500_000), report.MonthlyProgress.CurrentExpenses)
	suite.Equal(int64(2_500_000), report.MonthlyProgress.CurrentProfit)
	suite.Equal(int64(400_000), report.MonthlyProgress.LastSales)
	suite.Equal(int64(160_000), report.MonthlyProgress.LastExpenses)
	suite.InDelta(25.0, report.MonthlyProgress.SalesGrowthRate, 0.001)
	suite.InDelta(25.0, report.MonthlyProgress.ExpenseGrowthRate, 0.001)
	suite.InDelta(62.5, report.MonthlyProgress.ProfitMargin, 0.001)
	suite.Equal(int64(40_000), report.MonthlyProgress.MonthlyExpenseIncrease)

	// Income 2,500,000 minus the 1,130,000 deduction lands in the 5% band.
	suite.Equal(int64(2_500_000), report.TaxEstimate.Income)
	suite.Equal(int64(1_370_000), report.TaxEstimate.TaxableIncome)
	suite.Equal(int64(68_500), report.TaxEstimate.EstimatedTax)
	suite.InDelta(5.0, report.TaxEstimate.CurrentRate, 0.001)
	suite.False(report.TaxEstimate.HasLowerBracket)

	// Only the receipt-less deal is flagged.
	suite.Require().Len(report.Deals, 1)
	suite.Equal(int64(10), report.Deals[0].ID)
	suite.Equal([]string{"通信費"}, report.Deals[0].AccountItemNames)

	suite.mockClient.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestGenerateDailyReport_JanuaryScopesLastMonthToPreviousYear() {
	ctx := context.Background()

	clock := func() time.Time {
		return time.Date(2025, 1, 10, 3, 0, 0, 0, time.UTC)
	}
	suite.service = services.NewReportService(suite.mockRepo, suite.mockProvider, services.WithClock(clock))
	suite.linkUser()

	cid := suite.company.FreeeCompanyID
	suite.mockClient.On("GetDeals", mock.Anything, cid).Return([]domain.Deal{}, nil).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2025, 1)).
		Return(statement(2025, 100_000, 50_000), nil).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 12)).
		Return(statement(2024, 90_000, 45_000), nil).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2025, 0)).
		Return(statement(2025, 100_000, 50_000), nil).Once()

	report, err := suite.service.GenerateDailyReport(ctx, suite.lineUserID)

	suite.Require().NoError(err)
	suite.Equal(2025, report.FiscalYear)
	suite.mockClient.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestGenerateDailyReport_PeriodFallbackToPreviousYear() {
	ctx := context.Background()
	suite.linkUser()

	cid := suite.company.FreeeCompanyID
	periodErr := fmt.Errorf("trial balance 2024: %w", apperrors.ErrPeriodNotFound)

	suite.mockClient.On("GetDeals", mock.Anything, cid).Return([]domain.Deal{}, nil).Once()
	// The current-month scope is missing upstream; the retry targets the
	// previous fiscal year's closing month.
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 5)).
		Return(nil, periodErr).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2023, 12)).
		Return(statement(2023, 300_000, 100_000), nil).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 4)).
		Return(statement(2024, 400_000, 160_000), nil).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 0)).
		Return(statement(2024, 4_000_000, 1_500_000), nil).Once()

	report, err := suite.service.GenerateDailyReport(ctx, suite.lineUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.mockClient.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestGenerateDailyReport_FallbackYearDrivesFiscalYear() {
	ctx := context.Background()
	suite.linkUser()

	cid := suite.company.FreeeCompanyID
	periodErr := fmt.Errorf("trial balance 2024: %w", apperrors.ErrPeriodNotFound)

	suite.mockClient.On("GetDeals", mock.Anything, cid).Return([]domain.Deal{}, nil).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 5)).
		Return(statement(2024, 500_000, 200_000), nil).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 4)).
		Return(statement(2024, 400_000, 160_000), nil).Once()
	// The year-to-date scope falls back keeping the full-year scope.
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 0)).
		Return(nil, periodErr).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2023, 0)).
		Return(statement(2023, 6_000_000, 2_000_000), nil).Once()

	report, err := suite.service.GenerateDailyReport(ctx, suite.lineUserID)

	suite.Require().NoError(err)
	suite.Equal(2023, report.FiscalYear)
	suite.Equal(int64(6_000_000), report.MonthlyProgress.CurrentSales)
	suite.mockClient.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestGenerateDailyReport_FallbackFailurePropagates() {
	ctx := context.Background()
	suite.linkUser()

	cid := suite.company.FreeeCompanyID
	periodErr := fmt.Errorf("trial balance 2024: %w", apperrors.ErrPeriodNotFound)
	fallbackErr := assert.AnError

	suite.mockClient.On("GetDeals", mock.Anything, cid).Return([]domain.Deal{}, nil).Maybe()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 5)).
		Return(nil, periodErr).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2023, 12)).
		Return(nil, fallbackErr).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 4)).
		Return(statement(2024, 400_000, 160_000), nil).Maybe()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 0)).
		Return(statement(2024, 4_000_000, 1_500_000), nil).Maybe()

	report, err := suite.service.GenerateDailyReport(ctx, suite.lineUserID)

	suite.Require().ErrorIs(err, fallbackErr)
	suite.Nil(report)
	// One retry only: no query against 2022.
	suite.mockClient.AssertNotCalled(suite.T(), "GetTrialBalance", mock.Anything, query(cid, 2022, 12))
	suite.mockClient.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestGenerateDailyReport_NonPeriodErrorIsNotRetried() {
	ctx := context.Background()
	suite.linkUser()

	cid := suite.company.FreeeCompanyID
	upstreamErr := assert.AnError

	suite.mockClient.On("GetDeals", mock.Anything, cid).Return([]domain.Deal{}, nil).Maybe()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 5)).
		Return(nil, upstreamErr).Once()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 4)).
		Return(statement(2024, 400_000, 160_000), nil).Maybe()
	suite.mockClient.On("GetTrialBalance", mock.Anything, query(cid, 2024, 0)).
		Return(statement(2024, 4_000_000, 1_500_000), nil).Maybe()

	report, err := suite.service.GenerateDailyReport(ctx, suite.lineUserID)

	suite.Require().ErrorIs(err, upstreamErr)
	suite.Nil(report)
	suite.mockClient.AssertNotCalled(suite.T(), "GetTrialBalance", mock.Anything, query(cid, 2023, 12))
	suite.mockClient.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestListFlaggedDeals_EnrichesWithWalletTxns() {
	ctx := context.Background()
	suite.linkUser()

	cid := suite.company.FreeeCompanyID
	deals := []domain.Deal{
		{
			ID:        20,
			IssueDate: "2024-05-03",
			Amount:    8_000,
			Details:   []domain.DealDetail{{AccountItemID: 626477505}}, // 交際費
			Payments: []domain.Payment{
				{Date: "2024-05-03", Amount: 8_000, FromWalletableID: 7},
			},
		},
	}
	walletTxns := []domain.WalletTxn{
		{Date: "2024-05-03", Amount: 8_000, WalletableID: 7, Description: "飲食店A"},
	}

	suite.mockClient.On("GetDeals", mock.Anything, cid).Return(deals, nil).Once()
	suite.mockClient.On("GetWalletTxns", mock.Anything, cid).Return(walletTxns, nil).Once()

	flagged, err := suite.service.ListFlaggedDeals(ctx, suite.lineUserID)

	suite.Require().NoError(err)
	suite.Require().Len(flagged, 1)
	suite.Equal([]string{"交際費"}, flagged[0].AccountItemNames)
	suite.Equal([]string{"飲食店A"}, flagged[0].PaymentDescriptions)
	suite.mockClient.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestListFlaggedDeals_NotLinkedUser() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByLineID", ctx, suite.lineUserID).Return(nil, nil).Once()

	flagged, err := suite.service.ListFlaggedDeals(ctx, suite.lineUserID)

	suite.Require().ErrorIs(err, apperrors.ErrNotLinked)
	suite.Nil(flagged)
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
