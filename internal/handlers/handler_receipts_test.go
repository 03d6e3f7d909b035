package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/884js/freee-line-notifier/internal/apperrors"
	"github.com/884js/freee-line-notifier/internal/core/domain"
	"github.com/884js/freee-line-notifier/internal/dto"
	"github.com/884js/freee-line-notifier/internal/handlers"
	"github.com/884js/freee-line-notifier/internal/middleware"
	"github.com/884js/freee-line-notifier/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-jwt-secret"

// --- Mock ReportService ---
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GenerateDailyReport(ctx context.Context, lineUserID string) (*domain.DailyReport, error) {
	args := m.Called(ctx, lineUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyReport), args.Error(1)
}

func (m *MockReportService) ListFlaggedDeals(ctx context.Context, lineUserID string) ([]domain.FlaggedDeal, error) {
	args := m.Called(ctx, lineUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlaggedDeal), args.Error(1)
}

// --- Test Suite ---
type ReceiptsHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockReportService
	lineUserID  string
	authToken   string
}

func (suite *ReceiptsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockReportService)
	suite.lineUserID = "U1234567890"

	token, err := utils.GenerateJWT(suite.lineUserID, testJWTSecret, time.Hour, "test-issuer")
	suite.Require().NoError(err)
	suite.authToken = token

	suite.router = gin.New()
	api := suite.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterReceiptRoutes(api, suite.mockService)
}

func (suite *ReceiptsHandlerTestSuite) getReceipts(path string, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func flaggedDeals(n int) []domain.FlaggedDeal {
	deals := make([]domain.FlaggedDeal, 0, n)
	for i := 1; i <= n; i++ {
		deals = append(deals, domain.FlaggedDeal{
			ID:               int64(i),
			Date:             "2024-05-01",
			URL:              fmt.Sprintf("https://secure.freee.co.jp/reports/journals?deal_id=%d&openExternalBrowser=1", i),
			Amount:           int64(i) * 1_000,
			AccountItemNames: []string{"通信費"},
		})
	}
	return deals
}

// --- Test Cases ---

func (suite *ReceiptsHandlerTestSuite) TestListReceipts_Success() {
	suite.mockService.On("ListFlaggedDeals", mock.Anything, suite.lineUserID).
		Return(flaggedDeals(2), nil).Once()

	w := suite.getReceipts("/api/v1/receipts", suite.authToken)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListReceiptsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Deals, 2)
	suite.Equal(int64(1), resp.Deals[0].ID)
	suite.Equal([]string{"通信費"}, resp.Deals[0].AccountItemNames)
	suite.Equal([]string{}, resp.Deals[0].PaymentDescriptions)
	suite.Equal(1, resp.Pagination.Page)
	suite.Equal(10, resp.Pagination.Limit)
	suite.Equal(2, resp.Pagination.TotalCount)
	suite.Equal(1, resp.Pagination.TotalPages)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReceiptsHandlerTestSuite) TestListReceipts_Pagination() {
	suite.mockService.On("ListFlaggedDeals", mock.Anything, suite.lineUserID).
		Return(flaggedDeals(5), nil).Once()

	w := suite.getReceipts("/api/v1/receipts?page=2&limit=2", suite.authToken)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListReceiptsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Deals, 2)
	suite.Equal(int64(3), resp.Deals[0].ID)
	suite.Equal(int64(4), resp.Deals[1].ID)
	suite.Equal(2, resp.Pagination.Page)
	suite.Equal(5, resp.Pagination.TotalCount)
	suite.Equal(3, resp.Pagination.TotalPages)
}

func (suite *ReceiptsHandlerTestSuite) TestListReceipts_PageBeyondEndIsEmpty() {
	suite.mockService.On("ListFlaggedDeals", mock.Anything, suite.lineUserID).
		Return(flaggedDeals(3), nil).Once()

	w := suite.getReceipts("/api/v1/receipts?page=9&limit=10", suite.authToken)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListReceiptsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.Deals)
	suite.Equal(3, resp.Pagination.TotalCount)
}

func (suite *ReceiptsHandlerTestSuite) TestListReceipts_InvalidParamsFallBack() {
	suite.mockService.On("ListFlaggedDeals", mock.Anything, suite.lineUserID).
		Return(flaggedDeals(1), nil).Once()

	w := suite.getReceipts("/api/v1/receipts?page=abc&limit=-5", suite.authToken)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListReceiptsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Pagination.Page)
	suite.Equal(10, resp.Pagination.Limit)
}

func (suite *ReceiptsHandlerTestSuite) TestListReceipts_NotLinkedIsUnauthorized() {
	suite.mockService.On("ListFlaggedDeals", mock.Anything, suite.lineUserID).
		Return(nil, apperrors.ErrNotLinked).Once()

	w := suite.getReceipts("/api/v1/receipts", suite.authToken)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *ReceiptsHandlerTestSuite) TestListReceipts_MissingTokenIsUnauthorized() {
	w := suite.getReceipts("/api/v1/receipts", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListFlaggedDeals", mock.Anything, mock.Anything)
}

func TestReceiptsHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReceiptsHandlerTestSuite))
}
