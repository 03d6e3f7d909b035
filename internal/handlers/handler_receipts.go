package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/884js/freee-line-notifier/internal/apperrors"
	portssvc "github.com/884js/freee-line-notifier/internal/core/ports/services"
	"github.com/884js/freee-line-notifier/internal/dto"
	"github.com/884js/freee-line-notifier/internal/middleware"
	"github.com/gin-gonic/gin"
)

type receiptsHandler struct {
	reportService portssvc.ReportSvcFacade
}

func newReceiptsHandler(reportService portssvc.ReportSvcFacade) *receiptsHandler {
	return &receiptsHandler{reportService: reportService}
}

// listReceipts returns the authenticated user's receipt-required deals with
// page/limit pagination applied to the filtered list.
func (h *receiptsHandler) listReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	lineUserID, ok := middleware.GetLineUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("LINE user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	limit := parsePositiveInt(c.DefaultQuery("limit", "10"), 10)

	deals, err := h.reportService.ListFlaggedDeals(c.Request.Context(), lineUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotLinked) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not linked"})
			return
		}
		logger.Error("Failed to list flagged deals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch receipts"})
		return
	}

	totalCount := len(deals)
	totalPages := (totalCount + limit - 1) / limit

	start := (page - 1) * limit
	if start > totalCount {
		start = totalCount
	}
	end := start + limit
	if end > totalCount {
		end = totalCount
	}

	pageDeals := make([]dto.FlaggedDealResponse, 0, end-start)
	for _, deal := range deals[start:end] {
		pageDeals = append(pageDeals, dto.ToFlaggedDealResponse(deal))
	}

	c.JSON(http.StatusOK, dto.ListReceiptsResponse{
		Deals: pageDeals,
		Pagination: dto.Pagination{
			Page:       page,
			Limit:      limit,
			TotalCount: totalCount,
			TotalPages: totalPages,
		},
	})
}

func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
