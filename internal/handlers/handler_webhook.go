package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/884js/freee-line-notifier/internal/adapters/line"
	"github.com/884js/freee-line-notifier/internal/apperrors"
	portsrepo "github.com/884js/freee-line-notifier/internal/core/ports/repositories"
	portssvc "github.com/884js/freee-line-notifier/internal/core/ports/services"
	"github.com/884js/freee-line-notifier/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Text commands understood by the bot, verbatim from the rich menu.
const (
	cmdAccountSettings = "アカウント設定"
	cmdMenu            = "メニュー"
	cmdDailyReport     = "デイリーレポート"
	cmdTest            = "テスト"
	cmdUnlinkAccount   = "アカウント連携解除"
)

type webhookHandler struct {
	lineClient    *line.Client
	reportService portssvc.ReportSvcFacade
	userRepo      portsrepo.UserRepository
	liffAuthURL   string
}

func newWebhookHandler(lineClient *line.Client, reportService portssvc.ReportSvcFacade, userRepo portsrepo.UserRepository, liffAuthURL string) *webhookHandler {
	return &webhookHandler{
		lineClient:    lineClient,
		reportService: reportService,
		userRepo:      userRepo,
		liffAuthURL:   liffAuthURL,
	}
}

type webhookRequest struct {
	Events []webhookEvent `json:"events"`
}

type webhookEvent struct {
	Type       string `json:"type"`
	ReplyToken string `json:"replyToken"`
	Source     struct {
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
}

// handleWebhook receives LINE webhook events. Events are processed
// independently: a failing event is logged and the rest still run, and
// the endpoint always acknowledges with 200 so LINE does not re-deliver.
func (h *webhookHandler) handleWebhook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid webhook payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	for _, event := range req.Events {
		if err := h.handleMessageEvent(c.Request.Context(), event); err != nil {
			logger.Error("Webhook event handling failed",
				slog.String("error", err.Error()),
				slog.String("line_user_id", event.Source.UserID))
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "success"})
}

func (h *webhookHandler) handleMessageEvent(ctx context.Context, event webhookEvent) error {
	if event.Type != "message" || event.Message.Type != "text" {
		return nil
	}

	switch event.Message.Text {
	case cmdAccountSettings:
		return h.handleAccountSettings(ctx, event)
	case cmdMenu:
		return h.lineClient.Reply(ctx, event.ReplyToken, line.NewMenuMessage())
	case cmdDailyReport, cmdTest:
		return h.handleDailyReport(ctx, event)
	case cmdUnlinkAccount:
		return h.handleUnlinkAccount(ctx, event)
	}
	return nil
}

func (h *webhookHandler) handleAccountSettings(ctx context.Context, event webhookEvent) error {
	user, err := h.userRepo.FindUserByLineID(ctx, event.Source.UserID)
	if err != nil {
		return err
	}
	linked := user != nil && user.ActiveCompany != nil
	return h.lineClient.Reply(ctx, event.ReplyToken, line.NewAccountSettingsMessage(linked, h.liffAuthURL))
}

func (h *webhookHandler) handleDailyReport(ctx context.Context, event webhookEvent) error {
	report, err := h.reportService.GenerateDailyReport(ctx, event.Source.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotLinked) {
			return h.lineClient.Reply(ctx, event.ReplyToken, line.NewNotLinkedMessage(h.liffAuthURL))
		}
		return err
	}
	return h.lineClient.Push(ctx, event.Source.UserID, line.NewDailyReportMessage(report, time.Now()))
}

func (h *webhookHandler) handleUnlinkAccount(ctx context.Context, event webhookEvent) error {
	if err := h.userRepo.DeleteUserByLineID(ctx, event.Source.UserID); err != nil {
		return err
	}
	return h.lineClient.Reply(ctx, event.ReplyToken, line.NewUnlinkedMessage())
}
