package handlers

import (
	"github.com/884js/freee-line-notifier/internal/adapters/line"
	portsrepo "github.com/884js/freee-line-notifier/internal/core/ports/repositories"
	portssvc "github.com/884js/freee-line-notifier/internal/core/ports/services"
	"github.com/884js/freee-line-notifier/internal/middleware"
	"github.com/884js/freee-line-notifier/pkg/config"
	"github.com/gin-gonic/gin"
)

// RegisterWebhookRoutes wires the LINE webhook endpoint with signature
// verification.
func RegisterWebhookRoutes(r *gin.Engine, cfg *config.Config, lineClient *line.Client, reportService portssvc.ReportSvcFacade, userRepo portsrepo.UserRepository) {
	h := newWebhookHandler(lineClient, reportService, userRepo, cfg.LineLiffAuthURL)
	r.POST("/webhook", middleware.LineSignatureMiddleware(cfg.LineChannelSecret), h.handleWebhook)
}

// RegisterAuthRoutes wires the session and account-link endpoints used by
// the LIFF page.
func RegisterAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, lineClient *line.Client, userRepo portsrepo.UserRepository) {
	h := newAuthHandler(cfg, lineClient, userRepo)
	rg.POST("/session", h.createSession)
	rg.POST("/link", h.linkAccount)
}

// RegisterReceiptRoutes wires the receipts list API.
func RegisterReceiptRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReceiptsHandler(reportService)
	rg.GET("/receipts", h.listReceipts)
}
