package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/884js/freee-line-notifier/internal/adapters/line"
	"github.com/884js/freee-line-notifier/internal/core/domain"
	portsrepo "github.com/884js/freee-line-notifier/internal/core/ports/repositories"
	"github.com/884js/freee-line-notifier/internal/dto"
	"github.com/884js/freee-line-notifier/internal/middleware"
	"github.com/884js/freee-line-notifier/internal/utils"
	"github.com/884js/freee-line-notifier/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type authHandler struct {
	cfg        *config.Config
	lineClient *line.Client
	userRepo   portsrepo.UserRepository
}

func newAuthHandler(cfg *config.Config, lineClient *line.Client, userRepo portsrepo.UserRepository) *authHandler {
	return &authHandler{cfg: cfg, lineClient: lineClient, userRepo: userRepo}
}

// createSession exchanges a LIFF access token for a session JWT. The LIFF
// token is resolved to a LINE user via the profile endpoint; only linked
// users get a session.
func (h *authHandler) createSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accessToken required"})
		return
	}

	profile, err := h.lineClient.GetProfile(c.Request.Context(), req.AccessToken)
	if err != nil {
		logger.Warn("LIFF token verification failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid access token"})
		return
	}

	user, err := h.userRepo.FindUserByLineID(c.Request.Context(), profile.UserID)
	if err != nil {
		logger.Error("Failed to look up user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not linked"})
		return
	}

	token, err := utils.GenerateJWT(profile.UserID, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to generate session token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, dto.CreateSessionResponse{Token: token})
}

// linkAccount persists the freee company link produced by the LIFF OAuth
// flow. The LIFF access token identifies the LINE user.
func (h *authHandler) linkAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LinkAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accessToken, freeeCompanyId and refreshToken required"})
		return
	}

	profile, err := h.lineClient.GetProfile(c.Request.Context(), req.AccessToken)
	if err != nil {
		logger.Warn("LIFF token verification failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid access token"})
		return
	}

	now := time.Now()
	user := domain.User{
		UserID:     uuid.NewString(),
		LineUserID: profile.UserID,
		ActiveCompany: &domain.Company{
			CompanyID:      uuid.NewString(),
			FreeeCompanyID: req.FreeeCompanyID,
			RefreshToken:   req.RefreshToken,
		},
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := h.userRepo.SaveUser(c.Request.Context(), user); err != nil {
		logger.Error("Failed to save account link", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link account"})
		return
	}

	logger.Info("Account linked", slog.Int64("freee_company_id", req.FreeeCompanyID))
	c.JSON(http.StatusOK, gin.H{"message": "linked"})
}
