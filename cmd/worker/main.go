package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/884js/freee-line-notifier/internal/adapters/database/pgsql"
	"github.com/884js/freee-line-notifier/internal/adapters/freee"
	"github.com/884js/freee-line-notifier/internal/adapters/line"
	"github.com/884js/freee-line-notifier/internal/core/services"
	"github.com/884js/freee-line-notifier/internal/metrics"
	"github.com/884js/freee-line-notifier/pkg/config"
	"github.com/884js/freee-line-notifier/pkg/database"
)

var jst = time.FixedZone("Asia/Tokyo", 9*60*60)

// The worker fires the daily report broadcast once a day at the configured
// JST hour, independent of what timezone the host runs in.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	userRepo := pgsql.NewUserRepository(dbPool)
	accountingProvider := freee.NewProvider(cfg.FreeeClientID, cfg.FreeeClientSecret)
	lineClient := line.NewClient(cfg.LineChannelAccessToken)
	reportService := services.NewReportService(userRepo, accountingProvider)
	broadcastService := services.NewBroadcastService(userRepo, reportService, line.NewNotifier(lineClient))

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Metrics endpoint for scrape
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("Worker started",
		slog.Int("broadcast_hour_jst", cfg.BroadcastHourJST))

	for {
		next := nextRunAt(time.Now().In(jst), cfg.BroadcastHourJST)
		logger.Info("Next broadcast scheduled", slog.Time("at", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-timer.C:
			logger.Info("Starting scheduled broadcast")
			if err := broadcastService.BroadcastDailyReports(ctx); err != nil {
				logger.Error("Broadcast failed", slog.String("error", err.Error()))
			}
		case <-quit:
			timer.Stop()
			logger.Info("Shutting down worker...")
			cancel()
			return
		}
	}
}

// nextRunAt returns the next occurrence of hour o'clock JST strictly after
// now.
func nextRunAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, jst)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
