package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"newswire/internal/config"
	pgRepo "newswire/internal/infra/adapter/persistence/postgres"
	"newswire/internal/infra/aggregator"
	"newswire/internal/infra/db"
	"newswire/internal/infra/summarizer"
	"newswire/internal/infra/telegram"
	workerPkg "newswire/internal/infra/worker"
	"newswire/internal/observability/logging"
	"newswire/internal/usecase/digest"
)

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	// Shutdown context cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.Duration("schedule_period", workerConfig.SchedulePeriod),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("cycle_timeout", workerConfig.CycleTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	// Start metrics HTTP server
	startMetricsServer(ctx, logger)

	// Start health check server
	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	svc := setupDigestService(logger, database)

	startScheduler(ctx, logger, svc, workerConfig, workerMetrics, healthServer)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and applies migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// setupDigestService creates and configures the digest service with all
// pipeline dependencies.
func setupDigestService(logger *slog.Logger, database *sql.DB) *digest.Service {
	feeds, err := config.LoadFeedsConfig()
	if err != nil {
		logger.Error("failed to load feeds configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("feeds configured", slog.Int("count", len(feeds.Feeds)))

	newsRepo := pgRepo.NewNewsRepo(database)
	deliveryRepo := pgRepo.NewDeliveryRepo(database)

	fetcher := aggregator.NewRSSFetcher(createHTTPClient(), 15*time.Second)
	sum := createSummarizer(logger)
	deliverer := createDeliverer(logger)

	svc := digest.NewService(
		feeds.URLs(),
		fetcher,
		newsRepo,
		deliveryRepo,
		sum,
		deliverer,
		digest.DefaultConfig(),
	)
	return &svc
}

// createSummarizer returns the proxy summarizer when SUMMARIZER_PROXY_URL
// is configured, or the no-op fallback otherwise.
func createSummarizer(logger *slog.Logger) digest.Summarizer {
	if os.Getenv("SUMMARIZER_PROXY_URL") == "" {
		logger.Warn("SUMMARIZER_PROXY_URL not set, summarization disabled")
		return summarizer.NewNoOp()
	}

	cfg, err := summarizer.LoadConfig()
	if err != nil {
		logger.Error("failed to load summarizer configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("summarizer initialized",
		slog.String("base_url", cfg.BaseURL),
		slog.String("model", cfg.Model))
	return summarizer.NewProxy(cfg)
}

// createDeliverer returns the Telegram bot when TELEGRAM_TOKEN is
// configured, or the no-op fallback otherwise.
func createDeliverer(logger *slog.Logger) telegram.Deliverer {
	if os.Getenv("TELEGRAM_TOKEN") == "" {
		logger.Warn("TELEGRAM_TOKEN not set, delivery disabled")
		return telegram.NewNoOp()
	}

	cfg, err := telegram.LoadBotConfig()
	if err != nil {
		logger.Error("failed to load telegram configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("telegram bot initialized",
		slog.Int64("chat_id", cfg.ChatID),
		slog.Bool("topic", cfg.ThreadID != nil))
	return telegram.NewBot(*cfg)
}

// createHTTPClient creates an HTTP client with timeouts and connection pooling.
// TLS 1.2+ is enforced for security.
func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
			},
		},
	}
}

// startScheduler starts the cron scheduler and runs the pipeline cycle at
// the configured fixed interval. Blocks until the context is cancelled.
func startScheduler(ctx context.Context, logger *slog.Logger, svc *digest.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSpec(), func() {
		runCycle(logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	// Mark as ready after the scheduler is set up
	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSpec()),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()

	healthServer.SetReady(false)
	stopCtx := c.Stop()
	// Let an in-flight cycle finish before exiting
	select {
	case <-stopCtx.Done():
	case <-time.After(cfg.CycleTimeout):
		logger.Warn("cycle did not finish before shutdown deadline")
	}
	logger.Info("worker stopped")
}

// runCycle executes a single pipeline cycle with timeout and error handling.
func runCycle(logger *slog.Logger, svc *digest.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	logger.Info("cycle started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.CycleTimeout)
	defer cancel()

	stats, err := svc.RunCycle(ctx)
	if err != nil {
		logger.Error("cycle failed", slog.Any("error", err))
		metrics.RecordCycleRun("failure")
		metrics.RecordCycleDuration(time.Since(startTime).Seconds())
		return
	}

	metrics.RecordCycleRun("success")
	metrics.RecordCycleDuration(time.Since(startTime).Seconds())
	metrics.RecordItemsDelivered(stats.Delivered)
	metrics.RecordLastSuccess()

	logger.Info("cycle completed",
		slog.Int("fetched", stats.Fetched),
		slog.Int("synced", stats.Synced),
		slog.Int("unsent", stats.Unsent),
		slog.Int("delivered", stats.Delivered),
		slog.Int("exhausted", stats.Exhausted),
		slog.Duration("duration", stats.Duration),
	)
}
