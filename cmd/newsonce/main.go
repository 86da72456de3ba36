// Package main provides a CLI command for running a single pipeline cycle.
// Usage: newsonce [--sync-only] [--timeout 30m]
//
// It shares the wiring of cmd/worker but runs exactly one cycle and exits,
// which is useful for manual runs, cron-less deployments, and debugging.
package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"newswire/internal/config"
	pgRepo "newswire/internal/infra/adapter/persistence/postgres"
	"newswire/internal/infra/aggregator"
	"newswire/internal/infra/db"
	"newswire/internal/infra/summarizer"
	"newswire/internal/infra/telegram"
	"newswire/internal/observability/logging"
	"newswire/internal/usecase/digest"
)

func main() {
	var (
		syncOnly bool
		timeout  time.Duration
	)

	flag.BoolVar(&syncOnly, "sync-only", false, "Harvest and sync feeds without delivering")
	flag.DurationVar(&timeout, "timeout", 30*time.Minute, "Maximum duration for the run")
	flag.Parse()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to apply migrations: %v\n", err)
		os.Exit(1)
	}

	feeds, err := config.LoadFeedsConfig()
	if err != nil {
		logger.Error("failed to load feeds configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to load feeds configuration: %v\n", err)
		os.Exit(1)
	}

	newsRepo := pgRepo.NewNewsRepo(database)
	deliveryRepo := pgRepo.NewDeliveryRepo(database)
	fetcher := aggregator.NewRSSFetcher(newHTTPClient(), 15*time.Second)

	var sum digest.Summarizer
	if os.Getenv("SUMMARIZER_PROXY_URL") != "" {
		cfg, err := summarizer.LoadConfig()
		if err != nil {
			logger.Error("failed to load summarizer configuration", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Failed to load summarizer configuration: %v\n", err)
			os.Exit(1)
		}
		sum = summarizer.NewProxy(cfg)
	} else {
		logger.Warn("SUMMARIZER_PROXY_URL not set, summarization disabled")
		sum = summarizer.NewNoOp()
	}

	var deliverer telegram.Deliverer
	if os.Getenv("TELEGRAM_TOKEN") != "" {
		cfg, err := telegram.LoadBotConfig()
		if err != nil {
			logger.Error("failed to load telegram configuration", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Failed to load telegram configuration: %v\n", err)
			os.Exit(1)
		}
		deliverer = telegram.NewBot(*cfg)
	} else {
		logger.Warn("TELEGRAM_TOKEN not set, delivery disabled")
		deliverer = telegram.NewNoOp()
	}

	svc := digest.NewService(
		feeds.URLs(),
		fetcher,
		newsRepo,
		deliveryRepo,
		sum,
		deliverer,
		digest.DefaultConfig(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if syncOnly {
		fetched, synced, err := svc.SyncNew(ctx)
		if err != nil {
			logger.Error("sync failed", slog.Any("error", err))
			fmt.Fprintf(os.Stderr, "Error: Sync failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Fetched %d items, synced %d new\n", fetched, synced)
		return
	}

	stats, err := svc.RunCycle(ctx)
	if err != nil {
		logger.Error("cycle failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Cycle failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Cycle completed in %v\n", stats.Duration.Round(time.Millisecond))
	fmt.Printf("  fetched:   %d\n", stats.Fetched)
	fmt.Printf("  synced:    %d\n", stats.Synced)
	fmt.Printf("  unsent:    %d\n", stats.Unsent)
	fmt.Printf("  delivered: %d\n", stats.Delivered)
	fmt.Printf("  exhausted: %d\n", stats.Exhausted)
}

// newHTTPClient creates an HTTP client with timeouts and connection pooling.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}
