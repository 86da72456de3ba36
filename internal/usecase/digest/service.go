package digest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"newswire/internal/domain/entity"
	"newswire/internal/infra/telegram"
	"newswire/internal/observability/metrics"
	"newswire/internal/observability/tracing"
	"newswire/internal/pkg/markup"
	"newswire/internal/repository"
	"newswire/internal/resilience/retry"
	"newswire/internal/utils/text"
)

// Fetcher is an interface for harvesting all configured feed sources.
type Fetcher interface {
	FetchAll(ctx context.Context, sources []string) []repository.RawItem
}

// Summarizer is an interface for turning an item URL into publish-ready copy.
type Summarizer interface {
	Summarize(ctx context.Context, url string) (string, error)
}

// Config holds tuning parameters for the digest cycle.
type Config struct {
	// MinSummaryLength is the quality floor: a sanitized summary shorter
	// than this fails the attempt.
	MinSummaryLength int

	// ItemDelay is the pause after each successful delivery, throttling
	// outbound rate to the destination chat.
	ItemDelay time.Duration

	// Retry drives the per-item attempt loop.
	Retry retry.Config
}

// DefaultConfig returns the production cycle configuration: a 50-character
// floor, 10 seconds between items, 3 attempts spaced 30 seconds apart.
func DefaultConfig() Config {
	return Config{
		MinSummaryLength: 50,
		ItemDelay:        10 * time.Second,
		Retry:            retry.DeliveryConfig(),
	}
}

// Service orchestrates one publication cycle: feed sync, unsent query, and
// the per-item summarize-sanitize-deliver loop.
type Service struct {
	FeedURLs     []string
	Fetcher      Fetcher
	NewsRepo     repository.NewsRepository
	DeliveryRepo repository.DeliveryRepository
	Summarizer   Summarizer
	Deliverer    telegram.Deliverer
	config       Config
}

// NewService creates a digest Service with the provided dependencies.
func NewService(
	feedURLs []string,
	fetcher Fetcher,
	newsRepo repository.NewsRepository,
	deliveryRepo repository.DeliveryRepository,
	summarizer Summarizer,
	deliverer telegram.Deliverer,
	cfg Config,
) Service {
	return Service{
		FeedURLs:     feedURLs,
		Fetcher:      fetcher,
		NewsRepo:     newsRepo,
		DeliveryRepo: deliveryRepo,
		Summarizer:   summarizer,
		Deliverer:    deliverer,
		config:       cfg,
	}
}

// CycleStats contains statistics about one digest cycle.
type CycleStats struct {
	Fetched   int
	Synced    int
	Unsent    int
	Delivered int
	Exhausted int
	Duration  time.Duration
}

// SyncNew harvests all configured feeds and persists items whose URL is not
// yet in the store. Returns the number of fetched and newly inserted items.
func (s *Service) SyncNew(ctx context.Context) (fetched, synced int, err error) {
	items := s.Fetcher.FetchAll(ctx, s.FeedURLs)

	synced, err = s.NewsRepo.SyncNew(ctx, items)
	if err != nil {
		return len(items), 0, fmt.Errorf("sync new items: %w", err)
	}

	metrics.RecordItemsSynced(synced)
	return len(items), synced, nil
}

// RunCycle executes one full cycle. Per-item failures never abort the
// cycle: an item that exhausts its attempts stays unsent and is picked up
// again next cycle. A cycle with zero unsent items is a no-op success.
func (s *Service) RunCycle(ctx context.Context) (result *CycleStats, err error) {
	ctx, span := tracing.StartSpan(ctx, "digest.cycle")
	defer func() {
		if result != nil {
			span.SetAttributes(
				attribute.Int("cycle.fetched", result.Fetched),
				attribute.Int("cycle.synced", result.Synced),
				attribute.Int("cycle.delivered", result.Delivered))
		}
		tracing.EndSpan(span, err)
	}()

	logger := slog.Default()
	start := time.Now()
	stats := &CycleStats{}

	fetched, synced, err := s.SyncNew(ctx)
	stats.Fetched = fetched
	stats.Synced = synced
	if err != nil {
		return stats, err
	}

	unsent, err := s.DeliveryRepo.UnsentItems(ctx)
	if err != nil {
		return stats, fmt.Errorf("query unsent items: %w", err)
	}
	stats.Unsent = len(unsent)
	metrics.UpdateUnsentBacklog(len(unsent))

	if len(unsent) == 0 {
		stats.Duration = time.Since(start)
		logger.Info("no unsent items, cycle complete",
			slog.Int("fetched", stats.Fetched),
			slog.Int("synced", stats.Synced))
		return stats, nil
	}

	logger.Info("delivering unsent items",
		slog.Int("count", len(unsent)))

	for _, item := range unsent {
		if ctx.Err() != nil {
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("cycle aborted: %w", ctx.Err())
		}

		if err := s.processItem(ctx, item); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				stats.Duration = time.Since(start)
				return stats, fmt.Errorf("cycle aborted: %w", err)
			}

			stats.Exhausted++
			metrics.RecordItemExhausted()
			logger.Error("item exhausted all attempts, leaving unsent",
				slog.Int64("news_id", item.ID),
				slog.String("url", item.URL),
				slog.Any("error", err))
			continue
		}

		stats.Delivered++

		if err := sleepCtx(ctx, s.config.ItemDelay); err != nil {
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("cycle aborted: %w", err)
		}
	}

	stats.Duration = time.Since(start)
	metrics.UpdateUnsentBacklog(stats.Unsent - stats.Delivered)

	logger.Info("cycle completed",
		slog.Int("fetched", stats.Fetched),
		slog.Int("synced", stats.Synced),
		slog.Int("unsent", stats.Unsent),
		slog.Int("delivered", stats.Delivered),
		slog.Int("exhausted", stats.Exhausted),
		slog.Duration("duration", stats.Duration))

	return stats, nil
}

// processItem runs the bounded attempt loop for one item.
func (s *Service) processItem(ctx context.Context, item *entity.NewsItem) error {
	return retry.WithBackoff(ctx, s.config.Retry, func() error {
		return s.attemptDelivery(ctx, item)
	})
}

// attemptDelivery performs one summarize-sanitize-deliver attempt.
// MarkSent runs only after a successful send, so a crash in between leaves
// the item unsent and safe to retry next cycle.
func (s *Service) attemptDelivery(ctx context.Context, item *entity.NewsItem) error {
	sctx, span := tracing.StartSpan(ctx, "digest.summarize",
		attribute.Int64("news.id", item.ID),
		attribute.String("news.url", item.URL))
	raw, err := s.Summarizer.Summarize(sctx, item.URL)
	tracing.EndSpan(span, err)
	if err != nil {
		return fmt.Errorf("summarize %s: %w", item.URL, err)
	}
	if raw == "" {
		return ErrEmptySummary
	}

	sanitized := markup.Sanitize(raw)
	if length := text.CountRunes(sanitized); length < s.config.MinSummaryLength {
		return fmt.Errorf("%w: %d chars, floor %d", ErrSummaryTooShort, length, s.config.MinSummaryLength)
	}

	dctx, dspan := tracing.StartSpan(ctx, "digest.deliver",
		attribute.Int64("news.id", item.ID),
		attribute.String("news.url", item.URL))
	err = s.deliver(dctx, item, sanitized, markup.Strip(raw))
	tracing.EndSpan(dspan, err)
	if err != nil {
		return fmt.Errorf("deliver %s: %w", item.URL, err)
	}

	if err := s.DeliveryRepo.MarkSent(ctx, item.ID); err != nil {
		if errors.Is(err, entity.ErrAlreadyDelivered) {
			// Another writer won the race, the item is recorded either way.
			slog.Warn("item already marked sent",
				slog.Int64("news_id", item.ID))
			return nil
		}
		return fmt.Errorf("mark sent %d: %w", item.ID, err)
	}

	return nil
}

// deliver sends the sanitized text with MarkdownV2 formatting and falls
// back to a plain send of the unescaped text when the destination rejects
// the markup. Malformed escaping can still slip through LLM output.
func (s *Service) deliver(ctx context.Context, item *entity.NewsItem, sanitized, plain string) error {
	err := s.Deliverer.Deliver(ctx, sanitized, telegram.ParseModeMarkdownV2)
	if err == nil {
		return nil
	}

	if !telegram.IsFormatRejection(err) {
		return err
	}

	slog.Warn("markdown send rejected, falling back to plain text",
		slog.Int64("news_id", item.ID),
		slog.String("url", item.URL),
		slog.Any("error", err))

	return s.Deliverer.Deliver(ctx, plain, telegram.ParseModeNone)
}

// sleepCtx waits d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
