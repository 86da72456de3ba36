// Package aggregator fetches and parses syndication feeds. It fans out one
// request per source, decodes responses with their declared character
// encoding, and parses permissively with the gofeed library. A failing
// source is isolated: it logs and contributes nothing to the result.
package aggregator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"

	"newswire/internal/observability/metrics"
	"newswire/internal/repository"
)

const userAgent = "newswire-bot"

// Fetcher retrieves raw items from syndication feeds.
type Fetcher interface {
	// FetchAll fetches every source concurrently and returns the
	// concatenation of per-source results in source-list order. It never
	// fails as a whole: a broken source yields an empty slice.
	FetchAll(ctx context.Context, sources []string) []repository.RawItem
}

// RSSFetcher implements Fetcher using the gofeed parser.
type RSSFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
// timeout bounds each per-source request; zero means 15 seconds.
func NewRSSFetcher(client *http.Client, timeout time.Duration) *RSSFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RSSFetcher{client: client, timeout: timeout}
}

// FetchAll issues one concurrent fetch per source and joins the results.
// Per-source failures are logged and yield an empty slice for that source;
// they never abort sibling fetches. The errgroup carries no error by
// contract, only the join.
func (f *RSSFetcher) FetchAll(ctx context.Context, sources []string) []repository.RawItem {
	results := make([][]repository.RawItem, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			items, err := f.fetchOne(gctx, src)
			if err != nil {
				slog.Warn("failed to fetch feed",
					slog.String("feed_url", src),
					slog.Any("error", err))
				metrics.RecordFeedFetchError(src)
				return nil
			}
			results[i] = items
			metrics.RecordItemsFetched(src, len(items))
			return nil
		})
	}
	_ = g.Wait()

	var all []repository.RawItem
	for _, items := range results {
		all = append(all, items...)
	}
	return all
}

// fetchOne downloads and parses a single feed. The response body is decoded
// using the declared charset with a best-effort UTF-8 fallback before it
// reaches the feed parser.
func (f *RSSFetcher) fetchOne(ctx context.Context, feedURL string) ([]repository.RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := decodeBody(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]repository.RawItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it.Link == "" {
			continue
		}
		items = append(items, repository.RawItem{
			Title:     it.Title,
			URL:       it.Link,
			Published: publishedAt(it),
			SourceURL: feedURL,
		})
	}
	return items, nil
}

// decodeBody converts the response body to UTF-8 using the charset declared
// in the Content-Type header or the document prolog. Unknown or missing
// encodings fall back to reading the bytes as-is.
func decodeBody(body io.Reader, contentType string) (io.Reader, error) {
	return charset.NewReader(body, contentType)
}

// publishedAt extracts the best available publication timestamp. Feeds with
// no parseable date yield nil; the sync stage substitutes ingestion time.
func publishedAt(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed
	}
	return nil
}
