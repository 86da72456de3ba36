// Command diagnose_feeds probes every configured feed and reports its
// health: HTTP status, item count, latest publish date, and response time.
//
// Feeds are loaded the same way the worker loads them (FEEDS_FILE or
// FEED_URLS). Run it when a feed stops producing items to tell apart
// dead URLs, redirects, and parse failures.
//
// Usage:
//
//	FEED_URLS=https://example.com/rss go run scripts/diagnose_feeds.go [-json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"

	"newswire/internal/config"
)

// FeedDiagnostic represents the diagnostic result for a single feed.
type FeedDiagnostic struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Status       string `json:"status"` // "OK", "HTTP_ERROR", "PARSE_ERROR", "EMPTY", "TIMEOUT"
	HTTPCode     int    `json:"http_code"`
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date"`
	ErrorMessage string `json:"error_message,omitempty"`
	FeedType     string `json:"feed_type"` // "rss", "atom", "json", "UNKNOWN"
	ResponseTime int64  `json:"response_time_ms"`
}

func main() {
	jsonOut := flag.Bool("json", false, "Emit the report as JSON")
	timeout := flag.Duration("timeout", 30*time.Second, "Per-feed timeout")
	flag.Parse()

	feeds, err := config.LoadFeedsConfig()
	if err != nil {
		log.Fatalf("Failed to load feeds configuration: %v", err)
	}

	log.Printf("Diagnosing %d feeds...", len(feeds.Feeds))

	diagnostics := make([]FeedDiagnostic, 0, len(feeds.Feeds))
	for i, feed := range feeds.Feeds {
		name := feed.Name
		if name == "" {
			name = feed.URL
		}
		log.Printf("[%d/%d] Diagnosing: %s", i+1, len(feeds.Feeds), name)
		diagnostics = append(diagnostics, diagnoseFeed(name, feed.URL, *timeout))

		// Rate limiting to be nice to servers
		time.Sleep(500 * time.Millisecond)
	}

	if *jsonOut {
		generateJSONReport(diagnostics)
	} else {
		generateReport(diagnostics)
	}
}

func diagnoseFeed(name, url string, timeout time.Duration) FeedDiagnostic {
	diag := FeedDiagnostic{
		Name:     name,
		URL:      url,
		FeedType: "UNKNOWN",
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}
	req.Header.Set("User-Agent", "newswire-diagnose/1.0")

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	diag.ResponseTime = time.Since(start).Milliseconds()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
		} else {
			diag.Status = "HTTP_ERROR"
		}
		diag.ErrorMessage = err.Error()
		return diag
	}
	defer func() { _ = resp.Body.Close() }()

	diag.HTTPCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		return diag
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		diag.Status = "PARSE_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		diag.Status = "PARSE_ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}

	diag.FeedType = feed.FeedType
	diag.ItemCount = len(feed.Items)
	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
		return diag
	}

	var latest *time.Time
	for _, item := range feed.Items {
		ts := item.PublishedParsed
		if ts == nil {
			ts = item.UpdatedParsed
		}
		if ts != nil && (latest == nil || ts.After(*latest)) {
			latest = ts
		}
	}
	if latest != nil {
		diag.LatestDate = latest.Format(time.RFC3339)
	}

	diag.Status = "OK"
	return diag
}

func generateReport(diagnostics []FeedDiagnostic) {
	fmt.Println()
	fmt.Println("Feed Diagnostic Report")
	fmt.Println("======================")

	healthy := 0
	for _, d := range diagnostics {
		marker := "✗"
		if d.Status == "OK" {
			marker = "✓"
			healthy++
		}
		fmt.Printf("%s %-40s %-12s", marker, d.Name, d.Status)
		if d.Status == "OK" {
			fmt.Printf(" items=%-4d latest=%s %dms", d.ItemCount, d.LatestDate, d.ResponseTime)
		} else if d.ErrorMessage != "" {
			fmt.Printf(" %s", d.ErrorMessage)
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Printf("%d/%d feeds healthy\n", healthy, len(diagnostics))
}

func generateJSONReport(diagnostics []FeedDiagnostic) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(diagnostics); err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
}
