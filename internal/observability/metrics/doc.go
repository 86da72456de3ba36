// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - Pipeline metrics (items fetched, synced, unsent backlog)
//   - Summarization metrics (call counts, duration)
//   - Delivery metrics (attempts, duration, exhausted items)
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "newswire/internal/observability/metrics"
//
//	func syncFeeds(feed string) {
//	    start := time.Now()
//	    // ... fetch and parse ...
//	    count := 10
//
//	    metrics.RecordItemsFetched(feed, count)
//	    metrics.RecordOperationDuration("sync_feeds", time.Since(start))
//	}
package metrics
