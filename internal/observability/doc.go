// Package observability provides observability infrastructure for the
// pipeline: structured logging and Prometheus metrics.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//
// Example usage:
//
//	import (
//	    "newswire/internal/observability/logging"
//	    "newswire/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordItemsFetched("https://example.com/rss", 10)
//	}
package observability
