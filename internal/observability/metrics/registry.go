// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics track feed harvesting and item flow
var (
	// ItemsFetchedTotal counts items parsed out of each feed
	ItemsFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_items_fetched_total",
			Help: "Total number of items parsed from feed sources",
		},
		[]string{"feed"},
	)

	// FeedFetchErrorsTotal counts failed feed fetches
	FeedFetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_errors_total",
			Help: "Total number of feed fetch failures",
		},
		[]string{"feed"},
	)

	// ItemsSyncedTotal counts items newly persisted after deduplication
	ItemsSyncedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_items_synced_total",
			Help: "Total number of new items written to the database",
		},
	)

	// UnsentBacklog tracks how many stored items still await delivery
	UnsentBacklog = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "news_unsent_backlog",
			Help: "Number of stored items not yet delivered",
		},
	)
)

// Summarization metrics track the AI proxy interaction
var (
	// SummarizationsTotal counts summarization calls by outcome
	SummarizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizations_total",
			Help: "Total number of summarization calls",
		},
		[]string{"status"},
	)

	// SummarizationDuration measures time to summarize one item
	SummarizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarization_duration_seconds",
			Help:    "Time taken to summarize an item",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)
)

// Delivery metrics track Telegram sends
var (
	// DeliveriesTotal counts delivery attempts by outcome
	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deliveries_total",
			Help: "Total number of delivery attempts",
		},
		[]string{"status"},
	)

	// DeliveryDuration measures time to deliver one message
	DeliveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "delivery_duration_seconds",
			Help:    "Time taken to deliver a message",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	// ItemsExhaustedTotal counts items abandoned after all attempts failed
	ItemsExhaustedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "items_exhausted_total",
			Help: "Total number of items abandoned after exhausting attempts",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordOperationDuration records the duration of a named operation
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
