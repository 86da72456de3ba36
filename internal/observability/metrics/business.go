package metrics

import (
	"time"
)

// RecordItemsFetched records the number of items parsed from a feed.
func RecordItemsFetched(feedURL string, count int) {
	ItemsFetchedTotal.WithLabelValues(feedURL).Add(float64(count))
}

// RecordFeedFetchError records a failed fetch for a feed.
// Failures are isolated per source, so this counter is the only trace
// a broken feed leaves behind besides the warning log.
func RecordFeedFetchError(feedURL string) {
	FeedFetchErrorsTotal.WithLabelValues(feedURL).Inc()
}

// RecordItemsSynced records the number of new items written during a sync.
func RecordItemsSynced(count int) {
	ItemsSyncedTotal.Add(float64(count))
}

// UpdateUnsentBacklog updates the gauge of stored items awaiting delivery.
func UpdateUnsentBacklog(count int) {
	UnsentBacklog.Set(float64(count))
}

// RecordSummarization records the result of a summarization call.
// Status should be "success", "degraded" or "failure".
func RecordSummarization(status string) {
	SummarizationsTotal.WithLabelValues(status).Inc()
}

// RecordSummarizationDuration records the time taken to summarize an item.
func RecordSummarizationDuration(duration time.Duration) {
	SummarizationDuration.Observe(duration.Seconds())
}

// RecordDelivery records a delivery attempt.
// Status should be "markdown", "plain" or "failure".
func RecordDelivery(status string, duration time.Duration) {
	DeliveriesTotal.WithLabelValues(status).Inc()
	DeliveryDuration.Observe(duration.Seconds())
}

// RecordItemExhausted records an item abandoned after all attempts failed.
// The item remains unsent and will be retried on the next cycle.
func RecordItemExhausted() {
	ItemsExhaustedTotal.Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "sync_new", "unsent_items").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
