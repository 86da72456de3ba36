// Package entity defines the core domain entities and validation logic for the
// application. It contains the fundamental business objects such as NewsItem,
// FeedSource and DeliveryRecord, along with their domain-specific errors.
package entity

import "time"

// NewsItem represents one harvested article in the system.
// The URL is globally unique and acts as the deduplication key:
// two feed entries with the same URL collapse to one NewsItem.
// Items are created once by the sync stage and are immutable afterwards.
type NewsItem struct {
	ID          int64
	SourceID    int64
	Title       string
	URL         string
	PublishedAt time.Time
	CreatedAt   time.Time
}
