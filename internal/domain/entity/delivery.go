package entity

import "time"

// DeliveryRecord is durable evidence that a NewsItem was sent to the
// destination channel. At most one record may exist per item; the unique
// constraint on news_id is the idempotency enforcement point, not a
// convention. Records are never updated or deleted.
type DeliveryRecord struct {
	ID     int64
	NewsID int64
	// RecipientID identifies a per-user recipient. It is nil for broadcast
	// delivery to the shared channel and reserved for future per-user sends.
	RecipientID *int64
	SentAt      time.Time
}
