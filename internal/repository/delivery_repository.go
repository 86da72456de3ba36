package repository

import (
	"context"

	"newswire/internal/domain/entity"
)

// DeliveryRepository is the durable "sent" ledger. One row per successfully
// delivered item makes delivery idempotent across restarts.
type DeliveryRepository interface {
	// UnsentItems returns every NewsItem with no matching DeliveryRecord,
	// in insertion order. An item stays a candidate until delivered.
	UnsentItems(ctx context.Context) ([]*entity.NewsItem, error)

	// MarkSent inserts one DeliveryRecord for the item. Inserting a second
	// record for the same item fails with entity.ErrAlreadyDelivered.
	MarkSent(ctx context.Context, newsID int64) error

	// IsSent reports whether a DeliveryRecord exists for the item.
	IsSent(ctx context.Context, newsID int64) (bool, error)
}
