package repository

import (
	"context"
	"time"

	"newswire/internal/domain/entity"
)

// RawItem is one entry extracted from a syndication feed before it has been
// deduplicated against the store. Published is nil when the feed carried no
// usable publication timestamp.
type RawItem struct {
	Title     string
	URL       string
	Published *time.Time
	SourceURL string
}

// NewsRepository manages canonical news items. URL uniqueness is the sole
// dedup boundary.
type NewsRepository interface {
	// SyncNew inserts every raw item whose URL is not yet present,
	// resolving or lazily creating the owning feed source by source URL.
	// All inserts of one call commit as a single transaction; a mid-batch
	// failure rolls the whole batch back. Existing URLs are skipped
	// silently. Returns the count of newly inserted items.
	SyncNew(ctx context.Context, items []RawItem) (int, error)

	// ExistsByURL reports whether an item with the given URL is stored.
	ExistsByURL(ctx context.Context, url string) (bool, error)

	// Get returns the item with the given id, or (nil, nil) when absent.
	Get(ctx context.Context, id int64) (*entity.NewsItem, error)

	// ListRecent returns up to limit items ordered by published_at DESC.
	ListRecent(ctx context.Context, limit int) ([]*entity.NewsItem, error)
}
