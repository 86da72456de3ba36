package repository

import (
	"context"

	"newswire/internal/domain/entity"
)

// FeedRepository manages feed source rows. Sources appear lazily during
// sync and are never removed by the pipeline.
type FeedRepository interface {
	// GetByURL returns the source with the given URL, or (nil, nil) when absent.
	GetByURL(ctx context.Context, url string) (*entity.FeedSource, error)
	List(ctx context.Context) ([]*entity.FeedSource, error)
	Create(ctx context.Context, source *entity.FeedSource) error
}
