package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newswire/internal/domain/entity"
	"newswire/internal/repository"
)

type FeedRepo struct{ db *sql.DB }

func NewFeedRepo(db *sql.DB) repository.FeedRepository {
	return &FeedRepo{db: db}
}

func (repo *FeedRepo) GetByURL(ctx context.Context, url string) (*entity.FeedSource, error) {
	const query = `
SELECT id, name, url, kind
FROM feeds
WHERE url = $1
LIMIT 1`
	var source entity.FeedSource
	err := repo.db.QueryRowContext(ctx, query, url).
		Scan(&source.ID, &source.Name, &source.URL, &source.Kind)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByURL: %w", err)
	}
	return &source, nil
}

func (repo *FeedRepo) List(ctx context.Context) ([]*entity.FeedSource, error) {
	const query = `
SELECT id, name, url, kind
FROM feeds
ORDER BY id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sources := make([]*entity.FeedSource, 0, 16)
	for rows.Next() {
		var source entity.FeedSource
		if err := rows.Scan(&source.ID, &source.Name, &source.URL, &source.Kind); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		sources = append(sources, &source)
	}
	return sources, rows.Err()
}

func (repo *FeedRepo) Create(ctx context.Context, source *entity.FeedSource) error {
	if source.Kind == "" {
		source.Kind = "rss"
	}
	const query = `
INSERT INTO feeds (name, url, kind)
VALUES ($1, $2, $3)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		source.Name, source.URL, source.Kind,
	).Scan(&source.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
