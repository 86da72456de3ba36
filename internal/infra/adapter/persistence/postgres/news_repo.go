package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newswire/internal/domain/entity"
	"newswire/internal/repository"
)

type NewsRepo struct{ db *sql.DB }

func NewNewsRepo(db *sql.DB) repository.NewsRepository {
	return &NewsRepo{db: db}
}

// SyncNew inserts the raw items that are not yet stored, resolving or lazily
// creating feed sources by URL. The whole batch runs in one transaction: a
// mid-batch failure rolls everything back, which is safe because the next
// cycle re-derives the same candidate set from the feeds.
func (repo *NewsRepo) SyncNew(ctx context.Context, items []repository.RawItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("SyncNew: begin: %w", err)
	}
	// Rollback is a no-op after a successful commit.
	defer func() { _ = tx.Rollback() }()

	sourceIDs := make(map[string]int64)
	inserted := 0

	for _, item := range items {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM news WHERE url = $1)`, item.URL,
		).Scan(&exists); err != nil {
			return 0, fmt.Errorf("SyncNew: probe url: %w", err)
		}
		if exists {
			continue
		}

		sourceID, ok := sourceIDs[item.SourceURL]
		if !ok {
			sourceID, err = resolveSource(ctx, tx, item.SourceURL)
			if err != nil {
				return 0, fmt.Errorf("SyncNew: resolve source: %w", err)
			}
			sourceIDs[item.SourceURL] = sourceID
		}

		publishedAt := time.Now()
		if item.Published != nil {
			publishedAt = *item.Published
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO news (source_id, title, url, published_at, created_at)
VALUES ($1, $2, $3, $4, now())`,
			sourceID, item.Title, item.URL, publishedAt,
		); err != nil {
			return 0, fmt.Errorf("SyncNew: insert news: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("SyncNew: commit: %w", err)
	}
	return inserted, nil
}

// resolveSource finds the feed row for the given URL inside the sync
// transaction, creating it on first sight.
func resolveSource(ctx context.Context, tx *sql.Tx, sourceURL string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM feeds WHERE url = $1 LIMIT 1`, sourceURL,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	err = tx.QueryRowContext(ctx, `
INSERT INTO feeds (name, url, kind)
VALUES ($1, $2, 'rss')
RETURNING id`,
		sourceURL, sourceURL,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (repo *NewsRepo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM news WHERE url = $1)`
	var existsFlag bool
	err := repo.db.QueryRowContext(ctx, query, url).Scan(&existsFlag)
	if err != nil {
		return false, fmt.Errorf("ExistsByURL: %w", err)
	}
	return existsFlag, nil
}

func (repo *NewsRepo) Get(ctx context.Context, id int64) (*entity.NewsItem, error) {
	const query = `
SELECT id, source_id, title, url, published_at, created_at
FROM news
WHERE id = $1
LIMIT 1`
	var item entity.NewsItem
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.SourceID, &item.Title, &item.URL,
			&item.PublishedAt, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &item, nil
}

func (repo *NewsRepo) ListRecent(ctx context.Context, limit int) ([]*entity.NewsItem, error) {
	const query = `
SELECT id, source_id, title, url, published_at, created_at
FROM news
ORDER BY published_at DESC
LIMIT $1`
	rows, err := repo.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*entity.NewsItem, 0, limit)
	for rows.Next() {
		var item entity.NewsItem
		if err := rows.Scan(&item.ID, &item.SourceID, &item.Title,
			&item.URL, &item.PublishedAt, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListRecent: Scan: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
