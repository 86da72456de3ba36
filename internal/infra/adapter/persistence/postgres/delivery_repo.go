package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"newswire/internal/domain/entity"
	"newswire/internal/repository"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type DeliveryRepo struct{ db *sql.DB }

func NewDeliveryRepo(db *sql.DB) repository.DeliveryRepository {
	return &DeliveryRepo{db: db}
}

// UnsentItems returns every news item with no delivery record, in insertion
// order. The left anti-join keeps delivered items out without touching the
// ledger rows themselves.
func (repo *DeliveryRepo) UnsentItems(ctx context.Context) ([]*entity.NewsItem, error) {
	const query = `
SELECT n.id, n.source_id, n.title, n.url, n.published_at, n.created_at
FROM news n
LEFT JOIN deliveries d ON d.news_id = n.id
WHERE d.id IS NULL
ORDER BY n.id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("UnsentItems: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*entity.NewsItem, 0, 50)
	for rows.Next() {
		var item entity.NewsItem
		if err := rows.Scan(&item.ID, &item.SourceID, &item.Title,
			&item.URL, &item.PublishedAt, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("UnsentItems: Scan: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// MarkSent records one delivery for the item. The unique index on news_id
// turns a duplicate insert into entity.ErrAlreadyDelivered instead of a
// second ledger row.
func (repo *DeliveryRepo) MarkSent(ctx context.Context, newsID int64) error {
	const query = `
INSERT INTO deliveries (news_id, sent_at)
VALUES ($1, now())`
	_, err := repo.db.ExecContext(ctx, query, newsID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("MarkSent: news_id=%d: %w", newsID, entity.ErrAlreadyDelivered)
		}
		return fmt.Errorf("MarkSent: %w", err)
	}
	return nil
}

func (repo *DeliveryRepo) IsSent(ctx context.Context, newsID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM deliveries WHERE news_id = $1)`
	var sent bool
	err := repo.db.QueryRowContext(ctx, query, newsID).Scan(&sent)
	if err != nil {
		return false, fmt.Errorf("IsSent: %w", err)
	}
	return sent, nil
}
