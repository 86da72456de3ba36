package db

import "database/sql"

// MigrateUp creates the pipeline schema. The unique constraints carry the
// core correctness guarantees: news.url is the dedup key, and the unique
// index on deliveries.news_id makes delivery at-most-once.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS feeds (
    id   SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    url  TEXT NOT NULL UNIQUE,
    kind VARCHAR(20) NOT NULL DEFAULT 'rss'
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS news (
    id           SERIAL PRIMARY KEY,
    source_id    INTEGER REFERENCES feeds(id),
    title        TEXT NOT NULL,
    url          TEXT NOT NULL UNIQUE,
    published_at TIMESTAMPTZ NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	// Unused by the broadcast pipeline; chat_id identity for the
	// interactive surface and future per-user delivery.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id         SERIAL PRIMARY KEY,
    chat_id    BIGINT NOT NULL UNIQUE,
    username   TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS deliveries (
    id           SERIAL PRIMARY KEY,
    news_id      INTEGER NOT NULL REFERENCES news(id),
    recipient_id INTEGER REFERENCES users(id),
    sent_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (news_id)
)`); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_news_published_at ON news(published_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_news_source_id ON news(source_id)`,
		`CREATE INDEX IF NOT EXISTS idx_deliveries_news_id ON deliveries(news_id)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown rolls back the pipeline schema in reverse dependency order.
// Use with caution: this deletes all data in the affected tables.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS deliveries`,
		`DROP TABLE IF EXISTS users`,
		`DROP TABLE IF EXISTS news`,
		`DROP TABLE IF EXISTS feeds`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
