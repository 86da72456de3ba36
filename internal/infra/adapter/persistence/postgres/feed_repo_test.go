package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"newswire/internal/domain/entity"
	"newswire/internal/infra/adapter/persistence/postgres"
)

func feedRows(sources ...*entity.FeedSource) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "url", "kind"})
	for _, s := range sources {
		rows.AddRow(s.ID, s.Name, s.URL, s.Kind)
	}
	return rows
}

func TestFeedRepo_GetByURL(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT id, name, url, kind`).
		WithArgs("https://a/rss").
		WillReturnRows(feedRows(
			&entity.FeedSource{ID: 1, Name: "A", URL: "https://a/rss", Kind: "rss"},
		))

	repo := postgres.NewFeedRepo(db)
	got, err := repo.GetByURL(context.Background(), "https://a/rss")
	if err != nil {
		t.Fatalf("GetByURL err=%v", err)
	}
	if got == nil || got.ID != 1 || got.Name != "A" {
		t.Fatalf("unexpected source: %+v", got)
	}
}

func TestFeedRepo_GetByURL_Missing(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT id, name, url, kind`).
		WithArgs("https://missing/rss").
		WillReturnRows(feedRows())

	repo := postgres.NewFeedRepo(db)
	got, err := repo.GetByURL(context.Background(), "https://missing/rss")
	if err != nil {
		t.Fatalf("GetByURL err=%v", err)
	}
	if got != nil {
		t.Fatalf("want nil for missing source, got %+v", got)
	}
}

func TestFeedRepo_List(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`ORDER BY id ASC`).
		WillReturnRows(feedRows(
			&entity.FeedSource{ID: 1, Name: "A", URL: "https://a/rss", Kind: "rss"},
			&entity.FeedSource{ID: 2, Name: "B", URL: "https://b/rss", Kind: "rss"},
		))

	repo := postgres.NewFeedRepo(db)
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(got) != 2 || got[0].URL != "https://a/rss" || got[1].URL != "https://b/rss" {
		t.Fatalf("unexpected sources: %+v", got)
	}
}

func TestFeedRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO feeds`)).
		WithArgs("A", "https://a/rss", "rss").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	repo := postgres.NewFeedRepo(db)
	source := &entity.FeedSource{Name: "A", URL: "https://a/rss"}
	if err := repo.Create(context.Background(), source); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if source.ID != 5 {
		t.Fatalf("want ID 5, got %d", source.ID)
	}
	if source.Kind != "rss" {
		t.Fatalf("want default kind rss, got %q", source.Kind)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
