package aggregator_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newswire/internal/infra/aggregator"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Feed</title>
    <item>
      <title>First</title>
      <link>https://example.com/first</link>
      <pubDate>Mon, 03 Aug 2026 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Second</title>
      <link>https://example.com/second</link>
    </item>
  </channel>
</rss>`

func TestFetchAll_ParsesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	f := aggregator.NewRSSFetcher(srv.Client(), 5*time.Second)
	items := f.FetchAll(context.Background(), []string{srv.URL})

	if len(items) != 2 {
		t.Fatalf("len(items)=%d want 2", len(items))
	}
	if items[0].URL != "https://example.com/first" {
		t.Errorf("url=%q", items[0].URL)
	}
	if items[0].Published == nil {
		t.Error("first item should carry a published timestamp")
	}
	if items[1].Published != nil {
		t.Error("second item has no pubDate, expected nil")
	}
	if items[0].SourceURL != srv.URL {
		t.Errorf("source url=%q want %q", items[0].SourceURL, srv.URL)
	}
}

func TestFetchAll_IsolatesFailingSource(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	f := aggregator.NewRSSFetcher(http.DefaultClient, 5*time.Second)
	items := f.FetchAll(context.Background(), []string{bad.URL, good.URL})

	if len(items) != 2 {
		t.Fatalf("failing source must not abort siblings: len=%d want 2", len(items))
	}
}

func TestFetchAll_TimeoutYieldsNothing(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer slow.Close()

	f := aggregator.NewRSSFetcher(http.DefaultClient, 50*time.Millisecond)
	items := f.FetchAll(context.Background(), []string{slow.URL})

	if len(items) != 0 {
		t.Fatalf("timed-out source must contribute nothing: len=%d", len(items))
	}
}

func TestFetchAll_ParseErrorYieldsNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not xml"))
	}))
	defer srv.Close()

	f := aggregator.NewRSSFetcher(srv.Client(), 5*time.Second)
	items := f.FetchAll(context.Background(), []string{srv.URL})

	if len(items) != 0 {
		t.Fatalf("parse error must yield empty result: len=%d", len(items))
	}
}

func TestFetchAll_PreservesSourceOrder(t *testing.T) {
	feedFor := func(link string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>` +
				`<item><title>x</title><link>` + link + `</link></item></channel></rss>`))
		}
	}
	a := httptest.NewServer(feedFor("https://a/1"))
	defer a.Close()
	b := httptest.NewServer(feedFor("https://b/1"))
	defer b.Close()

	f := aggregator.NewRSSFetcher(http.DefaultClient, 5*time.Second)
	items := f.FetchAll(context.Background(), []string{a.URL, b.URL})

	if len(items) != 2 || items[0].URL != "https://a/1" || items[1].URL != "https://b/1" {
		t.Fatalf("results not in source-list order: %+v", items)
	}
}
