package entity

import (
	"fmt"
	"net/url"
	"strings"
)

// FeedSource represents a syndication origin polled for new items.
// Sources are created lazily the first time an item from that origin is
// ingested and are never deleted by the pipeline. URL is unique.
type FeedSource struct {
	ID   int64
	Name string
	URL  string
	Kind string // rss, atom, api
}

// Validate checks the FeedSource fields before persistence.
func (f *FeedSource) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	u, err := url.Parse(f.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("invalid feed url: %q", f.URL)}
	}
	if f.Kind == "" {
		f.Kind = "rss"
	}
	return nil
}
