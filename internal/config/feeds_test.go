package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFeedsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFeedsFile_Valid(t *testing.T) {
	path := writeFeedsFile(t, `
feeds:
  - name: Example News
    url: https://example.com/rss
  - name: Other
    url: http://other.example.org/feed.xml
`)

	cfg, err := LoadFeedsFile(path)
	require.NoError(t, err)

	want := &FeedsConfig{Feeds: []FeedSpec{
		{Name: "Example News", URL: "https://example.com/rss"},
		{Name: "Other", URL: "http://other.example.org/feed.xml"},
	}}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("feeds config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFeedsFile_MissingFile(t *testing.T) {
	_, err := LoadFeedsFile("/nonexistent/feeds.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read feeds file")
}

func TestLoadFeedsFile_MalformedYAML(t *testing.T) {
	path := writeFeedsFile(t, "feeds: [unterminated")

	_, err := LoadFeedsFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse feeds file")
}

func TestLoadFeedsFile_EmptyList(t *testing.T) {
	path := writeFeedsFile(t, "feeds: []")

	_, err := LoadFeedsFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no feeds configured")
}

func TestLoadFeedsFile_BadScheme(t *testing.T) {
	path := writeFeedsFile(t, `
feeds:
  - url: ftp://example.com/feed
`)

	_, err := LoadFeedsFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must use http or https")
}

func TestLoadFeedsConfig_FromEnvList(t *testing.T) {
	t.Setenv("FEEDS_FILE", "")
	t.Setenv("FEED_URLS", "https://a.example.com/rss, https://b.example.com/rss")

	cfg, err := LoadFeedsConfig()
	require.NoError(t, err)

	want := []string{"https://a.example.com/rss", "https://b.example.com/rss"}
	if diff := cmp.Diff(want, cfg.URLs()); diff != "" {
		t.Errorf("feed URLs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFeedsConfig_FilePreferredOverEnvList(t *testing.T) {
	path := writeFeedsFile(t, `
feeds:
  - name: File Feed
    url: https://file.example.com/rss
`)
	t.Setenv("FEEDS_FILE", path)
	t.Setenv("FEED_URLS", "https://env.example.com/rss")

	cfg, err := LoadFeedsConfig()
	require.NoError(t, err)
	require.Len(t, cfg.Feeds, 1)
	assert.Equal(t, "https://file.example.com/rss", cfg.Feeds[0].URL)
}

func TestLoadFeedsConfig_NothingConfigured(t *testing.T) {
	t.Setenv("FEEDS_FILE", "")
	t.Setenv("FEED_URLS", "")

	_, err := LoadFeedsConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set FEEDS_FILE or FEED_URLS")
}

func TestFeedsConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     FeedsConfig
		wantErr bool
	}{
		{
			name: "valid https",
			cfg:  FeedsConfig{Feeds: []FeedSpec{{URL: "https://example.com/rss"}}},
		},
		{
			name:    "empty",
			cfg:     FeedsConfig{},
			wantErr: true,
		},
		{
			name:    "relative url",
			cfg:     FeedsConfig{Feeds: []FeedSpec{{URL: "example.com/rss"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
