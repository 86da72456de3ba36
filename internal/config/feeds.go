// Package config provides application-level configuration loaded from
// YAML files and environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	pkgconfig "newswire/internal/pkg/config"
)

// FeedSpec is a single feed entry: a display name and the feed URL.
// The name is optional; when empty the URL stands in for it.
type FeedSpec struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// FeedsConfig holds the list of feeds the pipeline harvests.
type FeedsConfig struct {
	Feeds []FeedSpec `yaml:"feeds"`
}

// URLs returns the feed URLs in declaration order.
func (c *FeedsConfig) URLs() []string {
	urls := make([]string, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		urls = append(urls, f.URL)
	}
	return urls
}

// Validate checks that at least one feed is configured and every entry
// has a well-formed http(s) URL.
func (c *FeedsConfig) Validate() error {
	if len(c.Feeds) == 0 {
		return fmt.Errorf("no feeds configured")
	}
	for i, f := range c.Feeds {
		u, err := url.Parse(f.URL)
		if err != nil {
			return fmt.Errorf("feed %d: invalid URL %q: %w", i, f.URL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("feed %d: URL %q must use http or https", i, f.URL)
		}
	}
	return nil
}

// LoadFeedsConfig loads the feed list, preferring a YAML file over the
// environment:
//
//  1. If FEEDS_FILE is set, the file is parsed as YAML:
//
//     feeds:
//       - name: Example
//         url: https://example.com/rss
//
//  2. Otherwise FEED_URLS is read as a comma-separated list of URLs.
//
// An error is returned when neither source yields a feed, or when any
// entry fails validation.
func LoadFeedsConfig() (*FeedsConfig, error) {
	if path := os.Getenv("FEEDS_FILE"); path != "" {
		cfg, err := LoadFeedsFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadFeedsConfig: %w", err)
		}
		return cfg, nil
	}

	urls := pkgconfig.EnvStringList("FEED_URLS", nil)
	if len(urls) == 0 {
		return nil, fmt.Errorf("LoadFeedsConfig: set FEEDS_FILE or FEED_URLS")
	}

	cfg := &FeedsConfig{}
	for _, u := range urls {
		cfg.Feeds = append(cfg.Feeds, FeedSpec{URL: u})
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("LoadFeedsConfig: %w", err)
	}
	return cfg, nil
}

// LoadFeedsFile loads and validates a feeds YAML file.
// The path parameter is expected to come from a trusted source (command-line argument or environment).
func LoadFeedsFile(path string) (*FeedsConfig, error) {
	// #nosec G304 -- path is provided by trusted source (env or CLI arg), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}

	var cfg FeedsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse feeds file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
