// Package digest provides the use case for one publication cycle: sync new
// feed items into the store, then summarize and deliver every item that has
// no delivery record yet.
package digest

import "errors"

// Sentinel errors for digest cycle operations.
var (
	// ErrEmptySummary indicates that the summarizer returned no text at all.
	ErrEmptySummary = errors.New("summarizer returned empty text")

	// ErrSummaryTooShort indicates that the sanitized summary is below the
	// minimum length floor and the attempt must be retried.
	ErrSummaryTooShort = errors.New("sanitized summary below quality floor")
)
