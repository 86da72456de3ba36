package telegram

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RateLimitError represents a 429 rate limit error from the Bot API.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (retry after %v)", e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded (retry after %v)", e.RetryAfter)
}

// ClientError represents a 4xx client error from the Bot API. Malformed
// MarkdownV2 escaping comes back as one of these.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError represents a 5xx server error from the Bot API.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// IsFormatRejection reports whether the error is the Bot API rejecting
// the message markup. Unparseable MarkdownV2 comes back as a 400 with a
// "can't parse entities" description. Other client errors, such as a
// kicked bot or a missing chat, would fail a plain resend the same way,
// so they are not treated as format problems.
func IsFormatRejection(err error) bool {
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		return false
	}
	return strings.Contains(strings.ToLower(clientErr.Message), "can't parse entities")
}
