// Package telegram delivers generated posts to a Telegram chat through the
// Bot API. It defines the Deliverer interface which allows the real Bot API
// client and a no-op implementation to be used interchangeably through
// dependency injection.
package telegram

import (
	"context"
)

// ParseMode selects the markup dialect for an outgoing message.
type ParseMode string

const (
	// ParseModeMarkdownV2 sends the message with MarkdownV2 formatting.
	// The text must have the reserved character set escaped.
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"

	// ParseModeNone sends the message as plain text.
	ParseModeNone ParseMode = ""
)

// Deliverer sends one message to the configured destination chat.
// Implementations should handle rate limiting and error logging internally.
type Deliverer interface {
	// Deliver sends text to the destination chat in the given parse mode.
	// A rejection of MarkdownV2 formatting surfaces as a *ClientError so
	// the caller can fall back to a plain send.
	Deliver(ctx context.Context, text string, mode ParseMode) error
}
