package telegram

import (
	"context"
	"log/slog"
)

// NoOp is a deliverer that logs and discards messages. It is used when no
// bot token is configured, so the pipeline can run without a destination.
type NoOp struct{}

// NewNoOp creates a new NoOp deliverer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Deliver logs the would-be message and succeeds.
func (n *NoOp) Deliver(_ context.Context, text string, mode ParseMode) error {
	slog.Info("delivery disabled, discarding message",
		slog.String("parse_mode", string(mode)),
		slog.Int("text_length", len(text)))
	return nil
}
