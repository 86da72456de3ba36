package summarizer

import (
	"context"
	"fmt"
)

// NoOp is a summarizer that returns a fixed text naming the URL.
// This is useful for testing and development when the proxy is not needed.
type NoOp struct{}

// NewNoOp creates a new NoOp summarizer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize returns a canned post referencing the URL.
func (n *NoOp) Summarize(_ context.Context, url string) (string, error) {
	return fmt.Sprintf("Source: %s\n\nSummarization is disabled in this environment.", url), nil
}
