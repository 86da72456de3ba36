// Package summarizer turns article URLs into publish-ready copy through an
// LLM proxy service.
package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"newswire/internal/observability/metrics"
	"newswire/internal/resilience/circuitbreaker"
)

// Summarizer generates publish-ready copy for a news item URL.
// Implementations degrade internally and must not fail the caller on
// upstream trouble.
type Summarizer interface {
	Summarize(ctx context.Context, url string) (string, error)
}

// Proxy implements Summarizer against a two-endpoint LLM proxy:
// POST /oauth/ issues a short-lived bearer token, POST /chat/completions
// generates the copy. Upstream failures degrade to a placeholder naming
// the URL so the pipeline can still publish something identifiable.
type Proxy struct {
	config         *Config
	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewProxy creates a proxy summarizer with the given configuration.
func NewProxy(cfg *Config) *Proxy {
	slog.Info("Initialized proxy summarizer",
		slog.String("base_url", cfg.BaseURL),
		slog.String("model", cfg.Model))

	return &Proxy{
		config:         cfg,
		httpClient:     &http.Client{},
		circuitBreaker: circuitbreaker.New(circuitbreaker.ProxyAPIConfig()),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Summarize generates publish-ready copy for the given URL.
// A completion timeout yields a placeholder text rather than an error, and
// any other upstream failure likewise degrades to a placeholder naming the
// URL. The only error returned is context cancellation, so a shutdown is
// not mistaken for a degraded summary.
func (p *Proxy) Summarize(ctx context.Context, url string) (string, error) {
	start := time.Now()

	text, err := p.doSummarize(ctx, url)
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("summarize canceled: %w", ctx.Err())
		}

		metrics.RecordSummarization("degraded")
		metrics.RecordSummarizationDuration(duration)

		if isTimeout(err) {
			slog.ErrorContext(ctx, "summary service timed out",
				slog.String("url", url),
				slog.Duration("duration", duration))
			return fmt.Sprintf("⚠️ The summary service did not respond in time. Source: %s", url), nil
		}

		slog.ErrorContext(ctx, "summary generation failed",
			slog.String("url", url),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return fmt.Sprintf("⚠️ Failed to generate story\n%s", url), nil
	}

	metrics.RecordSummarization("success")
	metrics.RecordSummarizationDuration(duration)

	slog.InfoContext(ctx, "summary generated",
		slog.String("url", url),
		slog.Int("length", len(text)),
		slog.Duration("duration", duration))

	return text, nil
}

// doSummarize performs the token and completion calls without degradation.
func (p *Proxy) doSummarize(ctx context.Context, url string) (string, error) {
	token, err := p.fetchToken(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch token: %w", err)
	}

	result, err := p.circuitBreaker.Execute(func() (interface{}, error) {
		return p.complete(ctx, token, url)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("proxy circuit breaker open, request rejected",
				slog.String("state", p.circuitBreaker.State().String()))
			return "", fmt.Errorf("proxy unavailable: circuit breaker open")
		}
		return "", err
	}

	return result.(string), nil
}

// fetchToken obtains a bearer token from the proxy's oauth endpoint.
// Token failure is fatal to the current call, there is no retry here.
func (p *Proxy) fetchToken(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.TokenTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/oauth/", nil)
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute token request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access_token")
	}

	return tok.AccessToken, nil
}

// complete calls the chat-completions endpoint and extracts the first
// generated message. The proxy speaks the OpenAI wire format, so the
// client is built per call with the short-lived token as its API key and
// the proxy as its base URL.
func (p *Proxy) complete(ctx context.Context, token, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.CompletionTimeout)
	defer cancel()

	clientCfg := openai.DefaultConfig(token)
	clientCfg.BaseURL = p.config.BaseURL
	clientCfg.HTTPClient = p.httpClient
	client := openai.NewClientWithConfig(clientCfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildPrompt(url),
		}},
	})
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// isTimeout reports whether the error chain contains a deadline or a
// network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
