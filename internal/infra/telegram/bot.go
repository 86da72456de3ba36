package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"newswire/internal/observability/logging"
	"newswire/internal/observability/metrics"
	"newswire/internal/pkg/config"
	"newswire/internal/resilience/circuitbreaker"
)

// defaultAPIBaseURL is the production Bot API endpoint. Tests point
// BaseURL at an httptest server instead.
const defaultAPIBaseURL = "https://api.telegram.org"

// BotConfig contains configuration for the Bot API client.
type BotConfig struct {
	// Token is the bot token issued by BotFather.
	Token string

	// ChatID is the destination chat.
	ChatID int64

	// ThreadID is the optional forum topic within the chat. Nil sends to
	// the chat's general timeline.
	ThreadID *int64

	// BaseURL is the Bot API host.
	BaseURL string

	// Timeout is the HTTP request timeout for Bot API calls.
	Timeout time.Duration
}

// LoadBotConfig loads Bot API configuration from environment variables.
//
// Environment variables:
//   - TELEGRAM_TOKEN: bot token (required)
//   - TELEGRAM_CHAT_ID: destination chat id (required)
//   - TELEGRAM_TOPIC_ID: forum topic id (optional)
//   - TELEGRAM_API_URL: Bot API host (default: https://api.telegram.org)
//   - TELEGRAM_TIMEOUT: request timeout (default: 10s)
func LoadBotConfig() (*BotConfig, error) {
	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if chatIDStr == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is required")
	}
	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", chatIDStr, err)
	}

	var threadID *int64
	if topicStr := os.Getenv("TELEGRAM_TOPIC_ID"); topicStr != "" {
		topic, err := strconv.ParseInt(topicStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_TOPIC_ID %q: %w", topicStr, err)
		}
		threadID = &topic
	}

	timeout, fb := config.EnvDuration("TELEGRAM_TIMEOUT", 10*time.Second, nil)
	if fb != nil {
		slog.Warn("Configuration fallback applied", slog.String("warning", fb.Warning()))
	}

	return &BotConfig{
		Token:    token,
		ChatID:   chatID,
		ThreadID: threadID,
		BaseURL:  config.EnvString("TELEGRAM_API_URL", defaultAPIBaseURL),
		Timeout:  timeout,
	}, nil
}

// Bot delivers messages to one Telegram chat via the Bot API sendMessage
// method.
type Bot struct {
	config         BotConfig
	httpClient     *http.Client
	rateLimiter    *RateLimiter
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewBot creates a Bot client with the given configuration.
// The rate limiter is set to 1 request/second with a burst of 1, which
// keeps a batch of sends under Telegram's per-chat limit.
func NewBot(cfg BotConfig) *Bot {
	return &Bot{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter:    NewRateLimiter(1, 1),
		circuitBreaker: circuitbreaker.New(circuitbreaker.TelegramAPIConfig()),
	}
}

type sendMessagePayload struct {
	ChatID                int64  `json:"chat_id"`
	MessageThreadID       *int64 `json:"message_thread_id,omitempty"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
	Parameters  struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

// Deliver sends text to the configured chat in the given parse mode.
// Link previews are disabled so a digest of several posts stays compact.
func (b *Bot) Deliver(ctx context.Context, text string, mode ParseMode) error {
	ctx = logging.ContextWithRequestID(ctx, uuid.New().String())
	logger := logging.WithRequestID(ctx, slog.Default())

	logger.Info("Starting Telegram delivery",
		slog.Int64("chat_id", b.config.ChatID),
		slog.String("parse_mode", string(mode)),
		slog.Int("text_length", len(text)))

	if err := b.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	start := time.Now()
	_, err := b.circuitBreaker.Execute(func() (interface{}, error) {
		return nil, b.sendMessage(ctx, text, mode)
	})
	duration := time.Since(start)

	if err != nil {
		metrics.RecordDelivery("failure", duration)
		logger.Error("Telegram delivery failed",
			slog.String("parse_mode", string(mode)),
			slog.Any("error", err))
		return err
	}

	status := "markdown"
	if mode == ParseModeNone {
		status = "plain"
	}
	metrics.RecordDelivery(status, duration)

	logger.Info("Telegram delivery successful",
		slog.String("parse_mode", string(mode)),
		slog.Duration("duration", duration))

	return nil
}

// sendMessage performs one sendMessage call and maps API failures onto
// the shared webhook error types.
func (b *Bot) sendMessage(ctx context.Context, text string, mode ParseMode) error {
	payload := sendMessagePayload{
		ChatID:                b.config.ChatID,
		MessageThreadID:       b.config.ThreadID,
		Text:                  text,
		ParseMode:             string(mode),
		DisableWebPagePreview: true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sendMessage payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", b.config.BaseURL, b.config.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	var api apiResponse
	_ = json.Unmarshal(body, &api)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && api.OK {
		return nil
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := 5 * time.Second
		if api.Parameters.RetryAfter > 0 {
			retryAfter = time.Duration(api.Parameters.RetryAfter) * time.Second
		}
		return &RateLimitError{
			Message:    "Telegram rate limit exceeded",
			RetryAfter: retryAfter,
		}
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Telegram API client error: %s", api.Description),
		}
	}

	if resp.StatusCode >= 500 {
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Telegram API server error: %s", api.Description),
		}
	}

	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}
