package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/syntoo/nepsebot/internal/common"
	"github.com/syntoo/nepsebot/internal/httpclient"
)

// Client is a minimal Telegram Bot API client. Outbound calls share a
// token-bucket limiter so bulk sends stay under the Bot API flood limits.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     arbor.ILogger
}

const defaultRequestTimeout = 10 * time.Second

// apiResponse is the common envelope of every Bot API method
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

// NewClient creates a Bot API client from configuration
func NewClient(cfg *common.TelegramConfig, logger arbor.ILogger) *Client {
	return &Client{
		baseURL:    cfg.APIBaseURL,
		token:      cfg.Token,
		httpClient: httpclient.NewDefaultHTTPClient(defaultRequestTimeout),
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:     logger,
	}
}

// SendMessage delivers a text message to a chat. An empty parseMode sends
// plain text.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, parseMode string) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	if parseMode != "" {
		payload["parse_mode"] = parseMode
	}

	if err := c.call(ctx, "sendMessage", payload); err != nil {
		c.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
		return err
	}
	return nil
}

// SetWebhook points the Bot API at the given public URL
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	return c.call(ctx, "setWebhook", map[string]interface{}{"url": url})
}

// DeleteWebhook removes the current webhook registration
func (c *Client) DeleteWebhook(ctx context.Context, dropPendingUpdates bool) error {
	return c.call(ctx, "deleteWebhook", map[string]interface{}{
		"drop_pending_updates": dropPendingUpdates,
	})
}

// call posts a JSON payload to a Bot API method and decodes the envelope
func (c *Client) call(ctx context.Context, method string, payload map[string]interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if !envelope.OK {
		return fmt.Errorf("telegram api %s error %d: %s", method, envelope.ErrorCode, envelope.Description)
	}
	return nil
}
