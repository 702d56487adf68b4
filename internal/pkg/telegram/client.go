// internal/pkg/telegram/client.go
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender delivers a text message to a single chat. The notification relay
// depends on this interface so tests can substitute a fake.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// Client is a thin Telegram Bot API client
type Client struct {
	baseURL  string
	botToken string
	client   *http.Client
}

// NewClient creates a Bot API client. baseURL is normally
// https://api.telegram.org and overridable for tests.
func NewClient(baseURL, botToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:  baseURL,
		botToken: botToken,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// SendMessage posts a sendMessage call for one chat
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	if c.botToken == "" {
		return fmt.Errorf("bot token not configured")
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sendMessage request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach Telegram API: %w", err)
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("Telegram API returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("failed to decode Telegram API response: %w", err)
	}

	if !apiResp.OK {
		if apiResp.Description != "" {
			return fmt.Errorf("Telegram API error: %s", apiResp.Description)
		}
		return fmt.Errorf("Telegram API returned status %d", resp.StatusCode)
	}

	return nil
}
