package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier delivers alerts and command replies through the Telegram
// Bot API. All messages go to the single configured chat.
type TelegramNotifier struct {
	token  string
	chatID string
	api    string
	// One client serves both sends and long polling; the timeout covers the
	// 30s getUpdates long poll with slack.
	client *http.Client
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		token:  botToken,
		chatID: chatID,
		api:    telegramAPIBase,
		client: &http.Client{Timeout: 35 * time.Second, Transport: transport},
	}
}

// telegramResponse is the envelope every Bot API method returns.
type telegramResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// Send delivers one message to the configured chat. Alert text is HTML
// parse mode; the formatter escapes user-supplied fragments.
func (t *TelegramNotifier) Send(text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := t.client.Post(t.endpoint("sendMessage"), "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	var tr telegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return fmt.Errorf("telegram: status %d, undecodable body: %w", resp.StatusCode, err)
	}
	if !tr.OK {
		return fmt.Errorf("telegram rejected message: %s", tr.Description)
	}
	return nil
}

// SendWithRetry retries Send with doubling backoff until maxRetries extra
// attempts are spent or ctx is cancelled.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	backoff := time.Second
	var lastErr error
	for attempt := 0; ; attempt++ {
		lastErr = t.Send(text)
		if lastErr == nil {
			return nil
		}
		if attempt >= maxRetries {
			break
		}
		log.Printf("[WARN] telegram send attempt %d/%d failed: %v, retrying in %v",
			attempt+1, maxRetries+1, lastErr, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("telegram send failed after %d attempts: %w", maxRetries+1, lastErr)
}

func (t *TelegramNotifier) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.api, t.token, method)
}
