package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// defaultRetries bounds report delivery when the configured retry
// budget is unbounded; a session report is not worth retrying forever.
const defaultRetries = 3

// TelegramNotifier delivers session reports and command replies to a
// single configured chat.
type TelegramNotifier struct {
	BaseURL  string
	BotToken string
	ChatID   string
	Retries  int
	Client   *http.Client
}

// NewTelegramNotifier creates a notifier with optional proxy support.
// retries caps report delivery attempts; values below 1 fall back to
// the default.
func NewTelegramNotifier(botToken, chatID, proxyURL string, retries int) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if retries < 1 {
		retries = defaultRetries
	}
	return &TelegramNotifier{
		BaseURL:  defaultAPIBase,
		BotToken: botToken,
		ChatID:   chatID,
		Retries:  retries,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// endpoint builds a Bot API method URL.
func (t *TelegramNotifier) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.BaseURL, t.BotToken, method)
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Send delivers one message to the configured chat. Reports use HTML
// markup; the bet table is wrapped in <pre> by the formatter.
func (t *TelegramNotifier) Send(text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: t.ChatID, Text: text, ParseMode: "HTML"})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	resp, err := t.Client.Post(t.endpoint("sendMessage"), "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendWithRetry delivers a message with exponential backoff, giving up
// after the configured number of attempts. Session reports go through
// here so a flaky connection does not swallow the final summary.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string) error {
	var lastErr error
	for i := 0; i < t.Retries; i++ {
		if err := t.Send(text); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] report delivery failed (attempt %d/%d): %v, retrying in %v", i+1, t.Retries, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("report delivery failed after %d attempts: %w", t.Retries, lastErr)
}
