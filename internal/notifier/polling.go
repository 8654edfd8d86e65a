package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CommandHandler resolves a chat command (/status, /history) to a
// reply. An empty reply suppresses the response.
type CommandHandler func(command string) string

// pollRetryDelay spaces retries after a failed getUpdates call.
const pollRetryDelay = 5 * time.Second

// telegramUpdate is one long-poll result entry.
type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// StartPolling long-polls for chat commands while sessions run.
// Commands from chats other than the configured one are dropped.
// Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0
	client := &http.Client{Timeout: 35 * time.Second}

	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] Telegram polling stopped")
			return
		default:
		}

		updates, err := t.fetchUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] poll updates: %v", err)
			time.Sleep(pollRetryDelay)
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			cmd, ok := t.command(update)
			if !ok {
				continue
			}
			log.Printf("[INFO] received command: %s", cmd)
			if reply := handler(cmd); reply != "" {
				if err := t.Send(reply); err != nil {
					log.Printf("[ERROR] send reply: %v", err)
				}
			}
		}
	}
}

// fetchUpdates issues one getUpdates long poll.
func (t *TelegramNotifier) fetchUpdates(ctx context.Context, client *http.Client, offset int) ([]telegramUpdate, error) {
	apiURL := fmt.Sprintf("%s?offset=%d&timeout=30", t.endpoint("getUpdates"), offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("long poll: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var result struct {
		OK     bool             `json:"ok"`
		Result []telegramUpdate `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("telegram API not ok: %s", string(body))
	}
	return result.Result, nil
}

// command extracts a usable command from an update: text from the
// configured chat, trimmed, with any @botname suffix stripped.
func (t *TelegramNotifier) command(update telegramUpdate) (string, bool) {
	if update.Message == nil || update.Message.Text == "" {
		return "", false
	}
	if t.ChatID != "" && strconv.FormatInt(update.Message.Chat.ID, 10) != t.ChatID {
		log.Printf("[WARN] ignoring command from chat %d", update.Message.Chat.ID)
		return "", false
	}
	cmd := strings.TrimSpace(update.Message.Text)
	if i := strings.Index(cmd, "@"); i > 0 && strings.HasPrefix(cmd, "/") {
		cmd = cmd[:i]
	}
	return cmd, true
}
