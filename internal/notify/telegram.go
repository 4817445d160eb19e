package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// Telegram forwards notification events to an operator chat.
type Telegram struct {
	botToken    string
	adminChatID string
}

// NewTelegram creates a Telegram notifier. With an empty token or chat
// id the notifier is a no-op.
func NewTelegram(botToken, adminChatID string) *Telegram {
	return &Telegram{botToken: botToken, adminChatID: adminChatID}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Notify sends the event to the admin chat. Failures are logged, never
// surfaced to the caller.
func (t *Telegram) Notify(event Event) {
	if t.botToken == "" || t.adminChatID == "" {
		return
	}

	text := fmt.Sprintf("<b>%s</b>\n%s\n<i>user %s</i>", event.Title, event.Description, event.UserID)
	if err := t.send(text); err != nil {
		log.Printf("[Telegram] Failed to deliver %s notification: %v", event.Kind, err)
	}
}

func (t *Telegram) send(text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)

	body, err := json.Marshal(telegramMessage{
		ChatID:    t.adminChatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}
