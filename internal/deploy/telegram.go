package deploy

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramChannel publishes campaign content to a Telegram chat,
// typically the store owner's announcement channel.
type TelegramChannel struct {
	Bot    *tgbotapi.BotAPI
	ChatID int64
}

func NewTelegramChannel(token string, chatID int64) (*TelegramChannel, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	return &TelegramChannel{Bot: bot, ChatID: chatID}, nil
}

func (t *TelegramChannel) Name() string { return "telegram" }

func (t *TelegramChannel) Publish(ctx context.Context, m Message) error {
	text := m.Body
	if m.Subject != "" {
		text = fmt.Sprintf("*%s*\n\n%s", m.Subject, m.Body)
	}
	if len(m.Hashtags) > 0 {
		text += "\n\n" + strings.Join(m.Hashtags, " ")
	}
	if m.ImageURL != "" {
		text += "\n\n" + m.ImageURL
	}

	msg := tgbotapi.NewMessage(t.ChatID, text)
	msg.ParseMode = "Markdown"
	_, err := t.Bot.Send(msg)
	return err
}

// Notify satisfies campaign.Notifier so the monitor can announce
// lifecycle changes through the same chat.
func (t *TelegramChannel) Notify(text string) error {
	msg := tgbotapi.NewMessage(t.ChatID, text)
	_, err := t.Bot.Send(msg)
	return err
}
