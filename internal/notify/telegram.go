// Package notify posts table announcements to a Telegram group chat so
// players can follow price moves and chance events on their phones. Messages
// use MarkdownV2 formatting and are delivered with simple retry backoff.
//
// The announcer is optional: when disabled in configuration the rest of the
// application runs without it.
package notify

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yichenq/gamebank/internal/events"
	"github.com/yichenq/gamebank/internal/models"
)

// Telegram announces game updates to a single group chat.
type Telegram struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewTelegram creates an announcer for the given bot token and chat.
func NewTelegram(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Telegram{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// AnnouncePriceMove posts a single stock price change.
func (t *Telegram) AnnouncePriceMove(stock models.Stock, oldPrice float64) error {
	emoji := "📈"
	if stock.Price < oldPrice {
		emoji = "📉"
	}
	message := fmt.Sprintf("%s *%s*: %s → %s",
		emoji,
		escapeMarkdownV2(stock.Name),
		escapeMarkdownV2(formatPrice(oldPrice)),
		escapeMarkdownV2(formatPrice(stock.Price)),
	)
	return t.send(message)
}

// AnnounceEvent posts a drawn chance event and its effects.
func (t *Telegram) AnnounceEvent(ev events.Event) error {
	message := fmt.Sprintf("🎲 *Chance Event*\n%s\n", escapeMarkdownV2(ev.Description))
	for _, effect := range ev.Effects {
		emoji := "📈"
		if effect.Percent < 0 {
			emoji = "📉"
		}
		message += fmt.Sprintf("%s %s: %s\n",
			emoji,
			escapeMarkdownV2(string(effect.Kind)),
			escapeMarkdownV2(fmt.Sprintf("%+.0f%%", effect.Percent)),
		)
	}
	return t.send(message)
}

// AnnounceNewGame posts a new-game notice.
func (t *Telegram) AnnounceNewGame() error {
	return t.send("🆕 *New game started*: prices, debts, and the roster have been reset\\.")
}

func (t *Telegram) send(message string) error {
	msg := tgbotapi.NewMessage(t.chatID, message)
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < t.maxRetries; i++ {
		_, err := t.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(t.retryDelayBase * time.Duration(i+1))
	}
	return fmt.Errorf("failed to send message after %d retries: %w", t.maxRetries, lastErr)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2.
func escapeMarkdownV2(text string) string {
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}
