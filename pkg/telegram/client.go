package telegram

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"golang-news-globe/pkg/retry"
)

// Notifier defines the interface for a Telegram notifier.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// client is an implementation of Notifier.
type client struct {
	bot    sender
	chatID int64
	policy retry.Policy
}

// SendPolicy retries rate-limited and server-side failures a few times.
func SendPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:    3,
		BaseDelay:      time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2,
		JitterFraction: 0.1,
	}
}

// NewClient creates a new Telegram notifier client.
func NewClient(botToken string, chatID int64) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return newClient(bot, chatID, SendPolicy()), nil
}

func newClient(bot sender, chatID int64, policy retry.Policy) *client {
	return &client{bot: bot, chatID: chatID, policy: policy}
}

// SendMessage sends text as Markdown, split into chunks under the message limit. Each chunk is
// retried on its own; the first chunk that cannot be delivered stops the rest.
func (c *client) SendMessage(ctx context.Context, text string) error {
	for _, chunk := range Chunk(text, maxMessageLen) {
		msg := tgbotapi.NewMessage(c.chatID, chunk)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.DisableWebPagePreview = true

		err := c.policy.Do(ctx, func(ctx context.Context, _ int) error {
			_, err := c.bot.Send(msg)
			return classify(err)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// classify marks errors Telegram will keep returning as permanent.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests, apiErr.Code >= http.StatusInternalServerError:
		return err
	default:
		return retry.Permanent(err)
	}
}

// Chunk splits text into pieces of at most limit bytes, breaking on line boundaries where it can.
func Chunk(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	var chunks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}
	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			flush()
			cut := limit
			for cut > 0 && !isRuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if current.Len()+len(line) > limit {
			flush()
		}
		current.WriteString(line)
	}
	flush()
	return chunks
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// SendAll sends each message in order and stops at the first failure.
func SendAll(ctx context.Context, n Notifier, messages []string) error {
	for _, m := range messages {
		if err := n.SendMessage(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
