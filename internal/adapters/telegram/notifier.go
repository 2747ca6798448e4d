package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/vkuzmenko/marketbrief/pkg/logger"
	"github.com/vkuzmenko/marketbrief/pkg/models"
)

// Notifier delivers the finished briefing digest to a Telegram chat.
// Delivery is best-effort: failures are reported to the caller for logging
// but never abort the run.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier creates the Telegram notifier
func NewNotifier(botToken string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	bot.Debug = false

	logger.Info("telegram notifier authorized",
		zap.String("username", bot.Self.UserName),
	)

	return &Notifier{api: bot, chatID: chatID}, nil
}

// SendDigest sends a compact text version of the briefing.
func (n *Notifier) SendDigest(record models.BriefingRecord) error {
	msg := tgbotapi.NewMessage(n.chatID, FormatDigest(record))
	msg.DisableWebPagePreview = true

	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}

	return nil
}

// FormatDigest renders the briefing as a plain-text message.
func FormatDigest(record models.BriefingRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📰 Market Briefing — %s\n", record.Date)
	fmt.Fprintf(&b, "Mood: %s | Sentiment %d (%s)\n\n",
		record.MarketMood, record.SentimentIndex.Value, record.SentimentIndex.Label)
	fmt.Fprintf(&b, "%s\n", record.BigPicture)

	if len(record.MarketDrivers) > 0 {
		b.WriteString("\nDrivers:\n")
		for _, driver := range record.MarketDrivers {
			fmt.Fprintf(&b, "• %s: %s\n", driver.Label, driver.Summary)
		}
	}

	if len(record.HeadlineDigest) > 0 {
		b.WriteString("\nHeadlines:\n")
		for _, line := range record.HeadlineDigest {
			fmt.Fprintf(&b, "• %s\n", line)
		}
	}

	return b.String()
}
