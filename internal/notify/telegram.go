package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Inventory/models"
)

// TelegramNotifier pushes batch run alerts to a Telegram chat. Send
// failures are logged only; notifications never affect the run outcome.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier creates a notifier for the given bot token and chat
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("initializing telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// NotifyBatchCompleted sends a run summary, calling out critical-risk
// products that need restocking attention.
func (n *TelegramNotifier) NotifyBatchCompleted(summary models.BatchRunSummary) {
	var critical []string
	for _, r := range summary.Results {
		if r.Success && r.RiskLevel == models.RiskCritical {
			critical = append(critical, fmt.Sprintf("%s: predicted %d units, stock %d",
				r.ProductID, r.StockPredicted, r.CurrentStock))
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Batch predictions completed: %d/%d successful (%.2f%%)\n",
		summary.SuccessfulRequests, summary.TotalRequests, summary.SuccessRate())

	if len(critical) == 0 {
		sb.WriteString("No critical risk products.")
	} else {
		fmt.Fprintf(&sb, "%d product(s) at CRITICAL risk:\n", len(critical))
		for _, line := range critical {
			sb.WriteString("  " + line + "\n")
		}
	}

	msg := tgbotapi.NewMessage(n.chatID, sb.String())
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error().Err(err).Msg("Failed to send batch notification")
	}
}
