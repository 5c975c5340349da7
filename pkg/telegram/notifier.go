package telegram

import (
	"context"
	"strconv"

	"golang-quant/config"
	"golang-quant/pkg/logger"

	"gopkg.in/telebot.v3"
)

// Notifier pushes run summaries to a configured Telegram chat. It is a thin
// one-way sender; no polling or command handling.
type Notifier struct {
	cfg *config.TelegramConfig
	log *logger.Logger
	bot *telebot.Bot
}

func NewNotifier(cfg *config.TelegramConfig, log *logger.Logger, bot *telebot.Bot) *Notifier {
	return &Notifier{
		cfg: cfg,
		log: log,
		bot: bot,
	}
}

// Send delivers an HTML-formatted message to the configured chat.
func (n *Notifier) Send(ctx context.Context, message string) error {
	chatID, err := strconv.ParseInt(n.cfg.ChatID, 10, 64)
	if err != nil {
		n.log.ErrorContext(ctx, "Invalid telegram chat id", logger.ErrorField(err))
		return err
	}

	_, err = n.bot.Send(&telebot.Chat{ID: chatID}, message, &telebot.SendOptions{
		ParseMode: telebot.ModeHTML,
	})
	if err != nil {
		n.log.ErrorContext(ctx, "Failed to send telegram message", logger.ErrorField(err))
	}
	return err
}
