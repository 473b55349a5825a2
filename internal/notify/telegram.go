package notify

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramAlerter posts a short line to the admin chat for every new registration.
type TelegramAlerter struct {
	bot    botSender
	chatID int64
}

func NewTelegramAlerter(token string, chatID int64) (*TelegramAlerter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramAlerter{bot: bot, chatID: chatID}, nil
}

func (t *TelegramAlerter) RegistrationConfirmed(ctx context.Context, c Confirmation) {
	text := fmt.Sprintf("Nouvelle inscription #%d\n%s - %s\n%s\n%s",
		c.RegistrationID, c.EventTitle, c.TicketName, c.Email, formatMoney(c.AmountTotal, c.Currency))
	if c.PendingReview {
		text += "\nJustificatif à valider"
	}
	go func() {
		if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
			log.Printf("[Telegram] alert for registration %d failed: %v", c.RegistrationID, err)
		}
	}()
}
