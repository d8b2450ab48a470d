package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// StaffNotifier пингует стафф-чат о новых откликах. Может быть nil — тогда
// уведомления просто не отправляются.
type StaffNotifier interface {
	NotifyNewApplication(jobTitle, applicantName, applicantEmail string) error
}

type telegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramService возвращает nil, если бот не сконфигурирован.
func NewTelegramService(botToken string, staffChatID int64) StaffNotifier {
	if botToken == "" || staffChatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[tg] bot init failed, notifications disabled: %v", err)
		return nil
	}
	return &telegramService{bot: bot, chatID: staffChatID}
}

func (t *telegramService) NotifyNewApplication(jobTitle, applicantName, applicantEmail string) error {
	text := fmt.Sprintf("New application for %q\nApplicant: %s (%s)", jobTitle, applicantName, applicantEmail)
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
