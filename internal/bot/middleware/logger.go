// Package middleware содержит промежуточные обработчики апдейтов:
// логирование, rate-limiting и восстановление после паники.
package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// LogUpdate логирует входящий апдейт: сообщение или нажатие кнопки.
// Текст обрезается, чтобы не раздувать логи.
func LogUpdate(update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		text := update.Message.Text
		if len(text) > 64 {
			text = text[:64] + "..."
		}
		log.WithFields(log.Fields{
			"user_id":  update.Message.From.ID,
			"chat_id":  update.Message.Chat.ID,
			"username": update.Message.From.UserName,
			"text":     text,
		}).Debug("Входящее сообщение")

	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		log.WithFields(log.Fields{
			"user_id": update.CallbackQuery.From.ID,
			"data":    update.CallbackQuery.Data,
		}).Debug("Нажата кнопка")

	case update.PreCheckoutQuery != nil:
		log.WithFields(log.Fields{
			"user_id": update.PreCheckoutQuery.From.ID,
			"payload": update.PreCheckoutQuery.InvoicePayload,
		}).Debug("Pre-checkout запрос")
	}
}
