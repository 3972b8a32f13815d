// Package admin — handlers.go обрабатывает /login и админ-команды в личке.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/common"
	"pawer.ru/pawer-bot/internal/features/feedback"
)

// Handler обрабатывает админ-команды.
type Handler struct {
	service  *Service
	feedback *feedback.Service
	bot      *tgbotapi.BotAPI
}

// NewHandler создаёт новый обработчик админ-команд.
func NewHandler(service *Service, fb *feedback.Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, feedback: fb, bot: bot}
}

// HandleLogin обрабатывает /login. Работает только в личке: пароль
// в группе остался бы в истории чата.
func (h *Handler) HandleLogin(chatID, userID int64, isPrivate bool) {
	if !isPrivate {
		h.send(chatID, "🔒 Вход в админ-панель доступен только в личных сообщениях")
		return
	}
	if h.service.HasSession(userID) {
		h.send(chatID, "✅ Вы уже вошли. Команды: /give, /admstats, /logout")
		return
	}

	h.service.SetState(userID, StateAwaitingPassword)
	h.send(chatID, "🔑 Введите пароль администратора:")
}

// HandleText обрабатывает текст в рамках админ-диалога.
// Возвращает true, если сообщение было частью диалога.
func (h *Handler) HandleText(ctx context.Context, chatID, userID int64, text string) bool {
	st := h.service.GetState(userID)
	if st == nil {
		return false
	}

	switch st.Name {
	case StateAwaitingPassword:
		h.service.ClearState(userID)
		h.handlePassword(chatID, userID, text)
	case StateAwaitingGive:
		h.service.ClearState(userID)
		h.handleGive(ctx, chatID, userID, text)
	default:
		return false
	}
	return true
}

func (h *Handler) handlePassword(chatID, userID int64, password string) {
	err := h.service.Login(userID, password)
	switch {
	case err == nil:
		h.send(chatID, "✅ Вход выполнен. Команды: /give, /admstats, /logout")
	case errors.Is(err, common.ErrTooManyAttempts):
		h.send(chatID, "⏳ Слишком много попыток, подождите час")
	case errors.Is(err, common.ErrWrongPassword):
		h.send(chatID, "❌ Неверный пароль")
	case errors.Is(err, common.ErrNotAdmin):
		h.send(chatID, "❌ У вас нет прав администратора")
	default:
		log.WithError(err).Error("Ошибка входа в админку")
		h.send(chatID, "❌ Ошибка, попробуйте позже")
	}
}

// HandleGiveCommand начинает диалог начисления валюты.
func (h *Handler) HandleGiveCommand(chatID, userID int64) {
	if !h.service.HasSession(userID) {
		h.send(chatID, "🔒 Сначала войдите: /login")
		return
	}
	h.service.SetState(userID, StateAwaitingGive)
	h.send(chatID, "Введите: <user_id> <монеты> <гемы>\nНапример: 123456789 500 5")
}

func (h *Handler) handleGive(ctx context.Context, chatID, adminID int64, text string) {
	parts := strings.Fields(text)
	if len(parts) != 3 {
		h.send(chatID, "❌ Формат: <user_id> <монеты> <гемы>")
		return
	}
	targetID, err1 := strconv.ParseInt(parts[0], 10, 64)
	coins, err2 := strconv.ParseInt(parts[1], 10, 64)
	gems, err3 := strconv.ParseInt(parts[2], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil || coins < 0 || gems < 0 {
		h.send(chatID, "❌ Все три значения должны быть неотрицательными числами")
		return
	}

	if err := h.service.GiveCurrency(ctx, adminID, targetID, coins, gems); err != nil {
		log.WithError(err).Error("Ошибка начисления от администратора")
		h.send(chatID, "❌ Не удалось начислить. Пользователь существует?")
		return
	}
	h.send(chatID, fmt.Sprintf("✅ Пользователю %d начислено: %s, %s",
		targetID, common.FormatCoins(coins), common.FormatGems(gems)))
}

// HandleStats показывает сводку для администратора.
func (h *Handler) HandleStats(ctx context.Context, chatID, userID int64) {
	if !h.service.HasSession(userID) {
		h.send(chatID, "🔒 Сначала войдите: /login")
		return
	}

	count, err := h.service.UserCount(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка подсчёта пользователей")
		h.send(chatID, "❌ Не удалось получить статистику")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Статистика\n\n👥 Пользователей: %d\n", count)

	recent, err := h.feedback.Recent(ctx, 5)
	if err == nil && len(recent) > 0 {
		b.WriteString("\n📬 Последние отзывы:\n")
		for _, fb := range recent {
			text := fb.Text
			if len([]rune(text)) > 80 {
				text = string([]rune(text)[:80]) + "…"
			}
			fmt.Fprintf(&b, "• @%s: %s\n", fb.Username, text)
		}
	}
	h.send(chatID, b.String())
}

// HandleLogout закрывает сессию.
func (h *Handler) HandleLogout(chatID, userID int64) {
	h.service.Logout(userID)
	h.send(chatID, "👋 Сессия закрыта")
}

func (h *Handler) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
