// Package bot — handlers.go рисует карточки и обрабатывает команды
// и кнопки, не относящиеся к магазину и админке.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/common"
	"pawer.ru/pawer-bot/internal/features/pet"
)

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message, args []string) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	var referrerID *int64
	if id := ParseStartPayload(args); id != 0 {
		referrerID = &id
	}

	created, err := b.users.EnsureUser(ctx, userID, msg.From.UserName, msg.From.FirstName, referrerID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка регистрации пользователя")
		b.send(chatID, "❌ Что-то пошло не так, попробуйте ещё раз")
		return
	}

	streak, coins, gems, err := b.users.UpdateLoginStreak(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Ошибка обновления серии входов")
	}

	var greeting strings.Builder
	if created {
		greeting.WriteString("👋 Добро пожаловать в Pawer!\n\nЗдесь живёт ваш виртуальный питомец: кормите его, играйте с ним и прокачивайте уровни.\n\n")
	} else {
		fmt.Fprintf(&greeting, "С возвращением, %s!\n\n", msg.From.FirstName)
	}
	if coins > 0 || gems > 0 {
		fmt.Fprintf(&greeting, "🔥 Серия входов: %s!\nНаграда: +%s",
			common.PluralizeDays(int64(streak)), common.FormatCoins(coins))
		if gems > 0 {
			fmt.Fprintf(&greeting, ", +%s", common.FormatGems(gems))
		}
		greeting.WriteString("\n\n")
	}
	greeting.WriteString("Выберите, чем займёмся:")

	out := tgbotapi.NewMessage(chatID, greeting.String())
	out.ReplyMarkup = mainMenuKeyboard(b.cfg.MiniAppURL)
	if _, err := b.api.Send(out); err != nil {
		log.WithError(err).Error("Ошибка отправки приветствия")
	}
}

func (b *Bot) handleHelp(chatID int64) {
	b.send(chatID, `🐾 Pawer — бот с виртуальным питомцем

/start — главное меню
/pet — карточка питомца
/stats — ваша статистика
/app — открыть Mini App
/feedback — написать нам
/settings — настройки

Питомец живёт своей жизнью: статы убывают со временем. Кормите, поите, играйте и укладывайте его спать, чтобы он рос в уровнях.`)
}

// handlePetCard показывает карточку питомца с актуальными статами.
func (b *Bot) handlePetCard(ctx context.Context, chatID, userID int64, messageID int) {
	p, err := b.pets.Recompute(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrPetNotFound) {
			b.editOrSend(chatID, messageID,
				"У вас пока нет питомца. Заведём?", createPetKeyboard())
			return
		}
		log.WithError(err).WithField("user_id", userID).Error("Ошибка пересчёта питомца")
		b.send(chatID, "❌ Не удалось показать питомца")
		return
	}

	b.editOrSend(chatID, messageID, renderPetCard(p), petCardKeyboard())
}

// renderPetCard собирает текст карточки питомца.
func renderPetCard(p *pet.Pet) string {
	info := pet.Types[p.Type]

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s — уровень %d\n", info.Emoji, p.Name, p.Level)
	required := pet.ExperienceRequired(p.Level)
	fmt.Fprintf(&sb, "Опыт: %s %d/%d\n\n",
		common.ProgressBar(p.Exp*100/required), p.Exp, required)
	fmt.Fprintf(&sb, "🍖 Сытость:    %s %d\n", common.StatBar(p.Hunger), p.Hunger)
	fmt.Fprintf(&sb, "💧 Вода:       %s %d\n", common.StatBar(p.Thirst), p.Thirst)
	fmt.Fprintf(&sb, "😊 Настроение: %s %d\n", common.StatBar(p.Happiness), p.Happiness)
	fmt.Fprintf(&sb, "⚡ Энергия:    %s %d\n", common.StatBar(p.Energy), p.Energy)
	return sb.String()
}

// handlePetAction выполняет действие ухода и обновляет карточку.
func (b *Bot) handlePetAction(ctx context.Context, chatID, userID int64, messageID int, action string) {
	res, err := b.pets.ApplyAction(ctx, userID, action)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrPetNotFound):
			b.editOrSend(chatID, messageID, "У вас пока нет питомца. Заведём?", createPetKeyboard())
		case errors.Is(err, common.ErrUnknownAction):
			log.WithField("action", action).Warn("Неизвестное действие из callback")
		default:
			log.WithError(err).Error("Ошибка действия ухода")
			b.send(chatID, "❌ Не получилось, попробуйте ещё раз")
		}
		return
	}

	text := renderPetCard(res.Pet)
	if res.LeveledUp {
		text += fmt.Sprintf("\n🎉 Новый уровень: %d! Награда уже на балансе.", res.NewLevel)
	}
	b.editOrSend(chatID, messageID, text, petCardKeyboard())
}

// handleCreatePet начинает создание питомца: выбор типа.
// Редкие типы требуют яйца из магазина.
func (b *Bot) handleCreatePet(chatID int64, messageID int) {
	b.editOrSend(chatID, messageID,
		"Кого заведём? Обычный котик бесплатный, для остальных нужно яйцо из магазина.",
		petTypeKeyboard())
}

// handlePetType обрабатывает выбор типа: проверяет яйцо (для не-базовых)
// и просит прислать имя.
func (b *Bot) handlePetType(ctx context.Context, chatID, userID int64, kind string) {
	if _, ok := pet.Types[kind]; !ok {
		return
	}

	if kind != pet.BasicType {
		// Вылупляем яйцо. Нет яйца — отправляем в магазин.
		if _, err := b.inventory.HatchEgg(ctx, userID, kind); err != nil {
			if errors.Is(err, common.ErrEggNotOwned) {
				b.send(chatID, "🥚 Для этого питомца нужно яйцо. Загляните в магазин: кнопка «Магазин яиц» в /start")
				return
			}
			log.WithError(err).Error("Ошибка вылупления яйца")
			b.send(chatID, "❌ Не получилось, попробуйте ещё раз")
			return
		}
	}

	b.sessions.Set(userID, stateAwaitingPetName, kind)
	b.send(chatID, "Как назовём? Пришлите имя (до 20 символов, буквы и цифры):")
}

// handlePetName завершает создание питомца.
func (b *Bot) handlePetName(ctx context.Context, chatID, userID int64, kind, name string) {
	p, err := b.pets.Create(ctx, userID, strings.TrimSpace(name), kind)
	if err != nil {
		if errors.Is(err, common.ErrInvalidPetName) {
			// Состояние не сбрасываем: пусть пришлёт другое имя
			b.sessions.Set(userID, stateAwaitingPetName, kind)
			b.send(chatID, "❌ Такое имя не подойдёт: до 20 символов, только буквы, цифры и пробелы. Попробуйте ещё раз:")
			return
		}
		log.WithError(err).Error("Ошибка создания питомца")
		b.send(chatID, "❌ Не получилось, попробуйте ещё раз")
		return
	}

	info := pet.Types[p.Type]
	b.send(chatID, fmt.Sprintf("%s %s теперь с вами! Посмотрите карточку: /pet", info.Emoji, p.Name))
}

// handleProfile показывает баланс и реферальную ссылку.
func (b *Bot) handleProfile(ctx context.Context, chatID, userID int64, messageID int) {
	u, err := b.users.Get(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка загрузки профиля")
		b.send(chatID, "❌ Не удалось показать профиль. Начните с /start")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 %s\n\n", u.FirstName)
	fmt.Fprintf(&sb, "🪙 %s\n💎 %s\n", common.FormatCoins(u.Coins), common.FormatGems(u.Gems))
	fmt.Fprintf(&sb, "🔥 Серия входов: %s\n", common.PluralizeDays(int64(u.StreakDays)))
	fmt.Fprintf(&sb, "🤝 Приглашено друзей: %d\n\n", u.ReferralCount)
	fmt.Fprintf(&sb, "Ваша ссылка для друзей:\nhttps://t.me/%s?start=ref%d", b.username, userID)

	b.editOrSend(chatID, messageID, sb.String(), backToMainKeyboard())
}

// handleStats показывает статистику пользователя и последние транзакции.
func (b *Bot) handleStats(ctx context.Context, chatID, userID int64, messageID int) {
	u, err := b.users.Get(ctx, userID)
	if err != nil {
		b.send(chatID, "❌ Сначала зарегистрируйтесь: /start")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Ваша статистика\n\n")
	fmt.Fprintf(&sb, "🪙 %s  💎 %s\n", common.FormatCoins(u.Coins), common.FormatGems(u.Gems))
	fmt.Fprintf(&sb, "🔥 Серия входов: %s\n", common.PluralizeDays(int64(u.StreakDays)))
	fmt.Fprintf(&sb, "📅 С нами с %s\n", common.FormatDateTime(u.CreatedAt))

	if p, err := b.pets.Recompute(ctx, userID); err == nil {
		info := pet.Types[p.Type]
		fmt.Fprintf(&sb, "\n%s %s — уровень %d, опыт %d/%d\n",
			info.Emoji, p.Name, p.Level, p.Exp, pet.ExperienceRequired(p.Level))
	}

	if txs, err := b.economy.History(ctx, userID, 5); err == nil && len(txs) > 0 {
		sb.WriteString("\n🧾 Последние операции:\n")
		for _, tx := range txs {
			symbol := "🪙"
			if tx.Currency == "gems" {
				symbol = "💎"
			}
			fmt.Fprintf(&sb, "• %s %d %s\n", tx.Description, tx.Amount, symbol)
		}
	}

	b.editOrSend(chatID, messageID, sb.String(), backToMainKeyboard())
}

// handleSettings — настройки. Пока только справка о том, что настраивается
// через Mini App, и ссылка на него.
func (b *Bot) handleSettings(chatID int64, messageID int) {
	text := "⚙️ Настройки\n\nОформление питомца (фон, аксессуары) настраивается в Mini App."
	if b.cfg.MiniAppURL == "" {
		text += "\nMini App пока не подключён."
	}
	b.editOrSend(chatID, messageID, text, backToMainKeyboard())
}

// handleFeedbackPrompt начинает диалог отзыва.
func (b *Bot) handleFeedbackPrompt(ctx context.Context, chatID, userID int64, username string, args []string) {
	// /feedback с текстом сразу — без диалога
	if len(args) > 0 {
		b.submitFeedback(ctx, chatID, userID, username, strings.Join(args, " "))
		return
	}
	b.sessions.Set(userID, stateAwaitingFeedback, "")
	b.send(chatID, "📬 Напишите, что думаете о боте. Следующее сообщение уйдёт команде:")
}

func (b *Bot) submitFeedback(ctx context.Context, chatID, userID int64, username, text string) {
	if err := b.feedback.Submit(ctx, userID, username, text); err != nil {
		b.send(chatID, "❌ Отзыв не отправлен: "+err.Error())
		return
	}
	b.send(chatID, "💜 Спасибо! Мы читаем все отзывы.")
}

// handleApp присылает кнопку Mini App.
func (b *Bot) handleApp(chatID int64) {
	if b.cfg.MiniAppURL == "" {
		b.send(chatID, "Mini App пока не подключён")
		return
	}
	msg := tgbotapi.NewMessage(chatID, "🎮 Открывайте игру:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.InlineKeyboardButton{
				Text:   "🎮 Открыть игру",
				WebApp: &tgbotapi.WebAppInfo{URL: b.cfg.MiniAppURL},
			},
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки кнопки Mini App")
	}
}

// handleMainMenu возвращает в главное меню.
func (b *Bot) handleMainMenu(chatID int64, messageID int) {
	b.editOrSend(chatID, messageID, "Выберите, чем займёмся:", mainMenuKeyboard(b.cfg.MiniAppURL))
}
