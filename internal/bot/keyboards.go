// Package bot — keyboards.go собирает inline-клавиатуры главного меню
// и карточки питомца.
package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pawer.ru/pawer-bot/internal/features/pet"
)

// mainMenuKeyboard — главное меню бота.
func mainMenuKeyboard(miniAppURL string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🐾 Мой питомец", "pet_card"),
			tgbotapi.NewInlineKeyboardButtonData("👤 Профиль", "profile"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🪙 Купить монеты", "buy_coins"),
			tgbotapi.NewInlineKeyboardButtonData("💎 Купить гемы", "buy_gems"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🥚 Магазин яиц", "shop_eggs"),
			tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", "stats"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Настройки", "settings"),
			tgbotapi.NewInlineKeyboardButtonData("📬 Отзыв", "feedback"),
		),
	}

	// Кнопка Mini App работает только по HTTPS-ссылке
	if miniAppURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.InlineKeyboardButton{
				Text:   "🎮 Открыть игру",
				WebApp: &tgbotapi.WebAppInfo{URL: miniAppURL},
			},
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// petCardKeyboard — кнопки ухода под карточкой питомца.
func petCardKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍖 Покормить", "pet_feed"),
			tgbotapi.NewInlineKeyboardButtonData("💧 Напоить", "pet_water"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎾 Поиграть", "pet_play"),
			tgbotapi.NewInlineKeyboardButtonData("😴 Уложить спать", "pet_sleep"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ В меню", "main_menu"),
		),
	)
}

// petTypeKeyboard — выбор типа питомца при создании.
func petTypeKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, kind := range []string{"basic", "rare", "legendary"} {
		info := pet.Types[kind]
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %s", info.Emoji, info.Name),
				"pettype_"+kind,
			),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// createPetKeyboard — приглашение завести питомца.
func createPetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🥚 Завести питомца", "create_pet"),
		),
	)
}

// backToMainKeyboard — единственная кнопка возврата в меню.
func backToMainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ В меню", "main_menu"),
		),
	)
}
