// Package shop — handlers.go обрабатывает callback-кнопки магазина
// и платёжные апдейты Telegram (pre_checkout_query, successful_payment).
package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/common"
	"pawer.ru/pawer-bot/internal/config"
	"pawer.ru/pawer-bot/internal/features/inventory"
)

// Способы оплаты в callback-данных pay_<method>_<kind>_<idx>.
const (
	PayStars    = "stars"
	PayYoomoney = "yoomoney"
	PaySBP      = "sbp"
)

// Handler обрабатывает покупки в магазине.
type Handler struct {
	service *Service
	cfg     *config.Config
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт новый обработчик магазина.
func NewHandler(service *Service, cfg *config.Config, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, cfg: cfg, bot: bot}
}

// HandleEggShop показывает витрину яиц.
func (h *Handler) HandleEggShop(chatID int64, messageID int) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, kind := range []string{inventory.EggBasic, inventory.EggRare, inventory.EggLegendary} {
		info := inventory.Eggs[kind]
		var price string
		if info.CostGems > 0 {
			price = fmt.Sprintf("%d 💎", info.CostGems)
		} else {
			price = fmt.Sprintf("%d 🪙", info.CostCoins)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %s — %s", info.Emoji, info.Title, price),
				"egg_"+kind,
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "back_to_main"),
	))

	h.editOrSend(chatID, messageID,
		"🥚 Магазин яиц\n\nИз яйца вылупится питомец. Чем реже яйцо, тем интереснее питомец.",
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// HandleBuyMenu показывает пакеты валюты (kind: coins или gems).
func (h *Handler) HandleBuyMenu(chatID int64, messageID int, kind string) {
	var (
		list   []Package
		title  string
		symbol string
		prefix string
	)
	switch kind {
	case KindCoins:
		list, title, symbol, prefix = CoinPackages, "🪙 Покупка монет", "🪙", "coinpkg_"
	case KindGems:
		list, title, symbol, prefix = GemPackages, "💎 Покупка гемов", "💎", "gempkg_"
	default:
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, pkg := range list {
		label := fmt.Sprintf("%s %d — %d ₽", symbol, pkg.Amount, pkg.PriceRUB)
		if pkg.BonusPct > 0 {
			label += fmt.Sprintf(" (+%d%%)", pkg.BonusPct)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", prefix, i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "back_to_main"),
	))

	h.editOrSend(chatID, messageID, title+"\n\nВыберите пакет:",
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// HandlePackage показывает способы оплаты выбранного пакета.
func (h *Handler) HandlePackage(chatID int64, messageID int, kind string, idx int) {
	pkg, err := PackageByIndex(kind, idx)
	if err != nil {
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	if h.cfg.StarsEnabled {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("⭐ Telegram Stars — %d ⭐", pkg.PriceStars),
				fmt.Sprintf("pay_%s_%s_%d", PayStars, kind, idx),
			),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("💳 ЮMoney — %d ₽", pkg.PriceRUB),
				fmt.Sprintf("pay_%s_%s_%d", PayYoomoney, kind, idx),
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🏦 СБП — %d ₽", pkg.PriceRUB),
				fmt.Sprintf("pay_%s_%s_%d", PaySBP, kind, idx),
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "buy_"+kind),
		),
	)

	h.editOrSend(chatID, messageID,
		fmt.Sprintf("Пакет: %d %s\n\nВыберите способ оплаты:", pkg.Amount, kindWord(kind)),
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// HandlePay запускает оплату выбранным способом.
func (h *Handler) HandlePay(chatID int64, method, kind string, idx int) {
	pkg, err := PackageByIndex(kind, idx)
	if err != nil {
		return
	}

	switch method {
	case PayStars:
		h.sendStarsInvoice(chatID, kind, idx, pkg)
	case PayYoomoney:
		text := fmt.Sprintf(
			"💳 Оплата через ЮMoney\n\nСумма: %d ₽\nКошелёк: %s\nКомментарий: %s\n\nПосле оплаты валюта будет начислена вручную администратором.",
			pkg.PriceRUB, h.cfg.YoomoneyWallet, EncodePayload(kind, idx))
		h.send(chatID, text)
	case PaySBP:
		text := fmt.Sprintf(
			"🏦 Оплата через СБП\n\nСумма: %d ₽\nРеквизиты запросите у администратора командой /feedback.\nКомментарий к переводу: %s",
			pkg.PriceRUB, EncodePayload(kind, idx))
		h.send(chatID, text)
	}
}

// sendStarsInvoice отправляет инвойс в Telegram Stars.
// Для Stars валюта XTR, а provider_token пустой.
func (h *Handler) sendStarsInvoice(chatID int64, kind string, idx int, pkg Package) {
	title := fmt.Sprintf("%d %s", pkg.Amount, kindWord(kind))
	invoice := tgbotapi.NewInvoice(
		chatID,
		title,
		fmt.Sprintf("Пакет «%s» для вашего питомца", title),
		EncodePayload(kind, idx),
		"",    // provider token
		"",    // start parameter
		"XTR", // Telegram Stars
		[]tgbotapi.LabeledPrice{{Label: title, Amount: int(pkg.PriceStars)}},
	)
	invoice.SuggestedTipAmounts = []int{}
	if _, err := h.bot.Send(invoice); err != nil {
		log.WithError(err).Error("Ошибка отправки инвойса")
		h.send(chatID, "❌ Не удалось создать счёт, попробуйте позже")
	}
}

// HandleBuyEgg покупает яйцо за внутреннюю валюту.
func (h *Handler) HandleBuyEgg(ctx context.Context, chatID, userID int64, eggType string) {
	egg, err := h.service.BuyEgg(ctx, userID, eggType)
	if err != nil {
		if errors.Is(err, common.ErrInsufficientFunds) {
			h.send(chatID, "❌ Недостаточно средств. Загляните в магазин валюты: /app")
			return
		}
		log.WithError(err).Error("Ошибка покупки яйца")
		h.send(chatID, "❌ Не удалось купить яйцо")
		return
	}

	info := inventory.Eggs[egg.EggType]
	h.send(chatID, fmt.Sprintf("%s Вы купили «%s»! Оно лежит в инвентаре и ждёт вылупления.",
		info.Emoji, info.Title))
}

// HandlePreCheckout подтверждает pre_checkout_query.
// Telegram требует ответ в течение 10 секунд, иначе платёж отменяется.
func (h *Handler) HandlePreCheckout(query *tgbotapi.PreCheckoutQuery) {
	ok := true
	errMsg := ""
	if _, _, err := DecodePayload(query.InvoicePayload); err != nil {
		ok = false
		errMsg = "Этот товар больше недоступен"
	}

	answer := tgbotapi.PreCheckoutConfig{
		PreCheckoutQueryID: query.ID,
		OK:                 ok,
		ErrorMessage:       errMsg,
	}
	if _, err := h.bot.Request(answer); err != nil {
		log.WithError(err).Error("Ошибка ответа на pre_checkout_query")
	}
}

// HandleSuccessfulPayment начисляет оплаченный пакет.
func (h *Handler) HandleSuccessfulPayment(ctx context.Context, msg *tgbotapi.Message) {
	payment := msg.SuccessfulPayment
	userID := msg.From.ID

	pkg, kind, err := h.service.CreditPackage(ctx, userID, payment.InvoicePayload)
	if err != nil {
		// Деньги уже ушли. Логируем с идентификатором платежа, чтобы
		// администратор мог начислить вручную.
		log.WithError(err).WithFields(log.Fields{
			"user_id":   userID,
			"payload":   payment.InvoicePayload,
			"charge_id": payment.TelegramPaymentChargeID,
		}).Error("Платёж прошёл, но начисление не удалось")
		h.send(msg.Chat.ID, "⚠️ Платёж получен, но начисление задержалось. Напишите в /feedback, мы разберёмся.")
		return
	}

	h.send(msg.Chat.ID, fmt.Sprintf("✅ Оплата прошла! Начислено: %d %s", pkg.Amount, kindWord(kind)))
}

func kindWord(kind string) string {
	if kind == KindGems {
		return "💎"
	}
	return "🪙"
}

func (h *Handler) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}

// editOrSend правит сообщение с кнопками, а если messageID неизвестен
// (команда, не callback) — отправляет новое.
func (h *Handler) editOrSend(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	if messageID == 0 {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = kb
		if _, err := h.bot.Send(msg); err != nil {
			log.WithError(err).Error("Ошибка отправки сообщения")
		}
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	if _, err := h.bot.Send(edit); err != nil {
		log.WithError(err).Error("Ошибка редактирования сообщения")
	}
}

// поддержка разбора callback pay_<method>_<kind>_<idx>
func ParsePayCallback(data string) (method, kind string, idx int, ok bool) {
	parts := strings.Split(data, "_")
	if len(parts) != 4 || parts[0] != "pay" {
		return "", "", 0, false
	}
	n, err := fmt.Sscanf(parts[3], "%d", &idx)
	if err != nil || n != 1 {
		return "", "", 0, false
	}
	return parts[1], parts[2], idx, true
}
