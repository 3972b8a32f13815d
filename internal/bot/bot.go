// Package bot содержит polling-цикл и маршрутизацию апдейтов:
// команды, inline-кнопки и платёжные события.
package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/bot/middleware"
	"pawer.ru/pawer-bot/internal/config"
	"pawer.ru/pawer-bot/internal/features/admin"
	"pawer.ru/pawer-bot/internal/features/economy"
	"pawer.ru/pawer-bot/internal/features/feedback"
	"pawer.ru/pawer-bot/internal/features/inventory"
	"pawer.ru/pawer-bot/internal/features/pet"
	"pawer.ru/pawer-bot/internal/features/shop"
	"pawer.ru/pawer-bot/internal/features/users"
)

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      *config.Config
	username string // username бота, для /pet@PawerBot и реферальных ссылок

	users     *users.Service
	pets      *pet.Service
	economy   *economy.Service
	inventory *inventory.Service
	feedback  *feedback.Service

	shopHandler  *shop.Handler
	adminHandler *admin.Handler

	sessions    *Sessions
	parser      *CommandParser
	rateLimiter *middleware.RateLimiter

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	userService *users.Service,
	petService *pet.Service,
	economyService *economy.Service,
	inventoryService *inventory.Service,
	feedbackService *feedback.Service,
	shopHandler *shop.Handler,
	adminHandler *admin.Handler,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:          api,
		cfg:          cfg,
		username:     api.Self.UserName,
		users:        userService,
		pets:         petService,
		economy:      economyService,
		inventory:    inventoryService,
		feedback:     feedbackService,
		shopHandler:  shopHandler,
		adminHandler: adminHandler,
		sessions:     NewSessions(),
		parser:       NewCommandParser(api.Self.UserName),
		rateLimiter:  middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		inflight:     make(chan struct{}, maxInFlight),
	}
}

// SendTo отправляет сообщение по chat_id. Используется планировщиком
// напоминаний и сервисом отзывов.
func (b *Bot) SendTo(chatID int64, text string) {
	b.send(chatID, text)
}

// Start запускает polling обновлений от Telegram. Блокирует до отмены ctx.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"username":     b.username,
		"max_inflight": cap(b.inflight),
	}).Info("Бот запущен и ожидает апдейты")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)")
			b.api.StopReceivingUpdates()
			b.rateLimiter.Close()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				b.rateLimiter.Close()
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	middleware.LogUpdate(update)

	switch {
	case update.PreCheckoutQuery != nil:
		// Ответ нужен в течение 10 секунд, без rate limit
		b.shopHandler.HandlePreCheckout(update.PreCheckoutQuery)

	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)

	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.SuccessfulPayment != nil {
		b.shopHandler.HandleSuccessfulPayment(ctx, msg)
		return
	}
	if msg.Text == "" {
		return
	}

	if !b.rateLimiter.Allow(userID) {
		log.WithField("user_id", userID).Debug("rate limited")
		return
	}

	// Регистрация при любом контакте; реферала обрабатывает /start
	if _, err := b.users.EnsureUser(ctx, userID, msg.From.UserName, msg.From.FirstName, nil); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("EnsureUser failed")
	}

	// Пошаговые диалоги админки (пароль, начисление) — только в личке
	if msg.Chat.IsPrivate() && b.adminHandler.HandleText(ctx, chatID, userID, msg.Text) {
		return
	}

	// Пошаговые диалоги пользователя (имя питомца, отзыв)
	if st := b.sessions.Get(userID); st != nil && !strings.HasPrefix(msg.Text, "/") {
		b.sessions.Clear(userID)
		switch st.Name {
		case stateAwaitingPetName:
			b.handlePetName(ctx, chatID, userID, st.Data, msg.Text)
		case stateAwaitingFeedback:
			b.submitFeedback(ctx, chatID, userID, msg.From.UserName, msg.Text)
		}
		return
	}

	cmd, args, isCommand := b.parser.ParseCommand(msg.Text)
	if !isCommand {
		return
	}
	b.routeCommand(ctx, msg, cmd, args)
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, msg *tgbotapi.Message, cmd string, args []string) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	switch cmd {
	case "start":
		b.handleStart(ctx, msg, args)

	case "help":
		b.handleHelp(chatID)

	case "pet":
		b.handlePetCard(ctx, chatID, userID, 0)

	case "stats":
		b.handleStats(ctx, chatID, userID, 0)

	case "settings":
		b.handleSettings(chatID, 0)

	case "app":
		b.handleApp(chatID)

	case "feedback":
		b.handleFeedbackPrompt(ctx, chatID, userID, msg.From.UserName, args)

	case "login":
		b.adminHandler.HandleLogin(chatID, userID, msg.Chat.IsPrivate())

	case "give":
		if msg.Chat.IsPrivate() {
			b.adminHandler.HandleGiveCommand(chatID, userID)
		}

	case "admstats":
		if msg.Chat.IsPrivate() {
			b.adminHandler.HandleStats(ctx, chatID, userID)
		}

	case "logout":
		if msg.Chat.IsPrivate() {
			b.adminHandler.HandleLogout(chatID, userID)
		}
	}
}

// handleCallback маршрутизирует нажатия inline-кнопок.
func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.From == nil {
		return
	}
	userID := cb.From.ID

	// Сначала убираем «часики» на кнопке
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.WithError(err).Debug("Ошибка ответа на callback")
	}

	if !b.rateLimiter.Allow(userID) {
		return
	}

	var chatID int64
	var messageID int
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
		messageID = cb.Message.MessageID
	} else {
		chatID = userID
	}

	data := cb.Data
	switch {
	case data == "main_menu" || data == "back_to_main":
		b.handleMainMenu(chatID, messageID)

	case data == "pet_card":
		b.handlePetCard(ctx, chatID, userID, messageID)

	case data == "create_pet":
		b.handleCreatePet(chatID, messageID)

	case strings.HasPrefix(data, "pettype_"):
		b.handlePetType(ctx, chatID, userID, strings.TrimPrefix(data, "pettype_"))

	case data == "pet_feed":
		b.handlePetAction(ctx, chatID, userID, messageID, pet.ActionFeed)
	case data == "pet_water":
		b.handlePetAction(ctx, chatID, userID, messageID, pet.ActionWater)
	case data == "pet_play":
		b.handlePetAction(ctx, chatID, userID, messageID, pet.ActionPlay)
	case data == "pet_sleep":
		b.handlePetAction(ctx, chatID, userID, messageID, pet.ActionSleep)

	case data == "profile":
		b.handleProfile(ctx, chatID, userID, messageID)

	case data == "stats":
		b.handleStats(ctx, chatID, userID, messageID)

	case data == "settings":
		b.handleSettings(chatID, messageID)

	case data == "feedback":
		b.handleFeedbackPrompt(ctx, chatID, userID, cb.From.UserName, nil)

	case data == "shop_eggs":
		if b.cfg.FeatureShopEnabled {
			b.shopHandler.HandleEggShop(chatID, messageID)
		} else {
			b.send(chatID, "🛒 Магазин временно закрыт")
		}

	case data == "buy_coins":
		if b.cfg.FeatureShopEnabled {
			b.shopHandler.HandleBuyMenu(chatID, messageID, shop.KindCoins)
		}
	case data == "buy_gems":
		if b.cfg.FeatureShopEnabled {
			b.shopHandler.HandleBuyMenu(chatID, messageID, shop.KindGems)
		}

	case strings.HasPrefix(data, "egg_"):
		b.shopHandler.HandleBuyEgg(ctx, chatID, userID, strings.TrimPrefix(data, "egg_"))

	case strings.HasPrefix(data, "coinpkg_"):
		if idx, err := strconv.Atoi(strings.TrimPrefix(data, "coinpkg_")); err == nil {
			b.shopHandler.HandlePackage(chatID, messageID, shop.KindCoins, idx)
		}
	case strings.HasPrefix(data, "gempkg_"):
		if idx, err := strconv.Atoi(strings.TrimPrefix(data, "gempkg_")); err == nil {
			b.shopHandler.HandlePackage(chatID, messageID, shop.KindGems, idx)
		}

	case strings.HasPrefix(data, "pay_"):
		if method, kind, idx, ok := shop.ParsePayCallback(data); ok {
			b.shopHandler.HandlePay(chatID, method, kind, idx)
		}
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// editOrSend правит существующее сообщение (для кнопок), а при
// messageID == 0 отправляет новое (для команд).
func (b *Bot) editOrSend(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	if messageID == 0 {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = kb
		if _, err := b.api.Send(msg); err != nil {
			log.WithError(err).Error("Ошибка отправки сообщения")
		}
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	if _, err := b.api.Send(edit); err != nil {
		log.WithError(err).Error("Ошибка редактирования сообщения")
	}
}
