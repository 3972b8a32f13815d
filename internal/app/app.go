// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// бота, HTTP-сервер Mini App и планировщик.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/bot"
	"pawer.ru/pawer-bot/internal/config"
	"pawer.ru/pawer-bot/internal/db/postgres"
	"pawer.ru/pawer-bot/internal/features/admin"
	"pawer.ru/pawer-bot/internal/features/economy"
	"pawer.ru/pawer-bot/internal/features/feedback"
	"pawer.ru/pawer-bot/internal/features/inventory"
	"pawer.ru/pawer-bot/internal/features/pet"
	"pawer.ru/pawer-bot/internal/features/shop"
	"pawer.ru/pawer-bot/internal/features/users"
	"pawer.ru/pawer-bot/internal/jobs"
	"pawer.ru/pawer-bot/internal/telegram"
	"pawer.ru/pawer-bot/internal/web"
	"pawer.ru/pawer-bot/internal/web/handlers"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Web       *web.Server
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}
	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репозитории ===
	userRepo := users.NewRepository(pool)
	petRepo := pet.NewRepository(pool)
	economyRepo := economy.NewRepository(pool)
	inventoryRepo := inventory.NewRepository(pool)
	feedbackRepo := feedback.NewRepository(pool)

	// === 4. Сервисы ===
	economyService := economy.NewService(economyRepo)
	userService := users.NewService(userRepo, economyService, cfg)
	petService := pet.NewService(petRepo, economyService, cfg)
	inventoryService := inventory.NewService(inventoryRepo)
	shopService := shop.NewService(economyService, inventoryService)
	adminService := admin.NewService(cfg, economyService, userService)

	// === 5. Обработчики бота ===
	shopHandler := shop.NewHandler(shopService, cfg, botAPI)

	// Отзывы пересылаются админам через бот, поэтому notify-функция
	// замыкается на botAPI напрямую
	notify := func(chatID int64, text string) {
		if _, err := botAPI.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			log.WithError(err).WithField("chat_id", chatID).Warn("Не удалось доставить уведомление")
		}
	}
	feedbackService := feedback.NewService(feedbackRepo, notify, cfg.AdminIDs)
	adminHandler := admin.NewHandler(adminService, feedbackService, botAPI)

	// === 6. Бот ===
	b := bot.New(botAPI, cfg,
		userService, petService, economyService, inventoryService,
		feedbackService, shopHandler, adminHandler)

	// === 7. HTTP-фасад Mini App ===
	verifier := telegram.NewVerifier(cfg.TelegramBotToken, cfg.InitDataMaxAge)
	tokens := web.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	router := web.NewRouter(cfg,
		handlers.NewAuthHandler(verifier, tokens, userService),
		handlers.NewPetHandler(petService),
		handlers.NewMeHandler(userService, inventoryService),
		verifier, tokens)
	webServer := web.NewServer(cfg.WebAddr(), router)

	// === 8. Планировщик ===
	var scheduler *jobs.Scheduler
	if cfg.FeatureRemindersEnabled {
		scheduler = jobs.NewScheduler(petService, b.SendTo)
	}

	return &App{
		Bot:       b,
		Web:       webServer,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}
