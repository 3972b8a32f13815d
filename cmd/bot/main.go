// Package main — точка входа.
// Загружает конфигурацию, инициализирует приложение и запускает бота,
// HTTP-сервер Mini App и планировщик. Graceful shutdown по SIGINT/SIGTERM.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/app"
	"pawer.ru/pawer-bot/internal/config"
)

func main() {
	setupLogging()

	log.Info("=== Pawer запускается ===")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Не удалось загрузить конфигурацию")
	}

	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Не удалось инициализировать приложение")
	}
	defer application.DB.Close()

	if application.Scheduler != nil {
		application.Scheduler.Start(ctx)
		defer application.Scheduler.Stop()
	}

	// Бот и HTTP-сервер в отдельных горутинах
	go application.Bot.Start(ctx)
	go func() {
		if err := application.Web.Run(); err != nil {
			log.WithError(err).Error("HTTP-сервер упал")
			cancel()
		}
	}()

	log.Info("=== Pawer готов к работе ===")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Infof("Получен сигнал %s, останавливаемся...", sig)
	case <-ctx.Done():
	}
	cancel()

	// Даём HTTP-серверу время дослужить запросы
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := application.Web.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP-сервер остановлен с ошибкой")
	}

	log.Info("=== Pawer остановлен ===")
}

// setupLogging настраивает формат логов.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}
