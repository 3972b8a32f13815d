// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры,
// godotenv подхватывает локальный .env при разработке.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Telegram ---
	TelegramBotToken string  `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	AdminIDsRaw      string  `envconfig:"ADMIN_IDS" default:""`
	AdminIDs         []int64 `envconfig:"-"` // заполняем вручную из AdminIDsRaw

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт "postgres" (имя сервиса в docker-compose), для локалки DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"pawer"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"pawer_bot"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`

	// --- Web (Mini App) ---
	WebHost    string        `envconfig:"WEB_HOST" default:"0.0.0.0"`
	WebPort    int           `envconfig:"WEB_PORT" default:"8000"`
	BaseURL    string        `envconfig:"BASE_URL" default:""`
	MiniAppURL string        `envconfig:"MINI_APP_URL" default:""`
	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL     time.Duration `envconfig:"JWT_TTL" default:"24h"`
	// Максимальный возраст auth_date в initData; 0 отключает проверку
	InitDataMaxAge time.Duration `envconfig:"INITDATA_MAX_AGE" default:"24h"`

	// --- Payments ---
	StarsEnabled   bool   `envconfig:"STARS_ENABLED" default:"true"`
	YoomoneyToken  string `envconfig:"YOOMONEY_TOKEN" default:""`
	YoomoneyWallet string `envconfig:"YOOMONEY_WALLET" default:""`

	// --- Bot runtime ---
	// Сколько апдейтов обрабатываем параллельно. Иначе "go на каждый апдейт"
	// = утечка памяти при флуде.
	BotMaxInflight          int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Admin ---
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" default:""`

	// --- Питомец: скорость деградации статов (очков в час) ---
	HungerDecayRate    float64 `envconfig:"HUNGER_DECAY_RATE" default:"5"`
	ThirstDecayRate    float64 `envconfig:"THIRST_DECAY_RATE" default:"7"`
	HappinessDecayRate float64 `envconfig:"HAPPINESS_DECAY_RATE" default:"3"`
	EnergyDecayRate    float64 `envconfig:"ENERGY_DECAY_RATE" default:"2"`

	// --- Питомец: бонусы действий ---
	FeedValue  int `envconfig:"FEED_VALUE" default:"25"`
	WaterValue int `envconfig:"WATER_VALUE" default:"30"`
	PlayValue  int `envconfig:"PLAY_VALUE" default:"20"`
	SleepValue int `envconfig:"SLEEP_VALUE" default:"30"`

	// --- Награды ---
	ReferralRewardCoins int64 `envconfig:"REFERRAL_REWARD_COINS" default:"100"`
	ReferralRewardGems  int64 `envconfig:"REFERRAL_REWARD_GEMS" default:"5"`
	LevelUpCoins        int64 `envconfig:"LEVEL_UP_COINS" default:"100"`
	LevelUpGems         int64 `envconfig:"LEVEL_UP_GEMS" default:"1"`
	DailyLoginCoins     int64 `envconfig:"DAILY_LOGIN_COINS" default:"100"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// --- Feature Flags ---
	FeatureShopEnabled      bool `envconfig:"FEATURE_SHOP_ENABLED" default:"true"`
	FeatureRemindersEnabled bool `envconfig:"FEATURE_REMINDERS_ENABLED" default:"true"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// WebAddr возвращает адрес, на котором слушает HTTP-сервер Mini App.
func (c *Config) WebAddr() string {
	return fmt.Sprintf("%s:%d", c.WebHost, c.WebPort)
}

// IsAdmin проверяет, входит ли userID в список ADMIN_IDS.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (c *Config) Validate() error {
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT должен быть > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS должен быть > 0")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.HungerDecayRate < 0 || c.ThirstDecayRate < 0 || c.HappinessDecayRate < 0 || c.EnergyDecayRate < 0 {
		return fmt.Errorf("скорость деградации статов не может быть отрицательной")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	// .env необязателен — в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	ids, err := parseInt64CSV(cfg.AdminIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS parse: %w", err)
	}
	cfg.AdminIDs = ids

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInt64CSV(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int64 %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
