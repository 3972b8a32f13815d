// Package users управляет пользователями бота: регистрация при первом
// контакте, серия входов, рефералы.
// models.go описывает структуру пользователя.
package users

import "time"

// User представляет пользователя бота.
// user_id — это Telegram ID, он же первичный ключ.
type User struct {
	UserID        int64      `db:"user_id"`
	Username      string     `db:"username"`
	FirstName     string     `db:"first_name"`
	Coins         int64      `db:"coins"` // игровая валюта, старт 100
	Gems          int64      `db:"gems"`  // донатная валюта, старт 5
	StreakDays    int        `db:"streak_days"`
	LastLogin     *time.Time `db:"last_login"`
	ReferrerID    *int64     `db:"referrer_id"` // кто пригласил (слабая ссылка)
	ReferralCount int        `db:"referral_count"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}
