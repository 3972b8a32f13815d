// Package users — repository.go выполняет все операции с таблицей users.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawer.ru/pawer-bot/internal/common"
)

// Repository предоставляет методы для работы с пользователями.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий пользователей.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const userColumns = `user_id, username, first_name, coins, gems, streak_days,
	last_login, referrer_id, referral_count, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.UserID, &u.Username, &u.FirstName, &u.Coins, &u.Gems, &u.StreakDays,
		&u.LastLogin, &u.ReferrerID, &u.ReferralCount, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
	}
	return &u, nil
}

// GetByID возвращает пользователя по Telegram ID.
// Если пользователя нет — common.ErrUserNotFound.
func (r *Repository) GetByID(ctx context.Context, userID int64) (*User, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE user_id = $1", userID)
	return scanUser(row)
}

// Upsert создаёт пользователя при первом контакте либо обновляет профиль.
// Возвращает true, если пользователь был создан (а не обновлён) —
// это нужно для одноразовой атрибуции реферера.
func (r *Repository) Upsert(ctx context.Context, userID int64, username, firstName string, referrerID *int64) (bool, error) {
	var created bool
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (user_id, username, first_name, referrer_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username, first_name = EXCLUDED.first_name, updated_at = NOW()
		RETURNING (xmax = 0)
	`, userID, username, firstName, referrerID).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("ошибка upsert пользователя: %w", err)
	}
	return created, nil
}

// SaveStreak сохраняет серию входов и отметку последнего входа.
func (r *Repository) SaveStreak(ctx context.Context, userID int64, streak int, lastLogin time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET streak_days = $2, last_login = $3, updated_at = NOW()
		WHERE user_id = $1
	`, userID, streak, lastLogin)
	if err != nil {
		return fmt.Errorf("ошибка сохранения серии входов: %w", err)
	}
	return nil
}

// IncrementReferrals увеличивает счётчик приглашённых у реферера.
func (r *Repository) IncrementReferrals(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET referral_count = referral_count + 1, updated_at = NOW()
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("ошибка обновления счётчика рефералов: %w", err)
	}
	return nil
}

// Count возвращает общее число пользователей (для админ-статистики).
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта пользователей: %w", err)
	}
	return n, nil
}
