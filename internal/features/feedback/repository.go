// Package feedback сохраняет отзывы пользователей и пересылает их
// администраторам.
package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Feedback — отзыв пользователя.
type Feedback struct {
	ID        int64
	UserID    int64
	Username  string
	Text      string
	CreatedAt time.Time
}

// Repository предоставляет методы для работы с отзывами.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Save записывает отзыв.
func (r *Repository) Save(ctx context.Context, userID int64, username, text string) (*Feedback, error) {
	var fb Feedback
	err := r.db.QueryRow(ctx, `
		INSERT INTO feedback (user_id, username, text)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, username, text, created_at
	`, userID, username, text).Scan(&fb.ID, &fb.UserID, &fb.Username, &fb.Text, &fb.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения отзыва: %w", err)
	}
	return &fb, nil
}

// ListRecent возвращает последние отзывы (для админа).
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]*Feedback, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, username, text, created_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки отзывов: %w", err)
	}
	defer rows.Close()

	var out []*Feedback
	for rows.Next() {
		var fb Feedback
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.Username, &fb.Text, &fb.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования отзыва: %w", err)
		}
		out = append(out, &fb)
	}
	return out, rows.Err()
}
