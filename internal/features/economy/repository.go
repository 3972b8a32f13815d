// Package economy — repository.go выполняет операции с балансами (колонки
// coins/gems таблицы users) и журналом transactions.
package economy

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pawer.ru/pawer-bot/internal/common"
)

// Repository предоставляет методы для работы с валютой и транзакциями.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий экономики.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Adjust атомарно изменяет балансы пользователя на deltaCoins/deltaGems.
// Условие в WHERE не даёт балансу уйти в минус: если средств не хватает,
// строка не обновляется и возвращается ErrInsufficientFunds — балансы
// при этом не меняются вовсе.
func (r *Repository) Adjust(ctx context.Context, userID, deltaCoins, deltaGems int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET coins = coins + $2, gems = gems + $3, updated_at = NOW()
		WHERE user_id = $1 AND coins + $2 >= 0 AND gems + $3 >= 0
	`, userID, deltaCoins, deltaGems)
	if err != nil {
		return fmt.Errorf("ошибка изменения баланса: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Либо пользователя нет, либо не хватает средств
		var exists bool
		if err := r.db.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)", userID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("ошибка проверки пользователя: %w", err)
		}
		if !exists {
			return common.ErrUserNotFound
		}
		return common.ErrInsufficientFunds
	}
	return nil
}

// Balances возвращает текущие балансы пользователя.
func (r *Repository) Balances(ctx context.Context, userID int64) (coins, gems int64, err error) {
	err = r.db.QueryRow(ctx,
		"SELECT coins, gems FROM users WHERE user_id = $1", userID,
	).Scan(&coins, &gems)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка получения баланса: %w", err)
	}
	return coins, gems, nil
}

// Append добавляет запись в журнал транзакций.
// Журнал append-only, запись никогда не обновляется.
func (r *Repository) Append(ctx context.Context, t *Transaction) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO transactions (user_id, type, amount, currency, description)
		VALUES ($1, $2, $3, $4, $5)
	`, t.UserID, t.Type, t.Amount, t.Currency, t.Description)
	if err != nil {
		return fmt.Errorf("ошибка записи транзакции: %w", err)
	}
	return nil
}

// History возвращает последние N транзакций пользователя.
func (r *Repository) History(ctx context.Context, userID int64, limit int) ([]*Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, amount, currency, description, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения транзакций: %w", err)
	}
	defer rows.Close()

	var txs []*Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Currency, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования транзакции: %w", err)
		}
		txs = append(txs, &t)
	}
	return txs, rows.Err()
}
