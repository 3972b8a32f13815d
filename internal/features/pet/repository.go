// Package pet — repository.go выполняет все операции с таблицей pets.
package pet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawer.ru/pawer-bot/internal/common"
)

// Repository предоставляет методы для работы с питомцами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий питомцев.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const petColumns = `id, user_id, name, pet_type, level, exp,
	hunger, thirst, happiness, energy, last_update, is_active, created_at`

func scanPet(row pgx.Row) (*Pet, error) {
	var p Pet
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Type, &p.Level, &p.Exp,
		&p.Hunger, &p.Thirst, &p.Happiness, &p.Energy,
		&p.LastUpdate, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrPetNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования питомца: %w", err)
	}
	return &p, nil
}

// GetActive возвращает активного питомца пользователя.
// Если питомца нет — common.ErrPetNotFound (это штатный исход, не сбой).
func (r *Repository) GetActive(ctx context.Context, userID int64) (*Pet, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+petColumns+" FROM pets WHERE user_id = $1 AND is_active = TRUE", userID)
	return scanPet(row)
}

// Create создаёт питомца. Предыдущие питомцы пользователя деактивируются
// в той же транзакции: активный питомец всегда ровно один.
func (r *Repository) Create(ctx context.Context, userID int64, name, petType string) (*Pet, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"UPDATE pets SET is_active = FALSE WHERE user_id = $1", userID,
	); err != nil {
		return nil, fmt.Errorf("ошибка деактивации питомцев: %w", err)
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO pets (user_id, name, pet_type)
		VALUES ($1, $2, $3)
		RETURNING `+petColumns,
		userID, name, petType)
	p, err := scanPet(row)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания питомца: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return p, nil
}

// SaveStats сохраняет пересчитанные статы и отметку последнего пересчёта.
// Намеренно без блокировок: одновременные действия из чата и Mini App
// работают по принципу «последняя запись побеждает».
func (r *Repository) SaveStats(ctx context.Context, petID int64, s Stats, lastUpdate time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE pets
		SET hunger = $2, thirst = $3, happiness = $4, energy = $5, last_update = $6
		WHERE id = $1
	`, petID, s.Hunger, s.Thirst, s.Happiness, s.Energy, lastUpdate)
	if err != nil {
		return fmt.Errorf("ошибка сохранения статов: %w", err)
	}
	return nil
}

// SaveProgress сохраняет уровень и опыт.
func (r *Repository) SaveProgress(ctx context.Context, petID int64, level, exp int) error {
	_, err := r.db.Exec(ctx,
		"UPDATE pets SET level = $2, exp = $3 WHERE id = $1", petID, level, exp)
	if err != nil {
		return fmt.Errorf("ошибка сохранения прогресса: %w", err)
	}
	return nil
}

// ListActive возвращает всех активных питомцев (для напоминаний).
func (r *Repository) ListActive(ctx context.Context) ([]*Pet, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+petColumns+" FROM pets WHERE is_active = TRUE")
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки питомцев: %w", err)
	}
	defer rows.Close()

	var pets []*Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}
