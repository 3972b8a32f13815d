// Package inventory — repository.go выполняет операции с таблицами
// inventory, owned_eggs и pet_customization.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pawer.ru/pawer-bot/internal/common"
)

// Repository предоставляет методы для работы с инвентарём.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий инвентаря.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// List возвращает все предметы пользователя с ненулевым количеством.
func (r *Repository) List(ctx context.Context, userID int64) ([]*Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, item_type, quantity, added_at
		FROM inventory
		WHERE user_id = $1 AND quantity > 0
		ORDER BY item_type
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки инвентаря: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.ItemType, &it.Quantity, &it.AddedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования предмета: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// AddItem добавляет quantity предметов. На паре (user_id, item_type)
// уникальный индекс, поэтому upsert с инкрементом.
func (r *Repository) AddItem(ctx context.Context, userID int64, itemType string, quantity int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO inventory (user_id, item_type, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, item_type)
		DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity
	`, userID, itemType, quantity)
	if err != nil {
		return fmt.Errorf("ошибка добавления предмета: %w", err)
	}
	return nil
}

// RemoveItem списывает quantity предметов. Условие quantity >= $3 не даёт
// уйти в минус: если предметов не хватает, ни одна строка не обновится
// и вернётся common.ErrNotEnoughItems. Инвентарь при этом не меняется.
// Строка с нулевым остатком удаляется: нулевых записей в инвентаре не бывает.
func (r *Repository) RemoveItem(ctx context.Context, userID int64, itemType string, quantity int) error {
	var remaining int
	err := r.db.QueryRow(ctx, `
		UPDATE inventory
		SET quantity = quantity - $3
		WHERE user_id = $1 AND item_type = $2 AND quantity >= $3
		RETURNING quantity
	`, userID, itemType, quantity).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrNotEnoughItems
		}
		return fmt.Errorf("ошибка списания предмета: %w", err)
	}

	if remaining == 0 {
		// Условие quantity = 0 защищает от гонки с параллельным AddItem
		if _, err := r.db.Exec(ctx, `
			DELETE FROM inventory
			WHERE user_id = $1 AND item_type = $2 AND quantity = 0
		`, userID, itemType); err != nil {
			return fmt.Errorf("ошибка удаления пустой записи инвентаря: %w", err)
		}
	}
	return nil
}

// AddEgg записывает купленное яйцо.
func (r *Repository) AddEgg(ctx context.Context, userID int64, eggType string) (*OwnedEgg, error) {
	var egg OwnedEgg
	err := r.db.QueryRow(ctx, `
		INSERT INTO owned_eggs (user_id, egg_type)
		VALUES ($1, $2)
		RETURNING id, user_id, egg_type, bought_at
	`, userID, eggType).Scan(&egg.ID, &egg.UserID, &egg.EggType, &egg.BoughtAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка записи яйца: %w", err)
	}
	return &egg, nil
}

// ListEggs возвращает яйца пользователя.
func (r *Repository) ListEggs(ctx context.Context, userID int64) ([]*OwnedEgg, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, egg_type, bought_at
		FROM owned_eggs
		WHERE user_id = $1
		ORDER BY bought_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки яиц: %w", err)
	}
	defer rows.Close()

	var eggs []*OwnedEgg
	for rows.Next() {
		var egg OwnedEgg
		if err := rows.Scan(&egg.ID, &egg.UserID, &egg.EggType, &egg.BoughtAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования яйца: %w", err)
		}
		eggs = append(eggs, &egg)
	}
	return eggs, rows.Err()
}

// ConsumeEgg удаляет одно яйцо указанного типа (при вылуплении).
// Если яйца нет — common.ErrEggNotOwned.
func (r *Repository) ConsumeEgg(ctx context.Context, userID int64, eggType string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM owned_eggs
		WHERE id = (
			SELECT id FROM owned_eggs
			WHERE user_id = $1 AND egg_type = $2
			ORDER BY bought_at
			LIMIT 1
		)
	`, userID, eggType)
	if err != nil {
		return fmt.Errorf("ошибка удаления яйца: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrEggNotOwned
	}
	return nil
}

// GetCustomization возвращает оформление питомца пользователя.
// Если записи нет — дефолтное оформление без ошибки.
func (r *Repository) GetCustomization(ctx context.Context, userID int64) (*Customization, error) {
	var c Customization
	err := r.db.QueryRow(ctx, `
		SELECT user_id, background, accessory, updated_at
		FROM pet_customization
		WHERE user_id = $1
	`, userID).Scan(&c.UserID, &c.Background, &c.Accessory, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &Customization{UserID: userID, Background: "default", Accessory: ""}, nil
		}
		return nil, fmt.Errorf("ошибка выборки кастомизации: %w", err)
	}
	return &c, nil
}

// SaveCustomization сохраняет оформление (upsert).
func (r *Repository) SaveCustomization(ctx context.Context, userID int64, background, accessory string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO pet_customization (user_id, background, accessory, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET background = $2, accessory = $3, updated_at = NOW()
	`, userID, background, accessory)
	if err != nil {
		return fmt.Errorf("ошибка сохранения кастомизации: %w", err)
	}
	return nil
}
