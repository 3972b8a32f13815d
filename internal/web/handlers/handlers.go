// Package handlers содержит JSON-обработчики Mini App API.
package handlers

import (
	"context"

	"pawer.ru/pawer-bot/internal/features/inventory"
	"pawer.ru/pawer-bot/internal/features/pet"
	"pawer.ru/pawer-bot/internal/features/users"
	"pawer.ru/pawer-bot/internal/telegram"
)

// PetService — операции с питомцами, нужные API.
// Реализуется *pet.Service; в тестах подменяется фейком.
type PetService interface {
	Recompute(ctx context.Context, userID int64) (*pet.Pet, error)
	ApplyAction(ctx context.Context, userID int64, action string) (*pet.ActionResult, error)
	Create(ctx context.Context, userID int64, name, petType string) (*pet.Pet, error)
}

// UserService — операции с пользователями, нужные API.
type UserService interface {
	Get(ctx context.Context, userID int64) (*users.User, error)
	EnsureUser(ctx context.Context, userID int64, username, firstName string, referrerID *int64) (bool, error)
}

// InventoryService — снимок инвентаря для профиля.
type InventoryService interface {
	List(ctx context.Context, userID int64) ([]*inventory.Item, error)
	ListEggs(ctx context.Context, userID int64) ([]*inventory.OwnedEgg, error)
}

// InitDataVerifier проверяет initData и возвращает данные пользователя.
type InitDataVerifier interface {
	Verify(initData string) (*telegram.InitData, error)
}

// TokenIssuer выпускает JWT для фронтенда.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// petJSON — представление питомца в API.
type petJSON struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Level     int    `json:"level"`
	Exp       int    `json:"exp"`
	ExpNeeded int    `json:"exp_needed"`
	Hunger    int    `json:"hunger"`
	Thirst    int    `json:"thirst"`
	Happiness int    `json:"happiness"`
	Energy    int    `json:"energy"`
}

func toPetJSON(p *pet.Pet) petJSON {
	return petJSON{
		ID:        p.ID,
		Name:      p.Name,
		Type:      p.Type,
		Level:     p.Level,
		Exp:       p.Exp,
		ExpNeeded: pet.ExperienceRequired(p.Level),
		Hunger:    p.Hunger,
		Thirst:    p.Thirst,
		Happiness: p.Happiness,
		Energy:    p.Energy,
	}
}
