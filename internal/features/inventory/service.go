package inventory

import (
	"context"

	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/common"
)

// Store — операции хранилища, нужные сервису инвентаря.
type Store interface {
	List(ctx context.Context, userID int64) ([]*Item, error)
	AddItem(ctx context.Context, userID int64, itemType string, quantity int) error
	RemoveItem(ctx context.Context, userID int64, itemType string, quantity int) error
	AddEgg(ctx context.Context, userID int64, eggType string) (*OwnedEgg, error)
	ListEggs(ctx context.Context, userID int64) ([]*OwnedEgg, error)
	ConsumeEgg(ctx context.Context, userID int64, eggType string) error
	GetCustomization(ctx context.Context, userID int64) (*Customization, error)
	SaveCustomization(ctx context.Context, userID int64, background, accessory string) error
}

// Service управляет инвентарём пользователя.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List возвращает предметы пользователя.
func (s *Service) List(ctx context.Context, userID int64) ([]*Item, error) {
	return s.store.List(ctx, userID)
}

// AddItem добавляет предметы. Количество должно быть положительным.
func (s *Service) AddItem(ctx context.Context, userID int64, itemType string, quantity int) error {
	if quantity <= 0 {
		return common.ErrInvalidAmount
	}
	return s.store.AddItem(ctx, userID, itemType, quantity)
}

// RemoveItem списывает предметы. Если их не хватает, возвращает
// common.ErrNotEnoughItems, инвентарь остаётся как был.
func (s *Service) RemoveItem(ctx context.Context, userID int64, itemType string, quantity int) error {
	if quantity <= 0 {
		return common.ErrInvalidAmount
	}
	return s.store.RemoveItem(ctx, userID, itemType, quantity)
}

// GrantEgg записывает пользователю яйцо указанного типа.
func (s *Service) GrantEgg(ctx context.Context, userID int64, eggType string) (*OwnedEgg, error) {
	if _, ok := Eggs[eggType]; !ok {
		return nil, common.ErrUnknownItem
	}
	egg, err := s.store.AddEgg(ctx, userID, eggType)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"user_id": userID, "egg_type": eggType}).Info("Яйцо добавлено")
	return egg, nil
}

// ListEggs возвращает яйца пользователя.
func (s *Service) ListEggs(ctx context.Context, userID int64) ([]*OwnedEgg, error) {
	return s.store.ListEggs(ctx, userID)
}

// HatchEgg расходует одно яйцо и возвращает тип питомца, который вылупился.
// Если яйца нет — common.ErrEggNotOwned.
func (s *Service) HatchEgg(ctx context.Context, userID int64, eggType string) (string, error) {
	info, ok := Eggs[eggType]
	if !ok {
		return "", common.ErrUnknownItem
	}
	if err := s.store.ConsumeEgg(ctx, userID, eggType); err != nil {
		return "", err
	}
	log.WithFields(log.Fields{"user_id": userID, "egg_type": eggType}).Info("Яйцо вылупилось")
	return info.PetType, nil
}

// Customization возвращает оформление питомца.
func (s *Service) Customization(ctx context.Context, userID int64) (*Customization, error) {
	return s.store.GetCustomization(ctx, userID)
}

// SetCustomization сохраняет оформление питомца.
func (s *Service) SetCustomization(ctx context.Context, userID int64, background, accessory string) error {
	return s.store.SaveCustomization(ctx, userID, background, accessory)
}
