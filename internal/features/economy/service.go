// Package economy — service.go содержит бизнес-логику работы с валютой:
// начисления, списания и история операций.
package economy

import (
	"context"

	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/common"
)

// Store — операции хранилища, нужные сервису экономики.
// Реализуется *Repository; в тестах подменяется фейком.
type Store interface {
	Adjust(ctx context.Context, userID, deltaCoins, deltaGems int64) error
	Balances(ctx context.Context, userID int64) (coins, gems int64, err error)
	Append(ctx context.Context, t *Transaction) error
	History(ctx context.Context, userID int64, limit int) ([]*Transaction, error)
}

// Service управляет валютами бота.
type Service struct {
	store Store
}

// NewService создаёт новый сервис экономики.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Credit начисляет монеты и/или гемы и записывает транзакцию.
func (s *Service) Credit(ctx context.Context, userID, coins, gems int64, txType, description string) error {
	if coins < 0 || gems < 0 || (coins == 0 && gems == 0) {
		return common.ErrInvalidAmount
	}
	if err := s.store.Adjust(ctx, userID, coins, gems); err != nil {
		return err
	}
	s.logTx(ctx, userID, coins, gems, txType, description)

	log.WithFields(log.Fields{
		"user_id": userID,
		"coins":   coins,
		"gems":    gems,
		"type":    txType,
	}).Debug("Начисление выполнено")
	return nil
}

// Debit списывает монеты и/или гемы. Если средств не хватает,
// возвращает ErrInsufficientFunds, балансы не меняются.
func (s *Service) Debit(ctx context.Context, userID, coins, gems int64, txType, description string) error {
	if coins < 0 || gems < 0 || (coins == 0 && gems == 0) {
		return common.ErrInvalidAmount
	}
	if err := s.store.Adjust(ctx, userID, -coins, -gems); err != nil {
		return err
	}
	s.logTx(ctx, userID, coins, gems, txType, description)

	log.WithFields(log.Fields{
		"user_id": userID,
		"coins":   coins,
		"gems":    gems,
		"type":    txType,
	}).Debug("Списание выполнено")
	return nil
}

// Balances возвращает текущие балансы пользователя.
func (s *Service) Balances(ctx context.Context, userID int64) (coins, gems int64, err error) {
	return s.store.Balances(ctx, userID)
}

// History возвращает последние транзакции пользователя.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]*Transaction, error) {
	return s.store.History(ctx, userID, limit)
}

// logTx пишет по одной записи журнала на каждую затронутую валюту.
// Ошибка журнала не отменяет уже применённое изменение баланса —
// только логируется.
func (s *Service) logTx(ctx context.Context, userID, coins, gems int64, txType, description string) {
	if coins != 0 {
		if err := s.store.Append(ctx, &Transaction{
			UserID: userID, Type: txType, Amount: coins,
			Currency: CurrencyCoins, Description: description,
		}); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Не удалось записать транзакцию (coins)")
		}
	}
	if gems != 0 {
		if err := s.store.Append(ctx, &Transaction{
			UserID: userID, Type: txType, Amount: gems,
			Currency: CurrencyGems, Description: description,
		}); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Не удалось записать транзакцию (gems)")
		}
	}
}
