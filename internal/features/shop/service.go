package shop

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/features/economy"
	"pawer.ru/pawer-bot/internal/features/inventory"
)

// Wallet — операции экономики, нужные магазину.
type Wallet interface {
	Credit(ctx context.Context, userID, coins, gems int64, txType, description string) error
	Debit(ctx context.Context, userID, coins, gems int64, txType, description string) error
}

// EggStore — операции инвентаря, нужные магазину.
type EggStore interface {
	GrantEgg(ctx context.Context, userID int64, eggType string) (*inventory.OwnedEgg, error)
}

// Service выполняет покупки.
type Service struct {
	wallet Wallet
	eggs   EggStore
}

func NewService(wallet Wallet, eggs EggStore) *Service {
	return &Service{wallet: wallet, eggs: eggs}
}

// BuyEgg списывает стоимость яйца и кладёт его в инвентарь.
// Если средств не хватает, вернётся common.ErrInsufficientFunds
// и яйцо не появится.
func (s *Service) BuyEgg(ctx context.Context, userID int64, eggType string) (*inventory.OwnedEgg, error) {
	info, ok := inventory.Eggs[eggType]
	if !ok {
		return nil, fmt.Errorf("неизвестное яйцо %q", eggType)
	}

	err := s.wallet.Debit(ctx, userID, info.CostCoins, info.CostGems,
		economy.TxTypeSpend, fmt.Sprintf("Покупка: %s", info.Title))
	if err != nil {
		return nil, err
	}

	egg, err := s.eggs.GrantEgg(ctx, userID, eggType)
	if err != nil {
		// Деньги уже списаны. Возвращаем их, чтобы не оставить
		// пользователя и без валюты, и без яйца.
		if refundErr := s.wallet.Credit(ctx, userID, info.CostCoins, info.CostGems,
			economy.TxTypeReward, "Возврат за несостоявшуюся покупку"); refundErr != nil {
			log.WithError(refundErr).WithField("user_id", userID).
				Error("Не удалось вернуть средства за яйцо")
		}
		return nil, err
	}

	log.WithFields(log.Fields{"user_id": userID, "egg_type": eggType}).Info("Яйцо куплено")
	return egg, nil
}

// CreditPackage начисляет оплаченный пакет валюты. Вызывается из
// обработчика successful_payment, когда Telegram подтвердил оплату.
func (s *Service) CreditPackage(ctx context.Context, userID int64, payload string) (Package, string, error) {
	kind, idx, err := DecodePayload(payload)
	if err != nil {
		return Package{}, "", fmt.Errorf("некорректный payload %q: %w", payload, err)
	}
	pkg, _ := PackageByIndex(kind, idx)

	var coins, gems int64
	switch kind {
	case KindCoins:
		coins = pkg.Amount
	case KindGems:
		gems = pkg.Amount
	}

	err = s.wallet.Credit(ctx, userID, coins, gems,
		economy.TxTypePurchase, fmt.Sprintf("Покупка пакета %s x%d", kind, pkg.Amount))
	if err != nil {
		return Package{}, "", err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"kind":    kind,
		"amount":  pkg.Amount,
	}).Info("Пакет валюты начислен")
	return pkg, kind, nil
}
