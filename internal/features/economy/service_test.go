package economy

import (
	"context"
	"errors"
	"testing"

	"pawer.ru/pawer-bot/internal/common"
)

// fakeEconomyStore — баланс одного пользователя в памяти.
type fakeEconomyStore struct {
	coins, gems int64
	journal     []*Transaction
}

func (f *fakeEconomyStore) Adjust(_ context.Context, _ int64, deltaCoins, deltaGems int64) error {
	if f.coins+deltaCoins < 0 || f.gems+deltaGems < 0 {
		return common.ErrInsufficientFunds
	}
	f.coins += deltaCoins
	f.gems += deltaGems
	return nil
}

func (f *fakeEconomyStore) Balances(_ context.Context, _ int64) (int64, int64, error) {
	return f.coins, f.gems, nil
}

func (f *fakeEconomyStore) Append(_ context.Context, t *Transaction) error {
	f.journal = append(f.journal, t)
	return nil
}

func (f *fakeEconomyStore) History(_ context.Context, _ int64, limit int) ([]*Transaction, error) {
	if limit > len(f.journal) {
		limit = len(f.journal)
	}
	return f.journal[:limit], nil
}

func TestCreditWritesJournal(t *testing.T) {
	store := &fakeEconomyStore{}
	svc := NewService(store)

	if err := svc.Credit(context.Background(), 42, 100, 1, TxTypeLevelUpReward, "Награда за уровень 2"); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	if store.coins != 100 || store.gems != 1 {
		t.Errorf("баланс = %d/%d, want 100/1", store.coins, store.gems)
	}
	// По записи на каждую затронутую валюту
	if len(store.journal) != 2 {
		t.Errorf("в журнале %d записей, want 2", len(store.journal))
	}
}

func TestDebitInsufficientLeavesBalanceUnchanged(t *testing.T) {
	store := &fakeEconomyStore{coins: 50, gems: 2}
	svc := NewService(store)

	err := svc.Debit(context.Background(), 42, 100, 0, TxTypeSpend, "Покупка")
	if !errors.Is(err, common.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	if store.coins != 50 || store.gems != 2 {
		t.Errorf("баланс = %d/%d, не должен меняться при отказе", store.coins, store.gems)
	}
	if len(store.journal) != 0 {
		t.Errorf("неудачное списание не должно попадать в журнал")
	}
}

func TestDebitSuccess(t *testing.T) {
	store := &fakeEconomyStore{coins: 500, gems: 25}
	svc := NewService(store)

	if err := svc.Debit(context.Background(), 42, 500, 25, TxTypeSpend, "Покупка яйца"); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if store.coins != 0 || store.gems != 0 {
		t.Errorf("баланс = %d/%d, want 0/0", store.coins, store.gems)
	}
}

func TestAmountValidation(t *testing.T) {
	svc := NewService(&fakeEconomyStore{coins: 100})

	cases := []struct{ coins, gems int64 }{
		{0, 0},
		{-5, 0},
		{0, -1},
	}
	for _, tc := range cases {
		if err := svc.Credit(context.Background(), 42, tc.coins, tc.gems, TxTypeReward, ""); !errors.Is(err, common.ErrInvalidAmount) {
			t.Errorf("Credit(%d,%d): err = %v, want ErrInvalidAmount", tc.coins, tc.gems, err)
		}
		if err := svc.Debit(context.Background(), 42, tc.coins, tc.gems, TxTypeSpend, ""); !errors.Is(err, common.ErrInvalidAmount) {
			t.Errorf("Debit(%d,%d): err = %v, want ErrInvalidAmount", tc.coins, tc.gems, err)
		}
	}
}
