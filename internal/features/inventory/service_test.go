package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawer.ru/pawer-bot/internal/common"
)

// fakeInvStore — инвентарь в памяти.
type fakeInvStore struct {
	items map[string]int // item_type -> quantity
	eggs  []string
	cust  *Customization
}

func newFakeInvStore() *fakeInvStore {
	return &fakeInvStore{items: map[string]int{}}
}

func (f *fakeInvStore) List(_ context.Context, userID int64) ([]*Item, error) {
	var out []*Item
	for t, q := range f.items {
		if q > 0 {
			out = append(out, &Item{UserID: userID, ItemType: t, Quantity: q})
		}
	}
	return out, nil
}

func (f *fakeInvStore) AddItem(_ context.Context, _ int64, itemType string, quantity int) error {
	f.items[itemType] += quantity
	return nil
}

func (f *fakeInvStore) RemoveItem(_ context.Context, _ int64, itemType string, quantity int) error {
	if f.items[itemType] < quantity {
		return common.ErrNotEnoughItems
	}
	f.items[itemType] -= quantity
	return nil
}

func (f *fakeInvStore) AddEgg(_ context.Context, userID int64, eggType string) (*OwnedEgg, error) {
	f.eggs = append(f.eggs, eggType)
	return &OwnedEgg{ID: int64(len(f.eggs)), UserID: userID, EggType: eggType, BoughtAt: time.Now()}, nil
}

func (f *fakeInvStore) ListEggs(_ context.Context, userID int64) ([]*OwnedEgg, error) {
	var out []*OwnedEgg
	for i, t := range f.eggs {
		out = append(out, &OwnedEgg{ID: int64(i + 1), UserID: userID, EggType: t})
	}
	return out, nil
}

func (f *fakeInvStore) ConsumeEgg(_ context.Context, _ int64, eggType string) error {
	for i, t := range f.eggs {
		if t == eggType {
			f.eggs = append(f.eggs[:i], f.eggs[i+1:]...)
			return nil
		}
	}
	return common.ErrEggNotOwned
}

func (f *fakeInvStore) GetCustomization(_ context.Context, userID int64) (*Customization, error) {
	if f.cust == nil {
		return &Customization{UserID: userID, Background: "default"}, nil
	}
	return f.cust, nil
}

func (f *fakeInvStore) SaveCustomization(_ context.Context, userID int64, background, accessory string) error {
	f.cust = &Customization{UserID: userID, Background: background, Accessory: accessory}
	return nil
}

func TestRemoveItemMoreThanHeld(t *testing.T) {
	store := newFakeInvStore()
	store.items["food"] = 3
	svc := NewService(store)

	err := svc.RemoveItem(context.Background(), 42, "food", 5)
	if !errors.Is(err, common.ErrNotEnoughItems) {
		t.Fatalf("err = %v, want ErrNotEnoughItems", err)
	}
	// Инвентарь не изменился
	if store.items["food"] != 3 {
		t.Errorf("quantity = %d, want 3 (без изменений)", store.items["food"])
	}
}

func TestRemoveItemExact(t *testing.T) {
	store := newFakeInvStore()
	store.items["food"] = 3
	svc := NewService(store)

	if err := svc.RemoveItem(context.Background(), 42, "food", 3); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if store.items["food"] != 0 {
		t.Errorf("quantity = %d, want 0", store.items["food"])
	}
}

func TestAddRemoveValidation(t *testing.T) {
	svc := NewService(newFakeInvStore())

	if err := svc.AddItem(context.Background(), 42, "food", 0); !errors.Is(err, common.ErrInvalidAmount) {
		t.Errorf("AddItem(0): err = %v, want ErrInvalidAmount", err)
	}
	if err := svc.RemoveItem(context.Background(), 42, "food", -1); !errors.Is(err, common.ErrInvalidAmount) {
		t.Errorf("RemoveItem(-1): err = %v, want ErrInvalidAmount", err)
	}
}

func TestHatchEgg(t *testing.T) {
	store := newFakeInvStore()
	svc := NewService(store)

	if _, err := svc.GrantEgg(context.Background(), 42, EggRare); err != nil {
		t.Fatalf("GrantEgg: %v", err)
	}

	petType, err := svc.HatchEgg(context.Background(), 42, EggRare)
	if err != nil {
		t.Fatalf("HatchEgg: %v", err)
	}
	if petType != "rare" {
		t.Errorf("petType = %q, want %q", petType, "rare")
	}

	// Яйцо израсходовано, второй раз не вылупится
	if _, err := svc.HatchEgg(context.Background(), 42, EggRare); !errors.Is(err, common.ErrEggNotOwned) {
		t.Errorf("err = %v, want ErrEggNotOwned", err)
	}
}

func TestHatchUnknownEgg(t *testing.T) {
	svc := NewService(newFakeInvStore())

	if _, err := svc.HatchEgg(context.Background(), 42, "golden"); !errors.Is(err, common.ErrUnknownItem) {
		t.Errorf("err = %v, want ErrUnknownItem", err)
	}
	if _, err := svc.GrantEgg(context.Background(), 42, "golden"); !errors.Is(err, common.ErrUnknownItem) {
		t.Errorf("err = %v, want ErrUnknownItem", err)
	}
}
