package inventory

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pawer.ru/pawer-bot/internal/common"
)

// testPool подключается к БД из TEST_DATABASE_URL и готовит таблицу
// инвентаря. Без переменной тест пропускается.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан, пропускаем тест с БД")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("подключение к тестовой БД: %v", err)
	}
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS inventory (
		    id BIGSERIAL PRIMARY KEY,
		    user_id BIGINT NOT NULL,
		    item_type VARCHAR(64) NOT NULL,
		    quantity INT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		    added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		    UNIQUE (user_id, item_type)
		)
	`)
	if err != nil {
		t.Fatalf("подготовка таблицы inventory: %v", err)
	}
	return pool
}

func TestRemoveItemDeletesZeroRow(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	const userID = int64(900042)
	t.Cleanup(func() {
		pool.Exec(ctx, `DELETE FROM inventory WHERE user_id = $1`, userID)
	})

	if err := repo.AddItem(ctx, userID, "food", 3); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := repo.RemoveItem(ctx, userID, "food", 3); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	// Запись с нулевым остатком должна исчезнуть, а не остаться с quantity=0
	var count int
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM inventory WHERE user_id = $1 AND item_type = 'food'
	`, userID).Scan(&count)
	if err != nil {
		t.Fatalf("проверка строки: %v", err)
	}
	if count != 0 {
		t.Errorf("после списания до нуля осталось строк: %d, want 0", count)
	}
}

func TestRemoveItemInsufficientKeepsRow(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	const userID = int64(900043)
	t.Cleanup(func() {
		pool.Exec(ctx, `DELETE FROM inventory WHERE user_id = $1`, userID)
	})

	if err := repo.AddItem(ctx, userID, "toy", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	err := repo.RemoveItem(ctx, userID, "toy", 5)
	if !errors.Is(err, common.ErrNotEnoughItems) {
		t.Fatalf("err = %v, want ErrNotEnoughItems", err)
	}

	var quantity int
	err = pool.QueryRow(ctx, `
		SELECT quantity FROM inventory WHERE user_id = $1 AND item_type = 'toy'
	`, userID).Scan(&quantity)
	if err != nil {
		t.Fatalf("проверка строки: %v", err)
	}
	if quantity != 2 {
		t.Errorf("quantity = %d, want 2 (неудачное списание не меняет инвентарь)", quantity)
	}
}
