package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/db/postgres"
)

// runMigrations выполняет все SQL-миграции по порядку.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Users},
		{2, migration002Pets},
		{3, migration003Transactions},
		{4, migration004Inventory},
		{5, migration005Feedback},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}
	return nil
}

// SQL-миграции встроены в бинарник для упрощения деплоя.

var migration001Users = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL,
    username VARCHAR(255),
    first_name VARCHAR(255) NOT NULL DEFAULT '',
    coins BIGINT NOT NULL DEFAULT 100 CHECK (coins >= 0),
    gems BIGINT NOT NULL DEFAULT 5 CHECK (gems >= 0),
    streak_days INT NOT NULL DEFAULT 0,
    last_login TIMESTAMPTZ,
    referrer_id BIGINT,
    referral_count INT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_user_id ON users(user_id);
CREATE INDEX IF NOT EXISTS idx_users_referrer ON users(referrer_id);
`

var migration002Pets = `
CREATE TABLE IF NOT EXISTS pets (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    name VARCHAR(64) NOT NULL,
    pet_type VARCHAR(32) NOT NULL DEFAULT 'basic',
    level INT NOT NULL DEFAULT 1,
    exp INT NOT NULL DEFAULT 0,
    hunger INT NOT NULL DEFAULT 100 CHECK (hunger BETWEEN 0 AND 100),
    thirst INT NOT NULL DEFAULT 100 CHECK (thirst BETWEEN 0 AND 100),
    happiness INT NOT NULL DEFAULT 100 CHECK (happiness BETWEEN 0 AND 100),
    energy INT NOT NULL DEFAULT 100 CHECK (energy BETWEEN 0 AND 100),
    last_update TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_pets_user_active ON pets(user_id) WHERE is_active;
`

var migration003Transactions = `
CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    type VARCHAR(32) NOT NULL,
    amount BIGINT NOT NULL CHECK (amount > 0),
    currency VARCHAR(16) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, created_at DESC);
`

var migration004Inventory = `
CREATE TABLE IF NOT EXISTS inventory (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    item_type VARCHAR(64) NOT NULL,
    quantity INT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, item_type)
);

CREATE TABLE IF NOT EXISTS owned_eggs (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    egg_type VARCHAR(32) NOT NULL,
    bought_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_owned_eggs_user ON owned_eggs(user_id);

CREATE TABLE IF NOT EXISTS pet_customization (
    user_id BIGINT PRIMARY KEY,
    background VARCHAR(64) NOT NULL DEFAULT 'default',
    accessory VARCHAR(64) NOT NULL DEFAULT '',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

var migration005Feedback = `
CREATE TABLE IF NOT EXISTS feedback (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    username VARCHAR(255) NOT NULL DEFAULT '',
    text TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_feedback_created ON feedback(created_at DESC);
`
