package app

import (
	"strings"
	"testing"
)

// Стартовый баланс нового пользователя задаётся дефолтами колонок:
// Upsert в users.Repository их не перечисляет.
func TestUsersMigrationStartingBalances(t *testing.T) {
	if !strings.Contains(migration001Users, "coins BIGINT NOT NULL DEFAULT 100") {
		t.Error("новый пользователь должен стартовать со 100 монетами")
	}
	if !strings.Contains(migration001Users, "gems BIGINT NOT NULL DEFAULT 5") {
		t.Error("новый пользователь должен стартовать с 5 гемами")
	}
}
