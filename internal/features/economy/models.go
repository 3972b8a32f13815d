// Package economy управляет игровыми валютами (монеты и гемы).
// models.go описывает журнал транзакций.
package economy

import "time"

// Transaction представляет одну операцию с валютой.
// Журнал append-only: записи никогда не изменяются после вставки.
type Transaction struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Type        string    `db:"type"`        // purchase, reward, referral_bonus, ...
	Amount      int64     `db:"amount"`      // всегда положительная
	Currency    string    `db:"currency"`    // coins, gems, stars
	Description string    `db:"description"` // описание для отображения
	CreatedAt   time.Time `db:"created_at"`
}

// Допустимые типы транзакций
const (
	TxTypePurchase       = "purchase"        // покупка за реальные деньги / Stars
	TxTypeReward         = "reward"          // внутриигровая награда
	TxTypeReferralBonus  = "referral_bonus"  // бонус за приглашённого друга
	TxTypeLevelUpReward  = "levelup_reward"  // награда за новый уровень питомца
	TxTypeStreakBonus    = "streak_bonus"    // бонус за серию входов
	TxTypeSpend          = "spend"           // трата в магазине
	TxTypeAdminGive      = "admin_give"      // выдача админом
)

// Валюты
const (
	CurrencyCoins = "coins"
	CurrencyGems  = "gems"
	CurrencyStars = "stars"
)
