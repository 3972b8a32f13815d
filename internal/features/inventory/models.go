// Package inventory отвечает за предметы, яйца и кастомизацию питомцев.
package inventory

import "time"

// Item — запись инвентаря: сколько предметов item_type у пользователя.
type Item struct {
	ID       int64
	UserID   int64
	ItemType string
	Quantity int
	AddedAt  time.Time
}

// OwnedEgg — купленное, но ещё не вылупленное яйцо.
type OwnedEgg struct {
	ID       int64
	UserID   int64
	EggType  string
	BoughtAt time.Time
}

// Customization — сохранённое оформление питомца.
type Customization struct {
	UserID     int64
	Background string
	Accessory  string
	UpdatedAt  time.Time
}

// Типы яиц и какой питомец из них вылупляется.
const (
	EggBasic     = "basic"
	EggRare      = "rare"
	EggLegendary = "legendary"
)

// EggInfo описывает яйцо в магазине.
type EggInfo struct {
	Emoji     string
	Title     string
	PetType   string
	CostCoins int64
	CostGems  int64
}

// Eggs — каталог яиц. Ключ — тип яйца.
var Eggs = map[string]EggInfo{
	EggBasic:     {Emoji: "🥚", Title: "Обычное яйцо", PetType: "basic", CostCoins: 500, CostGems: 0},
	EggRare:      {Emoji: "🪺", Title: "Редкое яйцо", PetType: "rare", CostCoins: 0, CostGems: 25},
	EggLegendary: {Emoji: "🔮", Title: "Легендарное яйцо", PetType: "legendary", CostCoins: 0, CostGems: 100},
}
