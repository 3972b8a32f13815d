// Package pet — основной модуль игры: питомцы, деградация статов,
// уровни и действия ухода.
// models.go описывает структуры питомца и справочник типов.
package pet

import "time"

// Pet представляет питомца пользователя.
// Все статы — целые в диапазоне [0,100]; уровень монотонно растёт.
type Pet struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Name      string    `db:"name"`
	Type      string    `db:"pet_type"` // basic, rare, legendary
	Level     int       `db:"level"`
	Exp       int       `db:"exp"`
	Hunger    int       `db:"hunger"`
	Thirst    int       `db:"thirst"`
	Happiness int       `db:"happiness"`
	Energy    int       `db:"energy"`
	// LastUpdate — момент последнего пересчёта статов.
	// Деградация считается лениво от этой отметки, фоновых таймеров нет.
	LastUpdate time.Time `db:"last_update"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
}

// Действия ухода за питомцем.
const (
	ActionFeed  = "feed"
	ActionWater = "water"
	ActionPlay  = "play"
	ActionSleep = "sleep"
)

// TypeInfo — описание типа питомца.
type TypeInfo struct {
	Name  string
	Emoji string
}

// Types — справочник типов питомцев. Базовый котик доступен всем,
// остальные открываются покупкой яйца в магазине.
var Types = map[string]TypeInfo{
	"basic":     {Name: "Обычный котик", Emoji: "🐱"},
	"rare":      {Name: "Редкий котик", Emoji: "🦄"},
	"legendary": {Name: "Легендарный", Emoji: "🐉"},
}

// BasicType — тип, не требующий покупки яйца.
const BasicType = "basic"
