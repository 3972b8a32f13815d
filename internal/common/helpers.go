// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: русская плюрализация, форматирование чисел и статус-бары.
package common

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// PluralizeCoins возвращает правильную форму слова «монета» для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → "монета" (1, 21, 31, 101, ...)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → "монеты" (2, 3, 4, 22, ...)
//   - Остальные случаи → "монет" (0, 5-20, 25-30, 100, ...)
func PluralizeCoins(n int64) string {
	return pluralize(n, "монета", "монеты", "монет")
}

// PluralizeGems возвращает правильную форму слова «гем».
func PluralizeGems(n int64) string {
	return pluralize(n, "гем", "гема", "гемов")
}

// PluralizeDays возвращает правильную форму слова «день».
func PluralizeDays(n int64) string {
	return pluralize(n, "день", "дня", "дней")
}

func pluralize(n int64, one, few, many string) string {
	absN := int64(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return one
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return few
	}
	return many
}

// FormatCoins форматирует сумму монет в читабельную строку.
// Пример: FormatCoins(150) → "150 монет"
func FormatCoins(n int64) string {
	return fmt.Sprintf("%d %s", n, PluralizeCoins(n))
}

// FormatGems форматирует количество гемов.
func FormatGems(n int64) string {
	return fmt.Sprintf("%d %s", n, PluralizeGems(n))
}

// StatBar возвращает цветовой индикатор для значения стата 0-100.
// Используется в статусе питомца.
func StatBar(value int) string {
	switch {
	case value >= 80:
		return "🟢"
	case value >= 50:
		return "🟡"
	case value >= 30:
		return "🟠"
	default:
		return "🔴"
	}
}

// ProgressBar рисует полоску прогресса из 10 клеток.
// Пример: ProgressBar(73) → "🟩🟩🟩🟩🟩🟩🟩⬜⬜⬜"
func ProgressBar(value int) string {
	const length = 10
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	filled := value * length / 100

	cell := "🟩"
	if value < 40 {
		cell = "🟥"
	} else if value < 70 {
		cell = "🟨"
	}
	return strings.Repeat(cell, filled) + strings.Repeat("⬜", length-filled)
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04".
// Используется для отображения дат транзакций.
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}
