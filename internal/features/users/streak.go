// Package users — streak.go содержит чистую логику серии входов.
// Серия обновляется лениво при /start, без фоновых таймеров.
package users

import "time"

// Календарный день серии считается по московскому времени,
// как и напоминания планировщика.
var streakLocation = loadStreakLocation()

func loadStreakLocation() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

// NextStreak вычисляет новую серию входов.
//
// Правила:
//   - ещё не заходил → серия 1
//   - тот же календарный день → серия не меняется (advanced=false)
//   - следующий день → серия +1
//   - пропуск → серия сбрасывается на 1
func NextStreak(current int, lastLogin *time.Time, now time.Time) (streak int, advanced bool) {
	if lastLogin == nil {
		return 1, true
	}

	last := midnight(lastLogin.In(streakLocation))
	today := midnight(now.In(streakLocation))
	days := int(today.Sub(last).Hours() / 24)

	switch {
	case days <= 0:
		return current, false
	case days == 1:
		return current + 1, true
	default:
		return 1, true
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StreakReward вычисляет награду за день серии.
//
// Таблица наград:
//   каждый день: dailyCoins монет
//   каждый 3-й день: ещё +50 монет
//   каждый 7-й день: +5 гемов
func StreakReward(streak int, dailyCoins int64) (coins, gems int64) {
	coins = dailyCoins
	if streak%7 == 0 {
		gems = 5
	} else if streak%3 == 0 {
		coins += 50
	}
	return coins, gems
}
