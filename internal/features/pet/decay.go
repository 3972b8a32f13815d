// Package pet — decay.go содержит чистую арифметику деградации статов
// и прогрессии уровней. Никаких побочных эффектов: функции этого файла
// можно вызывать для предпросмотра (например, в напоминаниях) без записи в БД.
package pet

import (
	"regexp"
	"time"
	"unicode/utf8"

	"pawer.ru/pawer-bot/internal/common"
)

// DecayRates — скорость деградации каждого стата в очках за час.
type DecayRates struct {
	Hunger    float64
	Thirst    float64
	Happiness float64
	Energy    float64
}

// Stats — снимок четырёх статов питомца.
type Stats struct {
	Hunger    int
	Thirst    int
	Happiness int
	Energy    int
}

// Project вычисляет статы питомца на момент now с учётом деградации
// от p.LastUpdate. Ничего не сохраняет.
//
// Если now раньше LastUpdate (сдвиг часов) — прошедшее время считается нулём.
// Каждый стат после пересчёта остаётся в диапазоне [0,100].
func Project(p *Pet, now time.Time, rates DecayRates) Stats {
	elapsed := now.Sub(p.LastUpdate).Seconds() / 3600
	if elapsed < 0 {
		elapsed = 0
	}

	return Stats{
		Hunger:    decayStat(p.Hunger, rates.Hunger, elapsed),
		Thirst:    decayStat(p.Thirst, rates.Thirst, elapsed),
		Happiness: decayStat(p.Happiness, rates.Happiness, elapsed),
		Energy:    decayStat(p.Energy, rates.Energy, elapsed),
	}
}

func decayStat(value int, rate, hours float64) int {
	v := int(float64(value) - hours*rate)
	return Clamp(v)
}

// Clamp прижимает значение стата к диапазону [0,100].
func Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ExperienceRequired возвращает опыт, нужный для перехода с уровня level
// на следующий. Формула линейная: level * 100.
func ExperienceRequired(level int) int {
	return level * 100
}

// ApplyExperience добавляет amount опыта и прокручивает повышения уровней.
// Цикл обрабатывает мульти-апы за один вызов: добавление a, затем b опыта
// даёт тот же итог, что a+b сразу.
func ApplyExperience(level, exp, amount int) (newLevel, newExp, levelsGained int) {
	newLevel = level
	newExp = exp + amount

	for newExp >= ExperienceRequired(newLevel) {
		newExp -= ExperienceRequired(newLevel)
		newLevel++
		levelsGained++
	}
	return newLevel, newExp, levelsGained
}

// Имя питомца: буквы (русские и латинские), цифры и пробелы.
var petNameRe = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ0-9 ]+$`)

// ValidateName проверяет имя питомца: 1-20 символов из допустимого набора.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 1 || n > 20 {
		return common.ErrInvalidPetName
	}
	if !petNameRe.MatchString(name) {
		return common.ErrInvalidPetName
	}
	return nil
}
