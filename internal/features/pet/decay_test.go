package pet

import (
	"testing"
	"time"
)

var testRates = DecayRates{Hunger: 5, Thirst: 7, Happiness: 3, Energy: 2}

func newTestPet(lastUpdate time.Time) *Pet {
	return &Pet{
		ID: 1, UserID: 42, Name: "Барсик", Type: BasicType,
		Level: 1, Exp: 0,
		Hunger: 100, Thirst: 100, Happiness: 100, Energy: 100,
		LastUpdate: lastUpdate,
	}
}

func TestProjectFourHoursScenario(t *testing.T) {
	now := time.Date(2025, 6, 1, 16, 0, 0, 0, time.UTC)
	p := newTestPet(now.Add(-4 * time.Hour))

	got := Project(p, now, testRates)

	if got.Hunger != 80 {
		t.Errorf("hunger = %d, want 80", got.Hunger)
	}
	if got.Thirst != 72 {
		t.Errorf("thirst = %d, want 72", got.Thirst)
	}
	if got.Happiness != 88 {
		t.Errorf("happiness = %d, want 88", got.Happiness)
	}
	if got.Energy != 92 {
		t.Errorf("energy = %d, want 92", got.Energy)
	}
}

func TestProjectNeverLeavesRange(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		start   int
		elapsed time.Duration
	}{
		{"сутки простоя", 100, 24 * time.Hour},
		{"неделя простоя", 100, 7 * 24 * time.Hour},
		{"ноль на старте", 0, 10 * time.Hour},
		{"низкий стат", 3, 2 * time.Hour},
		{"нулевое время", 50, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPet(now.Add(-tc.elapsed))
			p.Hunger, p.Thirst, p.Happiness, p.Energy = tc.start, tc.start, tc.start, tc.start

			got := Project(p, now, testRates)
			for _, v := range []int{got.Hunger, got.Thirst, got.Happiness, got.Energy} {
				if v < 0 || v > 100 {
					t.Fatalf("стат %d вне диапазона [0,100]", v)
				}
			}
		})
	}
}

func TestProjectMonotonicallyNonIncreasing(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := newTestPet(now)

	prev := Stats{Hunger: 101, Thirst: 101, Happiness: 101, Energy: 101}
	for h := 0; h <= 48; h++ {
		got := Project(p, now.Add(time.Duration(h)*time.Hour), testRates)
		if got.Hunger > prev.Hunger || got.Thirst > prev.Thirst ||
			got.Happiness > prev.Happiness || got.Energy > prev.Energy {
			t.Fatalf("статы выросли при увеличении времени: %+v -> %+v (h=%d)", prev, got, h)
		}
		prev = got
	}
}

func TestProjectClockSkewTreatedAsZero(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// last_update в будущем относительно now
	p := newTestPet(now.Add(2 * time.Hour))
	p.Hunger = 60

	got := Project(p, now, testRates)
	if got.Hunger != 60 {
		t.Errorf("при сдвиге часов hunger = %d, want 60 (без изменений)", got.Hunger)
	}
}

func TestApplyExperienceLinearScenario(t *testing.T) {
	// Уровень 1, нужно 100 опыта; 250 опыта -> уровень 3, остаток 50
	level, exp, gained := ApplyExperience(1, 0, 250)

	if level != 3 {
		t.Errorf("level = %d, want 3", level)
	}
	if exp != 50 {
		t.Errorf("exp = %d, want 50", exp)
	}
	if gained != 2 {
		t.Errorf("levelsGained = %d, want 2", gained)
	}
}

func TestApplyExperienceAssociative(t *testing.T) {
	cases := []struct{ a, b int }{
		{0, 0}, {50, 50}, {100, 150}, {99, 1}, {250, 250}, {1000, 1}, {1, 1000},
	}
	for _, tc := range cases {
		l1, e1, g1 := ApplyExperience(1, 0, tc.a)
		l1, e1, g1b := ApplyExperience(l1, e1, tc.b)
		g1 += g1b

		l2, e2, g2 := ApplyExperience(1, 0, tc.a+tc.b)

		if l1 != l2 || e1 != e2 || g1 != g2 {
			t.Errorf("a=%d b=%d: по частям (%d,%d,%d) != разом (%d,%d,%d)",
				tc.a, tc.b, l1, e1, g1, l2, e2, g2)
		}
	}
}

func TestExperienceRequired(t *testing.T) {
	for level, want := range map[int]int{1: 100, 2: 200, 5: 500, 10: 1000} {
		if got := ExperienceRequired(level); got != want {
			t.Errorf("ExperienceRequired(%d) = %d, want %d", level, got, want)
		}
	}
}

func TestValidateName(t *testing.T) {
	valid := []string{"Барсик", "Rex", "Кот 2000", "a", "Мой лучший друг"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "имя_с_подчёркиванием", "<script>", "слишком длинное имя питомца тут", "🐱"}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q) = nil, want error", name)
		}
	}
}
