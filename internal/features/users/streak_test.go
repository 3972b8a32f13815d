package users

import (
	"testing"
	"time"
)

func TestNextStreak(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	today := now.Add(-2 * time.Hour)
	threeDaysAgo := now.AddDate(0, 0, -3)

	cases := []struct {
		name         string
		current      int
		lastLogin    *time.Time
		wantStreak   int
		wantAdvanced bool
	}{
		{"первый вход", 0, nil, 1, true},
		{"сегодня уже заходил", 5, &today, 5, false},
		{"вчера заходил", 5, &yesterday, 6, true},
		{"пропустил дни", 5, &threeDaysAgo, 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			streak, advanced := NextStreak(tc.current, tc.lastLogin, now)
			if streak != tc.wantStreak || advanced != tc.wantAdvanced {
				t.Errorf("NextStreak = (%d, %v), want (%d, %v)",
					streak, advanced, tc.wantStreak, tc.wantAdvanced)
			}
		})
	}
}

func TestNextStreakMoscowMidnight(t *testing.T) {
	// 23:30 МСК = 20:30 UTC; вход через час — уже следующий
	// календарный день по Москве, хотя UTC-сутки те же
	last := time.Date(2025, 6, 9, 20, 30, 0, 0, time.UTC)
	now := time.Date(2025, 6, 9, 21, 30, 0, 0, time.UTC)

	streak, advanced := NextStreak(5, &last, now)
	if streak != 6 || !advanced {
		t.Errorf("NextStreak = (%d, %v), want (6, true)", streak, advanced)
	}
}

func TestStreakReward(t *testing.T) {
	const daily = 100

	cases := []struct {
		streak    int
		wantCoins int64
		wantGems  int64
	}{
		{1, 100, 0},
		{2, 100, 0},
		{3, 150, 0},  // каждый третий день +50 монет
		{6, 150, 0},
		{7, 100, 5},  // каждый седьмой день +5 гемов
		{14, 100, 5},
		{21, 100, 5}, // 21 делится и на 3, и на 7 — гемы приоритетнее
	}

	for _, tc := range cases {
		coins, gems := StreakReward(tc.streak, daily)
		if coins != tc.wantCoins || gems != tc.wantGems {
			t.Errorf("StreakReward(%d) = (%d, %d), want (%d, %d)",
				tc.streak, coins, gems, tc.wantCoins, tc.wantGems)
		}
	}
}
