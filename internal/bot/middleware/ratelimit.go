package middleware

import (
	"sync"
	"time"
)

// RateLimiter ограничивает частоту действий на пользователя
// по алгоритму скользящего окна. Питомец не убежит, если покормить
// его чуть позже, а вот флуд кнопками — реальная проблема.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[int64][]time.Time
	limit    int
	window   time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[int64][]time.Time),
		limit:    limit,
		window:   window,
		stopCh:   make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Close останавливает фоновую горутину очистки.
// Вызывается на shutdown, иначе cleanup будет жить вечно.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Allow возвращает true, если пользователю можно выполнить ещё одно действие.
func (rl *RateLimiter) Allow(userID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	var recent []time.Time
	for _, t := range rl.requests[userID] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= rl.limit {
		rl.requests[userID] = recent
		return false
	}

	rl.requests[userID] = append(recent, now)
	return true
}

// cleanup раз в 5 минут выбрасывает записи неактивных пользователей,
// иначе map растёт бесконечно.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-rl.window)
			for userID, times := range rl.requests {
				var recent []time.Time
				for _, t := range times {
					if t.After(cutoff) {
						recent = append(recent, t)
					}
				}
				if len(recent) == 0 {
					delete(rl.requests, userID)
				} else {
					rl.requests[userID] = recent
				}
			}
			rl.mu.Unlock()
		}
	}
}
