package admin

import "time"

// Session — админ-сессия после успешного /login. Живёт в памяти:
// после рестарта бота администраторы логинятся заново.
type Session struct {
	UserID    int64
	ExpiresAt time.Time
}

// Состояния диалога администратора.
const (
	StateAwaitingPassword = "awaiting_password"
	StateAwaitingGive     = "awaiting_give" // ждём "user_id coins gems"
)

// State — текущее состояние пошагового диалога администратора.
type State struct {
	Name      string
	ExpiresAt time.Time
}
