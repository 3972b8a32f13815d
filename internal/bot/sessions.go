package bot

import (
	"sync"
	"time"
)

// Состояния пользовательских диалогов.
const (
	stateAwaitingPetName  = "awaiting_pet_name"
	stateAwaitingFeedback = "awaiting_feedback"
)

const sessionStateTTL = 5 * time.Minute

type dialogState struct {
	Name      string
	Data      string // для awaiting_pet_name здесь тип питомца
	ExpiresAt time.Time
}

// Sessions хранит состояния пошаговых диалогов пользователей в памяти.
// После рестарта бота диалоги просто начинаются заново.
type Sessions struct {
	mu     sync.Mutex
	states map[int64]*dialogState
}

func NewSessions() *Sessions {
	return &Sessions{states: make(map[int64]*dialogState)}
}

// Get возвращает текущее состояние диалога или nil, если его нет
// или оно протухло.
func (s *Sessions) Get(userID int64) *dialogState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[userID]
	if !ok {
		return nil
	}
	if time.Now().After(st.ExpiresAt) {
		delete(s.states, userID)
		return nil
	}
	return st
}

// Set устанавливает состояние диалога с таймаутом.
func (s *Sessions) Set(userID int64, name, data string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = &dialogState{
		Name:      name,
		Data:      data,
		ExpiresAt: time.Now().Add(sessionStateTTL),
	}
}

// Clear сбрасывает состояние диалога.
func (s *Sessions) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}
