// Package admin — service.go содержит аутентификацию по паролю (Argon2id),
// in-memory сессии и state-машину пошаговых админ-действий.
package admin

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"

	"pawer.ru/pawer-bot/internal/common"
	"pawer.ru/pawer-bot/internal/config"
	"pawer.ru/pawer-bot/internal/features/economy"
)

const (
	sessionTTL  = 24 * time.Hour
	stateTTL    = 5 * time.Minute
	maxAttempts = 3
	attemptsTTL = 1 * time.Hour
)

// Wallet — начисление валюты пользователю.
type Wallet interface {
	Credit(ctx context.Context, userID, coins, gems int64, txType, description string) error
}

// UserCounter считает зарегистрированных пользователей.
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Service управляет админ-панелью.
type Service struct {
	cfg    *config.Config
	wallet Wallet
	users  UserCounter

	mu       sync.Mutex
	sessions map[int64]*Session
	states   map[int64]*State
	attempts map[int64][]time.Time // времена неудачных попыток входа

	now func() time.Time
}

// NewService создаёт сервис админ-панели.
func NewService(cfg *config.Config, wallet Wallet, users UserCounter) *Service {
	return &Service{
		cfg:      cfg,
		wallet:   wallet,
		users:    users,
		sessions: make(map[int64]*Session),
		states:   make(map[int64]*State),
		attempts: make(map[int64][]time.Time),
		now:      time.Now,
	}
}

// Login проверяет пароль и открывает сессию на 24 часа.
// Защита от перебора: 3 неудачные попытки за час блокируют вход.
func (s *Service) Login(userID int64, password string) error {
	if !s.cfg.IsAdmin(userID) {
		return common.ErrNotAdmin
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	recent := s.attempts[userID][:0]
	for _, t := range s.attempts[userID] {
		if now.Sub(t) < attemptsTTL {
			recent = append(recent, t)
		}
	}
	s.attempts[userID] = recent
	if len(recent) >= maxAttempts {
		return common.ErrTooManyAttempts
	}

	if !verifyArgon2id(password, s.cfg.AdminPasswordHash) {
		s.attempts[userID] = append(s.attempts[userID], now)
		log.WithField("user_id", userID).Warn("Неудачная попытка входа в админку")
		return common.ErrWrongPassword
	}

	delete(s.attempts, userID)
	s.sessions[userID] = &Session{UserID: userID, ExpiresAt: now.Add(sessionTTL)}
	log.WithField("user_id", userID).Info("Администратор вошёл")
	return nil
}

// HasSession проверяет, есть ли у пользователя живая сессия.
func (s *Service) HasSession(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return false
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.sessions, userID)
		return false
	}
	return true
}

// Logout закрывает сессию.
func (s *Service) Logout(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// GetState возвращает текущее состояние диалога или nil.
func (s *Service) GetState(userID int64) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[userID]
	if !ok || s.now().After(st.ExpiresAt) {
		return nil
	}
	return st
}

// SetState устанавливает состояние диалога с 5-минутным таймаутом.
func (s *Service) SetState(userID int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = &State{Name: name, ExpiresAt: s.now().Add(stateTTL)}
}

// ClearState сбрасывает состояние диалога.
func (s *Service) ClearState(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}

// GiveCurrency начисляет валюту пользователю от имени администратора.
func (s *Service) GiveCurrency(ctx context.Context, adminID, targetID, coins, gems int64) error {
	if !s.HasSession(adminID) {
		return common.ErrNotAdmin
	}
	return s.wallet.Credit(ctx, targetID, coins, gems,
		economy.TxTypeAdminGive, fmt.Sprintf("Начисление от администратора %d", adminID))
}

// UserCount возвращает число зарегистрированных пользователей.
func (s *Service) UserCount(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

// verifyArgon2id проверяет пароль по хешу Argon2id.
// Формат хеша: $argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func verifyArgon2id(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		log.Error("Некорректный формат хеша Argon2id")
		return false
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		log.WithError(err).Error("Ошибка парсинга параметров Argon2id")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования соли")
		return false
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования хеша")
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	// Сравнение в постоянном времени
	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1
}
