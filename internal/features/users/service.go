// Package users — service.go содержит бизнес-логику: идемпотентная
// регистрация, реферальные бонусы, ленивое обновление серии входов.
package users

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/config"
	"pawer.ru/pawer-bot/internal/features/economy"
)

// Store — операции хранилища, нужные сервису пользователей.
type Store interface {
	GetByID(ctx context.Context, userID int64) (*User, error)
	Upsert(ctx context.Context, userID int64, username, firstName string, referrerID *int64) (bool, error)
	SaveStreak(ctx context.Context, userID int64, streak int, lastLogin time.Time) error
	IncrementReferrals(ctx context.Context, userID int64) error
	Count(ctx context.Context) (int64, error)
}

// Rewarder начисляет валюту (реализуется economy.Service).
type Rewarder interface {
	Credit(ctx context.Context, userID, coins, gems int64, txType, description string) error
}

// Service управляет пользователями.
type Service struct {
	store   Store
	economy Rewarder
	cfg     *config.Config
}

// NewService создаёт сервис пользователей.
func NewService(store Store, economy Rewarder, cfg *config.Config) *Service {
	return &Service{store: store, economy: economy, cfg: cfg}
}

// Get возвращает пользователя. Если его нет — common.ErrUserNotFound.
func (s *Service) Get(ctx context.Context, userID int64) (*User, error) {
	return s.store.GetByID(ctx, userID)
}

// EnsureUser регистрирует пользователя при первом контакте (идемпотентный
// upsert). Реферер атрибутируется ровно один раз — только при создании —
// и получает фиксированный бонус.
func (s *Service) EnsureUser(ctx context.Context, userID int64, username, firstName string, referrerID *int64) (created bool, err error) {
	// Самоприглашение не считается
	if referrerID != nil && *referrerID == userID {
		referrerID = nil
	}

	created, err = s.store.Upsert(ctx, userID, username, firstName, referrerID)
	if err != nil {
		return false, err
	}

	if created && referrerID != nil {
		s.rewardReferrer(ctx, *referrerID, userID)
	}
	return created, nil
}

// rewardReferrer начисляет бонус пригласившему. Ошибки только логируются:
// регистрация нового пользователя важнее бонуса реферера.
func (s *Service) rewardReferrer(ctx context.Context, referrerID, invitedID int64) {
	err := s.economy.Credit(ctx, referrerID,
		s.cfg.ReferralRewardCoins, s.cfg.ReferralRewardGems,
		economy.TxTypeReferralBonus,
		fmt.Sprintf("Бонус за приглашённого друга (id %d)", invitedID),
	)
	if err != nil {
		log.WithError(err).WithField("referrer_id", referrerID).Warn("Не удалось начислить реферальный бонус")
		return
	}
	if err := s.store.IncrementReferrals(ctx, referrerID); err != nil {
		log.WithError(err).WithField("referrer_id", referrerID).Warn("Не удалось обновить счётчик рефералов")
	}

	log.WithFields(log.Fields{
		"referrer_id": referrerID,
		"invited_id":  invitedID,
	}).Info("Реферальный бонус начислен")
}

// UpdateLoginStreak лениво обновляет серию входов при /start.
// Возвращает текущую серию и начисленную награду (0, если сегодня уже заходил).
func (s *Service) UpdateLoginStreak(ctx context.Context, userID int64) (streak int, coins, gems int64, err error) {
	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return 0, 0, 0, err
	}

	now := time.Now()
	streak, advanced := NextStreak(u.StreakDays, u.LastLogin, now)
	if !advanced {
		return streak, 0, 0, nil
	}

	if err := s.store.SaveStreak(ctx, userID, streak, now); err != nil {
		return 0, 0, 0, err
	}

	coins, gems = StreakReward(streak, s.cfg.DailyLoginCoins)
	err = s.economy.Credit(ctx, userID, coins, gems,
		economy.TxTypeStreakBonus,
		fmt.Sprintf("Серия входов: день %d", streak),
	)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Не удалось начислить бонус за серию")
		return streak, 0, 0, nil
	}
	return streak, coins, gems, nil
}

// Count возвращает число зарегистрированных пользователей.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}
