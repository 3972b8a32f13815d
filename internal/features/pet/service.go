// Package pet — service.go содержит бизнес-логику: ленивый пересчёт статов,
// действия ухода и начисление опыта с наградами за уровни.
package pet

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/common"
	"pawer.ru/pawer-bot/internal/config"
	"pawer.ru/pawer-bot/internal/features/economy"
)

// Store — операции хранилища, нужные сервису питомцев.
// Реализуется *Repository; в тестах подменяется фейком.
type Store interface {
	GetActive(ctx context.Context, userID int64) (*Pet, error)
	Create(ctx context.Context, userID int64, name, petType string) (*Pet, error)
	SaveStats(ctx context.Context, petID int64, s Stats, lastUpdate time.Time) error
	SaveProgress(ctx context.Context, petID int64, level, exp int) error
	ListActive(ctx context.Context) ([]*Pet, error)
}

// Rewarder начисляет валюту владельцу за новые уровни.
type Rewarder interface {
	Credit(ctx context.Context, userID, coins, gems int64, txType, description string) error
}

// ActionEffect — влияние действия на статы и опыт.
// Константы — это конфигурация, не логика.
type ActionEffect struct {
	Hunger    int
	Thirst    int
	Happiness int
	Energy    int
	Exp       int
}

// ActionResult — итог действия ухода.
type ActionResult struct {
	Pet       *Pet
	LeveledUp bool
	NewLevel  int
}

// Service управляет питомцами.
type Service struct {
	store   Store
	economy Rewarder
	cfg     *config.Config
	rates   DecayRates
	effects map[string]ActionEffect
	// now подменяется в тестах
	now func() time.Time
}

// NewService создаёт сервис питомцев. Скорости деградации и бонусы
// действий берутся из конфигурации.
func NewService(store Store, economy Rewarder, cfg *config.Config) *Service {
	return &Service{
		store:   store,
		economy: economy,
		cfg:     cfg,
		rates: DecayRates{
			Hunger:    cfg.HungerDecayRate,
			Thirst:    cfg.ThirstDecayRate,
			Happiness: cfg.HappinessDecayRate,
			Energy:    cfg.EnergyDecayRate,
		},
		effects: map[string]ActionEffect{
			ActionFeed:  {Hunger: cfg.FeedValue, Happiness: 5, Exp: 10},
			ActionWater: {Thirst: cfg.WaterValue, Happiness: 5, Exp: 10},
			ActionPlay:  {Happiness: cfg.PlayValue, Hunger: -5, Thirst: -7, Exp: 15},
			ActionSleep: {Energy: cfg.SleepValue, Exp: 5},
		},
		now: time.Now,
	}
}

// Rates возвращает настроенные скорости деградации (для напоминаний).
func (s *Service) Rates() DecayRates {
	return s.rates
}

// Create создаёт питомца с проверкой имени и типа.
// Предыдущий активный питомец деактивируется.
func (s *Service) Create(ctx context.Context, userID int64, name, petType string) (*Pet, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if _, ok := Types[petType]; !ok {
		return nil, common.ErrUnknownPetType
	}

	p, err := s.store.Create(ctx, userID, name, petType)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"pet_id":  p.ID,
		"name":    name,
		"type":    petType,
	}).Info("Питомец создан")
	return p, nil
}

// Recompute приводит статы активного питомца к текущему моменту:
// вычисляет деградацию за прошедшее время, сохраняет результат
// и сдвигает last_update. Ровно одна запись за вызов.
//
// Если питомца нет — common.ErrPetNotFound (штатный исход).
func (s *Service) Recompute(ctx context.Context, userID int64) (*Pet, error) {
	p, err := s.store.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.recompute(ctx, p)
}

func (s *Service) recompute(ctx context.Context, p *Pet) (*Pet, error) {
	now := s.now()
	stats := Project(p, now, s.rates)

	if err := s.store.SaveStats(ctx, p.ID, stats, now); err != nil {
		return nil, err
	}

	p.Hunger = stats.Hunger
	p.Thirst = stats.Thirst
	p.Happiness = stats.Happiness
	p.Energy = stats.Energy
	p.LastUpdate = now
	return p, nil
}

// ApplyAction выполняет действие ухода: сначала пересчёт статов,
// затем бонус действия (с прижатием к [0,100]), затем опыт.
func (s *Service) ApplyAction(ctx context.Context, userID int64, action string) (*ActionResult, error) {
	effect, ok := s.effects[action]
	if !ok {
		return nil, common.ErrUnknownAction
	}

	p, err := s.Recompute(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := Stats{
		Hunger:    Clamp(p.Hunger + effect.Hunger),
		Thirst:    Clamp(p.Thirst + effect.Thirst),
		Happiness: Clamp(p.Happiness + effect.Happiness),
		Energy:    Clamp(p.Energy + effect.Energy),
	}
	if err := s.store.SaveStats(ctx, p.ID, stats, p.LastUpdate); err != nil {
		return nil, err
	}
	p.Hunger = stats.Hunger
	p.Thirst = stats.Thirst
	p.Happiness = stats.Happiness
	p.Energy = stats.Energy

	leveledUp, newLevel, err := s.AwardExperience(ctx, p, effect.Exp)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"pet_id":  p.ID,
		"action":  action,
	}).Debug("Действие выполнено")

	return &ActionResult{Pet: p, LeveledUp: leveledUp, NewLevel: newLevel}, nil
}

// AwardExperience добавляет опыт и прокручивает повышения уровней.
// За каждый пройденный уровень владелец получает фиксированную награду.
// Возвращает, был ли хотя бы один level-up, и новый уровень.
func (s *Service) AwardExperience(ctx context.Context, p *Pet, amount int) (leveledUp bool, newLevel int, err error) {
	if amount <= 0 {
		return false, p.Level, nil
	}

	level, exp, gained := ApplyExperience(p.Level, p.Exp, amount)

	if err := s.store.SaveProgress(ctx, p.ID, level, exp); err != nil {
		return false, p.Level, err
	}

	// Награда за каждый пройденный уровень отдельно — видно в журнале.
	for i := 1; i <= gained; i++ {
		reached := p.Level + i
		err := s.economy.Credit(ctx, p.UserID,
			s.cfg.LevelUpCoins, s.cfg.LevelUpGems,
			economy.TxTypeLevelUpReward,
			fmt.Sprintf("Награда за уровень %d", reached),
		)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"user_id": p.UserID,
				"level":   reached,
			}).Warn("Не удалось начислить награду за уровень")
		}
	}

	p.Level = level
	p.Exp = exp
	return gained > 0, level, nil
}

// ListActive возвращает всех активных питомцев (для напоминаний).
func (s *Service) ListActive(ctx context.Context) ([]*Pet, error) {
	return s.store.ListActive(ctx)
}
