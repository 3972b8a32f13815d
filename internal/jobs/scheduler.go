// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает ежечасные напоминания об уходе за питомцем.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/features/pet"
)

// reminderThreshold — стат ниже этого значения попадает в напоминание.
const reminderThreshold = 30

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron     *cron.Cron
	pets     *pet.Service
	sendFunc func(chatID int64, text string)
}

// NewScheduler создаёт планировщик задач с московским часовым поясом.
func NewScheduler(pets *pet.Service, sendFunc func(chatID int64, text string)) *Scheduler {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		log.WithError(err).Warn("Не удалось загрузить Europe/Moscow, используем UTC+3")
		loc = time.FixedZone("MSK", 3*60*60)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		pets:     pets,
		sendFunc: sendFunc,
	}
}

// Start запускает фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Напоминания каждый час
	s.cron.AddFunc("0 * * * *", func() {
		log.Debug("[CRON] Проверка питомцев для напоминаний")
		s.sendCareReminders(ctx)
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен (Europe/Moscow)")
}

// Stop останавливает планировщик, дожидаясь текущих задач.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	log.Info("Планировщик задач остановлен")
}

// sendCareReminders шлёт напоминание владельцам питомцев с низкими статами.
// Статы только проецируются на текущий момент, в БД ничего не пишется:
// деградация фиксируется лениво при следующем действии пользователя.
func (s *Scheduler) sendCareReminders(ctx context.Context) {
	pets, err := s.pets.ListActive(ctx)
	if err != nil {
		log.WithError(err).Error("[CRON] Ошибка выборки питомцев")
		return
	}

	now := time.Now()
	rates := s.pets.Rates()
	sent := 0

	for _, p := range pets {
		projected := pet.Project(p, now, rates)

		var problems []string
		if projected.Hunger < reminderThreshold {
			problems = append(problems, "🍖 голоден")
		}
		if projected.Thirst < reminderThreshold {
			problems = append(problems, "💧 хочет пить")
		}
		if projected.Happiness < reminderThreshold {
			problems = append(problems, "😢 скучает")
		}
		if projected.Energy < reminderThreshold {
			problems = append(problems, "😴 валится с ног")
		}
		if len(problems) == 0 {
			continue
		}

		info := pet.Types[p.Type]
		s.sendFunc(p.UserID, fmt.Sprintf("%s %s %s! Загляните: /pet",
			info.Emoji, p.Name, strings.Join(problems, ", ")))
		sent++
	}

	if sent > 0 {
		log.WithField("count", sent).Info("[CRON] Напоминания отправлены")
	}
}
