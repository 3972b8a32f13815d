package feedback

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Store — операции хранилища, нужные сервису отзывов.
type Store interface {
	Save(ctx context.Context, userID int64, username, text string) (*Feedback, error)
	ListRecent(ctx context.Context, limit int) ([]*Feedback, error)
}

// Notifier шлёт сообщение пользователю по user_id.
// Реализуется ботом; в тестах подменяется фейком.
type Notifier func(chatID int64, text string)

// Service обрабатывает отзывы.
type Service struct {
	store    Store
	notify   Notifier
	adminIDs []int64
}

func NewService(store Store, notify Notifier, adminIDs []int64) *Service {
	return &Service{store: store, notify: notify, adminIDs: adminIDs}
}

const maxFeedbackLen = 2000

// Submit сохраняет отзыв и пересылает его всем администраторам.
// Пустой и слишком длинный текст отклоняются.
func (s *Service) Submit(ctx context.Context, userID int64, username, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("пустой отзыв")
	}
	if len([]rune(text)) > maxFeedbackLen {
		return fmt.Errorf("отзыв длиннее %d символов", maxFeedbackLen)
	}

	fb, err := s.store.Save(ctx, userID, username, text)
	if err != nil {
		return err
	}

	from := username
	if from == "" {
		from = fmt.Sprintf("id%d", userID)
	}
	notice := fmt.Sprintf("📬 Отзыв #%d от @%s:\n\n%s", fb.ID, from, fb.Text)
	for _, adminID := range s.adminIDs {
		s.notify(adminID, notice)
	}

	log.WithFields(log.Fields{"user_id": userID, "feedback_id": fb.ID}).Info("Отзыв получен")
	return nil
}

// Recent возвращает последние отзывы.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Feedback, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.store.ListRecent(ctx, limit)
}
