package feedback

import (
	"context"
	"strings"
	"testing"
)

type fakeFeedbackStore struct {
	saved []*Feedback
}

func (f *fakeFeedbackStore) Save(_ context.Context, userID int64, username, text string) (*Feedback, error) {
	fb := &Feedback{ID: int64(len(f.saved) + 1), UserID: userID, Username: username, Text: text}
	f.saved = append(f.saved, fb)
	return fb, nil
}

func (f *fakeFeedbackStore) ListRecent(_ context.Context, limit int) ([]*Feedback, error) {
	if limit > len(f.saved) {
		limit = len(f.saved)
	}
	return f.saved[:limit], nil
}

func TestSubmitForwardsToAllAdmins(t *testing.T) {
	store := &fakeFeedbackStore{}
	var sent []int64
	notify := func(chatID int64, _ string) { sent = append(sent, chatID) }
	svc := NewService(store, notify, []int64{100, 200})

	if err := svc.Submit(context.Background(), 42, "vasya", "  отличный бот!  "); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(store.saved) != 1 {
		t.Fatalf("сохранено %d отзывов, want 1", len(store.saved))
	}
	if store.saved[0].Text != "отличный бот!" {
		t.Errorf("text = %q, пробелы должны обрезаться", store.saved[0].Text)
	}
	if len(sent) != 2 || sent[0] != 100 || sent[1] != 200 {
		t.Errorf("уведомлены %v, want [100 200]", sent)
	}
}

func TestSubmitRejectsEmptyAndTooLong(t *testing.T) {
	store := &fakeFeedbackStore{}
	svc := NewService(store, func(int64, string) {}, nil)

	if err := svc.Submit(context.Background(), 42, "vasya", "   "); err == nil {
		t.Error("пустой отзыв должен отклоняться")
	}
	if err := svc.Submit(context.Background(), 42, "vasya", strings.Repeat("а", maxFeedbackLen+1)); err == nil {
		t.Error("слишком длинный отзыв должен отклоняться")
	}
	if len(store.saved) != 0 {
		t.Errorf("отклонённые отзывы не должны сохраняться")
	}
}
