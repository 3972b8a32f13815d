package admin

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/argon2"

	"pawer.ru/pawer-bot/internal/common"
	"pawer.ru/pawer-bot/internal/config"
)

type fakeWallet struct {
	credits int
}

func (f *fakeWallet) Credit(_ context.Context, _ int64, _, _ int64, _, _ string) error {
	f.credits++
	return nil
}

type fakeCounter struct{ n int64 }

func (f *fakeCounter) Count(_ context.Context) (int64, error) { return f.n, nil }

// hashPassword собирает хеш в том же формате, что ожидает verifyArgon2id.
func hashPassword(password string) string {
	salt := []byte("0123456789abcdef")
	var memory uint32 = 65536
	var iterations uint32 = 3
	var parallelism uint8 = 2
	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, 32)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
}

func newTestAdminService(t *testing.T) (*Service, *fakeWallet) {
	t.Helper()
	cfg := &config.Config{
		AdminIDs:          []int64{100},
		AdminPasswordHash: hashPassword("s3cret"),
	}
	wallet := &fakeWallet{}
	return NewService(cfg, wallet, &fakeCounter{n: 7}), wallet
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestAdminService(t)

	if err := svc.Login(100, "s3cret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !svc.HasSession(100) {
		t.Error("после входа должна быть сессия")
	}
}

func TestLoginNotAdmin(t *testing.T) {
	svc, _ := newTestAdminService(t)

	if err := svc.Login(999, "s3cret"); !errors.Is(err, common.ErrNotAdmin) {
		t.Errorf("err = %v, want ErrNotAdmin", err)
	}
}

func TestLoginBruteForceLockout(t *testing.T) {
	svc, _ := newTestAdminService(t)

	for i := 0; i < 3; i++ {
		if err := svc.Login(100, "wrong"); !errors.Is(err, common.ErrWrongPassword) {
			t.Fatalf("попытка %d: err = %v, want ErrWrongPassword", i+1, err)
		}
	}

	// Четвёртая попытка блокируется даже с правильным паролем
	if err := svc.Login(100, "s3cret"); !errors.Is(err, common.ErrTooManyAttempts) {
		t.Errorf("err = %v, want ErrTooManyAttempts", err)
	}
}

func TestLockoutExpiresAfterHour(t *testing.T) {
	svc, _ := newTestAdminService(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	for i := 0; i < 3; i++ {
		svc.Login(100, "wrong")
	}

	svc.now = func() time.Time { return base.Add(attemptsTTL + time.Minute) }
	if err := svc.Login(100, "s3cret"); err != nil {
		t.Errorf("после истечения блокировки вход должен работать: %v", err)
	}
}

func TestSessionExpires(t *testing.T) {
	svc, _ := newTestAdminService(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	if err := svc.Login(100, "s3cret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	svc.now = func() time.Time { return base.Add(sessionTTL + time.Minute) }
	if svc.HasSession(100) {
		t.Error("сессия должна истечь через 24 часа")
	}
}

func TestGiveCurrencyRequiresSession(t *testing.T) {
	svc, wallet := newTestAdminService(t)

	err := svc.GiveCurrency(context.Background(), 100, 42, 500, 0)
	if !errors.Is(err, common.ErrNotAdmin) {
		t.Fatalf("без сессии err = %v, want ErrNotAdmin", err)
	}

	svc.Login(100, "s3cret")
	if err := svc.GiveCurrency(context.Background(), 100, 42, 500, 0); err != nil {
		t.Fatalf("GiveCurrency: %v", err)
	}
	if wallet.credits != 1 {
		t.Errorf("начислений %d, want 1", wallet.credits)
	}
}

func TestStateTTL(t *testing.T) {
	svc, _ := newTestAdminService(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	svc.SetState(100, StateAwaitingPassword)
	if st := svc.GetState(100); st == nil || st.Name != StateAwaitingPassword {
		t.Fatalf("GetState = %v", st)
	}

	svc.now = func() time.Time { return base.Add(stateTTL + time.Second) }
	if st := svc.GetState(100); st != nil {
		t.Errorf("состояние должно истечь, got %v", st)
	}
}
