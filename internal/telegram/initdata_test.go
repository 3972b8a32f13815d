package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"pawer.ru/pawer-bot/internal/common"
)

const testToken = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

// signInitData подписывает values тем же алгоритмом, что и Telegram.
func signInitData(t *testing.T, token string, values url.Values) string {
	t.Helper()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(token))
	mac := hmac.New(sha256.New, secretMac.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func testValues(authDate time.Time) url.Values {
	return url.Values{
		"user":      {`{"id":42,"username":"vasya","first_name":"Вася"}`},
		"auth_date": {strconv.FormatInt(authDate.Unix(), 10)},
		"query_id":  {"AAH1234"},
	}
}

func TestVerifyValid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := NewVerifier(testToken, time.Hour)
	v.now = func() time.Time { return now }

	initData := signInitData(t, testToken, testValues(now.Add(-10*time.Minute)))

	data, err := v.Verify(initData)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if data.User.ID != 42 {
		t.Errorf("user.id = %d, want 42", data.User.ID)
	}
	if data.User.Username != "vasya" {
		t.Errorf("username = %q, want vasya", data.User.Username)
	}
	if data.QueryID != "AAH1234" {
		t.Errorf("query_id = %q", data.QueryID)
	}
}

func TestVerifyUppercaseHexHash(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := NewVerifier(testToken, time.Hour)
	v.now = func() time.Time { return now }

	values := testValues(now.Add(-10 * time.Minute))
	signInitData(t, testToken, values)
	// Регистр hex в hash не нормирован, подпись при этом валидна
	values.Set("hash", strings.ToUpper(values.Get("hash")))

	if _, err := v.Verify(values.Encode()); err != nil {
		t.Errorf("hash в верхнем регистре должен приниматься: %v", err)
	}
}

func TestVerifyTamperedUser(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := NewVerifier(testToken, time.Hour)
	v.now = func() time.Time { return now }

	initData := signInitData(t, testToken, testValues(now))
	// Подменяем id после подписания
	tampered := strings.Replace(initData, "42", "43", 1)

	if _, err := v.Verify(tampered); !errors.Is(err, common.ErrInvalidInitData) {
		t.Errorf("err = %v, want ErrInvalidInitData", err)
	}
}

func TestVerifyWrongToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := NewVerifier(testToken, time.Hour)
	v.now = func() time.Time { return now }

	initData := signInitData(t, "999999:another-token", testValues(now))

	if _, err := v.Verify(initData); !errors.Is(err, common.ErrInvalidInitData) {
		t.Errorf("err = %v, want ErrInvalidInitData", err)
	}
}

func TestVerifyMissingHash(t *testing.T) {
	v := NewVerifier(testToken, time.Hour)

	if _, err := v.Verify("user=%7B%22id%22%3A42%7D&auth_date=1"); !errors.Is(err, common.ErrInvalidInitData) {
		t.Errorf("err = %v, want ErrInvalidInitData", err)
	}
}

func TestVerifyExpiredAuthDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := NewVerifier(testToken, time.Hour)
	v.now = func() time.Time { return now }

	initData := signInitData(t, testToken, testValues(now.Add(-2*time.Hour)))

	if _, err := v.Verify(initData); !errors.Is(err, common.ErrInvalidInitData) {
		t.Errorf("err = %v, want ErrInvalidInitData", err)
	}
}

func TestVerifyZeroMaxAgeSkipsFreshness(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := NewVerifier(testToken, 0)
	v.now = func() time.Time { return now }

	initData := signInitData(t, testToken, testValues(now.Add(-48*time.Hour)))

	if _, err := v.Verify(initData); err != nil {
		t.Errorf("с maxAge=0 возраст не проверяется: %v", err)
	}
}
