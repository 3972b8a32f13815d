// Package telegram содержит проверку initData из Telegram Mini App.
//
// Telegram подписывает initData по схеме WebAppData: из токена бота
// выводится секрет secret = HMAC_SHA256(key="WebAppData", msg=botToken),
// затем hash = hex(HMAC_SHA256(key=secret, msg=data_check_string)).
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"pawer.ru/pawer-bot/internal/common"
)

// WebAppUser — поле user внутри initData.
type WebAppUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// InitData — разобранные и проверенные данные Mini App.
type InitData struct {
	User     WebAppUser
	AuthDate time.Time
	QueryID  string
}

// Verifier проверяет подпись initData.
type Verifier struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewVerifier создаёт верификатор. maxAge ограничивает возраст auth_date;
// ноль отключает проверку возраста.
func NewVerifier(botToken string, maxAge time.Duration) *Verifier {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	return &Verifier{
		secret: mac.Sum(nil),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Verify проверяет подпись и возраст initData и возвращает разобранные данные.
// Любая проблема с подписью или форматом — common.ErrInvalidInitData.
func (v *Verifier) Verify(initData string) (*InitData, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, common.ErrInvalidInitData
	}

	// Hex-регистр hash не нормирован, сравниваем в нижнем регистре
	gotHash := strings.ToLower(values.Get("hash"))
	if gotHash == "" {
		return nil, common.ErrInvalidInitData
	}
	values.Del("hash")

	// data_check_string: пары key=value, отсортированные по ключу,
	// соединённые переводом строки
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	checkString := strings.Join(pairs, "\n")

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(checkString))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(gotHash)) {
		return nil, common.ErrInvalidInitData
	}

	authUnix, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, common.ErrInvalidInitData
	}
	authDate := time.Unix(authUnix, 0)
	if v.maxAge > 0 && v.now().Sub(authDate) > v.maxAge {
		return nil, common.ErrInvalidInitData
	}

	var user WebAppUser
	if raw := values.Get("user"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, common.ErrInvalidInitData
		}
	}
	if user.ID == 0 {
		return nil, common.ErrInvalidInitData
	}

	return &InitData{
		User:     user,
		AuthDate: authDate,
		QueryID:  values.Get("query_id"),
	}, nil
}

// VerifyUserID — укороченная форма Verify для HTTP-middleware,
// которому нужен только идентификатор пользователя.
func (v *Verifier) VerifyUserID(initData string) (int64, error) {
	data, err := v.Verify(initData)
	if err != nil {
		return 0, err
	}
	return data.User.ID, nil
}
