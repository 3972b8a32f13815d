// Package web — HTTP-фасад Mini App: аутентификация по initData,
// JWT-токены и JSON API для фронтенда.
package web

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pawer.ru/pawer-bot/internal/common"
)

// Claims — полезная нагрузка JWT-токена Mini App.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет JWT-токены.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue выпускает токен для пользователя.
func (m *TokenManager) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return signed, nil
}

// Verify проверяет токен и возвращает user_id.
func (m *TokenManager) Verify(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, common.ErrInvalidInitData
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == 0 {
		return 0, common.ErrInvalidInitData
	}
	return claims.UserID, nil
}
