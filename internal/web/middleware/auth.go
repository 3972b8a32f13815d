// Package middleware содержит gin-middleware HTTP-фасада:
// аутентификация и метрики.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserID — ключ, под которым user_id лежит в контексте gin.
const ContextUserID = "user_id"

// InitDataVerifier проверяет initData из заголовка "tma".
type InitDataVerifier interface {
	VerifyUserID(initData string) (int64, error)
}

// TokenVerifier проверяет JWT из заголовка "Bearer".
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// Auth принимает два вида Authorization-заголовков:
//
//	Authorization: tma <initData>   — сырые данные Mini App
//	Authorization: Bearer <jwt>     — токен, выданный /api/auth
//
// Любая проблема — 401 без деталей, чтобы не подсказывать перебором.
func Auth(initData InitDataVerifier, tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, credentials, found := strings.Cut(header, " ")
		if !found || credentials == "" {
			unauthorized(c)
			return
		}

		var (
			userID int64
			err    error
		)
		switch strings.ToLower(scheme) {
		case "tma":
			userID, err = initData.VerifyUserID(credentials)
		case "bearer":
			userID, err = tokens.Verify(credentials)
		default:
			unauthorized(c)
			return
		}
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// UserID достаёт user_id, положенный Auth.
func UserID(c *gin.Context) int64 {
	v, _ := c.Get(ContextUserID)
	id, _ := v.(int64)
	return id
}
