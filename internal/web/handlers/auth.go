package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AuthHandler меняет initData на JWT-токен.
type AuthHandler struct {
	verifier InitDataVerifier
	tokens   TokenIssuer
	users    UserService
}

func NewAuthHandler(verifier InitDataVerifier, tokens TokenIssuer, users UserService) *AuthHandler {
	return &AuthHandler{verifier: verifier, tokens: tokens, users: users}
}

type authRequest struct {
	InitData string `json:"init_data" binding:"required"`
}

// Authenticate — POST /api/auth.
// Проверяет подпись initData, регистрирует пользователя при первом входе
// и возвращает JWT для последующих запросов.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "init_data required"})
		return
	}

	data, err := h.verifier.Verify(req.InitData)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid init data"})
		return
	}

	if _, err := h.users.EnsureUser(c.Request.Context(),
		data.User.ID, data.User.Username, data.User.FirstName, nil); err != nil {
		log.WithError(err).WithField("user_id", data.User.ID).Error("Ошибка регистрации через Mini App")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	token, err := h.tokens.Issue(data.User.ID)
	if err != nil {
		log.WithError(err).Error("Ошибка выпуска токена")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":         data.User.ID,
			"username":   data.User.Username,
			"first_name": data.User.FirstName,
		},
	})
}
