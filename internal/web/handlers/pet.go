package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/common"
	"pawer.ru/pawer-bot/internal/web/middleware"
)

// PetHandler обслуживает питомца в Mini App.
type PetHandler struct {
	pets PetService
}

func NewPetHandler(pets PetService) *PetHandler {
	return &PetHandler{pets: pets}
}

// Get — GET /api/pet. Возвращает питомца с актуальными статами.
func (h *PetHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)

	p, err := h.pets.Recompute(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrPetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pet not found"})
			return
		}
		log.WithError(err).WithField("user_id", userID).Error("Ошибка пересчёта питомца в API")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pet": toPetJSON(p)})
}

type interactRequest struct {
	Action string `json:"action" binding:"required"`
}

// Interact — POST /api/pet/interact {"action": "feed"}.
func (h *PetHandler) Interact(c *gin.Context) {
	userID := middleware.UserID(c)

	var req interactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action required"})
		return
	}

	res, err := h.pets.ApplyAction(c.Request.Context(), userID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnknownAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
		case errors.Is(err, common.ErrPetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "pet not found"})
		default:
			log.WithError(err).WithField("user_id", userID).Error("Ошибка действия в API")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pet":        toPetJSON(res.Pet),
		"leveled_up": res.LeveledUp,
		"new_level":  res.NewLevel,
	})
}

type createPetRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type"`
}

// Create — POST /api/pet {"name": "Барсик", "type": "basic"}.
// Через API создаётся только базовый питомец; редкие — в боте через яйца.
func (h *PetHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req createPetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	if req.Type == "" {
		req.Type = "basic"
	}
	if req.Type != "basic" {
		c.JSON(http.StatusForbidden, gin.H{"error": "only basic pet can be created here"})
		return
	}

	p, err := h.pets.Create(c.Request.Context(), userID, req.Name, req.Type)
	if err != nil {
		if errors.Is(err, common.ErrInvalidPetName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid name"})
			return
		}
		log.WithError(err).WithField("user_id", userID).Error("Ошибка создания питомца в API")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"pet": toPetJSON(p)})
}
