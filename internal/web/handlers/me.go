package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"pawer.ru/pawer-bot/internal/common"
	"pawer.ru/pawer-bot/internal/web/middleware"
)

// MeHandler возвращает профиль текущего пользователя.
type MeHandler struct {
	users     UserService
	inventory InventoryService
}

func NewMeHandler(users UserService, inv InventoryService) *MeHandler {
	return &MeHandler{users: users, inventory: inv}
}

// Get — GET /api/me. Профиль, баланс и снимок инвентаря.
func (h *MeHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)

	u, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.WithError(err).WithField("user_id", userID).Error("Ошибка загрузки профиля в API")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	// Инвентарь вспомогателен: ошибки не валят весь профиль
	items := []gin.H{}
	if list, err := h.inventory.List(c.Request.Context(), userID); err == nil {
		for _, it := range list {
			items = append(items, gin.H{"type": it.ItemType, "quantity": it.Quantity})
		}
	} else {
		log.WithError(err).WithField("user_id", userID).Warn("Ошибка выборки инвентаря в API")
	}

	eggs := []gin.H{}
	if list, err := h.inventory.ListEggs(c.Request.Context(), userID); err == nil {
		for _, egg := range list {
			eggs = append(eggs, gin.H{"type": egg.EggType, "bought_at": egg.BoughtAt})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":             u.UserID,
			"username":       u.Username,
			"first_name":     u.FirstName,
			"coins":          u.Coins,
			"gems":           u.Gems,
			"streak_days":    u.StreakDays,
			"referral_count": u.ReferralCount,
		},
		"inventory": items,
		"eggs":      eggs,
	})
}
