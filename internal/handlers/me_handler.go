package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe returns the caller's user plus their worker or client profile.
func (h *MeHandler) GetMe(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var user models.User
	if err := db.First(&user, actor.UserID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	resp := gin.H{"user": userView(&user)}

	switch actor.Role {
	case auth.RoleWorker:
		var w models.Worker
		if err := db.Preload("Schedules").Where("user_id = ?", user.ID).First(&w).Error; err == nil {
			resp["worker"] = w
		}
	case auth.RoleClient:
		var cl models.Client
		if err := db.Where("user_id = ?", user.ID).First(&cl).Error; err == nil {
			resp["client"] = cl
		}
	}

	c.JSON(http.StatusOK, resp)
}
