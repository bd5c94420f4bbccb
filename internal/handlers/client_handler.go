package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// LIST CLIENTS (ADMIN / WORKER)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Joins("User")

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			`LOWER("User"."name") LIKE ? OR "User"."phone" LIKE ? OR LOWER("User"."email") LIKE ?`,
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("clients.created_at DESC").
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Could not list clients.")
		return
	}

	c.JSON(http.StatusOK, clients)
}
