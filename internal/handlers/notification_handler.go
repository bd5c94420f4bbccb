package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
)

type NotificationHandler struct {
	repo *repository.NotificationGormRepository
	log  *zap.Logger
}

func NewNotificationHandler(repo *repository.NotificationGormRepository, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{repo: repo, log: log}
}

func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	ctx := c.Request.Context()

	items, err := h.repo.ListForUser(ctx, actor.UserID, unreadOnly, limit)
	if err != nil {
		httperr.Respond(c, h.log, httperr.Dependency("notification", err))
		return
	}
	unread, err := h.repo.UnreadCount(ctx, actor.UserID)
	if err != nil {
		httperr.Respond(c, h.log, httperr.Dependency("notification", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"unread_count":  unread,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.MarkRead(c.Request.Context(), id, actor.UserID); err != nil {
		httperr.Respond(c, h.log, httperr.Dependency("notification", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
