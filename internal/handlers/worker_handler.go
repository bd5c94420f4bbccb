package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type WorkerHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewWorkerHandler(db *gorm.DB, log *zap.Logger) *WorkerHandler {
	return &WorkerHandler{db: db, log: log}
}

// --------- Requests ---------

type CreateWorkerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	Position    string   `json:"position"`
	Specialties []string `json:"specialties"`
	// CommissionRate is a percentage; 10 when omitted.
	CommissionRate *float64 `json:"commission_rate"`
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type ScheduleUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

const defaultCommissionRate = 10

// --------- Handlers ---------

func (h *WorkerHandler) Create(c *gin.Context) {
	var req CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	rate := float64(defaultCommissionRate)
	if req.CommissionRate != nil {
		rate = *req.CommissionRate
	}
	if rate < 0 || rate > 100 {
		httperr.BadRequest(c, "invalid_commission_rate", "Commission rate must be between 0 and 100.")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create worker.")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         string(auth.RoleWorker),
		IsActive:     true,
	}
	var worker models.Worker

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		worker = models.Worker{
			UserID:         user.ID,
			Position:       req.Position,
			Specialties:    req.Specialties,
			CommissionRate: rate,
			IsAvailable:    true,
		}
		return tx.Omit("User").Create(&worker).Error
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_exists", "Email already registered.")
			return
		}
		h.log.Error("create worker", zap.Error(err))
		httperr.Internal(c, "failed_to_create_worker", "Could not create worker.")
		return
	}
	worker.User = user

	c.JSON(http.StatusCreated, worker)
}

func (h *WorkerHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Preload("User")
	if c.Query("available") == "true" {
		q = q.Where("is_available = ?", true)
	}

	var workers []models.Worker
	if err := q.Order("id ASC").Find(&workers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_workers", "Could not list workers.")
		return
	}

	c.JSON(http.StatusOK, workers)
}

func (h *WorkerHandler) GetSchedule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !h.workerExists(c, id) {
		return
	}

	var days []models.WorkerSchedule
	if err := h.db.WithContext(c.Request.Context()).
		Where("worker_id = ?", id).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		httperr.Internal(c, "failed_to_get_schedule", "Could not load schedule.")
		return
	}

	c.JSON(http.StatusOK, days)
}

// UpdateSchedule replaces the whole weekly schedule. Admins edit anyone,
// workers only themselves.
func (h *WorkerHandler) UpdateSchedule(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var worker models.Worker
	if err := h.db.WithContext(c.Request.Context()).First(&worker, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "worker_not_found", "Worker not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_worker", "Could not load worker.")
		return
	}
	if !actor.IsAdmin() && worker.UserID != actor.UserID {
		httperr.Forbidden(c, "not_own_schedule", "Operation not allowed.")
		return
	}

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	rows := make([]models.WorkerSchedule, 0, len(req.Days))
	for _, d := range req.Days {
		row := models.WorkerSchedule{
			WorkerID:   worker.ID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		}
		if row.Active && domain.ScheduleFor(&row) == nil {
			httperr.BadRequest(c, "invalid_working_hours", "Start and end must be HH:MM with start before end.")
			return
		}
		rows = append(rows, row)
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("worker_id = ?", worker.ID).Delete(&models.WorkerSchedule{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "duplicate_weekday", "Each weekday may appear once.")
			return
		}
		httperr.Internal(c, "failed_to_save_schedule", "Could not save schedule.")
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *WorkerHandler) workerExists(c *gin.Context, id uint) bool {
	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Worker{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_get_worker", "Could not load worker.")
		return false
	}
	if count == 0 {
		httperr.NotFound(c, "worker_not_found", "Worker not found.")
		return false
	}
	return true
}
