package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appointment "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/commission"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CommissionGormRepository struct {
	db *gorm.DB
}

func NewCommissionGormRepository(db *gorm.DB) *CommissionGormRepository {
	return &CommissionGormRepository{db: db}
}

func (r *CommissionGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CommissionGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Worker
// --------------------------------------------------

func (r *CommissionGormRepository) GetWorker(
	ctx context.Context,
	id uint,
) (*models.Worker, error) {

	var w models.Worker
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&w, id).Error; err != nil {
		return nil, notFound(err, "worker_not_found")
	}
	return &w, nil
}

func (r *CommissionGormRepository) GetWorkerByUserID(
	ctx context.Context,
	userID uint,
) (*models.Worker, error) {

	var w models.Worker
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&w).Error; err != nil {
		return nil, notFound(err, "worker_not_found")
	}
	return &w, nil
}

// --------------------------------------------------
// Aggregation
// --------------------------------------------------

func (r *CommissionGormRepository) ListBillableAppointments(
	ctx context.Context,
	workerID uint,
	p domain.Period,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"worker_id = ? AND status = ? AND commission_id IS NULL AND date >= ? AND date < ?",
			workerID,
			string(appointment.StatusCompleted),
			p.Start,
			p.End,
		).
		Order("date ASC, start_minute ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *CommissionGormRepository) CreateCommission(
	ctx context.Context,
	c *models.Commission,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrConflict("commission_exists")
	}
	return err
}

func (r *CommissionGormRepository) AttachAppointments(
	ctx context.Context,
	commissionID uint,
	appointmentIDs []uint,
) error {

	if len(appointmentIDs) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id IN ? AND commission_id IS NULL", appointmentIDs).
		UpdateColumn("commission_id", commissionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(len(appointmentIDs)) {
		return httperr.ErrConflict("appointments_already_billed")
	}
	return nil
}

// --------------------------------------------------
// Settlement
// --------------------------------------------------

func (r *CommissionGormRepository) GetCommission(
	ctx context.Context,
	id uint,
) (*models.Commission, error) {

	var c models.Commission
	if err := r.db.WithContext(ctx).
		Preload("Worker.User").
		First(&c, id).Error; err != nil {
		return nil, notFound(err, "commission_not_found")
	}
	return &c, nil
}

func (r *CommissionGormRepository) MarkPaid(
	ctx context.Context,
	id uint,
	paidAt time.Time,
	paidBy uint,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Commission{}).
		Where("id = ? AND status = ?", id, string(domain.StatusPending)).
		Updates(map[string]any{
			"status":  string(domain.StatusPaid),
			"paid_at": paidAt,
			"paid_by": paidBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrConflict("commission_already_paid")
	}
	return nil
}

func (r *CommissionGormRepository) CreateNotifications(
	ctx context.Context,
	ns []models.Notification,
) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ns).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *CommissionGormRepository) ListCommissions(
	ctx context.Context,
	workerID uint,
) ([]models.Commission, error) {

	q := r.db.WithContext(ctx).Preload("Worker.User")
	if workerID != 0 {
		q = q.Where("worker_id = ?", workerID)
	}

	var out []models.Commission
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CommissionGormRepository) ListAdminUserIDs(
	ctx context.Context,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND is_active = ?", "admin", true).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Compile-time check
var _ domain.Repository = (*CommissionGormRepository)(nil)
