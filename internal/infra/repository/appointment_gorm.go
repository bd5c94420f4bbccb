package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Catalog / people
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&svc).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetWorker(
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

func (r *AppointmentGormRepository) GetWorkerByUserID(
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

func (r *AppointmentGormRepository) ListAvailableWorkers(
	ctx context.Context,
) ([]models.Worker, error) {

	var workers []models.Worker
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("is_available = ?", true).
		Order("id ASC").
		Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var cl models.Client
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&cl, id).Error; err != nil {
		return nil, notFound(err, "client_not_found")
	}
	return &cl, nil
}

func (r *AppointmentGormRepository) GetClientByUserID(
	ctx context.Context,
	userID uint,
) (*models.Client, error) {

	var cl models.Client
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&cl).Error; err != nil {
		return nil, notFound(err, "client_not_found")
	}
	return &cl, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	workerID uint,
	weekday int,
) (*models.WorkerSchedule, error) {

	var rows []models.WorkerSchedule
	if err := r.db.WithContext(ctx).
		Where("worker_id = ? AND weekday = ?", workerID, weekday).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *AppointmentGormRepository) ListBusyIntervals(
	ctx context.Context,
	workerID uint,
	date string,
	excludeID uint,
) ([]domain.Interval, error) {

	var apps []models.Appointment
	q := r.db.WithContext(ctx).
		Select("start_minute", "end_minute").
		Where("worker_id = ? AND date = ? AND status <> ?",
			workerID, date, string(domain.StatusCancelled))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Order("start_minute ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Interval, 0, len(apps))
	for i := range apps {
		out = append(out, domain.Span(&apps[i]))
	}
	return out, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) LockWorker(
	ctx context.Context,
	workerID uint,
) error {

	var w models.Worker
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&w, workerID).Error
	return notFound(err, "worker_not_found")
}

func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	workerID uint,
	date string,
	span domain.Interval,
	excludeID uint,
) error {

	var count int64
	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"worker_id = ? AND date = ? AND status <> ? AND start_minute < ? AND end_minute > ?",
			workerID,
			date,
			string(domain.StatusCancelled),
			span.End,
			span.Start,
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrConflict("time_conflict")
	}
	return nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrConflict("time_conflict")
	}
	return err
}

// RedeemDiscount consumes one use of the code; a code that ran out between
// validation and booking is a conflict.
func (r *AppointmentGormRepository) RedeemDiscount(
	ctx context.Context,
	code string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.DiscountCode{}).
		Where("code = ? AND is_active = ? AND (max_uses = 0 OR used_count < max_uses)", code, true).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrConflict("discount_exhausted")
	}
	return nil
}

func (r *AppointmentGormRepository) AssertPaymentUnused(
	ctx context.Context,
	reference string,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("payment_reference = ?", reference).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrConflict("payment_already_used")
	}
	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Worker.User").
		Preload("Client.User").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	expected domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(expected)).
		Updates(map[string]any{
			"worker_id":     ap.WorkerID,
			"date":          ap.Date,
			"time":          ap.Time,
			"start_minute":  ap.StartMinute,
			"end_minute":    ap.EndMinute,
			"status":        ap.Status,
			"cancel_reason": ap.CancelReason,
			"cancelled_at":  ap.CancelledAt,
			"started_at":    ap.StartedAt,
			"completed_at":  ap.CompletedAt,
		})
	if res.Error != nil {
		if httperr.IsUniqueViolation(res.Error) {
			return httperr.ErrConflict("time_conflict")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrConflict("appointment_changed")
	}
	return nil
}

func (r *AppointmentGormRepository) AccrueLoyalty(
	ctx context.Context,
	ap *models.Appointment,
	points int,
	description string,
) error {

	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", ap.ClientID).
		Updates(map[string]any{
			"loyalty_points":     gorm.Expr("loyalty_points + ?", points),
			"total_appointments": gorm.Expr("total_appointments + 1"),
			"total_spent":        gorm.Expr("total_spent + ?", ap.Price),
		}).Error; err != nil {
		return err
	}

	related := ap.ID
	return r.db.WithContext(ctx).Create(&models.LoyaltyTransaction{
		ClientID:    ap.ClientID,
		Points:      points,
		Type:        "appointment_completed",
		Description: description,
		RelatedID:   &related,
	}).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Worker.User").
		Preload("Client.User")

	if f.WorkerID != 0 {
		q = q.Where("worker_id = ?", f.WorkerID)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != "" {
		q = q.Where("date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("date < ?", f.To)
	}

	var apps []models.Appointment
	if err := q.Order("date ASC, start_minute ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
