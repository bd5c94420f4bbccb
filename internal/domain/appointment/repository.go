package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListFilter struct {
	WorkerID uint
	ClientID uint
	Status   string
	// From is inclusive and To exclusive, both YYYY-MM-DD.
	From string
	To   string
}

// Repository is the persistence boundary of the booking workflow.
// Lookups of missing rows return httperr not_found errors.
type Repository interface {
	// Transaction runs fn against a repository bound to a single database
	// transaction; a non-nil error rolls everything back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Catalog / people --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetWorker(
		ctx context.Context,
		id uint,
	) (*models.Worker, error)

	GetWorkerByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Worker, error)

	ListAvailableWorkers(
		ctx context.Context,
	) ([]models.Worker, error)

	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetClientByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Client, error)

	// -------- Availability --------

	// GetWorkingHours returns nil without error when the worker has no
	// entry for the weekday.
	GetWorkingHours(
		ctx context.Context,
		workerID uint,
		weekday int,
	) (*models.WorkerSchedule, error)

	ListBusyIntervals(
		ctx context.Context,
		workerID uint,
		date string,
		excludeID uint,
	) ([]Interval, error)

	// -------- Appointment (create / conflict) --------

	// LockWorker serializes bookings for one worker until the surrounding
	// transaction ends.
	LockWorker(
		ctx context.Context,
		workerID uint,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		workerID uint,
		date string,
		span Interval,
		excludeID uint,
	) error

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	RedeemDiscount(
		ctx context.Context,
		code string,
	) error

	// AssertPaymentUnused fails with a conflict when another appointment
	// already carries the gateway payment reference.
	AssertPaymentUnused(
		ctx context.Context,
		reference string,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// UpdateAppointment persists ap only if its stored status is still
	// expected, otherwise it returns a conflict.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		expected Status,
	) error

	AccrueLoyalty(
		ctx context.Context,
		ap *models.Appointment,
		points int,
		description string,
	) error

	// -------- Listing --------
	ListAppointments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Appointment, error)
}
