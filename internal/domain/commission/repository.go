package commission

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	GetWorker(
		ctx context.Context,
		id uint,
	) (*models.Worker, error)

	GetWorkerByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Worker, error)

	// ListBillableAppointments returns completed appointments of the
	// worker inside the period that no commission has claimed yet.
	ListBillableAppointments(
		ctx context.Context,
		workerID uint,
		p Period,
	) ([]models.Appointment, error)

	CreateCommission(
		ctx context.Context,
		c *models.Commission,
	) error

	// AttachAppointments claims the appointments for a commission and
	// fails with a conflict if any of them was claimed concurrently.
	AttachAppointments(
		ctx context.Context,
		commissionID uint,
		appointmentIDs []uint,
	) error

	GetCommission(
		ctx context.Context,
		id uint,
	) (*models.Commission, error)

	// MarkPaid flips pending to paid and reports a conflict when the row
	// was no longer pending at write time.
	MarkPaid(
		ctx context.Context,
		id uint,
		paidAt time.Time,
		paidBy uint,
	) error

	CreateNotifications(
		ctx context.Context,
		ns []models.Notification,
	) error

	ListCommissions(
		ctx context.Context,
		workerID uint,
	) ([]models.Commission, error)

	ListAdminUserIDs(
		ctx context.Context,
	) ([]uint, error)
}
