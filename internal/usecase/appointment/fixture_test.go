package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/discount"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// 2025-03-01 is a Saturday.
const bookingDate = "2025-03-01"

// salon is a seeded shop: one worker on Saturdays 08:00-18:30, one client,
// a 60 and a 30 minute service, and a clock fixed the day before.
type salon struct {
	db       *gorm.DB
	repo     *repository.AppointmentGormRepository
	grid     domain.Grid
	notifier *testutil.Notifier
	audit    *testutil.Audit
	now      time.Time

	worker  *models.Worker
	client  *models.Client
	haircut *models.Service
	trim    *models.Service
}

func newSalon(t *testing.T) *salon {
	t.Helper()

	db := testutil.NewDB(t)
	grid, err := domain.NewGrid("08:00", "18:30", 30)
	require.NoError(t, err)

	s := &salon{
		db:       db,
		repo:     repository.NewAppointmentGormRepository(db),
		grid:     grid,
		notifier: &testutil.Notifier{},
		audit:    &testutil.Audit{},
		now:      time.Date(2025, 2, 28, 9, 0, 0, 0, timezone.Location("")),
	}

	s.worker = testutil.CreateWorker(t, db, "Ana", 15)
	testutil.SetSchedule(t, db, s.worker.ID, time.Saturday, "08:00", "18:30")
	s.client = testutil.CreateClient(t, db, "Bruno")
	s.haircut = testutil.CreateService(t, db, "Haircut", 60, 10_000)
	s.trim = testutil.CreateService(t, db, "Beard trim", 30, 4_000)

	return s
}

func (s *salon) clientActor() auth.Actor {
	return auth.Actor{UserID: s.client.UserID, Role: auth.RoleClient}
}

func (s *salon) workerActor() auth.Actor {
	return auth.Actor{UserID: s.worker.UserID, Role: auth.RoleWorker}
}

func (s *salon) adminActor(t *testing.T) auth.Actor {
	u := testutil.CreateUser(t, s.db, "Admin", auth.RoleAdmin)
	return auth.Actor{UserID: u.ID, Role: auth.RoleAdmin}
}

func (s *salon) createUC(payments payment.Verifier) *CreateAppointment {
	if payments == nil {
		payments = payment.Disabled{}
	}
	uc := NewCreateAppointment(
		s.repo,
		s.grid,
		discount.NewGormValidator(s.db, func() time.Time { return s.now }),
		payments,
		s.notifier,
		s.audit,
	)
	uc.now = func() time.Time { return s.now }
	return uc
}

// book inserts an appointment for the seeded worker and client directly.
func (s *salon) book(t *testing.T, hm string, svc *models.Service, status domain.Status) *models.Appointment {
	return testutil.CreateAppointment(t, s.db, &models.Appointment{
		ClientID:  s.client.ID,
		WorkerID:  s.worker.ID,
		ServiceID: svc.ID,
		Date:      bookingDate,
		Time:      hm,
		Duration:  svc.DurationMin,
		Price:     svc.Price,
		Status:    string(status),
	})
}

func countAppointments(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&n).Error)
	return n
}
