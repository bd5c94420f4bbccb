package commission

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/receipt"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type fakeArchive struct {
	mu    sync.Mutex
	saved []receipt.Settlement
	err   error
}

func (a *fakeArchive) Save(_ context.Context, s receipt.Settlement) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	a.saved = append(a.saved, s)
	return receipt.Key(s), nil
}

type payroll struct {
	db       *gorm.DB
	repo     *repository.CommissionGormRepository
	notifier *testutil.Notifier
	audit    *testutil.Audit
	archive  *fakeArchive

	admin  *models.User
	worker *models.Worker
	client *models.Client
	svc    *models.Service
}

func newPayroll(t *testing.T) *payroll {
	t.Helper()

	db := testutil.NewDB(t)
	p := &payroll{
		db:       db,
		repo:     repository.NewCommissionGormRepository(db),
		notifier: &testutil.Notifier{},
		audit:    &testutil.Audit{},
		archive:  &fakeArchive{},
	}

	p.admin = testutil.CreateUser(t, db, "Owner", auth.RoleAdmin)
	p.worker = testutil.CreateWorker(t, db, "Ana", 15)
	p.client = testutil.CreateClient(t, db, "Bruno")
	p.svc = testutil.CreateService(t, db, "Color", 60, 100_000)
	return p
}

func (p *payroll) adminActor() auth.Actor {
	return auth.Actor{UserID: p.admin.ID, Role: auth.RoleAdmin}
}

func (p *payroll) workerActor() auth.Actor {
	return auth.Actor{UserID: p.worker.UserID, Role: auth.RoleWorker}
}

func (p *payroll) aggregateUC(t *testing.T) *AggregateCommission {
	return NewAggregateCommission(p.repo, p.notifier, p.audit, zaptest.NewLogger(t))
}

func (p *payroll) settleUC(t *testing.T) *SettleCommission {
	uc := NewSettleCommission(p.repo, p.notifier, p.archive, p.audit, zaptest.NewLogger(t))
	uc.now = func() time.Time {
		return time.Date(2025, 4, 2, 10, 0, 0, 0, timezone.Location(""))
	}
	return uc
}

// completed adds a finished appointment for the worker.
func (p *payroll) completed(t *testing.T, date, hm string, price int64) *models.Appointment {
	return testutil.CreateAppointment(t, p.db, &models.Appointment{
		ClientID:  p.client.ID,
		WorkerID:  p.worker.ID,
		ServiceID: p.svc.ID,
		Date:      date,
		Time:      hm,
		Duration:  60,
		Price:     price,
		Status:    "completed",
	})
}

// pendingRecord inserts a commission ready to be settled.
func (p *payroll) pendingRecord(t *testing.T, revenue int64, rate float64) *models.Commission {
	c := &models.Commission{
		WorkerID:          p.worker.ID,
		Period:            "2025-03",
		PeriodStart:       "2025-03-01",
		PeriodEnd:         "2025-04-01",
		AppointmentsCount: 3,
		TotalRevenue:      revenue,
		CommissionRate:    rate,
		CommissionAmount:  int64(float64(revenue) * rate),
		Status:            "pending",
	}
	require.NoError(t, p.db.Omit("Worker").Create(c).Error)
	return c
}

func (p *payroll) notificationRows(t *testing.T) int64 {
	var n int64
	require.NoError(t, p.db.Model(&models.Notification{}).Count(&n).Error)
	return n
}

// failNotificationInserts makes every insert into the notifications table
// fail on this database.
func failNotificationInserts(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register(
		"test:fail_notifications",
		func(d *gorm.DB) {
			if d.Statement.Schema != nil && d.Statement.Schema.Table == "notifications" {
				_ = d.AddError(errors.New("notifications table unavailable"))
			}
		},
	))
}
