package commission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

func TestAggregateCommission_Month(t *testing.T) {
	p := newPayroll(t)
	a1 := p.completed(t, "2025-03-03", "10:00", 400_000)
	a2 := p.completed(t, "2025-03-10", "10:00", 350_000)
	a3 := p.completed(t, "2025-03-31", "17:00", 250_000)
	april := p.completed(t, "2025-04-01", "10:00", 999_000)
	testutil.CreateAppointment(t, p.db, &models.Appointment{
		ClientID:  p.client.ID,
		WorkerID:  p.worker.ID,
		ServiceID: p.svc.ID,
		Date:      "2025-03-12",
		Time:      "10:00",
		Duration:  60,
		Price:     500_000,
		Status:    "confirmed",
	})

	c, err := p.aggregateUC(t).Execute(context.Background(), p.adminActor(), AggregateCommissionInput{
		WorkerID: p.worker.ID,
		Period:   "2025-03",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, c.AppointmentsCount)
	assert.Equal(t, int64(1_000_000), c.TotalRevenue)
	assert.Equal(t, 0.15, c.CommissionRate)
	assert.Equal(t, int64(150_000), c.CommissionAmount)
	assert.Equal(t, "pending", c.Status)

	for _, ap := range []*models.Appointment{a1, a2, a3} {
		var stored models.Appointment
		require.NoError(t, p.db.First(&stored, ap.ID).Error)
		require.NotNil(t, stored.CommissionID)
		assert.Equal(t, c.ID, *stored.CommissionID)
	}

	var untouched models.Appointment
	require.NoError(t, p.db.First(&untouched, april.ID).Error)
	assert.Nil(t, untouched.CommissionID)

	var users []uint
	for _, m := range p.notifier.Dispatched() {
		users = append(users, m.UserID)
	}
	assert.ElementsMatch(t, []uint{p.admin.ID, p.worker.UserID}, users)
	assert.Equal(t, []string{"commission_created"}, p.audit.Actions())
}

func TestAggregateCommission_DuplicatePeriod(t *testing.T) {
	p := newPayroll(t)
	p.completed(t, "2025-03-03", "10:00", 100_000)
	uc := p.aggregateUC(t)
	in := AggregateCommissionInput{WorkerID: p.worker.ID, Period: "2025-03"}

	_, err := uc.Execute(context.Background(), p.adminActor(), in)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), p.adminActor(), in)
	assert.True(t, httperr.IsBusiness(err, "commission_exists"))
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	var n int64
	require.NoError(t, p.db.Model(&models.Commission{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

// Appointments claimed by one record are not billed again by an
// overlapping period.
func TestAggregateCommission_NoDoubleBilling(t *testing.T) {
	p := newPayroll(t)
	p.completed(t, "2025-03-03", "10:00", 100_000)
	p.completed(t, "2025-03-04", "10:00", 100_000)
	uc := p.aggregateUC(t)

	week, err := uc.Execute(context.Background(), p.workerActor(), AggregateCommissionInput{Period: "2025-W10"})
	require.NoError(t, err)
	assert.Equal(t, 2, week.AppointmentsCount)

	month, err := uc.Execute(context.Background(), p.workerActor(), AggregateCommissionInput{Period: "2025-03"})
	require.NoError(t, err)
	assert.Zero(t, month.AppointmentsCount)
	assert.Zero(t, month.CommissionAmount)
}

func TestAggregateCommission_RateIsSnapshotted(t *testing.T) {
	p := newPayroll(t)
	p.completed(t, "2025-03-03", "10:00", 200_000)

	c, err := p.aggregateUC(t).Execute(context.Background(), p.adminActor(), AggregateCommissionInput{
		WorkerID: p.worker.ID,
		Period:   "2025-03",
	})
	require.NoError(t, err)

	require.NoError(t, p.db.Model(&models.Worker{}).
		Where("id = ?", p.worker.ID).
		Update("commission_rate", 40).Error)

	var stored models.Commission
	require.NoError(t, p.db.First(&stored, c.ID).Error)
	assert.Equal(t, 0.15, stored.CommissionRate)
	assert.Equal(t, int64(30_000), stored.CommissionAmount)
}

func TestAggregateCommission_Access(t *testing.T) {
	p := newPayroll(t)
	other := testutil.CreateWorker(t, p.db, "Bea", 10)
	uc := p.aggregateUC(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, p.workerActor(), AggregateCommissionInput{WorkerID: other.ID, Period: "2025-03"})
	assert.True(t, httperr.IsBusiness(err, "not_own_commission"))

	_, err = uc.Execute(ctx, p.adminActor(), AggregateCommissionInput{Period: "2025-03"})
	assert.True(t, httperr.IsBusiness(err, "worker_id_required"))

	_, err = uc.Execute(ctx, auth.Actor{UserID: p.client.UserID, Role: auth.RoleClient}, AggregateCommissionInput{Period: "2025-03"})
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	_, err = uc.Execute(ctx, p.adminActor(), AggregateCommissionInput{WorkerID: p.worker.ID, Period: "March"})
	assert.True(t, httperr.IsBusiness(err, "invalid_period"))
}

func TestListCommissions_Scope(t *testing.T) {
	p := newPayroll(t)
	p.pendingRecord(t, 100_000, 0.15)
	other := testutil.CreateWorker(t, p.db, "Bea", 10)
	require.NoError(t, p.db.Omit("Worker").Create(&models.Commission{
		WorkerID: other.ID,
		Period:   "2025-03",
		Status:   "pending",
	}).Error)

	uc := NewListCommissions(p.repo)

	all, err := uc.Execute(context.Background(), p.adminActor(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := uc.Execute(context.Background(), p.workerActor(), other.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, p.worker.ID, own[0].WorkerID)
}
