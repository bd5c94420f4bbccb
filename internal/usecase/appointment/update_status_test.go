package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

func (s *salon) statusUC() *UpdateAppointmentStatus {
	uc := NewUpdateAppointmentStatus(s.repo, s.notifier, s.audit)
	uc.now = func() time.Time { return s.now }
	return uc
}

func TestUpdateStatus_FullLifecycle(t *testing.T) {
	s := newSalon(t)
	ap := s.book(t, "14:00", s.haircut, domain.StatusPending)
	uc := s.statusUC()
	ctx := context.Background()

	for _, next := range []string{"confirmed", "in_progress", "completed"} {
		got, err := uc.Execute(ctx, s.workerActor(), ap.ID, next)
		require.NoError(t, err, next)
		assert.Equal(t, next, got.Status)
	}

	var stored models.Appointment
	require.NoError(t, s.db.First(&stored, ap.ID).Error)
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)
	assert.NotNil(t, stored.StartedAt)
	assert.NotNil(t, stored.CompletedAt)

	var client models.Client
	require.NoError(t, s.db.First(&client, s.client.ID).Error)
	assert.Equal(t, domain.LoyaltyPointsPerAppointment, client.LoyaltyPoints)
	assert.Equal(t, 1, client.TotalAppointments)
	assert.Equal(t, s.haircut.Price, client.TotalSpent)

	var txs []models.LoyaltyTransaction
	require.NoError(t, s.db.Where("client_id = ?", s.client.ID).Find(&txs).Error)
	require.Len(t, txs, 1)
	assert.Equal(t, ap.ID, *txs[0].RelatedID)

	msgs := s.notifier.Dispatched()
	require.Len(t, msgs, 2)
	assert.Equal(t, notify.TypeAppointmentConfirmed, msgs[0].Type)
	assert.Equal(t, s.client.UserID, msgs[0].UserID)
	assert.Equal(t, notify.TypeLoyaltyReward, msgs[1].Type)

	assert.Equal(t,
		[]string{"appointment_confirmed", "appointment_in_progress", "appointment_completed"},
		s.audit.Actions(),
	)
}

func TestUpdateStatus_RejectsTableViolations(t *testing.T) {
	s := newSalon(t)
	uc := s.statusUC()
	ctx := context.Background()

	pending := s.book(t, "09:00", s.trim, domain.StatusPending)
	_, err := uc.Execute(ctx, s.workerActor(), pending.ID, "completed")
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	done := s.book(t, "10:00", s.trim, domain.StatusCompleted)
	_, err = uc.Execute(ctx, s.workerActor(), done.ID, "confirmed")
	assert.True(t, httperr.IsBusiness(err, "appointment_terminal"))

	_, err = uc.Execute(ctx, s.workerActor(), pending.ID, "cancelled")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = uc.Execute(ctx, s.workerActor(), pending.ID, "archived")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	var stored models.Appointment
	require.NoError(t, s.db.First(&stored, pending.ID).Error)
	assert.Equal(t, string(domain.StatusPending), stored.Status)
	assert.Empty(t, s.notifier.Dispatched())
}

func TestUpdateStatus_TerminalIsAlwaysConflict(t *testing.T) {
	s := newSalon(t)
	uc := s.statusUC()
	ctx := context.Background()

	terminal := map[domain.Status]string{
		domain.StatusCompleted: "09:00",
		domain.StatusCancelled: "10:00",
		domain.StatusNoShow:    "11:00",
	}

	for from, hm := range terminal {
		ap := s.book(t, hm, s.trim, from)

		for _, to := range domain.Statuses() {
			_, err := uc.Execute(ctx, s.workerActor(), ap.ID, string(to))
			assert.True(t, httperr.IsKind(err, httperr.KindConflict), "%s -> %s", from, to)
			assert.True(t, httperr.IsBusiness(err, "appointment_terminal"), "%s -> %s", from, to)
		}

		var stored models.Appointment
		require.NoError(t, s.db.First(&stored, ap.ID).Error)
		assert.Equal(t, string(from), stored.Status)
	}

	assert.Empty(t, s.notifier.Dispatched())
	assert.Empty(t, s.audit.Actions())
}

func TestUpdateStatus_OnlyAssignedWorkerOrAdmin(t *testing.T) {
	s := newSalon(t)
	ap := s.book(t, "14:00", s.haircut, domain.StatusPending)
	uc := s.statusUC()
	other := testutil.CreateWorker(t, s.db, "Bea", 10)

	_, err := uc.Execute(context.Background(), auth.Actor{UserID: other.UserID, Role: auth.RoleWorker}, ap.ID, "confirmed")
	assert.True(t, httperr.IsBusiness(err, "not_assigned_worker"))

	_, err = uc.Execute(context.Background(), s.clientActor(), ap.ID, "confirmed")
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	_, err = uc.Execute(context.Background(), s.adminActor(t), ap.ID, "confirmed")
	require.NoError(t, err)
}

// The compare-and-swap refuses a write based on a stale read.
func TestUpdateAppointment_StaleStatusIsConflict(t *testing.T) {
	s := newSalon(t)
	ap := s.book(t, "14:00", s.haircut, domain.StatusPending)
	ctx := context.Background()

	stale, err := s.repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)

	_, err = s.cancelUC().Execute(ctx, s.clientActor(), ap.ID, "")
	require.NoError(t, err)

	require.NoError(t, domain.Transition(stale, domain.StatusConfirmed, s.now))
	err = s.repo.UpdateAppointment(ctx, stale, domain.StatusPending)
	assert.True(t, httperr.IsBusiness(err, "appointment_changed"))

	var stored models.Appointment
	require.NoError(t, s.db.First(&stored, ap.ID).Error)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
}
