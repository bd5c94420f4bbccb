package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

func TestListAppointments_Scopes(t *testing.T) {
	s := newSalon(t)
	other := testutil.CreateClient(t, s.db, "Carla")

	s.book(t, "09:00", s.trim, domain.StatusPending)
	testutil.CreateAppointment(t, s.db, &models.Appointment{
		ClientID:  other.ID,
		WorkerID:  s.worker.ID,
		ServiceID: s.haircut.ID,
		Date:      bookingDate,
		Time:      "11:00",
		Duration:  60,
	})
	testutil.CreateAppointment(t, s.db, &models.Appointment{
		ClientID:  s.client.ID,
		WorkerID:  s.worker.ID,
		ServiceID: s.trim.ID,
		Date:      "2025-03-08",
		Time:      "09:00",
		Duration:  30,
	})

	uc := NewListAppointments(s.repo)
	ctx := context.Background()

	day, err := uc.Execute(ctx, s.workerActor(), ListAppointmentsInput{Date: bookingDate})
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "09:00", day[0].Time)
	assert.Equal(t, "Haircut", day[1].ServiceName)
	assert.Equal(t, "Carla", day[1].ClientName)

	month, err := uc.Execute(ctx, s.clientActor(), ListAppointmentsInput{Year: 2025, Month: 3})
	require.NoError(t, err)
	assert.Len(t, month, 2)

	pending, err := uc.Execute(ctx, s.adminActor(t), ListAppointmentsInput{Year: 2025, Month: 3, Status: "pending"})
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	feb, err := uc.Execute(ctx, s.adminActor(t), ListAppointmentsInput{Year: 2025, Month: 2})
	require.NoError(t, err)
	assert.Empty(t, feb)
}

func TestListAppointments_NeedsRange(t *testing.T) {
	s := newSalon(t)

	_, err := NewListAppointments(s.repo).Execute(context.Background(), s.clientActor(), ListAppointmentsInput{})
	assert.True(t, httperr.IsBusiness(err, "date_or_month_required"))

	_, err = NewListAppointments(s.repo).Execute(context.Background(), auth.Actor{UserID: 1, Role: "guest"}, ListAppointmentsInput{Date: bookingDate})
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}
