package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

func (s *salon) availabilityUC() *GetAvailability {
	uc := NewGetAvailability(s.repo, s.grid)
	uc.now = func() time.Time { return s.now }
	return uc
}

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := timezone.ParseDate(date)
	require.NoError(t, err)
	return d
}

func availability(slots []domain.Slot) map[string]bool {
	out := make(map[string]bool, len(slots))
	for _, s := range slots {
		out[s.Time] = s.Available
	}
	return out
}

func TestGetAvailability_ExistingAppointment(t *testing.T) {
	s := newSalon(t)
	s.book(t, "14:00", s.haircut, domain.StatusConfirmed)

	slots, err := s.availabilityUC().Execute(context.Background(), domain.AvailabilityInput{
		WorkerID: s.worker.ID,
		Date:     day(t, bookingDate),
		Duration: 30,
	})
	require.NoError(t, err)

	got := availability(slots)
	assert.False(t, got["14:00"])
	assert.False(t, got["14:30"])
	assert.True(t, got["13:30"])
	assert.True(t, got["15:00"])
}

func TestGetAvailability_DurationFromService(t *testing.T) {
	s := newSalon(t)
	s.book(t, "14:00", s.haircut, domain.StatusConfirmed)

	slots, err := s.availabilityUC().Execute(context.Background(), domain.AvailabilityInput{
		WorkerID:  s.worker.ID,
		Date:      day(t, bookingDate),
		ServiceID: s.haircut.ID,
	})
	require.NoError(t, err)

	got := availability(slots)
	assert.False(t, got["13:30"])
	assert.True(t, got["13:00"])
	assert.False(t, got["18:00"])
}

func TestGetAvailability_CancelledIgnored(t *testing.T) {
	s := newSalon(t)
	s.book(t, "14:00", s.haircut, domain.StatusCancelled)

	slots, err := s.availabilityUC().Execute(context.Background(), domain.AvailabilityInput{
		WorkerID: s.worker.ID,
		Date:     day(t, bookingDate),
		Duration: 30,
	})
	require.NoError(t, err)
	assert.True(t, availability(slots)["14:00"])
}

func TestGetAvailability_Errors(t *testing.T) {
	s := newSalon(t)
	uc := s.availabilityUC()

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		WorkerID: 999,
		Date:     day(t, bookingDate),
		Duration: 30,
	})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	_, err = uc.Execute(context.Background(), domain.AvailabilityInput{
		WorkerID: s.worker.ID,
		Date:     day(t, bookingDate),
	})
	assert.True(t, httperr.IsBusiness(err, "duration_required"))

	_, err = uc.Execute(context.Background(), domain.AvailabilityInput{
		WorkerID:  s.worker.ID,
		Date:      day(t, bookingDate),
		ServiceID: s.haircut.ID,
		Duration:  30,
	})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	assert.True(t, httperr.IsBusiness(err, "service_or_duration"))
}

func TestGetAvailability_PastDayIsEmpty(t *testing.T) {
	s := newSalon(t)

	slots, err := s.availabilityUC().Execute(context.Background(), domain.AvailabilityInput{
		WorkerID: s.worker.ID,
		Date:     day(t, "2025-02-22"),
		Duration: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_TodaySkipsElapsedSlots(t *testing.T) {
	s := newSalon(t)
	s.now = time.Date(2025, 3, 1, 10, 0, 0, 0, timezone.Location(""))

	slots, err := s.availabilityUC().Execute(context.Background(), domain.AvailabilityInput{
		WorkerID: s.worker.ID,
		Date:     day(t, bookingDate),
		Duration: 30,
	})
	require.NoError(t, err)

	got := availability(slots)
	assert.False(t, got["09:30"])
	assert.False(t, got["10:00"])
	assert.True(t, got["10:30"])
}

func TestGetAvailability_AnyWorker(t *testing.T) {
	s := newSalon(t)
	second := testutil.CreateWorker(t, s.db, "Bea", 10)
	testutil.SetSchedule(t, s.db, second.ID, time.Saturday, "12:00", "18:30")
	s.book(t, "14:00", s.haircut, domain.StatusConfirmed)

	slots, err := s.availabilityUC().Execute(context.Background(), domain.AvailabilityInput{
		WorkerID: domain.AnyWorker,
		Date:     day(t, bookingDate),
		Duration: 30,
	})
	require.NoError(t, err)

	byTime := make(map[string]domain.Slot, len(slots))
	for _, sl := range slots {
		byTime[sl.Time] = sl
	}

	assert.Equal(t, []uint{s.worker.ID}, byTime["09:00"].WorkerIDs)
	assert.Equal(t, []uint{second.ID}, byTime["14:00"].WorkerIDs)
	assert.Equal(t, []uint{s.worker.ID, second.ID}, byTime["16:00"].WorkerIDs)
}

func TestGetAvailability_UnavailableWorker(t *testing.T) {
	s := newSalon(t)
	require.NoError(t, s.db.Model(s.worker).Update("is_available", false).Error)

	slots, err := s.availabilityUC().Execute(context.Background(), domain.AvailabilityInput{
		WorkerID: s.worker.ID,
		Date:     day(t, bookingDate),
		Duration: 30,
	})
	require.NoError(t, err)
	for _, sl := range slots {
		assert.False(t, sl.Available, sl.Time)
	}
}
