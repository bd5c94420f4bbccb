package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	LocationSalon = "salon"
	LocationHome  = "home"

	// LoyaltyPointsPerAppointment is credited to the client on completion.
	LoyaltyPointsPerAppointment = 10
)

func NormalizeLocation(loc string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(loc)) {
	case "", LocationSalon:
		return LocationSalon, nil
	case LocationHome:
		return LocationHome, nil
	}
	return "", httperr.ErrBusiness("invalid_location")
}

// ===============================
// Domain Actions
// ===============================

func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	switch to {
	case StatusInProgress:
		ap.StartedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	}
	return nil
}

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := Transition(ap, StatusCancelled, now); err != nil {
		return err
	}
	ap.CancelReason = reason
	return nil
}

// Reschedule moves the appointment to a new slot and sends it back to
// pending so the worker confirms again.
func Reschedule(ap *models.Appointment, date string, start int, workerID uint) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.Date = date
	ap.Time = FormatClock(start)
	ap.StartMinute = start
	ap.EndMinute = start + ap.Duration
	ap.WorkerID = workerID
	ap.Status = string(StatusPending)
	return nil
}

// Span is the [start, end) interval the appointment occupies.
func Span(ap *models.Appointment) Interval {
	return Interval{Start: ap.StartMinute, End: ap.EndMinute}
}
