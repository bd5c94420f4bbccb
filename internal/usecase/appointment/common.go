package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const dateLayout = "2006-01-02"

// workerDay loads what the slot calculator needs for one worker on one day.
func workerDay(
	ctx context.Context,
	repo domain.Repository,
	w *models.Worker,
	day time.Time,
	excludeID uint,
) (domain.WorkerDay, error) {

	out := domain.WorkerDay{WorkerID: w.ID}

	if w.IsAvailable {
		wh, err := repo.GetWorkingHours(ctx, w.ID, int(day.Weekday()))
		if err != nil {
			return out, err
		}
		out.Schedule = domain.ScheduleFor(wh)
	}

	busy, err := repo.ListBusyIntervals(ctx, w.ID, day.Format(dateLayout), excludeID)
	if err != nil {
		return out, err
	}
	out.Busy = busy
	return out, nil
}

// slotRequest is a parsed, grid-aligned date and time.
type slotRequest struct {
	day   time.Time
	date  string
	start int
}

func parseSlot(grid domain.Grid, date, hm string, now time.Time) (slotRequest, error) {
	if date == "" {
		return slotRequest{}, httperr.ErrBusiness("date_required")
	}
	if hm == "" {
		return slotRequest{}, httperr.ErrBusiness("time_required")
	}

	day, err := timezone.ParseDate(date)
	if err != nil {
		return slotRequest{}, httperr.ErrBusiness("invalid_date")
	}
	start, err := grid.ParseSlot(hm)
	if err != nil {
		return slotRequest{}, err
	}

	at := day.Add(time.Duration(start) * time.Minute)
	if !at.After(now) {
		return slotRequest{}, httperr.ErrConflict("slot_in_past")
	}

	return slotRequest{day: day, date: day.Format(dateLayout), start: start}, nil
}

// reserve re-validates the slot for the worker at write time. It must run
// inside a transaction: the worker row stays locked until it ends.
func reserve(
	ctx context.Context,
	tx domain.Repository,
	grid domain.Grid,
	w *models.Worker,
	req slotRequest,
	span domain.Interval,
	excludeID uint,
) error {

	if err := tx.LockWorker(ctx, w.ID); err != nil {
		return err
	}

	if !w.IsAvailable {
		return httperr.ErrConflict("worker_unavailable")
	}

	wh, err := tx.GetWorkingHours(ctx, w.ID, int(req.day.Weekday()))
	if err != nil {
		return err
	}
	sched := domain.ScheduleFor(wh)
	if sched == nil || span.End > grid.Close || !sched.IsWithinWorkingHours(span) {
		return httperr.ErrBusiness("outside_working_hours")
	}

	return tx.AssertNoTimeConflict(ctx, w.ID, req.date, span, excludeID)
}

// retryable reports whether another worker may still take the slot.
func retryable(err error) bool {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		return false
	}
	return be.Kind == httperr.KindConflict || be.Code == "outside_working_hours"
}

// -------- Access --------

func isAssignedWorker(actor auth.Actor, ap *models.Appointment) bool {
	return actor.Role == auth.RoleWorker && ap.Worker.UserID == actor.UserID
}

func isOwningClient(actor auth.Actor, ap *models.Appointment) bool {
	return actor.Role == auth.RoleClient && ap.Client.UserID == actor.UserID
}
