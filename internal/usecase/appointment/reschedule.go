package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type RescheduleAppointmentInput struct {
	Date string
	Time string
	// WorkerID 0 keeps the current worker.
	WorkerID uint
}

type RescheduleAppointment struct {
	repo     domain.Repository
	grid     domain.Grid
	notifier notify.Notifier
	audit    audit.Recorder
	now      func() time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	grid domain.Grid,
	notifier notify.Notifier,
	audit audit.Recorder,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		grid:     grid,
		notifier: notifier,
		audit:    audit,
		now:      timezone.Now,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	actor auth.Actor,
	appointmentID uint,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.Dependency("appointment", err)
	}

	if !actor.IsAdmin() && !isAssignedWorker(actor, ap) && !isOwningClient(actor, ap) {
		return nil, httperr.ErrForbidden("not_appointment_party")
	}
	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	req, err := parseSlot(uc.grid, in.Date, in.Time, uc.now())
	if err != nil {
		return nil, err
	}

	worker := &ap.Worker
	if in.WorkerID != 0 && in.WorkerID != ap.WorkerID {
		if worker, err = uc.repo.GetWorker(ctx, in.WorkerID); err != nil {
			return nil, httperr.Dependency("appointment", err)
		}
	}

	span := domain.Interval{Start: req.start, End: req.start + ap.Duration}
	prev := domain.Status(ap.Status)
	from := ap.Date + " " + ap.Time

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := reserve(ctx, tx, uc.grid, worker, req, span, ap.ID); err != nil {
			return err
		}
		if err := domain.Reschedule(ap, req.date, req.start, worker.ID); err != nil {
			return err
		}
		return tx.UpdateAppointment(ctx, ap, prev)
	})
	if err != nil {
		return nil, httperr.Dependency("appointment", err)
	}
	ap.Worker = *worker

	var msgs []notify.Message
	if !isOwningClient(actor, ap) {
		msgs = append(msgs, notify.AppointmentRescheduled(ap.Client.UserID, ap.Date, ap.Time, ap.ID))
	}
	if !isAssignedWorker(actor, ap) {
		msgs = append(msgs, notify.AppointmentRescheduled(ap.Worker.UserID, ap.Date, ap.Time, ap.ID))
	}
	uc.notifier.Dispatch(msgs...)

	uc.audit.Dispatch(audit.Entry(actor.UserID, "appointment_rescheduled", "appointment", ap.ID, map[string]any{
		"from": from,
		"to":   ap.Date + " " + ap.Time,
	}))

	return ap, nil
}
