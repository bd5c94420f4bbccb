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

type CancelAppointment struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    audit.Recorder
	now      func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	notifier notify.Notifier,
	audit audit.Recorder,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		now:      timezone.Now,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor auth.Actor,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.Dependency("appointment", err)
	}

	if !actor.IsAdmin() && !isAssignedWorker(actor, ap) && !isOwningClient(actor, ap) {
		return nil, httperr.ErrForbidden("not_appointment_party")
	}

	prev := domain.Status(ap.Status)
	if err := domain.Cancel(ap, reason, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap, prev); err != nil {
		return nil, httperr.Dependency("appointment", err)
	}

	// the counter-party hears about it; an admin action informs both sides
	var recipients []uint
	switch actor.Role {
	case auth.RoleClient:
		recipients = []uint{ap.Worker.UserID}
	case auth.RoleWorker:
		recipients = []uint{ap.Client.UserID}
	default:
		recipients = []uint{ap.Client.UserID, ap.Worker.UserID}
	}

	msgs := make([]notify.Message, 0, len(recipients))
	for _, uid := range recipients {
		msgs = append(msgs, notify.AppointmentCancelled(uid, ap.Date, ap.Time, ap.CancelReason, ap.ID))
	}
	uc.notifier.Dispatch(msgs...)

	uc.audit.Dispatch(audit.Entry(actor.UserID, "appointment_cancelled", "appointment", ap.ID, map[string]any{
		"from":   string(prev),
		"reason": ap.CancelReason,
	}))

	return ap, nil
}
