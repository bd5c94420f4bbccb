package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// UpdateAppointmentStatus drives the worker-side transitions: confirm,
// start, complete and no-show. Cancellation has its own use case.
type UpdateAppointmentStatus struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    audit.Recorder
	now      func() time.Time
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	notifier notify.Notifier,
	audit audit.Recorder,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		now:      timezone.Now,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	actor auth.Actor,
	appointmentID uint,
	status string,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.Dependency("appointment", err)
	}

	if !actor.IsAdmin() && !isAssignedWorker(actor, ap) {
		return nil, httperr.ErrForbidden("not_assigned_worker")
	}

	prev := domain.Status(ap.Status)
	// leaving a terminal state is a conflict whatever the target
	if prev.IsTerminal() {
		return nil, httperr.ErrConflict("appointment_terminal")
	}
	if to == domain.StatusPending || to == domain.StatusCancelled {
		return nil, httperr.ErrBusiness("invalid_status")
	}
	if err := domain.Transition(ap, to, uc.now()); err != nil {
		return nil, err
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.UpdateAppointment(ctx, ap, prev); err != nil {
			return err
		}
		if to == domain.StatusCompleted {
			return tx.AccrueLoyalty(
				ctx,
				ap,
				domain.LoyaltyPointsPerAppointment,
				fmt.Sprintf("Appointment #%d completed", ap.ID),
			)
		}
		return nil
	})
	if err != nil {
		return nil, httperr.Dependency("appointment", err)
	}

	switch to {
	case domain.StatusConfirmed:
		uc.notifier.Dispatch(notify.AppointmentConfirmed(ap.Client.UserID, ap.Service.Name, ap.Date, ap.Time, ap.ID))
	case domain.StatusCompleted:
		uc.notifier.Dispatch(notify.LoyaltyReward(ap.Client.UserID, domain.LoyaltyPointsPerAppointment))
	}

	uc.audit.Dispatch(audit.Entry(actor.UserID, "appointment_"+string(to), "appointment", ap.ID, map[string]any{
		"from": string(prev),
	}))

	return ap, nil
}
