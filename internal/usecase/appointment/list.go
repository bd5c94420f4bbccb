package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListAppointmentsInput struct {
	// Date (YYYY-MM-DD) wins over Year/Month.
	Date  string
	Year  int
	Month int

	// WorkerID and Status narrow the result; WorkerID only applies to admins.
	WorkerID uint
	Status   string
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor auth.Actor,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	var f domain.ListFilter

	// --------------------------------------------------
	// Range
	// --------------------------------------------------
	switch {
	case in.Date != "":
		day, err := timezone.ParseDate(in.Date)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		f.From = day.Format(dateLayout)
		f.To = day.AddDate(0, 0, 1).Format(dateLayout)

	case in.Year > 0 && in.Month >= 1 && in.Month <= 12:
		start := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, timezone.Location(""))
		f.From = start.Format(dateLayout)
		f.To = start.AddDate(0, 1, 0).Format(dateLayout)

	default:
		return nil, httperr.ErrBusiness("date_or_month_required")
	}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = string(st)
	}

	// --------------------------------------------------
	// Scope by role
	// --------------------------------------------------
	switch actor.Role {
	case auth.RoleAdmin:
		f.WorkerID = in.WorkerID
	case auth.RoleWorker:
		w, err := uc.repo.GetWorkerByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, httperr.Dependency("appointment", err)
		}
		f.WorkerID = w.ID
	case auth.RoleClient:
		cl, err := uc.repo.GetClientByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, httperr.Dependency("appointment", err)
		}
		f.ClientID = cl.ID
	default:
		return nil, httperr.ErrForbidden("role_not_allowed")
	}

	appointments, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, httperr.Dependency("appointment", err)
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for i := range appointments {
		out = append(out, dto.FromAppointment(&appointments[i]))
	}
	return out, nil
}
