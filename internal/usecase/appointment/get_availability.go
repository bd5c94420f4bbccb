package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	grid domain.Grid
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository, grid domain.Grid) *GetAvailability {
	return &GetAvailability{
		repo: repo,
		grid: grid,
		now:  timezone.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	// --------------------------------------------------
	// Duration
	// --------------------------------------------------
	if in.ServiceID != 0 && in.Duration != 0 {
		return nil, httperr.ErrBusiness("service_or_duration")
	}
	duration := in.Duration
	if in.ServiceID != 0 {
		svc, err := uc.repo.GetService(ctx, in.ServiceID)
		if err != nil {
			return nil, httperr.Dependency("availability", err)
		}
		duration = svc.DurationMin
	}
	if duration <= 0 {
		return nil, httperr.ErrBusiness("duration_required")
	}

	// --------------------------------------------------
	// Worker(s)
	// --------------------------------------------------
	var workers []models.Worker
	if in.WorkerID != domain.AnyWorker {
		w, err := uc.repo.GetWorker(ctx, in.WorkerID)
		if err != nil {
			return nil, httperr.Dependency("availability", err)
		}
		workers = []models.Worker{*w}
	} else {
		list, err := uc.repo.ListAvailableWorkers(ctx)
		if err != nil {
			return nil, httperr.Dependency("availability", err)
		}
		workers = list
	}

	// --------------------------------------------------
	// Past days offer nothing; today starts after "now"
	// --------------------------------------------------
	now := uc.now()
	date := in.Date.Format(dateLayout)
	today := now.Format(dateLayout)

	if date < today {
		return []domain.Slot{}, nil
	}

	notBefore := 0
	if date == today {
		notBefore = now.Hour()*60 + now.Minute() + 1
	}

	days := make([]domain.WorkerDay, 0, len(workers))
	for i := range workers {
		day, err := workerDay(ctx, uc.repo, &workers[i], in.Date, 0)
		if err != nil {
			return nil, httperr.Dependency("availability", err)
		}
		day.NotBefore = notBefore
		days = append(days, day)
	}

	if in.WorkerID != domain.AnyWorker {
		return domain.ComputeSlots(uc.grid, duration, days[0]), nil
	}
	return domain.ComputeAnySlots(uc.grid, duration, days), nil
}
