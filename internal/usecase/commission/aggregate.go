package commission

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/commission"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

type AggregateCommissionInput struct {
	// WorkerID is required for admins; workers always aggregate their own.
	WorkerID uint
	Period   string
}

type AggregateCommission struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    audit.Recorder
	log      *zap.Logger
}

func NewAggregateCommission(
	repo domain.Repository,
	notifier notify.Notifier,
	audit audit.Recorder,
	log *zap.Logger,
) *AggregateCommission {
	return &AggregateCommission{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		log:      log,
	}
}

func (uc *AggregateCommission) Execute(
	ctx context.Context,
	actor auth.Actor,
	in AggregateCommissionInput,
) (*models.Commission, error) {

	period, err := domain.ParsePeriod(in.Period)
	if err != nil {
		return nil, err
	}

	worker, err := uc.resolveWorker(ctx, actor, in.WorkerID)
	if err != nil {
		return nil, httperr.Dependency("commission", err)
	}

	var c *models.Commission
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		apps, err := tx.ListBillableAppointments(ctx, worker.ID, period)
		if err != nil {
			return err
		}

		// the rate is read once, here, and frozen on the record
		c, err = domain.Aggregate(worker.ID, period, apps, domain.RateFromPercent(worker.CommissionRate))
		if err != nil {
			return err
		}
		if err := tx.CreateCommission(ctx, c); err != nil {
			return err
		}

		ids := make([]uint, 0, len(apps))
		for _, ap := range apps {
			ids = append(ids, ap.ID)
		}
		return tx.AttachAppointments(ctx, c.ID, ids)
	})
	if err != nil {
		return nil, httperr.Dependency("commission", err)
	}
	c.Worker = *worker

	// --------------------------------------------------
	// Payment request to every admin and the worker
	// --------------------------------------------------
	admins, err := uc.repo.ListAdminUserIDs(ctx)
	if err != nil {
		uc.log.Warn("admin lookup failed, notifying worker only", zap.Error(err))
	}

	msgs := make([]notify.Message, 0, len(admins)+1)
	for _, id := range admins {
		msgs = append(msgs, notify.CommissionRequested(id, worker.User.Name, period.Label, c.ID))
	}
	msgs = append(msgs, notify.CommissionRequested(worker.UserID, worker.User.Name, period.Label, c.ID))
	uc.notifier.Dispatch(msgs...)

	uc.audit.Dispatch(audit.Entry(actor.UserID, "commission_created", "commission", c.ID, map[string]any{
		"worker_id":         c.WorkerID,
		"period":            c.Period,
		"commission_amount": c.CommissionAmount,
	}))

	return c, nil
}

func (uc *AggregateCommission) resolveWorker(
	ctx context.Context,
	actor auth.Actor,
	workerID uint,
) (*models.Worker, error) {

	switch actor.Role {
	case auth.RoleAdmin:
		if workerID == 0 {
			return nil, httperr.ErrBusiness("worker_id_required")
		}
		return uc.repo.GetWorker(ctx, workerID)

	case auth.RoleWorker:
		w, err := uc.repo.GetWorkerByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if workerID != 0 && workerID != w.ID {
			return nil, httperr.ErrForbidden("not_own_commission")
		}
		return w, nil
	}

	return nil, httperr.ErrForbidden("role_not_allowed")
}
