package commission

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/commission"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListCommissions struct {
	repo domain.Repository
}

func NewListCommissions(repo domain.Repository) *ListCommissions {
	return &ListCommissions{repo: repo}
}

// Execute lists every record for admins (optionally one worker) and only
// the caller's own records for workers.
func (uc *ListCommissions) Execute(
	ctx context.Context,
	actor auth.Actor,
	workerID uint,
) ([]models.Commission, error) {

	switch actor.Role {
	case auth.RoleAdmin:
	case auth.RoleWorker:
		w, err := uc.repo.GetWorkerByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, httperr.Dependency("commission", err)
		}
		workerID = w.ID
	default:
		return nil, httperr.ErrForbidden("role_not_allowed")
	}

	out, err := uc.repo.ListCommissions(ctx, workerID)
	if err != nil {
		return nil, httperr.Dependency("commission", err)
	}
	return out, nil
}
