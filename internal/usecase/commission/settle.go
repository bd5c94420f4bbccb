package commission

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/commission"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/receipt"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type SettleCommissionResult struct {
	Commission    *models.Commission `json:"commission"`
	EmployerShare int64              `json:"employer_share"`
	ReceiptKey    string             `json:"receipt_key,omitempty"`
}

type SettleCommission struct {
	repo     domain.Repository
	notifier notify.Notifier
	receipts receipt.Archive
	audit    audit.Recorder
	log      *zap.Logger
	now      func() time.Time
}

func NewSettleCommission(
	repo domain.Repository,
	notifier notify.Notifier,
	receipts receipt.Archive,
	audit audit.Recorder,
	log *zap.Logger,
) *SettleCommission {
	return &SettleCommission{
		repo:     repo,
		notifier: notifier,
		receipts: receipts,
		audit:    audit,
		log:      log,
		now:      timezone.Now,
	}
}

func (uc *SettleCommission) Execute(
	ctx context.Context,
	actor auth.Actor,
	commissionID uint,
) (*SettleCommissionResult, error) {

	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}

	c, err := uc.repo.GetCommission(ctx, commissionID)
	if err != nil {
		return nil, httperr.Dependency("commission", err)
	}
	if err := domain.CanSettle(c); err != nil {
		return nil, err
	}

	now := uc.now()
	share := domain.EmployerShare(c)

	// --------------------------------------------------
	// Status flip and both notification rows commit together
	// --------------------------------------------------
	notes := notify.Notifications([]notify.Message{
		notify.CommissionPaid(c.Worker.UserID, c.Period, c.CommissionAmount, c.ID),
		notify.CommissionSettled(actor.UserID, c.Worker.User.Name, c.Period, share),
	})

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.MarkPaid(ctx, c.ID, now, actor.UserID); err != nil {
			return err
		}
		return tx.CreateNotifications(ctx, notes)
	})
	if err != nil {
		return nil, httperr.Dependency("commission", err)
	}

	if err := domain.Settle(c, now, actor.UserID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// After commit: delivery, receipt, audit
	// --------------------------------------------------
	uc.notifier.Publish(notes...)

	res := &SettleCommissionResult{Commission: c, EmployerShare: share}

	key, err := uc.receipts.Save(ctx, receipt.FromCommission(c, share))
	if err != nil {
		uc.log.Warn("settlement receipt not archived",
			zap.Uint("commission_id", c.ID),
			zap.Error(err),
		)
	}
	res.ReceiptKey = key

	uc.audit.Dispatch(audit.Entry(actor.UserID, "commission_paid", "commission", c.ID, map[string]any{
		"commission_amount": c.CommissionAmount,
		"employer_share":    share,
		"receipt_key":       key,
	}))

	return res, nil
}
