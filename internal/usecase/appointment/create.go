package appointment

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/discount"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	// ClientID is only read when an admin or worker books for a client.
	ClientID  uint
	ServiceID uint
	// WorkerID 0 assigns the first available worker.
	WorkerID uint

	Date     string
	Time     string
	Location string
	AddOns   []string
	Notes    string

	DiscountCode     string
	PaymentReference string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      domain.Repository
	grid      domain.Grid
	discounts discount.Validator
	payments  payment.Verifier
	notifier  notify.Notifier
	audit     audit.Recorder
	now       func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	grid domain.Grid,
	discounts discount.Validator,
	payments payment.Verifier,
	notifier notify.Notifier,
	audit audit.Recorder,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		grid:      grid,
		discounts: discounts,
		payments:  payments,
		notifier:  notifier,
		audit:     audit,
		now:       timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor auth.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	if in.ServiceID == 0 {
		return nil, httperr.ErrBusiness("service_id_required")
	}

	req, err := parseSlot(uc.grid, in.Date, in.Time, uc.now())
	if err != nil {
		return nil, err
	}

	location, err := domain.NormalizeLocation(in.Location)
	if err != nil {
		return nil, err
	}

	client, err := uc.resolveClient(ctx, actor, in.ClientID)
	if err != nil {
		return nil, httperr.Dependency("appointment", err)
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.Dependency("appointment", err)
	}
	if svc.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("service_without_duration")
	}
	span := domain.Interval{Start: req.start, End: req.start + svc.DurationMin}

	candidates, err := uc.candidates(ctx, in.WorkerID)
	if err != nil {
		return nil, httperr.Dependency("appointment", err)
	}

	// --------------------------------------------------
	// 2. Collaborators, consulted before the transaction
	// --------------------------------------------------
	code := strings.TrimSpace(in.DiscountCode)
	var disc discount.Result
	if code != "" {
		disc, err = uc.discounts.Validate(ctx, code)
		if err != nil {
			return nil, httperr.Dependency("discount", err)
		}
	}

	paymentRef := strings.TrimSpace(in.PaymentReference)
	paid := false
	if paymentRef != "" {
		res, err := uc.payments.Verify(ctx, paymentRef)
		if err != nil {
			return nil, httperr.Dependency("payment", err)
		}
		if !res.Approved {
			return nil, httperr.ErrBusiness("payment_not_approved")
		}
		// the gateway reports major units; prices are whole units
		if int64(math.Round(res.Amount)) < svc.Price-disc.AmountFor(svc.Price) {
			return nil, httperr.ErrBusiness("payment_amount_mismatch")
		}
		paid = true
	}

	// --------------------------------------------------
	// 3. Atomic check-then-insert
	// --------------------------------------------------
	var (
		ap     *models.Appointment
		worker *models.Worker
	)

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		chosen, err := pickWorker(ctx, tx, uc.grid, candidates, req, span, in.WorkerID == domain.AnyWorker)
		if err != nil {
			return err
		}
		worker = chosen

		if code != "" {
			if !disc.Valid {
				return httperr.ErrBusiness("invalid_discount_code")
			}
			if err := tx.RedeemDiscount(ctx, disc.Code); err != nil {
				return err
			}
		}

		if paid {
			if err := tx.AssertPaymentUnused(ctx, paymentRef); err != nil {
				return err
			}
		}

		discountAmount := disc.AmountFor(svc.Price)

		ap = &models.Appointment{
			ClientID:         client.ID,
			WorkerID:         worker.ID,
			ServiceID:        svc.ID,
			Date:             req.date,
			Time:             domain.FormatClock(span.Start),
			Duration:         svc.DurationMin,
			StartMinute:      span.Start,
			EndMinute:        span.End,
			Location:         location,
			Status:           string(domain.InitialStatus(paid)),
			AddOns:           in.AddOns,
			Notes:            in.Notes,
			Price:            svc.Price - discountAmount,
			DiscountAmount:   discountAmount,
			PaymentReference: paymentRef,
		}
		if disc.Valid {
			ap.DiscountCode = disc.Code
		}

		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, httperr.Dependency("appointment", err)
	}

	ap.Client = *client
	ap.Worker = *worker
	ap.Service = *svc

	// --------------------------------------------------
	// 4. Side effects after commit
	// --------------------------------------------------
	uc.notifier.Dispatch(notify.AppointmentBooked(worker.UserID, svc.Name, ap.Date, ap.Time, ap.ID))

	uc.audit.Dispatch(audit.Entry(actor.UserID, "appointment_created", "appointment", ap.ID, map[string]any{
		"worker_id": ap.WorkerID,
		"date":      ap.Date,
		"time":      ap.Time,
		"status":    ap.Status,
	}))

	return ap, nil
}

func (uc *CreateAppointment) resolveClient(
	ctx context.Context,
	actor auth.Actor,
	clientID uint,
) (*models.Client, error) {

	switch actor.Role {
	case auth.RoleClient:
		return uc.repo.GetClientByUserID(ctx, actor.UserID)
	case auth.RoleAdmin, auth.RoleWorker:
		if clientID == 0 {
			return nil, httperr.ErrBusiness("client_id_required")
		}
		return uc.repo.GetClient(ctx, clientID)
	}
	return nil, httperr.ErrForbidden("role_not_allowed")
}

func (uc *CreateAppointment) candidates(
	ctx context.Context,
	workerID uint,
) ([]models.Worker, error) {

	if workerID != domain.AnyWorker {
		w, err := uc.repo.GetWorker(ctx, workerID)
		if err != nil {
			return nil, err
		}
		return []models.Worker{*w}, nil
	}

	workers, err := uc.repo.ListAvailableWorkers(ctx)
	if err != nil {
		return nil, err
	}
	if len(workers) == 0 {
		return nil, httperr.ErrConflict("no_worker_available")
	}
	return workers, nil
}

// pickWorker returns the first candidate that can take the slot. With a
// single named worker its error is returned as is.
func pickWorker(
	ctx context.Context,
	tx domain.Repository,
	grid domain.Grid,
	candidates []models.Worker,
	req slotRequest,
	span domain.Interval,
	anyWorker bool,
) (*models.Worker, error) {

	for i := range candidates {
		w := &candidates[i]
		err := reserve(ctx, tx, grid, w, req, span, 0)
		if err == nil {
			return w, nil
		}
		if !anyWorker || !retryable(err) {
			return nil, err
		}
	}
	return nil, httperr.ErrConflict("no_worker_available")
}
