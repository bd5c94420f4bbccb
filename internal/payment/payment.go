package payment

import (
	"context"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const statusApproved = "approved"

type Result struct {
	Reference string
	Approved  bool
	Status    string
	Amount    float64
}

// Verifier confirms that a payment intent handed over by the client was
// really approved by the gateway.
type Verifier interface {
	Verify(ctx context.Context, reference string) (Result, error)
}

type MercadoPagoVerifier struct {
	client mppayment.Client
}

func NewMercadoPagoVerifier(accessToken string) (*MercadoPagoVerifier, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &MercadoPagoVerifier{client: mppayment.NewClient(cfg)}, nil
}

func (v *MercadoPagoVerifier) Verify(ctx context.Context, reference string) (Result, error) {
	id, err := strconv.Atoi(reference)
	if err != nil {
		return Result{}, httperr.ErrBusiness("invalid_payment_reference")
	}

	resp, err := v.client.Get(ctx, id)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Reference: reference,
		Approved:  resp.Status == statusApproved,
		Status:    resp.Status,
		Amount:    resp.TransactionAmount,
	}, nil
}

// Disabled rejects every payment intent; used when no gateway is configured.
type Disabled struct{}

func (Disabled) Verify(context.Context, string) (Result, error) {
	return Result{}, httperr.ErrBusiness("payments_not_configured")
}
