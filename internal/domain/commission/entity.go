package commission

import (
	"math"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Amount is revenue * rate rounded to the nearest currency unit.
func Amount(totalRevenue int64, rate float64) int64 {
	return int64(math.Round(float64(totalRevenue) * rate))
}

// EmployerShare is what the salon keeps once the worker is paid. It is
// derived from the stored record only, never recomputed from appointments.
func EmployerShare(c *models.Commission) int64 {
	return c.TotalRevenue - c.CommissionAmount
}

// RateFromPercent converts a worker's percentage (15) into the fraction
// snapshotted on a record (0.15).
func RateFromPercent(pct float64) float64 {
	return pct / 100
}

// Aggregate builds a pending record from the completed appointments of a
// period. The rate is captured here and never read from the worker again.
func Aggregate(
	workerID uint,
	period Period,
	appointments []models.Appointment,
	rate float64,
) (*models.Commission, error) {

	if rate < 0 || rate > 1 {
		return nil, httperr.ErrBusiness("invalid_commission_rate")
	}

	var total int64
	for _, ap := range appointments {
		total += ap.Price
	}

	return &models.Commission{
		WorkerID:          workerID,
		Period:            period.Label,
		PeriodStart:       period.Start,
		PeriodEnd:         period.End,
		AppointmentsCount: len(appointments),
		TotalRevenue:      total,
		CommissionRate:    rate,
		CommissionAmount:  Amount(total, rate),
		Status:            string(StatusPending),
	}, nil
}

func CanSettle(c *models.Commission) error {
	if Status(c.Status) != StatusPending {
		return httperr.ErrConflict("commission_already_paid")
	}
	return nil
}

func Settle(c *models.Commission, now time.Time, by uint) error {
	if err := CanSettle(c); err != nil {
		return err
	}
	c.Status = string(StatusPaid)
	c.PaidAt = &now
	c.PaidBy = &by
	return nil
}
