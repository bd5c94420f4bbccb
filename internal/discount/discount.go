package discount

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)

type Result struct {
	Valid  bool    `json:"valid"`
	Code   string  `json:"code"`
	Type   string  `json:"type,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

// AmountFor is the discount applied to price, never more than price.
func (r Result) AmountFor(price int64) int64 {
	if !r.Valid || price <= 0 {
		return 0
	}

	var amount int64
	switch r.Type {
	case TypePercentage:
		amount = int64(math.Round(float64(price) * r.Value / 100))
	case TypeFixed:
		amount = int64(math.Round(r.Value))
	}

	if amount < 0 {
		return 0
	}
	if amount > price {
		return price
	}
	return amount
}

type Validator interface {
	Validate(ctx context.Context, code string) (Result, error)
}

// Check applies the code's activation rules at the given instant.
func Check(dc *models.DiscountCode, now time.Time) Result {
	res := Result{Code: dc.Code, Type: dc.Type, Value: dc.Value}

	switch {
	case !dc.IsActive:
		res.Reason = "inactive"
	case dc.StartDate != nil && now.Before(*dc.StartDate):
		res.Reason = "not_started"
	case dc.EndDate != nil && now.After(*dc.EndDate):
		res.Reason = "expired"
	case dc.MaxUses > 0 && dc.UsedCount >= dc.MaxUses:
		res.Reason = "exhausted"
	case dc.Type != TypePercentage && dc.Type != TypeFixed:
		res.Reason = "unsupported_type"
	default:
		res.Valid = true
	}
	return res
}

type GormValidator struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormValidator(db *gorm.DB, now func() time.Time) *GormValidator {
	return &GormValidator{db: db, now: now}
}

func (v *GormValidator) Validate(ctx context.Context, code string) (Result, error) {
	code = strings.TrimSpace(code)

	var dc models.DiscountCode
	err := v.db.WithContext(ctx).Where("code = ?", code).First(&dc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Result{Code: code, Reason: "not_found"}, nil
	}
	if err != nil {
		return Result{}, err
	}

	return Check(&dc, v.now()), nil
}
