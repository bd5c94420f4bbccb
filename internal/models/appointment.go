package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	WorkerID uint   `gorm:"index:idx_appointments_worker_date;not null" json:"worker_id"`
	Worker   Worker `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"worker"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	// Date is the calendar day (YYYY-MM-DD) and Time the grid slot (HH:MM),
	// both in the salon timezone. StartMinute/EndMinute are minutes since
	// midnight and drive the overlap queries.
	Date        string `gorm:"size:10;index:idx_appointments_worker_date;not null" json:"date"`
	Time        string `gorm:"size:5;not null" json:"time"`
	Duration    int    `json:"duration"`
	StartMinute int    `json:"-"`
	EndMinute   int    `json:"-"`

	Location string   `gorm:"size:10;default:'salon'" json:"location"`
	Status   string   `gorm:"size:20;default:'pending';index" json:"status"`
	AddOns   []string `gorm:"type:text;serializer:json" json:"add_ons"`
	Notes    string   `gorm:"size:255" json:"notes"`

	Price            int64  `json:"price"`
	DiscountCode     string `gorm:"size:50" json:"discount_code,omitempty"`
	DiscountAmount   int64  `json:"discount_amount"`
	PaymentReference string `gorm:"size:100" json:"payment_reference,omitempty"`

	CancelReason string     `gorm:"size:255" json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	CommissionID *uint `gorm:"index" json:"commission_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
