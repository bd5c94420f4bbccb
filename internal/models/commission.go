package models

import "time"

type Commission struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkerID uint   `gorm:"uniqueIndex:ux_commissions_worker_period;not null" json:"worker_id"`
	Worker   Worker `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"worker"`

	Period      string `gorm:"size:20;uniqueIndex:ux_commissions_worker_period;not null" json:"period"`
	PeriodStart string `gorm:"size:10" json:"period_start"`
	PeriodEnd   string `gorm:"size:10" json:"period_end"`

	AppointmentsCount int     `json:"appointments_count"`
	TotalRevenue      int64   `json:"total_revenue"`
	CommissionRate    float64 `json:"commission_rate"`
	CommissionAmount  int64   `json:"commission_amount"`

	Status string     `gorm:"size:20;default:'pending';index" json:"status"`
	PaidAt *time.Time `json:"paid_at"`
	PaidBy *uint      `json:"paid_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
