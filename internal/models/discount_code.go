package models

import "time"

type DiscountCode struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:50;uniqueIndex;not null" json:"code"`

	// Type is "percentage" (Value in 0..100) or "fixed" (Value in currency units).
	Type  string  `gorm:"size:20;not null" json:"type"`
	Value float64 `json:"value"`

	IsActive  bool       `json:"is_active"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	MaxUses   int        `json:"max_uses"`
	UsedCount int        `gorm:"default:0" json:"used_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
