package models

import "time"

// Client is the customer profile attached to a user with role "client".
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	LoyaltyPoints     int   `gorm:"default:0" json:"loyalty_points"`
	TotalAppointments int   `gorm:"default:0" json:"total_appointments"`
	TotalSpent        int64 `gorm:"default:0" json:"total_spent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoyaltyTransaction struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"index;not null" json:"client_id"`

	Points      int    `json:"points"`
	Type        string `gorm:"size:40" json:"type"`
	Description string `gorm:"size:255" json:"description"`
	RelatedID   *uint  `json:"related_id"`

	CreatedAt time.Time `json:"created_at"`
}
