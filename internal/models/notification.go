package models

import "time"

type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Type    string `gorm:"size:40;not null" json:"type"`
	Title   string `gorm:"size:150;not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Link    string `gorm:"size:255" json:"link,omitempty"`
	IsRead  bool   `gorm:"default:false;index" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
