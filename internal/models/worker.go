package models

import "time"

// Worker is the staff profile attached to a user with role "worker".
type Worker struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Position    string   `gorm:"size:100" json:"position"`
	Specialties []string `gorm:"type:text;serializer:json" json:"specialties"`

	// CommissionRate is a percentage, 15 means 15%.
	CommissionRate float64 `json:"commission_rate"`
	IsAvailable    bool    `json:"is_available"`
	Rating         float64 `json:"rating"`

	Schedules []WorkerSchedule `json:"schedules,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkerSchedule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	WorkerID uint `gorm:"uniqueIndex:ux_worker_schedules_day;not null" json:"worker_id"`

	Weekday int `gorm:"uniqueIndex:ux_worker_schedules_day" json:"weekday"`

	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
