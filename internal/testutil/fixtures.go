package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func CreateUser(t *testing.T, db *gorm.DB, name string, role auth.Role) *models.User {
	t.Helper()

	u := &models.User{
		Name:         name,
		Email:        uuid.NewString() + "@salon.test",
		PasswordHash: "x",
		Role:         string(role),
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateWorker adds an available worker with the given commission percentage.
func CreateWorker(t *testing.T, db *gorm.DB, name string, ratePct float64) *models.Worker {
	t.Helper()

	u := CreateUser(t, db, name, auth.RoleWorker)
	w := &models.Worker{
		UserID:         u.ID,
		CommissionRate: ratePct,
		IsAvailable:    true,
	}
	require.NoError(t, db.Omit("User").Create(w).Error)
	w.User = *u
	return w
}

// SetSchedule gives the worker a working window on a weekday, without lunch.
func SetSchedule(t *testing.T, db *gorm.DB, workerID uint, weekday time.Weekday, start, end string) {
	t.Helper()

	require.NoError(t, db.Create(&models.WorkerSchedule{
		WorkerID:  workerID,
		Weekday:   int(weekday),
		StartTime: start,
		EndTime:   end,
		Active:    true,
	}).Error)
}

func CreateClient(t *testing.T, db *gorm.DB, name string) *models.Client {
	t.Helper()

	u := CreateUser(t, db, name, auth.RoleClient)
	c := &models.Client{UserID: u.ID}
	require.NoError(t, db.Omit("User").Create(c).Error)
	c.User = *u
	return c
}

func CreateService(t *testing.T, db *gorm.DB, name string, durationMin int, price int64) *models.Service {
	t.Helper()

	s := &models.Service{
		Name:        name,
		DurationMin: durationMin,
		Price:       price,
		Active:      true,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func CreateDiscount(t *testing.T, db *gorm.DB, code, typ string, value float64, maxUses int) *models.DiscountCode {
	t.Helper()

	d := &models.DiscountCode{
		Code:     code,
		Type:     typ,
		Value:    value,
		IsActive: true,
		MaxUses:  maxUses,
	}
	require.NoError(t, db.Create(d).Error)
	return d
}

// CreateAppointment inserts a row directly, bypassing the booking rules.
func CreateAppointment(t *testing.T, db *gorm.DB, ap *models.Appointment) *models.Appointment {
	t.Helper()

	if ap.Status == "" {
		ap.Status = "pending"
	}
	if ap.Location == "" {
		ap.Location = "salon"
	}
	if ap.Time != "" && ap.EndMinute == 0 {
		start, err := appointment.ParseClock(ap.Time)
		require.NoError(t, err)
		ap.StartMinute = start
		ap.EndMinute = start + ap.Duration
	}
	require.NoError(t, db.Omit("Client", "Worker", "Service").Create(ap).Error)
	return ap
}
