package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/receipt"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const jwtSecret = "routes-test-secret"

type api struct {
	t          *testing.T
	db         *gorm.DB
	router     *gin.Engine
	dispatcher *notify.Dispatcher
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	log := zaptest.NewLogger(t)

	grid, err := domain.NewGrid("08:00", "18:30", 30)
	require.NoError(t, err)

	dispatcher := notify.NewDispatcher(repository.NewNotificationGormRepository(db), nil, log, 10)
	t.Cleanup(dispatcher.Close)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   &config.Config{JWTSecret: jwtSecret},
		Log:      log,
		Grid:     grid,
		Notifier: dispatcher,
		Audit:    audit.Nop{},
		Payments: payment.Disabled{},
		Receipts: receipt.NopArchive{},
	})

	return &api{t: t, db: db, router: r, dispatcher: dispatcher}
}

func (a *api) token(userID uint, role auth.Role) string {
	tok, err := auth.IssueToken(jwtSecret, userID, role, time.Now())
	require.NoError(a.t, err)
	return tok
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestBookingFlow(t *testing.T) {
	a := newAPI(t)

	day := timezone.Now().AddDate(0, 0, 7)
	date := day.Format("2006-01-02")

	worker := testutil.CreateWorker(t, a.db, "Ana", 15)
	testutil.SetSchedule(t, a.db, worker.ID, day.Weekday(), "08:00", "18:30")
	client := testutil.CreateClient(t, a.db, "Bruno")
	svc := testutil.CreateService(t, a.db, "Haircut", 60, 10_000)

	clientToken := a.token(client.UserID, auth.RoleClient)
	workerToken := a.token(worker.UserID, auth.RoleWorker)

	// unauthenticated booking is refused
	w := a.do(http.MethodPost, "/api/appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	booking := map[string]any{
		"service_id": svc.ID,
		"worker_id":  fmt.Sprint(worker.ID),
		"date":       date,
		"time":       "10:00",
	}

	w = a.do(http.MethodPost, "/api/appointments", clientToken, booking)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	decode(t, w, &created)
	assert.Equal(t, "pending", created.Status)

	// same slot again
	w = a.do(http.MethodPost, "/api/appointments", clientToken, booking)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "time_conflict")

	// the public availability view reflects the booking
	w = a.do(http.MethodGet, fmt.Sprintf("/api/availability?date=%s&worker_id=%d&duration=30", date, worker.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var avail struct {
		Slots []domain.Slot `json:"slots"`
	}
	decode(t, w, &avail)
	for _, s := range avail.Slots {
		if s.Time == "10:00" || s.Time == "10:30" {
			assert.False(t, s.Available, s.Time)
		}
		if s.Time == "11:00" {
			assert.True(t, s.Available)
		}
	}

	// worker lists the day
	w = a.do(http.MethodGet, "/api/appointments?date="+date, workerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data  []map[string]any `json:"data"`
		Total int              `json:"total"`
	}
	decode(t, w, &list)
	assert.Equal(t, 1, list.Total)

	// client cancels
	w = a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d/cancel", created.ID), clientToken, map[string]string{
		"reason": "client unavailable",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d/cancel", created.ID), clientToken, map[string]string{})
	assert.Equal(t, http.StatusConflict, w.Code)

	// drain the notification queue, then read the worker's inbox
	a.dispatcher.Close()

	w = a.do(http.MethodGet, "/api/notifications", workerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var inbox struct {
		Notifications []struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"notifications"`
		UnreadCount int64 `json:"unread_count"`
	}
	decode(t, w, &inbox)
	assert.Equal(t, int64(2), inbox.UnreadCount)
	require.Len(t, inbox.Notifications, 2)

	var cancelled bool
	for _, n := range inbox.Notifications {
		if n.Type == string(notify.TypeAppointmentCancelled) {
			cancelled = true
			assert.Contains(t, n.Message, "client unavailable")
		}
	}
	assert.True(t, cancelled)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	a := newAPI(t)
	client := testutil.CreateClient(t, a.db, "Bruno")
	admin := testutil.CreateUser(t, a.db, "Owner", auth.RoleAdmin)

	body := map[string]any{"name": "Nails", "duration_min": 45, "price": 7_000}

	w := a.do(http.MethodPost, "/api/services", a.token(client.UserID, auth.RoleClient), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/api/services", a.token(admin.ID, auth.RoleAdmin), body)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/api/services", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nails")
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCancel_MalformedBodyKeepsAppointment(t *testing.T) {
	a := newAPI(t)

	day := timezone.Now().AddDate(0, 0, 7)
	date := day.Format("2006-01-02")

	worker := testutil.CreateWorker(t, a.db, "Ana", 15)
	testutil.SetSchedule(t, a.db, worker.ID, day.Weekday(), "08:00", "18:30")
	client := testutil.CreateClient(t, a.db, "Bruno")
	svc := testutil.CreateService(t, a.db, "Haircut", 60, 10_000)
	clientToken := a.token(client.UserID, auth.RoleClient)

	// worker_id as a JSON number
	w := a.do(http.MethodPost, "/api/appointments", clientToken, map[string]any{
		"service_id": svc.ID,
		"worker_id":  worker.ID,
		"date":       date,
		"time":       "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID       uint `json:"id"`
		WorkerID uint `json:"worker_id"`
	}
	decode(t, w, &created)
	assert.Equal(t, worker.ID, created.WorkerID)

	path := fmt.Sprintf("/api/appointments/%d/cancel", created.ID)

	w = a.do(http.MethodPatch, path, clientToken, map[string]any{"reason": 42})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")

	var stored models.Appointment
	require.NoError(t, a.db.First(&stored, created.ID).Error)
	assert.Equal(t, string(domain.StatusPending), stored.Status)

	// no body at all is a cancel without a reason
	w = a.do(http.MethodPatch, path, clientToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, a.db.First(&stored, created.ID).Error)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
	assert.Empty(t, stored.CancelReason)
}

func TestCreateAppointment_WorkerIDForms(t *testing.T) {
	a := newAPI(t)
	client := testutil.CreateClient(t, a.db, "Bruno")
	clientToken := a.token(client.UserID, auth.RoleClient)

	for _, bad := range []any{"abc", -1, 1.5, true} {
		w := a.do(http.MethodPost, "/api/appointments", clientToken, map[string]any{
			"service_id": 1,
			"worker_id":  bad,
			"date":       "2030-01-01",
			"time":       "10:00",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", bad)
		assert.Contains(t, w.Body.String(), "invalid_request", "%v", bad)
	}
}
