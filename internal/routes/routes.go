package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/discount"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/receipt"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucCommission "github.com/BruksfildServices01/salon-scheduler/internal/usecase/commission"
)

// Deps are the long-lived collaborators built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Grid     domain.Grid
	Notifier notify.Notifier
	Audit    audit.Recorder
	Payments payment.Verifier
	Receipts receipt.Archive
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	commissionRepo := infraRepo.NewCommissionGormRepository(d.DB)
	notificationRepo := infraRepo.NewNotificationGormRepository(d.DB)

	discounts := discount.NewGormValidator(d.DB, timezone.Now)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, d.Grid)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		d.Grid,
		discounts,
		d.Payments,
		d.Notifier,
		d.Audit,
	)

	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(
		appointmentRepo,
		d.Notifier,
		d.Audit,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		d.Notifier,
		d.Audit,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		d.Grid,
		d.Notifier,
		d.Audit,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	// ======================================================
	// USE CASES: COMMISSIONS
	// ======================================================
	aggregateCommissionUC := ucCommission.NewAggregateCommission(
		commissionRepo,
		d.Notifier,
		d.Audit,
		d.Log,
	)

	settleCommissionUC := ucCommission.NewSettleCommission(
		commissionRepo,
		d.Notifier,
		d.Receipts,
		d.Audit,
		d.Log,
	)

	listCommissionsUC := ucCommission.NewListCommissions(commissionRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg, d.Log)
	meHandler := handlers.NewMeHandler(d.DB)

	serviceHandler := handlers.NewServiceHandler(d.DB)
	workerHandler := handlers.NewWorkerHandler(d.DB, d.Log)
	clientHandler := handlers.NewClientHandler(d.DB)

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC, d.Log)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateStatusUC,
		cancelAppointmentUC,
		rescheduleAppointmentUC,
		listAppointmentsUC,
		d.Log,
	)

	commissionHandler := handlers.NewCommissionHandler(
		aggregateCommissionUC,
		settleCommissionUC,
		listCommissionsUC,
		d.Log,
	)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, d.Log)

	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(d.DB), d.Log)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.GET("/workers", workerHandler.List)
		api.GET("/availability", availabilityHandler.Get)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)

			// ------------------------------
			// COMMISSIONS
			// ------------------------------
			secured.POST("/commissions", commissionHandler.Create)
			secured.GET("/commissions", commissionHandler.List)
			secured.PATCH("/commissions/:id/settle", commissionHandler.Settle)

			// ------------------------------
			// NOTIFICATIONS
			// ------------------------------
			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

			// ------------------------------
			// STAFF
			// ------------------------------
			secured.GET("/workers/:id/schedule", workerHandler.GetSchedule)
			secured.PUT("/workers/:id/schedule", middleware.RequireRole(auth.RoleAdmin, auth.RoleWorker), workerHandler.UpdateSchedule)
			secured.GET("/clients", middleware.RequireRole(auth.RoleAdmin, auth.RoleWorker), clientHandler.List)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(auth.RoleAdmin))
			{
				admin.POST("/services", serviceHandler.Create)
				admin.PATCH("/services/:id", serviceHandler.Update)
				admin.POST("/workers", workerHandler.Create)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
