package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/receipt"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if !timezone.IsValid(cfg.Timezone) {
		zl.Fatal("invalid SALON_TIMEZONE", zap.String("timezone", cfg.Timezone))
	}
	timezone.SetDefault(cfg.Timezone)

	grid, err := cfg.Grid()
	if err != nil {
		zl.Fatal("invalid slot grid", zap.Error(err))
	}

	db, err := dbpkg.NewDB(cfg, zl)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}
	if err := dbpkg.EnsureAdmin(db, cfg, zl); err != nil {
		zl.Fatal("failed to seed admin", zap.Error(err))
	}

	// --------------------------------------------------
	// Notifications: rows in Postgres, live fan-out via Redis
	// --------------------------------------------------
	var publisher notify.Publisher = notify.NopPublisher{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			zl.Warn("redis unreachable, live notifications disabled until it recovers", zap.Error(err))
		}
		cancel()
		publisher = notify.NewRedisPublisher(rdb)
	}

	notifier := notify.NewDispatcher(
		infraRepo.NewNotificationGormRepository(db),
		publisher,
		zl.Named("notify"),
		cfg.NotificationQueueSize,
	)

	auditDispatcher := audit.NewDispatcher(audit.New(db), zl.Named("audit"))

	// --------------------------------------------------
	// Payment gateway and receipt archive are optional
	// --------------------------------------------------
	var payments payment.Verifier = payment.Disabled{}
	if cfg.MercadoPagoAccessToken != "" {
		mp, err := payment.NewMercadoPagoVerifier(cfg.MercadoPagoAccessToken)
		if err != nil {
			zl.Fatal("invalid mercadopago configuration", zap.Error(err))
		}
		payments = mp
	}

	var receipts receipt.Archive = receipt.NopArchive{}
	if cfg.ReceiptsBucket != "" {
		receipts = receipt.NewS3Archive(
			cfg.ReceiptsRegion,
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			cfg.ReceiptsBucket,
		)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      zl,
		Grid:     grid,
		Notifier: notifier,
		Audit:    auditDispatcher,
		Payments: payments,
		Receipts: receipts,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}

	// drain after the last request so no side effect is lost
	notifier.Close()
	auditDispatcher.Close()
	zl.Info("server stopped")
}
