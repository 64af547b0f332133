package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
	billingStore "github.com/MrJamesThe3rd/fieldwork/internal/billing/store"
	"github.com/MrJamesThe3rd/fieldwork/internal/config"
	"github.com/MrJamesThe3rd/fieldwork/internal/customer"
	customerStore "github.com/MrJamesThe3rd/fieldwork/internal/customer/store"
	"github.com/MrJamesThe3rd/fieldwork/internal/database"
	"github.com/MrJamesThe3rd/fieldwork/internal/database/migrations"
	"github.com/MrJamesThe3rd/fieldwork/internal/export"
	fieldworkHttp "github.com/MrJamesThe3rd/fieldwork/internal/http"
	customerHandler "github.com/MrJamesThe3rd/fieldwork/internal/http/customer"
	exportHandler "github.com/MrJamesThe3rd/fieldwork/internal/http/export"
	healthHandler "github.com/MrJamesThe3rd/fieldwork/internal/http/health"
	invoiceHandler "github.com/MrJamesThe3rd/fieldwork/internal/http/invoice"
	jobHandler "github.com/MrJamesThe3rd/fieldwork/internal/http/job"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/middleware"
	technicianHandler "github.com/MrJamesThe3rd/fieldwork/internal/http/technician"
	"github.com/MrJamesThe3rd/fieldwork/internal/importer"
	"github.com/MrJamesThe3rd/fieldwork/internal/job"
	jobStore "github.com/MrJamesThe3rd/fieldwork/internal/job/store"
	"github.com/MrJamesThe3rd/fieldwork/internal/technician"
	technicianStore "github.com/MrJamesThe3rd/fieldwork/internal/technician/store"
)

const (
	shutdownTimeout    = 15 * time.Second
	limiterCleanupTick = 5 * time.Minute
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString(), cfg.PoolOptions())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := migrations.Apply(ctx, db); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	var (
		customerService   = customer.NewService(customerStore.New(db))
		technicianService = technician.NewService(technicianStore.New(db))
		jobService        = job.NewService(jobStore.New(db), customerService, technicianService)
		billingService    = billing.NewService(billingStore.New(db))
		exportService     = export.NewService(billingService)
	)

	handlers := fieldworkHttp.Handlers{
		Health:      healthHandler.NewHandler(db, cfg.App.Version),
		Customers:   customerHandler.NewHandler(customerService, importer.NewParser()),
		Technicians: technicianHandler.NewHandler(technicianService),
		Jobs:        jobHandler.NewHandler(jobService, cfg.Billing.DefaultTaxRate),
		Invoices:    invoiceHandler.NewHandler(billingService, exportService),
		Export:      exportHandler.NewHandler(exportService),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	limiter.StartCleanup(ctx, limiterCleanupTick)

	opts := fieldworkHttp.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimiter: limiter,
		Metrics:     cfg.Metrics.Enabled,
	}

	if cfg.Auth.JWTSecret != "" {
		opts.Auth = middleware.NewAuth(cfg.Auth.JWTSecret)
	} else {
		slog.Warn("AUTH_JWT_SECRET not set, write endpoints are unauthenticated")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           http.TimeoutHandler(fieldworkHttp.New(handlers, opts), cfg.Server.Timeout, "request timed out"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "name", cfg.App.Name, "version", cfg.App.Version, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
