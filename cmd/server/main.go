package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dukerupert/outreach/internal"
	"github.com/dukerupert/outreach/internal/email"
	"github.com/dukerupert/outreach/internal/events"
	"github.com/dukerupert/outreach/internal/handler/api"
	"github.com/dukerupert/outreach/internal/middleware"
	"github.com/dukerupert/outreach/internal/postgres"
	"github.com/dukerupert/outreach/internal/router"
	"github.com/dukerupert/outreach/internal/routes"
	"github.com/dukerupert/outreach/internal/scheduler"
	"github.com/dukerupert/outreach/internal/telemetry"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize Sentry
	flushSentry, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer flushSentry()

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	// Verify database connection
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	campaignStore := postgres.NewCampaignStore(pool)
	prospectStore := postgres.NewProspectStore(pool)

	// Metrics share one registry so /metrics exposes both HTTP and job series
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewMetrics("outreach", registry)
	appMetrics := telemetry.NewMetrics("outreach", registry)

	// Initialize mail transport
	logger.Info("Initializing email provider...", "provider", cfg.Email.Provider)
	sender, err := email.NewSender(email.ProviderConfig{
		Name: cfg.Email.Provider,
		SMTP: email.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     int(cfg.Email.Port),
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
		},
		PostmarkToken: cfg.Email.PostmarkToken,
		ResendAPIKey:  cfg.Email.ResendAPIKey,
		From:          cfg.Email.From,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize email provider: %w", err)
	}
	if smtp, ok := sender.(*email.SMTPSender); ok {
		// Not fatal: the relay may come up after us, and each send retries the dial
		if err := smtp.TestConnection(ctx); err != nil {
			logger.Warn("SMTP connection check failed", "host", cfg.Email.Host, "error", err)
		}
	}
	transport := email.NewTransport(sender, email.TransportConfig{
		Provider: cfg.Email.Provider,
		From:     cfg.Email.From,
		FromName: cfg.Email.FromName,
		Timeout:  cfg.Email.SendTimeout,
	}, appMetrics, logger)

	// Initialize job event publisher
	var publisher events.Publisher = events.Nop{}
	if cfg.NATS.URL != "" {
		logger.Info("Connecting to NATS...", "url", cfg.NATS.URL)
		natsPub, err := events.ConnectNATS(cfg.NATS.URL, cfg.NATS.SubjectPrefix, logger)
		if err != nil {
			return fmt.Errorf("nats initialization failed: %w", err)
		}
		defer natsPub.Close()
		publisher = natsPub
	}

	// Initialize scheduler
	sched := scheduler.New(campaignStore, prospectStore, transport, scheduler.Config{
		Metrics: appMetrics,
		Events:  publisher,
	}, logger)

	// ==========================================================================
	// Build routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		httpMetrics.Middleware,
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
	)
	r.Use(
		middleware.RequestID,
		telemetry.SentryMiddleware(),
		router.CORS(cfg.CORSOrigins),
	)

	apiDeps := routes.APIDeps{
		Campaigns: api.NewCampaignHandler(campaignStore, logger),
		Prospects: api.NewProspectHandler(prospectStore, logger),
		Jobs:      api.NewJobHandler(sched, logger),
		Health:    api.NewHealthHandler(pool),
	}
	routes.RegisterAPIRoutes(r, apiDeps)
	routes.RegisterOpsRoutes(r, apiDeps, routes.OpsDeps{Metrics: httpMetrics.Handler()})

	// ==========================================================================
	// Start server
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	// Pending sends are dropped; jobs are not persisted across restarts
	if err := sched.Shutdown(shutdownCtx); err != nil {
		logger.Error("Scheduler shutdown incomplete", "error", err, "firing", sched.Registry().Len())
	}

	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
