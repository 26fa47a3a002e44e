package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexus_backend/internal/adapters/storage"
	"nexus_backend/internal/assistant"
	"nexus_backend/internal/auth"
	"nexus_backend/internal/bookings"
	"nexus_backend/internal/catalog"
	"nexus_backend/internal/clients"
	"nexus_backend/internal/email"
	"nexus_backend/internal/events"
	apphttp "nexus_backend/internal/http"
	"nexus_backend/internal/http/router"
	"nexus_backend/internal/invoices"
	"nexus_backend/internal/notification"
	"nexus_backend/internal/notification/sse"
	"nexus_backend/internal/opportunities"
	"nexus_backend/internal/partners"
	"nexus_backend/internal/projects"
	"nexus_backend/internal/quoterequests"
	"nexus_backend/internal/quotes"
	"nexus_backend/internal/scheduler"
	"nexus_backend/internal/showcase"
	"nexus_backend/platform/config"
	"nexus_backend/platform/db"
	"nexus_backend/platform/logger"
	"nexus_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sender := initEmailSender(cfg, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	store := initStorage(ctx, cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events and serves the SSE feed
	notificationModule := notification.New(sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	sseService := sse.New(log)
	defer sseService.Close()
	notificationModule.SetSSE(sseService)

	authModule := auth.NewModule(pool, cfg, val, eventBus, log)
	quoteRequestsModule := quoterequests.NewModule(pool, val, eventBus)
	bookingsModule := bookings.NewModule(pool, val, eventBus, reminderScheduler, log)
	partnersModule := partners.NewModule(pool, val, eventBus)
	quotesModule := quotes.NewModule(pool, val, eventBus, store, cfg, partnersModule.Service)
	invoicesModule := invoices.NewModule(pool, val, eventBus, store, cfg)
	clientsModule := clients.NewModule(pool, val, eventBus, quoteRequestsModule.Repo, bookingsModule.Repo)
	projectsModule := projects.NewModule(pool, val, eventBus)
	opportunitiesModule := opportunities.NewModule(pool, val, eventBus)
	catalogModule := catalog.NewModule()
	showcaseModule := showcase.NewModule()

	// Partner contact lookup so accepted-quote emails reach the right partner
	notificationModule.SetPartnerContactReader(partnersModule.Service)

	modules := []apphttp.Module{
		authModule,
		quoteRequestsModule,
		bookingsModule,
		clientsModule,
		invoicesModule,
		projectsModule,
		opportunitiesModule,
		partnersModule,
		quotesModule,
		catalogModule,
		showcaseModule,
		notificationModule,
	}

	if cfg.IsAssistantEnabled() {
		assistantModule, err := assistant.NewModule(cfg, val, log)
		if err != nil {
			log.Error("failed to initialize assistant module", "error", err)
			panic("failed to initialize assistant module: " + err.Error())
		}
		modules = append(modules, assistantModule)
		log.Info("assistant module enabled", "model", cfg.GetAssistantModel())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules:  modules,
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initEmailSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() || cfg.GetSMTPHost() == "" {
		log.Warn("SMTP not configured; outgoing email disabled")
		return email.NoopSender{}
	}
	return email.NewSMTPSender(cfg)
}

func initStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage.DocumentStore {
	if !cfg.IsStorageEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; PDF storage disabled")
		return nil
	}

	store, err := storage.NewMinIOStore(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}

	for _, bucket := range []string{cfg.GetBucketQuotePDFs(), cfg.GetBucketInvoicePDFs()} {
		if err := withRetry(ctx, log, "ensure bucket "+bucket, 5, 2*time.Second, func() error {
			return store.EnsureBucketExists(ctx, bucket)
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
	}

	log.Info("storage service initialized",
		"quotePDFsBucket", cfg.GetBucketQuotePDFs(),
		"invoicePDFsBucket", cfg.GetBucketInvoicePDFs(),
	)
	return store
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ReminderScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; booking reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
