package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexus_backend/internal/email"
	"nexus_backend/internal/events"
	invoicesrepo "nexus_backend/internal/invoices/repository"
	invoicesservice "nexus_backend/internal/invoices/service"
	"nexus_backend/internal/notification"
	"nexus_backend/internal/partners"
	"nexus_backend/internal/scheduler"
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
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.GetQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)

	var sender email.Sender = email.NoopSender{}
	if cfg.GetEmailEnabled() && cfg.GetSMTPHost() != "" {
		sender = email.NewSMTPSender(cfg)
	} else {
		log.Warn("SMTP not configured; outgoing email disabled")
	}

	// Reminder emails go through the same notification handlers as the API.
	val := validator.New()
	notificationModule := notification.New(sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	partnersModule := partners.NewModule(pool, val, eventBus)
	notificationModule.SetPartnerContactReader(partnersModule.Service)

	// The overdue sweep only touches invoice statuses, no PDF storage needed.
	invoicesSvc := invoicesservice.New(invoicesrepo.New(pool), eventBus, nil, cfg, cfg.GetBucketInvoicePDFs())

	sweeper, err := scheduler.NewSweepScheduler(cfg, log)
	if err != nil {
		log.Error("failed to initialize sweep scheduler", "error", err)
		panic("failed to initialize sweep scheduler: " + err.Error())
	}
	go func() {
		if err := sweeper.Run(); err != nil {
			log.Error("sweep scheduler stopped", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		sweeper.Shutdown()
	}()

	worker, err := scheduler.NewWorker(cfg, pool, invoicesSvc, eventBus, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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
