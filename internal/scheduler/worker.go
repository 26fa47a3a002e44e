package scheduler

import (
	"context"
	"fmt"
	"time"

	bookingsrepo "nexus_backend/internal/bookings/repository"
	"nexus_backend/internal/events"
	"nexus_backend/platform/config"
	"nexus_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceSweeper flips sent invoices past their due date to overdue.
type InvoiceSweeper interface {
	MarkOverdue(ctx context.Context, asOf time.Time) (int, error)
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	bookings *bookingsrepo.Repository
	invoices InvoiceSweeper
	bus      events.Bus
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, invoices InvoiceSweeper, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetWorkerConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		bookings: bookingsrepo.New(pool),
		invoices: invoices,
		bus:      bus,
		log:      log,
	}

	mux.HandleFunc(TaskCallBookingReminder, w.handleCallBookingReminder)
	mux.HandleFunc(TaskInvoiceOverdueSweep, w.handleInvoiceOverdueSweep)

	return w, nil
}

// Run blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleCallBookingReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCallBookingReminderPayload(task)
	if err != nil {
		return err
	}

	bookingID, err := uuid.Parse(payload.BookingID)
	if err != nil {
		return err
	}

	booking, err := w.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	// Cancelled or still-pending bookings get no reminder.
	if booking.Status != "confirmed" {
		w.log.Info("skipping reminder for non-confirmed booking",
			"bookingId", booking.ID,
			"status", booking.Status,
		)
		return nil
	}

	if w.bus == nil {
		return nil
	}

	w.bus.Publish(ctx, events.CallBookingReminderDue{
		BaseEvent:   events.NewBaseEvent(),
		BookingID:   booking.ID,
		Name:        booking.Name,
		Email:       booking.Email,
		Phone:       booking.Phone,
		BookingDate: booking.BookingDate.Format("2006-01-02"),
		TimeSlot:    booking.TimeSlot,
		DurationMin: booking.DurationMin,
	})

	return nil
}

func (w *Worker) handleInvoiceOverdueSweep(ctx context.Context, _ *asynq.Task) error {
	flipped, err := w.invoices.MarkOverdue(ctx, time.Now())
	if err != nil {
		return err
	}
	if flipped > 0 {
		w.log.Info("overdue sweep flipped invoices", "count", flipped)
	}
	return nil
}

// NewSweepScheduler builds an asynq scheduler that enqueues the overdue sweep
// once an hour.
func NewSweepScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*asynq.Scheduler, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetQueueName()
	if queue == "" {
		queue = "default"
	}

	scheduler := asynq.NewScheduler(opt, nil)
	if _, err := scheduler.Register("@every 1h", NewInvoiceOverdueSweepTask(), asynq.Queue(queue)); err != nil {
		return nil, err
	}

	log.Info("overdue sweep scheduled", "interval", "1h")
	return scheduler, nil
}
