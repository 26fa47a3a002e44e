package service

import (
	"context"

	bookingrepo "nexus_backend/internal/bookings/repository"
	"nexus_backend/internal/clients/repository"
	"nexus_backend/internal/clients/transport"
	"nexus_backend/internal/events"
	quoterepo "nexus_backend/internal/quoterequests/repository"
	"nexus_backend/platform/apperr"
	"nexus_backend/platform/sanitize"

	"golang.org/x/sync/errgroup"
)

// QuoteSource provides the quote request rows feeding the aggregation.
type QuoteSource interface {
	ListAll(ctx context.Context) ([]quoterepo.QuoteRequest, error)
}

// BookingSource provides the call booking rows feeding the aggregation.
type BookingSource interface {
	ListAll(ctx context.Context) ([]bookingrepo.Booking, error)
}

// Service builds the derived client list for the admin dashboard.
type Service struct {
	statusRepo *repository.Repository
	quotes     QuoteSource
	bookings   BookingSource
	eventBus   events.Bus
}

func New(statusRepo *repository.Repository, quotes QuoteSource, bookings BookingSource, eventBus events.Bus) *Service {
	return &Service{
		statusRepo: statusRepo,
		quotes:     quotes,
		bookings:   bookings,
		eventBus:   eventBus,
	}
}

// List recomputes the derived client list. The three sources are fetched
// concurrently; the merge itself is pure.
func (s *Service) List(ctx context.Context, statusFilter *transport.ClientStatus) ([]Client, error) {
	var (
		quotes   []quoterepo.QuoteRequest
		bookings []bookingrepo.Booking
		statuses []repository.ClientStatus
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quotes, err = s.quotes.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = s.bookings.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = s.statusRepo.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load client sources", err)
	}

	clients := Aggregate(quotes, bookings, statuses)

	if statusFilter == nil {
		return clients, nil
	}

	filtered := clients[:0]
	for _, c := range clients {
		if c.Status == string(*statusFilter) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// UpsertStatus stores the sales status for an email, keyed on its normalized
// form, and publishes the change.
func (s *Service) UpsertStatus(ctx context.Context, req transport.UpsertStatusRequest) (repository.ClientStatus, error) {
	email := sanitize.Email(req.Email)
	if email == "" {
		return repository.ClientStatus{}, apperr.Validation("email is required")
	}

	var notes *string
	if cleaned := sanitize.Text(req.Notes); cleaned != "" {
		notes = &cleaned
	}

	cs, err := s.statusRepo.Upsert(ctx, email, string(req.Status), notes)
	if err != nil {
		return repository.ClientStatus{}, apperr.Wrap(apperr.KindInternal, "failed to store client status", err)
	}

	s.eventBus.Publish(ctx, events.ClientStatusChanged{
		BaseEvent:   events.NewBaseEvent(),
		ClientEmail: cs.Email,
		NewStatus:   cs.Status,
	})

	return cs, nil
}
