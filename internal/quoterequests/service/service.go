package service

import (
	"context"
	"errors"
	"fmt"

	"nexus_backend/internal/events"
	"nexus_backend/internal/quoterequests/repository"
	"nexus_backend/internal/quoterequests/transport"
	"nexus_backend/internal/quoterequests/wizard"
	"nexus_backend/platform/apperr"
	"nexus_backend/platform/phone"
	"nexus_backend/platform/sanitize"

	"github.com/google/uuid"
)

// validTransitions describes the quote request workflow. Archived requests
// stay archived, completed requests can only be archived.
var validTransitions = map[transport.RequestStatus][]transport.RequestStatus{
	transport.StatusPending:    {transport.StatusContacted, transport.StatusArchived},
	transport.StatusContacted:  {transport.StatusInProgress, transport.StatusArchived},
	transport.StatusInProgress: {transport.StatusCompleted, transport.StatusArchived},
	transport.StatusCompleted:  {transport.StatusArchived},
	transport.StatusArchived:   {},
}

// Service provides business logic for public quote requests.
type Service struct {
	repo     *repository.Repository
	eventBus events.Bus
}

func New(repo *repository.Repository, eventBus events.Bus) *Service {
	return &Service{repo: repo, eventBus: eventBus}
}

// Submit stores a public quote form submission after sanitizing its fields.
// Consent is enforced at the transport layer; the service never stores a
// request without it.
func (s *Service) Submit(ctx context.Context, req transport.SubmitQuoteRequestRequest) (repository.QuoteRequest, error) {
	if !req.ConsentGiven {
		return repository.QuoteRequest{}, apperr.Validation("consent is required to submit a quote request")
	}

	params := repository.CreateParams{
		Name:           sanitize.Text(req.Name),
		Email:          sanitize.Email(req.Email),
		Phone:          sanitize.TextPtr(optional(req.Phone)),
		BusinessType:   sanitize.TextPtr(optional(req.BusinessType)),
		ProjectDetails: sanitize.TextPtr(optional(req.ProjectDetails)),
		Budget:         optional(req.Budget),
		Timeline:       optional(req.Timeline),
	}

	if params.Phone != nil {
		normalized := phone.NormalizeE164(*params.Phone)
		params.Phone = &normalized
	}

	params.Services = make([]string, 0, len(req.Services))
	for _, svc := range req.Services {
		if cleaned := sanitize.Text(svc); cleaned != "" {
			params.Services = append(params.Services, cleaned)
		}
	}
	if len(params.Services) == 0 {
		return repository.QuoteRequest{}, apperr.Validation("at least one service must be selected")
	}

	qr, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.QuoteRequest{}, apperr.Wrap(apperr.KindInternal, "failed to store quote request", err)
	}

	s.eventBus.Publish(ctx, events.QuoteRequestSubmitted{
		BaseEvent:      events.NewBaseEvent(),
		QuoteRequestID: qr.ID,
		Name:           qr.Name,
		Email:          qr.Email,
		Services:       qr.Services,
		Budget:         deref(qr.Budget),
		Timeline:       deref(qr.Timeline),
	})

	return qr, nil
}

// List returns quote requests for the admin dashboard, newest first.
func (s *Service) List(ctx context.Context, status *transport.RequestStatus, limit int) ([]repository.QuoteRequest, error) {
	filters := repository.ListFilters{Limit: limit}
	if status != nil {
		value := string(*status)
		filters.Status = &value
	}

	items, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list quote requests", err)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.QuoteRequest, error) {
	qr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.QuoteRequest{}, apperr.NotFound("quote request not found")
		}
		return repository.QuoteRequest{}, apperr.Wrap(apperr.KindInternal, "failed to load quote request", err)
	}
	return qr, nil
}

// UpdateStatus moves a quote request through its workflow, rejecting
// transitions the workflow does not allow.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus transport.RequestStatus) (repository.QuoteRequest, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return repository.QuoteRequest{}, err
	}

	oldStatus := transport.RequestStatus(current.Status)
	if oldStatus == newStatus {
		return current, nil
	}
	if !transitionAllowed(oldStatus, newStatus) {
		return repository.QuoteRequest{}, apperr.Validation(
			fmt.Sprintf("cannot move quote request from %s to %s", oldStatus, newStatus))
	}

	qr, err := s.repo.UpdateStatus(ctx, id, string(newStatus))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.QuoteRequest{}, apperr.NotFound("quote request not found")
		}
		return repository.QuoteRequest{}, apperr.Wrap(apperr.KindInternal, "failed to update quote request status", err)
	}

	s.eventBus.Publish(ctx, events.QuoteRequestStatusChanged{
		BaseEvent:      events.NewBaseEvent(),
		QuoteRequestID: qr.ID,
		OldStatus:      string(oldStatus),
		NewStatus:      string(newStatus),
	})

	return qr, nil
}

// ResolveWizardFlow returns the wizard steps for a service type, falling back
// to the vitrine flow for unrecognized tags.
func (s *Service) ResolveWizardFlow(serviceType string) (wizard.ServiceType, []wizard.Step) {
	return wizard.Resolve(serviceType)
}

func transitionAllowed(from, to transport.RequestStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
