package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nexus_backend/internal/events"
	"nexus_backend/internal/projects/repository"
	"nexus_backend/internal/projects/transport"
	"nexus_backend/platform/apperr"
	"nexus_backend/platform/sanitize"

	"github.com/google/uuid"
)

const dateFormat = "2006-01-02"

// validTransitions is the project lifecycle. Review can bounce back to
// in_progress when the client asks for changes. Maintenance and cancelled
// are terminal.
var validTransitions = map[transport.ProjectStatus][]transport.ProjectStatus{
	transport.StatusPlanning:    {transport.StatusInProgress, transport.StatusCancelled},
	transport.StatusInProgress:  {transport.StatusReview, transport.StatusCancelled},
	transport.StatusReview:      {transport.StatusInProgress, transport.StatusDelivered, transport.StatusCancelled},
	transport.StatusDelivered:   {transport.StatusMaintenance, transport.StatusCancelled},
	transport.StatusMaintenance: {},
	transport.StatusCancelled:   {},
}

// Service provides business logic for client projects.
type Service struct {
	repo     *repository.Repository
	eventBus events.Bus
}

func New(repo *repository.Repository, eventBus events.Bus) *Service {
	return &Service{repo: repo, eventBus: eventBus}
}

func (s *Service) Create(ctx context.Context, req transport.CreateProjectRequest) (repository.Project, error) {
	params, err := buildParams(req.Name, req.ClientEmail, req.ServiceType, req.BudgetCents, req.Deadline, req.Notes)
	if err != nil {
		return repository.Project{}, err
	}

	project, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Project{}, apperr.Wrap(apperr.KindInternal, "failed to create project", err)
	}
	return project, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateProjectRequest) (repository.Project, error) {
	params, err := buildParams(req.Name, req.ClientEmail, req.ServiceType, req.BudgetCents, req.Deadline, req.Notes)
	if err != nil {
		return repository.Project{}, err
	}

	project, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Project{}, apperr.NotFound("project not found")
		}
		return repository.Project{}, apperr.Wrap(apperr.KindInternal, "failed to update project", err)
	}
	return project, nil
}

func (s *Service) List(ctx context.Context, status *transport.ProjectStatus, clientEmail string, limit int) ([]repository.Project, error) {
	filters := repository.ListFilters{Limit: limit}
	if status != nil {
		value := string(*status)
		filters.Status = &value
	}
	if clientEmail != "" {
		email := sanitize.Email(clientEmail)
		filters.ClientEmail = &email
	}

	projects, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list projects", err)
	}
	return projects, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Project{}, apperr.NotFound("project not found")
		}
		return repository.Project{}, apperr.Wrap(apperr.KindInternal, "failed to load project", err)
	}
	return project, nil
}

// UpdateStatus moves a project through its lifecycle, publishing the change.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus transport.ProjectStatus) (repository.Project, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return repository.Project{}, err
	}

	oldStatus := transport.ProjectStatus(current.Status)
	if oldStatus == newStatus {
		return current, nil
	}
	if !transitionAllowed(oldStatus, newStatus) {
		return repository.Project{}, apperr.Validation(
			fmt.Sprintf("cannot move project from %s to %s", oldStatus, newStatus))
	}

	project, err := s.repo.UpdateStatus(ctx, id, string(newStatus))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Project{}, apperr.NotFound("project not found")
		}
		return repository.Project{}, apperr.Wrap(apperr.KindInternal, "failed to update project status", err)
	}

	s.eventBus.Publish(ctx, events.ProjectStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		ProjectID: id,
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
	})

	return project, nil
}

func buildParams(name, clientEmail, serviceType string, budgetCents *int64, deadline, notes string) (repository.Params, error) {
	params := repository.Params{
		Name:        sanitize.Text(name),
		ClientEmail: sanitize.Email(clientEmail),
		ServiceType: serviceType,
		BudgetCents: budgetCents,
	}

	if deadline != "" {
		parsed, err := time.Parse(dateFormat, deadline)
		if err != nil {
			return repository.Params{}, apperr.Validation("deadline must be formatted YYYY-MM-DD")
		}
		params.Deadline = &parsed
	}
	if cleaned := sanitize.Text(notes); cleaned != "" {
		params.Notes = &cleaned
	}
	return params, nil
}

func transitionAllowed(from, to transport.ProjectStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
