package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nexus_backend/internal/events"
	"nexus_backend/internal/opportunities/repository"
	"nexus_backend/internal/opportunities/transport"
	"nexus_backend/internal/shared/money"
	"nexus_backend/platform/apperr"
	"nexus_backend/platform/sanitize"

	"github.com/google/uuid"
)

const dateFormat = "2006-01-02"

// stageProbabilities maps each stage to its win probability in basis points.
// Weighted pipeline value is amount × probability.
var stageProbabilities = map[transport.Stage]int{
	transport.StageProspecting:   1000,
	transport.StageQualification: 2500,
	transport.StageProposal:      5000,
	transport.StageNegotiation:   7500,
	transport.StageClosedWon:     10000,
	transport.StageClosedLost:    0,
}

// validTransitions is the pipeline stage machine. Stages advance one at a
// time; a deal can be lost from any open stage. Closed stages are terminal.
var validTransitions = map[transport.Stage][]transport.Stage{
	transport.StageProspecting:   {transport.StageQualification, transport.StageClosedLost},
	transport.StageQualification: {transport.StageProposal, transport.StageClosedLost},
	transport.StageProposal:      {transport.StageNegotiation, transport.StageClosedLost},
	transport.StageNegotiation:   {transport.StageClosedWon, transport.StageClosedLost},
	transport.StageClosedWon:     {},
	transport.StageClosedLost:    {},
}

// pipelineOrder fixes the stage ordering of the summary payload.
var pipelineOrder = []transport.Stage{
	transport.StageProspecting,
	transport.StageQualification,
	transport.StageProposal,
	transport.StageNegotiation,
}

// Service provides business logic for the sales pipeline.
type Service struct {
	repo     *repository.Repository
	eventBus events.Bus
}

func New(repo *repository.Repository, eventBus events.Bus) *Service {
	return &Service{repo: repo, eventBus: eventBus}
}

// Probability returns the win probability of a stage in basis points.
func Probability(stage transport.Stage) int {
	return stageProbabilities[stage]
}

// WeightedValue returns the probability-weighted value of an opportunity.
func WeightedValue(amountCents int64, stage transport.Stage) int64 {
	return money.ApplyBps(amountCents, stageProbabilities[stage])
}

func (s *Service) Create(ctx context.Context, req transport.CreateOpportunityRequest) (repository.Opportunity, error) {
	params, err := buildParams(req.Name, req.ClientEmail, req.AmountCents, req.ExpectedCloseDate, req.Notes)
	if err != nil {
		return repository.Opportunity{}, err
	}

	opp, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Opportunity{}, apperr.Wrap(apperr.KindInternal, "failed to create opportunity", err)
	}
	return opp, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateOpportunityRequest) (repository.Opportunity, error) {
	params, err := buildParams(req.Name, req.ClientEmail, req.AmountCents, req.ExpectedCloseDate, req.Notes)
	if err != nil {
		return repository.Opportunity{}, err
	}

	opp, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Opportunity{}, apperr.NotFound("opportunity not found")
		}
		return repository.Opportunity{}, apperr.Wrap(apperr.KindInternal, "failed to update opportunity", err)
	}
	return opp, nil
}

func (s *Service) List(ctx context.Context, stage *transport.Stage, limit int) ([]repository.Opportunity, error) {
	filters := repository.ListFilters{Limit: limit}
	if stage != nil {
		value := string(*stage)
		filters.Stage = &value
	}

	opportunities, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list opportunities", err)
	}
	return opportunities, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Opportunity, error) {
	opp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Opportunity{}, apperr.NotFound("opportunity not found")
		}
		return repository.Opportunity{}, apperr.Wrap(apperr.KindInternal, "failed to load opportunity", err)
	}
	return opp, nil
}

// UpdateStage moves an opportunity through the pipeline, publishing the change.
func (s *Service) UpdateStage(ctx context.Context, id uuid.UUID, newStage transport.Stage) (repository.Opportunity, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return repository.Opportunity{}, err
	}

	oldStage := transport.Stage(current.Stage)
	if oldStage == newStage {
		return current, nil
	}
	if !transitionAllowed(oldStage, newStage) {
		return repository.Opportunity{}, apperr.Validation(
			fmt.Sprintf("cannot move opportunity from %s to %s", oldStage, newStage))
	}

	opp, err := s.repo.UpdateStage(ctx, id, string(newStage))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Opportunity{}, apperr.NotFound("opportunity not found")
		}
		return repository.Opportunity{}, apperr.Wrap(apperr.KindInternal, "failed to update opportunity stage", err)
	}

	s.eventBus.Publish(ctx, events.OpportunityStageChanged{
		BaseEvent:     events.NewBaseEvent(),
		OpportunityID: id,
		OldStage:      string(oldStage),
		NewStage:      string(newStage),
	})

	return opp, nil
}

// PipelineSummary aggregates the open pipeline per stage with weighted values.
func (s *Service) PipelineSummary(ctx context.Context) (transport.PipelineSummaryResponse, error) {
	open, err := s.repo.ListOpen(ctx)
	if err != nil {
		return transport.PipelineSummaryResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load pipeline", err)
	}
	return Summarize(open), nil
}

// Summarize builds the weighted pipeline overview from open opportunities.
// Pure so the weighting math is testable without a database.
func Summarize(open []repository.Opportunity) transport.PipelineSummaryResponse {
	byStage := make(map[transport.Stage]*transport.StageSummary, len(pipelineOrder))
	for _, stage := range pipelineOrder {
		byStage[stage] = &transport.StageSummary{
			Stage:          stage,
			ProbabilityBps: stageProbabilities[stage],
		}
	}

	resp := transport.PipelineSummaryResponse{}
	for _, opp := range open {
		summary, ok := byStage[transport.Stage(opp.Stage)]
		if !ok {
			continue
		}
		summary.Count++
		summary.AmountCents += opp.AmountCents
		weighted := WeightedValue(opp.AmountCents, transport.Stage(opp.Stage))
		summary.WeightedCents += weighted

		resp.TotalAmountCents += opp.AmountCents
		resp.TotalWeightedCents += weighted
	}

	resp.Stages = make([]transport.StageSummary, 0, len(pipelineOrder))
	for _, stage := range pipelineOrder {
		resp.Stages = append(resp.Stages, *byStage[stage])
	}
	return resp
}

func buildParams(name, clientEmail string, amountCents int64, expectedClose, notes string) (repository.Params, error) {
	params := repository.Params{
		Name:        sanitize.Text(name),
		ClientEmail: sanitize.Email(clientEmail),
		AmountCents: amountCents,
	}

	if expectedClose != "" {
		parsed, err := time.Parse(dateFormat, expectedClose)
		if err != nil {
			return repository.Params{}, apperr.Validation("expectedCloseDate must be formatted YYYY-MM-DD")
		}
		params.ExpectedCloseDate = &parsed
	}
	if cleaned := sanitize.Text(notes); cleaned != "" {
		params.Notes = &cleaned
	}
	return params, nil
}

func transitionAllowed(from, to transport.Stage) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
