package transport

import (
	"time"

	"github.com/google/uuid"
)

// Stage is the pipeline stage of a sales opportunity.
type Stage string

const (
	StageProspecting   Stage = "prospecting"
	StageQualification Stage = "qualification"
	StageProposal      Stage = "proposal"
	StageNegotiation   Stage = "negotiation"
	StageClosedWon     Stage = "closed_won"
	StageClosedLost    Stage = "closed_lost"
)

// CreateOpportunityRequest creates an opportunity in prospecting stage.
type CreateOpportunityRequest struct {
	Name              string `json:"name" validate:"required,min=2,max=200"`
	ClientEmail       string `json:"clientEmail" validate:"required,email,max=320"`
	AmountCents       int64  `json:"amountCents" validate:"required,min=1"`
	ExpectedCloseDate string `json:"expectedCloseDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes             string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateOpportunityRequest updates the mutable fields of an opportunity.
type UpdateOpportunityRequest struct {
	Name              string `json:"name" validate:"required,min=2,max=200"`
	ClientEmail       string `json:"clientEmail" validate:"required,email,max=320"`
	AmountCents       int64  `json:"amountCents" validate:"required,min=1"`
	ExpectedCloseDate string `json:"expectedCloseDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes             string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateStageRequest moves an opportunity through the pipeline.
type UpdateStageRequest struct {
	Stage Stage `json:"stage" validate:"required,oneof=prospecting qualification proposal negotiation closed_won closed_lost"`
}

// OpportunityResponse is the admin representation of an opportunity.
type OpportunityResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	ClientEmail       string    `json:"clientEmail"`
	Stage             Stage     `json:"stage"`
	AmountCents       int64     `json:"amountCents"`
	ProbabilityBps    int       `json:"probabilityBps"`
	WeightedCents     int64     `json:"weightedCents"`
	ExpectedCloseDate *string   `json:"expectedCloseDate,omitempty"`
	Notes             *string   `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// OpportunityListResponse is the admin listing.
type OpportunityListResponse struct {
	Items []OpportunityResponse `json:"items"`
	Total int                   `json:"total"`
}

// StageSummary aggregates the open pipeline for a single stage.
type StageSummary struct {
	Stage          Stage `json:"stage"`
	Count          int   `json:"count"`
	AmountCents    int64 `json:"amountCents"`
	ProbabilityBps int   `json:"probabilityBps"`
	WeightedCents  int64 `json:"weightedCents"`
}

// PipelineSummaryResponse is the weighted pipeline overview.
type PipelineSummaryResponse struct {
	Stages             []StageSummary `json:"stages"`
	TotalAmountCents   int64          `json:"totalAmountCents"`
	TotalWeightedCents int64          `json:"totalWeightedCents"`
}
