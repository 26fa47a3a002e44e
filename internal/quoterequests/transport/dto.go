package transport

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the workflow status of a quote request.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusContacted  RequestStatus = "contacted"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusArchived   RequestStatus = "archived"
)

// SubmitQuoteRequestRequest is the public quote form payload.
type SubmitQuoteRequestRequest struct {
	Name           string   `json:"name" validate:"required,min=2,max=200"`
	Email          string   `json:"email" validate:"required,email,max=320"`
	Phone          string   `json:"phone,omitempty" validate:"omitempty,max=30"`
	BusinessType   string   `json:"businessType,omitempty" validate:"omitempty,max=100"`
	Services       []string `json:"services" validate:"required,min=1,dive,min=1,max=50"`
	ProjectDetails string   `json:"projectDetails,omitempty" validate:"omitempty,max=5000"`
	Budget         string   `json:"budget,omitempty" validate:"omitempty,max=50"`
	Timeline       string   `json:"timeline,omitempty" validate:"omitempty,max=50"`
	ConsentGiven   bool     `json:"consentGiven" validate:"required,eq=true"`
}

// UpdateStatusRequest moves a quote request through its workflow.
type UpdateStatusRequest struct {
	Status RequestStatus `json:"status" validate:"required,oneof=pending contacted in_progress completed archived"`
}

// QuoteRequestResponse is the admin view of a quote request.
type QuoteRequestResponse struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          *string       `json:"phone,omitempty"`
	BusinessType   *string       `json:"businessType,omitempty"`
	Services       []string      `json:"services"`
	ProjectDetails *string       `json:"projectDetails,omitempty"`
	Budget         *string       `json:"budget,omitempty"`
	Timeline       *string       `json:"timeline,omitempty"`
	Status         RequestStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// QuoteRequestListResponse is the paginated admin listing.
type QuoteRequestListResponse struct {
	Items []QuoteRequestResponse `json:"items"`
	Total int                    `json:"total"`
}

// SubmitQuoteRequestResponse acknowledges a public submission.
type SubmitQuoteRequestResponse struct {
	ID     uuid.UUID     `json:"id"`
	Status RequestStatus `json:"status"`
}

// WizardStepResponse describes one step of the quote wizard flow.
type WizardStepResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Component string `json:"component"`
}

// WizardFlowResponse is the resolved wizard flow for a service type.
type WizardFlowResponse struct {
	ServiceType string               `json:"serviceType"`
	StepCount   int                  `json:"stepCount"`
	Steps       []WizardStepResponse `json:"steps"`
}
