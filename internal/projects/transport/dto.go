package transport

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus is the lifecycle status of a client project.
type ProjectStatus string

const (
	StatusPlanning    ProjectStatus = "planning"
	StatusInProgress  ProjectStatus = "in_progress"
	StatusReview      ProjectStatus = "review"
	StatusDelivered   ProjectStatus = "delivered"
	StatusMaintenance ProjectStatus = "maintenance"
	StatusCancelled   ProjectStatus = "cancelled"
)

// CreateProjectRequest creates a project in planning status.
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	ClientEmail string `json:"clientEmail" validate:"required,email,max=320"`
	ServiceType string `json:"serviceType" validate:"required,oneof=vitrine ecommerce booking custom"`
	BudgetCents *int64 `json:"budgetCents,omitempty" validate:"omitempty,min=0"`
	Deadline    string `json:"deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes       string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateProjectRequest updates the mutable fields of a project.
type UpdateProjectRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	ClientEmail string `json:"clientEmail" validate:"required,email,max=320"`
	ServiceType string `json:"serviceType" validate:"required,oneof=vitrine ecommerce booking custom"`
	BudgetCents *int64 `json:"budgetCents,omitempty" validate:"omitempty,min=0"`
	Deadline    string `json:"deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes       string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateStatusRequest moves a project through its lifecycle.
type UpdateStatusRequest struct {
	Status ProjectStatus `json:"status" validate:"required,oneof=planning in_progress review delivered maintenance cancelled"`
}

// ProjectResponse is the admin representation of a project.
type ProjectResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	ClientEmail string        `json:"clientEmail"`
	ServiceType string        `json:"serviceType"`
	Status      ProjectStatus `json:"status"`
	BudgetCents *int64        `json:"budgetCents,omitempty"`
	Deadline    *string       `json:"deadline,omitempty"`
	Notes       *string       `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ProjectListResponse is the admin listing.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
	Total int               `json:"total"`
}
