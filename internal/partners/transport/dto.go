package transport

import (
	"time"

	"github.com/google/uuid"
)

// ProspectStage is the working stage of a partner-owned prospect.
type ProspectStage string

const (
	ProspectNew       ProspectStage = "new"
	ProspectContacted ProspectStage = "contacted"
	ProspectQualified ProspectStage = "qualified"
	ProspectConverted ProspectStage = "converted"
	ProspectLost      ProspectStage = "lost"
)

// CommissionStatus tracks payout of a partner commission.
type CommissionStatus string

const (
	CommissionPending CommissionStatus = "pending"
	CommissionPaid    CommissionStatus = "paid"
)

// CreatePartnerRequest enrolls a portal user as a sales partner.
type CreatePartnerRequest struct {
	UserID            uuid.UUID `json:"userId" validate:"required"`
	DisplayName       string    `json:"displayName" validate:"required,min=2,max=200"`
	Company           string    `json:"company,omitempty" validate:"omitempty,max=200"`
	CommissionRateBps int       `json:"commissionRateBps" validate:"required,min=1,max=5000"`
}

// UpdatePartnerRequest updates the partner record.
type UpdatePartnerRequest struct {
	DisplayName       string `json:"displayName" validate:"required,min=2,max=200"`
	Company           string `json:"company,omitempty" validate:"omitempty,max=200"`
	CommissionRateBps int    `json:"commissionRateBps" validate:"required,min=1,max=5000"`
	Active            bool   `json:"active"`
}

// PartnerResponse is a sales partner record.
type PartnerResponse struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"userId"`
	DisplayName       string    `json:"displayName"`
	Company           *string   `json:"company,omitempty"`
	CommissionRateBps int       `json:"commissionRateBps"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"createdAt"`
}

// PartnerListResponse is the admin partner listing.
type PartnerListResponse struct {
	Items []PartnerResponse `json:"items"`
	Total int               `json:"total"`
}

// CreateProspectRequest adds a prospect to the partner's book.
type CreateProspectRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=200"`
	Company string `json:"company,omitempty" validate:"omitempty,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Notes   string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateProspectRequest updates a prospect, including its stage.
type UpdateProspectRequest struct {
	Name    string        `json:"name" validate:"required,min=2,max=200"`
	Company string        `json:"company,omitempty" validate:"omitempty,max=200"`
	Email   string        `json:"email" validate:"required,email,max=320"`
	Phone   string        `json:"phone,omitempty" validate:"omitempty,max=30"`
	Stage   ProspectStage `json:"stage" validate:"required,oneof=new contacted qualified converted lost"`
	Notes   string        `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ProspectResponse is one prospect in a partner's book.
type ProspectResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Company   *string       `json:"company,omitempty"`
	Email     string        `json:"email"`
	Phone     *string       `json:"phone,omitempty"`
	Stage     ProspectStage `json:"stage"`
	Notes     *string       `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ProspectListResponse is the partner's prospect listing.
type ProspectListResponse struct {
	Items []ProspectResponse `json:"items"`
	Total int                `json:"total"`
}

// CommissionResponse is one earned commission.
type CommissionResponse struct {
	ID              uuid.UUID        `json:"id"`
	QuoteID         uuid.UUID        `json:"quoteId"`
	QuoteNumber     string           `json:"quoteNumber"`
	BaseAmountCents int64            `json:"baseAmountCents"`
	RateBps         int              `json:"rateBps"`
	CommissionCents int64            `json:"commissionCents"`
	Status          CommissionStatus `json:"status"`
	CreatedAt       time.Time        `json:"createdAt"`
	PaidAt          *time.Time       `json:"paidAt,omitempty"`
}

// CommissionListResponse is a commission listing with its pending total.
type CommissionListResponse struct {
	Items             []CommissionResponse `json:"items"`
	Total             int                  `json:"total"`
	PendingTotalCents int64                `json:"pendingTotalCents"`
}
