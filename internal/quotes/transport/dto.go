package transport

import (
	"time"

	"github.com/google/uuid"
)

// QuoteStatus is the lifecycle status of a quote document.
type QuoteStatus string

const (
	StatusDraft    QuoteStatus = "draft"
	StatusSent     QuoteStatus = "sent"
	StatusAccepted QuoteStatus = "accepted"
	StatusRejected QuoteStatus = "rejected"
	StatusExpired  QuoteStatus = "expired"
)

// DiscountType selects how the discount value is interpreted.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// ItemInput is one line item in a create or replace request.
type ItemInput struct {
	Description    string `json:"description" validate:"required,min=1,max=500"`
	Quantity       string `json:"quantity" validate:"required,max=30"`
	UnitPriceCents int64  `json:"unitPriceCents" validate:"required,min=1"`
}

// CreateQuoteRequest creates a draft quote with its items. For percent
// discounts the value is whole percent (0-100); for fixed discounts it is
// cents.
type CreateQuoteRequest struct {
	ClientName    string       `json:"clientName" validate:"required,min=2,max=200"`
	ClientEmail   string       `json:"clientEmail" validate:"required,email,max=320"`
	ClientCompany string       `json:"clientCompany,omitempty" validate:"omitempty,max=200"`
	TaxRateBps    int          `json:"taxRateBps" validate:"min=0,max=10000"`
	DiscountType  DiscountType `json:"discountType,omitempty" validate:"omitempty,oneof=percent fixed"`
	DiscountValue int64        `json:"discountValue,omitempty" validate:"omitempty,min=0"`
	ValidUntil    string       `json:"validUntil,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string       `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Items         []ItemInput  `json:"items" validate:"required,min=1,dive"`
}

// UpdateQuoteRequest updates the mutable header fields of a draft.
type UpdateQuoteRequest struct {
	ClientName    string       `json:"clientName" validate:"required,min=2,max=200"`
	ClientEmail   string       `json:"clientEmail" validate:"required,email,max=320"`
	ClientCompany string       `json:"clientCompany,omitempty" validate:"omitempty,max=200"`
	TaxRateBps    int          `json:"taxRateBps" validate:"min=0,max=10000"`
	DiscountType  DiscountType `json:"discountType,omitempty" validate:"omitempty,oneof=percent fixed"`
	DiscountValue int64        `json:"discountValue,omitempty" validate:"omitempty,min=0"`
	ValidUntil    string       `json:"validUntil,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string       `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ReplaceItemsRequest swaps the full item list of a quote.
type ReplaceItemsRequest struct {
	Items []ItemInput `json:"items" validate:"required,min=1,dive"`
}

// AcceptQuoteRequest is the public acceptance form.
type AcceptQuoteRequest struct {
	SignatureName string `json:"signatureName" validate:"required,min=2,max=200"`
}

// RejectQuoteRequest is the public rejection form.
type RejectQuoteRequest struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

// ItemResponse is one stored line item with its computed total.
type ItemResponse struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description"`
	Quantity       string    `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	LineTotalCents int64     `json:"lineTotalCents"`
}

// QuoteResponse is the internal representation of a quote with totals.
type QuoteResponse struct {
	ID            uuid.UUID      `json:"id"`
	Number        string         `json:"number"`
	PartnerID     *uuid.UUID     `json:"partnerId,omitempty"`
	ClientName    string         `json:"clientName"`
	ClientEmail   string         `json:"clientEmail"`
	ClientCompany *string        `json:"clientCompany,omitempty"`
	Status        QuoteStatus    `json:"status"`
	TaxRateBps    int            `json:"taxRateBps"`
	DiscountType  *DiscountType  `json:"discountType,omitempty"`
	DiscountValue int64          `json:"discountValue"`
	ValidUntil    *string        `json:"validUntil,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
	PublicToken   uuid.UUID      `json:"publicToken"`
	Items         []ItemResponse `json:"items"`
	SubtotalCents int64          `json:"subtotalCents"`
	DiscountCents int64          `json:"discountCents"`
	TaxCents      int64          `json:"taxCents"`
	TotalCents    int64          `json:"totalCents"`
	AcceptedAt    *time.Time     `json:"acceptedAt,omitempty"`
	AcceptedBy    *string        `json:"acceptedBy,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// QuoteListResponse is a quote listing.
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Total int             `json:"total"`
}

// PublicQuoteResponse is the client-facing view behind the share token. It
// carries no partner attribution or internal notes.
type PublicQuoteResponse struct {
	Number        string         `json:"number"`
	ClientName    string         `json:"clientName"`
	ClientCompany *string        `json:"clientCompany,omitempty"`
	Status        QuoteStatus    `json:"status"`
	TaxRateBps    int            `json:"taxRateBps"`
	ValidUntil    *string        `json:"validUntil,omitempty"`
	Items         []ItemResponse `json:"items"`
	SubtotalCents int64          `json:"subtotalCents"`
	DiscountCents int64          `json:"discountCents"`
	TaxCents      int64          `json:"taxCents"`
	TotalCents    int64          `json:"totalCents"`
	AcceptedAt    *time.Time     `json:"acceptedAt,omitempty"`
}

// PDFResponse returns a presigned link to the rendered document.
type PDFResponse struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}
