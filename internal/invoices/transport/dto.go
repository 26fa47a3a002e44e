package transport

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus is the lifecycle status of an invoice.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusSent      InvoiceStatus = "sent"
	StatusPaid      InvoiceStatus = "paid"
	StatusOverdue   InvoiceStatus = "overdue"
	StatusCancelled InvoiceStatus = "cancelled"
)

// ItemInput is one line item in a create or replace request.
type ItemInput struct {
	Description    string `json:"description" validate:"required,min=1,max=500"`
	Quantity       string `json:"quantity" validate:"required,max=30"`
	UnitPriceCents int64  `json:"unitPriceCents" validate:"required,min=1"`
}

// CreateInvoiceRequest creates a draft invoice with its items.
type CreateInvoiceRequest struct {
	ClientName  string      `json:"clientName" validate:"required,min=2,max=200"`
	ClientEmail string      `json:"clientEmail" validate:"required,email,max=320"`
	IssueDate   string      `json:"issueDate" validate:"required,datetime=2006-01-02"`
	DueDate     string      `json:"dueDate" validate:"required,datetime=2006-01-02"`
	TaxRateBps  int         `json:"taxRateBps" validate:"min=0,max=10000"`
	Notes       string      `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Items       []ItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceRequest updates the mutable header fields of a draft.
type UpdateInvoiceRequest struct {
	ClientName  string `json:"clientName" validate:"required,min=2,max=200"`
	ClientEmail string `json:"clientEmail" validate:"required,email,max=320"`
	IssueDate   string `json:"issueDate" validate:"required,datetime=2006-01-02"`
	DueDate     string `json:"dueDate" validate:"required,datetime=2006-01-02"`
	TaxRateBps  int    `json:"taxRateBps" validate:"min=0,max=10000"`
	Notes       string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ReplaceItemsRequest swaps the full item list of an invoice.
type ReplaceItemsRequest struct {
	Items []ItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateStatusRequest moves an invoice through its lifecycle.
type UpdateStatusRequest struct {
	Status InvoiceStatus `json:"status" validate:"required,oneof=draft sent paid overdue cancelled"`
}

// ItemResponse is one stored line item with its computed total.
type ItemResponse struct {
	ID             uuid.UUID `json:"id"`
	Description    string    `json:"description"`
	Quantity       string    `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	LineTotalCents int64     `json:"lineTotalCents"`
}

// InvoiceResponse is the full invoice with items and totals.
type InvoiceResponse struct {
	ID            uuid.UUID      `json:"id"`
	Number        string         `json:"number"`
	ClientName    string         `json:"clientName"`
	ClientEmail   string         `json:"clientEmail"`
	IssueDate     string         `json:"issueDate"`
	DueDate       string         `json:"dueDate"`
	Status        InvoiceStatus  `json:"status"`
	TaxRateBps    int            `json:"taxRateBps"`
	Notes         *string        `json:"notes,omitempty"`
	Items         []ItemResponse `json:"items"`
	SubtotalCents int64          `json:"subtotalCents"`
	TaxCents      int64          `json:"taxCents"`
	TotalCents    int64          `json:"totalCents"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// InvoiceListResponse is the admin listing.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Total int               `json:"total"`
}

// PDFResponse returns a presigned link to the rendered document.
type PDFResponse struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}
