// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"nexus_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience.
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions.
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Quote request events
// =============================================================================

// QuoteRequestSubmitted is published when the public quote form is submitted.
type QuoteRequestSubmitted struct {
	BaseEvent
	QuoteRequestID uuid.UUID `json:"quoteRequestId"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Services       []string  `json:"services"`
	Budget         string    `json:"budget,omitempty"`
	Timeline       string    `json:"timeline,omitempty"`
}

func (e QuoteRequestSubmitted) EventName() string { return "quoterequests.submitted" }

// QuoteRequestStatusChanged is published when an admin moves a quote request
// through its workflow.
type QuoteRequestStatusChanged struct {
	BaseEvent
	QuoteRequestID uuid.UUID `json:"quoteRequestId"`
	OldStatus      string    `json:"oldStatus"`
	NewStatus      string    `json:"newStatus"`
}

func (e QuoteRequestStatusChanged) EventName() string { return "quoterequests.status_changed" }

// =============================================================================
// Call booking events
// =============================================================================

// CallBookingCreated is published when a prospect books a consultation call.
type CallBookingCreated struct {
	BaseEvent
	BookingID   uuid.UUID `json:"bookingId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	BookingDate string    `json:"bookingDate"` // YYYY-MM-DD
	TimeSlot    string    `json:"timeSlot"`
	DurationMin int       `json:"durationMin"`
}

func (e CallBookingCreated) EventName() string { return "bookings.created" }

// CallBookingCancelled is published when a booking is cancelled, by the
// prospect or by an admin.
type CallBookingCancelled struct {
	BaseEvent
	BookingID   uuid.UUID `json:"bookingId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	BookingDate string    `json:"bookingDate"`
	TimeSlot    string    `json:"timeSlot"`
	CancelledBy string    `json:"cancelledBy"` // "client" or "admin"
}

func (e CallBookingCancelled) EventName() string { return "bookings.cancelled" }

// CallBookingReminderDue is published by the worker shortly before a
// confirmed call so the notification module can mail both parties.
type CallBookingReminderDue struct {
	BaseEvent
	BookingID   uuid.UUID `json:"bookingId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	BookingDate string    `json:"bookingDate"`
	TimeSlot    string    `json:"timeSlot"`
	DurationMin int       `json:"durationMin"`
}

func (e CallBookingReminderDue) EventName() string { return "bookings.reminder_due" }

// =============================================================================
// Client status events
// =============================================================================

// ClientStatusChanged is published when an admin upserts a client status.
type ClientStatusChanged struct {
	BaseEvent
	ClientEmail string `json:"clientEmail"`
	OldStatus   string `json:"oldStatus,omitempty"`
	NewStatus   string `json:"newStatus"`
}

func (e ClientStatusChanged) EventName() string { return "clients.status_changed" }

// =============================================================================
// Billing events
// =============================================================================

// InvoiceStatusChanged is published on every invoice transition, including
// the worker's overdue sweep.
type InvoiceStatusChanged struct {
	BaseEvent
	InvoiceID     uuid.UUID `json:"invoiceId"`
	InvoiceNumber string    `json:"invoiceNumber"`
	OldStatus     string    `json:"oldStatus"`
	NewStatus     string    `json:"newStatus"`
}

func (e InvoiceStatusChanged) EventName() string { return "invoices.status_changed" }

// =============================================================================
// Quote document events
// =============================================================================

// QuoteAccepted is published when a client accepts a quote document. The
// partners module derives a commission from it.
type QuoteAccepted struct {
	BaseEvent
	QuoteID     uuid.UUID  `json:"quoteId"`
	QuoteNumber string     `json:"quoteNumber"`
	PartnerID   *uuid.UUID `json:"partnerId,omitempty"`
	ClientEmail string     `json:"clientEmail"`
	TotalCents  int64      `json:"totalCents"`
}

func (e QuoteAccepted) EventName() string { return "quotes.accepted" }

// QuoteSent is published when a quote document is emailed to its client.
type QuoteSent struct {
	BaseEvent
	QuoteID     uuid.UUID `json:"quoteId"`
	QuoteNumber string    `json:"quoteNumber"`
	ClientEmail string    `json:"clientEmail"`
	ClientName  string    `json:"clientName"`
	PublicToken string    `json:"publicToken"`
}

func (e QuoteSent) EventName() string { return "quotes.sent" }

// =============================================================================
// Auth events
// =============================================================================

// UserInvited is published when an admin invites a new portal user.
type UserInvited struct {
	BaseEvent
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	InviteToken string   `json:"inviteToken"`
}

func (e UserInvited) EventName() string { return "auth.user.invited" }

// =============================================================================
// Opportunity and project events
// =============================================================================

// OpportunityStageChanged is published when a pipeline opportunity moves stage.
type OpportunityStageChanged struct {
	BaseEvent
	OpportunityID uuid.UUID `json:"opportunityId"`
	OldStage      string    `json:"oldStage"`
	NewStage      string    `json:"newStage"`
}

func (e OpportunityStageChanged) EventName() string { return "opportunities.stage_changed" }

// ProjectStatusChanged is published when a project moves status.
type ProjectStatusChanged struct {
	BaseEvent
	ProjectID uuid.UUID `json:"projectId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e ProjectStatusChanged) EventName() string { return "projects.status_changed" }
