package transport

import "time"

// ClientStatus is the informal sales status attached to an email address.
type ClientStatus string

const (
	StatusLead     ClientStatus = "lead"
	StatusProspect ClientStatus = "prospect"
	StatusClient   ClientStatus = "client"
	StatusLost     ClientStatus = "lost"
)

// UpsertStatusRequest sets the sales status for an email address.
type UpsertStatusRequest struct {
	Email  string       `json:"email" validate:"required,email,max=320"`
	Status ClientStatus `json:"status" validate:"required,oneof=lead prospect client lost"`
	Notes  string       `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ClientResponse is one derived client record.
type ClientResponse struct {
	Email        string       `json:"email"`
	Name         string       `json:"name,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Status       ClientStatus `json:"status"`
	Notes        *string      `json:"notes,omitempty"`
	QuoteCount   int          `json:"quoteCount"`
	BookingCount int          `json:"bookingCount"`
	StatusOnly   bool         `json:"statusOnly"`
	FirstContact *time.Time   `json:"firstContact,omitempty"`
	LastContact  *time.Time   `json:"lastContact,omitempty"`
}

// ClientListResponse is the derived client listing for the dashboard.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Total int              `json:"total"`
}

// StatusResponse is a stored client status row.
type StatusResponse struct {
	Email     string       `json:"email"`
	Status    ClientStatus `json:"status"`
	Notes     *string      `json:"notes,omitempty"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
