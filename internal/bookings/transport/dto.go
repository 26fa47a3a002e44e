package transport

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle status of a consultation call booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// CreateBookingRequest is the public call booking payload.
type CreateBookingRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Email       string `json:"email" validate:"required,email,max=320"`
	Phone       string `json:"phone" validate:"required,max=30"`
	BookingDate string `json:"bookingDate" validate:"required,datetime=2006-01-02"`
	TimeSlot    string `json:"timeSlot" validate:"required,datetime=15:04"`
	DurationMin int    `json:"durationMin" validate:"required,oneof=15 30 60"`
	Topic       string `json:"topic,omitempty" validate:"omitempty,max=500"`
}

// CancelBookingRequest cancels a booking, optionally with a reason.
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// AddNoteRequest attaches an internal note to a booking.
type AddNoteRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// BookingResponse is the admin view of a call booking.
type BookingResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	BookingDate string        `json:"bookingDate"`
	TimeSlot    string        `json:"timeSlot"`
	DurationMin int           `json:"durationMin"`
	Topic       *string       `json:"topic,omitempty"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// BookingListResponse is the admin listing.
type BookingListResponse struct {
	Items []BookingResponse `json:"items"`
	Total int               `json:"total"`
}

// CreateBookingResponse acknowledges a public booking. The cancel token lets
// the prospect cancel without an account.
type CreateBookingResponse struct {
	ID          uuid.UUID     `json:"id"`
	Status      BookingStatus `json:"status"`
	BookingDate string        `json:"bookingDate"`
	TimeSlot    string        `json:"timeSlot"`
	CancelToken uuid.UUID     `json:"cancelToken"`
}

// NoteResponse is an internal booking note.
type NoteResponse struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// AvailabilityResponse lists the free slots for a given date.
type AvailabilityResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}
