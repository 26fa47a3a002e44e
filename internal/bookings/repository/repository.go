package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("booking not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Booking struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	BookingDate time.Time
	TimeSlot    string
	DurationMin int
	Topic       *string
	Status      string
	CancelToken uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Note struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	CreatedAt time.Time
}

type CreateParams struct {
	Name        string
	Email       string
	Phone       string
	BookingDate time.Time
	TimeSlot    string
	DurationMin int
	Topic       *string
}

const bookingColumns = `id, name, email, phone, booking_date, time_slot, duration_min, topic, status, cancel_token, created_at, updated_at`

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.Name, &b.Email, &b.Phone, &b.BookingDate, &b.TimeSlot,
		&b.DurationMin, &b.Topic, &b.Status, &b.CancelToken, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *Repository) Create(ctx context.Context, params CreateParams) (Booking, error) {
	return scanBooking(r.pool.QueryRow(ctx, `
		INSERT INTO call_bookings (name, email, phone, booking_date, time_slot, duration_min, topic)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+bookingColumns+`
	`, params.Name, params.Email, params.Phone, params.BookingDate, params.TimeSlot, params.DurationMin, params.Topic))
}

// SlotTaken reports whether an active booking already holds the slot.
// Cancelled bookings release their slot.
func (r *Repository) SlotTaken(ctx context.Context, date time.Time, timeSlot string) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM call_bookings
			WHERE booking_date = $1 AND time_slot = $2 AND status IN ('pending', 'confirmed')
		)
	`, date, timeSlot).Scan(&taken)
	return taken, err
}

// TakenSlots returns the occupied time slots for a date.
func (r *Repository) TakenSlots(ctx context.Context, date time.Time) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT time_slot FROM call_bookings
		WHERE booking_date = $1 AND status IN ('pending', 'confirmed')
		ORDER BY time_slot ASC
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]string, 0)
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

type ListFilters struct {
	Status *string
	From   *time.Time
	Limit  int
}

func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Booking, error) {
	limit := filters.Limit
	if limit <= 0 || limit > 200 {
		limit = 200
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM call_bookings
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::date IS NULL OR booking_date >= $2)
		ORDER BY booking_date ASC, time_slot ASC
		LIMIT $3
	`, filters.Status, filters.From, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// ListAll returns the newest page of rows feeding the client aggregation.
// The cap matches the dashboard page size.
func (r *Repository) ListAll(ctx context.Context) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM call_bookings
		ORDER BY created_at DESC
		LIMIT 200
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx, `
		SELECT `+bookingColumns+` FROM call_bookings WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrNotFound
	}
	if err != nil {
		return Booking{}, err
	}
	return b, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx, `
		UPDATE call_bookings SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+bookingColumns+`
	`, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrNotFound
	}
	if err != nil {
		return Booking{}, err
	}
	return b, nil
}

func (r *Repository) AddNote(ctx context.Context, bookingID, authorID uuid.UUID, body string) (Note, error) {
	var n Note
	err := r.pool.QueryRow(ctx, `
		INSERT INTO call_booking_notes (booking_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, booking_id, author_id, body, created_at
	`, bookingID, authorID, body).Scan(&n.ID, &n.BookingID, &n.AuthorID, &n.Body, &n.CreatedAt)
	return n, err
}

func (r *Repository) ListNotes(ctx context.Context, bookingID uuid.UUID) ([]Note, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, booking_id, author_id, body, created_at
		FROM call_booking_notes
		WHERE booking_id = $1
		ORDER BY created_at ASC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]Note, 0)
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.BookingID, &n.AuthorID, &n.Body, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
