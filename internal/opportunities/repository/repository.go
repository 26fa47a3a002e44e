package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when an opportunity does not exist.
var ErrNotFound = errors.New("opportunity not found")

// Opportunity represents a sales pipeline row.
type Opportunity struct {
	ID                uuid.UUID
	Name              string
	ClientEmail       string
	Stage             string
	AmountCents       int64
	ExpectedCloseDate *time.Time
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Params holds the mutable fields of an opportunity.
type Params struct {
	Name              string
	ClientEmail       string
	AmountCents       int64
	ExpectedCloseDate *time.Time
	Notes             *string
}

// ListFilters narrows the opportunity listing.
type ListFilters struct {
	Stage *string
	Limit int
}

// Repository provides PostgreSQL persistence for opportunities.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const opportunityColumns = `id, name, client_email, stage, amount_cents, expected_close_date, notes, created_at, updated_at`

func scanOpportunity(row pgx.Row) (Opportunity, error) {
	var o Opportunity
	err := row.Scan(
		&o.ID, &o.Name, &o.ClientEmail, &o.Stage, &o.AmountCents,
		&o.ExpectedCloseDate, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// Create inserts an opportunity in prospecting stage.
func (r *Repository) Create(ctx context.Context, params Params) (Opportunity, error) {
	query := `
		INSERT INTO opportunities (name, client_email, amount_cents, expected_close_date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + opportunityColumns

	return scanOpportunity(r.pool.QueryRow(ctx, query,
		params.Name, params.ClientEmail, params.AmountCents,
		params.ExpectedCloseDate, params.Notes,
	))
}

// Update replaces the mutable fields of an opportunity.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params Params) (Opportunity, error) {
	query := `
		UPDATE opportunities
		SET name = $2, client_email = $3, amount_cents = $4,
		    expected_close_date = $5, notes = $6, updated_at = now()
		WHERE id = $1
		RETURNING ` + opportunityColumns

	o, err := scanOpportunity(r.pool.QueryRow(ctx, query,
		id, params.Name, params.ClientEmail, params.AmountCents,
		params.ExpectedCloseDate, params.Notes,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Opportunity{}, ErrNotFound
	}
	return o, err
}

// GetByID fetches a single opportunity.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE id = $1`

	o, err := scanOpportunity(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Opportunity{}, ErrNotFound
	}
	return o, err
}

// List returns opportunities newest first, optionally filtered by stage.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE 1=1`
	args := []any{}
	argPos := 1

	if filters.Stage != nil {
		query += fmt.Sprintf(" AND stage = $%d", argPos)
		args = append(args, *filters.Stage)
		argPos++
	}

	limit := filters.Limit
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argPos)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opportunities []Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		opportunities = append(opportunities, o)
	}
	return opportunities, rows.Err()
}

// ListOpen returns every opportunity that has not closed yet. The pipeline
// summary walks all of them, so there is no pagination cap here.
func (r *Repository) ListOpen(ctx context.Context) ([]Opportunity, error) {
	query := `SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE stage NOT IN ('closed_won', 'closed_lost')
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opportunities []Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		opportunities = append(opportunities, o)
	}
	return opportunities, rows.Err()
}

// UpdateStage sets an opportunity stage.
func (r *Repository) UpdateStage(ctx context.Context, id uuid.UUID, stage string) (Opportunity, error) {
	query := `
		UPDATE opportunities
		SET stage = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + opportunityColumns

	o, err := scanOpportunity(r.pool.QueryRow(ctx, query, id, stage))
	if errors.Is(err, pgx.ErrNoRows) {
		return Opportunity{}, ErrNotFound
	}
	return o, err
}
