package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("quote request not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type QuoteRequest struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Phone          *string
	BusinessType   *string
	Services       []string
	ProjectDetails *string
	Budget         *string
	Timeline       *string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateParams struct {
	Name           string
	Email          string
	Phone          *string
	BusinessType   *string
	Services       []string
	ProjectDetails *string
	Budget         *string
	Timeline       *string
}

func (r *Repository) Create(ctx context.Context, params CreateParams) (QuoteRequest, error) {
	var qr QuoteRequest
	err := r.pool.QueryRow(ctx, `
		INSERT INTO quote_requests (name, email, phone, business_type, services, project_details, budget, timeline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, email, phone, business_type, services, project_details, budget, timeline, status, created_at, updated_at
	`,
		params.Name, params.Email, params.Phone, params.BusinessType, params.Services,
		params.ProjectDetails, params.Budget, params.Timeline,
	).Scan(
		&qr.ID, &qr.Name, &qr.Email, &qr.Phone, &qr.BusinessType, &qr.Services,
		&qr.ProjectDetails, &qr.Budget, &qr.Timeline, &qr.Status, &qr.CreatedAt, &qr.UpdatedAt,
	)
	if err != nil {
		return QuoteRequest{}, err
	}
	return qr, nil
}

type ListFilters struct {
	Status *string
	Limit  int
}

func (r *Repository) List(ctx context.Context, filters ListFilters) ([]QuoteRequest, error) {
	limit := filters.Limit
	if limit <= 0 || limit > 200 {
		limit = 200
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, business_type, services, project_details, budget, timeline, status, created_at, updated_at
		FROM quote_requests
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`, filters.Status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]QuoteRequest, 0)
	for rows.Next() {
		var qr QuoteRequest
		if err := rows.Scan(
			&qr.ID, &qr.Name, &qr.Email, &qr.Phone, &qr.BusinessType, &qr.Services,
			&qr.ProjectDetails, &qr.Budget, &qr.Timeline, &qr.Status, &qr.CreatedAt, &qr.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, qr)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return items, nil
}

// ListAll returns the newest page of rows feeding the client aggregation.
// The cap matches the dashboard page size.
func (r *Repository) ListAll(ctx context.Context) ([]QuoteRequest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, business_type, services, project_details, budget, timeline, status, created_at, updated_at
		FROM quote_requests
		ORDER BY created_at DESC
		LIMIT 200
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]QuoteRequest, 0)
	for rows.Next() {
		var qr QuoteRequest
		if err := rows.Scan(
			&qr.ID, &qr.Name, &qr.Email, &qr.Phone, &qr.BusinessType, &qr.Services,
			&qr.ProjectDetails, &qr.Budget, &qr.Timeline, &qr.Status, &qr.CreatedAt, &qr.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, qr)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return items, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (QuoteRequest, error) {
	var qr QuoteRequest
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, business_type, services, project_details, budget, timeline, status, created_at, updated_at
		FROM quote_requests
		WHERE id = $1
	`, id).Scan(
		&qr.ID, &qr.Name, &qr.Email, &qr.Phone, &qr.BusinessType, &qr.Services,
		&qr.ProjectDetails, &qr.Budget, &qr.Timeline, &qr.Status, &qr.CreatedAt, &qr.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return QuoteRequest{}, ErrNotFound
	}
	if err != nil {
		return QuoteRequest{}, err
	}
	return qr, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (QuoteRequest, error) {
	var qr QuoteRequest
	err := r.pool.QueryRow(ctx, `
		UPDATE quote_requests
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, name, email, phone, business_type, services, project_details, budget, timeline, status, created_at, updated_at
	`, id, status).Scan(
		&qr.ID, &qr.Name, &qr.Email, &qr.Phone, &qr.BusinessType, &qr.Services,
		&qr.ProjectDetails, &qr.Budget, &qr.Timeline, &qr.Status, &qr.CreatedAt, &qr.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return QuoteRequest{}, ErrNotFound
	}
	if err != nil {
		return QuoteRequest{}, err
	}
	return qr, nil
}
