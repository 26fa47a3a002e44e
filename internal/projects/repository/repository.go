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

// ErrNotFound is returned when a project does not exist.
var ErrNotFound = errors.New("project not found")

// Project represents a client project row.
type Project struct {
	ID          uuid.UUID
	Name        string
	ClientEmail string
	ServiceType string
	Status      string
	BudgetCents *int64
	Deadline    *time.Time
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Params holds the mutable fields of a project.
type Params struct {
	Name        string
	ClientEmail string
	ServiceType string
	BudgetCents *int64
	Deadline    *time.Time
	Notes       *string
}

// ListFilters narrows the project listing.
type ListFilters struct {
	Status      *string
	ClientEmail *string
	Limit       int
}

// Repository provides PostgreSQL persistence for projects.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const projectColumns = `id, name, client_email, service_type, status, budget_cents, deadline, notes, created_at, updated_at`

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	err := row.Scan(
		&p.ID, &p.Name, &p.ClientEmail, &p.ServiceType, &p.Status,
		&p.BudgetCents, &p.Deadline, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create inserts a project in planning status.
func (r *Repository) Create(ctx context.Context, params Params) (Project, error) {
	query := `
		INSERT INTO projects (name, client_email, service_type, budget_cents, deadline, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + projectColumns

	return scanProject(r.pool.QueryRow(ctx, query,
		params.Name, params.ClientEmail, params.ServiceType,
		params.BudgetCents, params.Deadline, params.Notes,
	))
}

// Update replaces the mutable fields of a project.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params Params) (Project, error) {
	query := `
		UPDATE projects
		SET name = $2, client_email = $3, service_type = $4,
		    budget_cents = $5, deadline = $6, notes = $7, updated_at = now()
		WHERE id = $1
		RETURNING ` + projectColumns

	p, err := scanProject(r.pool.QueryRow(ctx, query,
		id, params.Name, params.ClientEmail, params.ServiceType,
		params.BudgetCents, params.Deadline, params.Notes,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, err
}

// GetByID fetches a single project.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	p, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, err
}

// List returns projects newest first, optionally filtered.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE 1=1`
	args := []any{}
	argPos := 1

	if filters.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, *filters.Status)
		argPos++
	}
	if filters.ClientEmail != nil {
		query += fmt.Sprintf(" AND client_email = $%d", argPos)
		args = append(args, *filters.ClientEmail)
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

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateStatus sets a project status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Project, error) {
	query := `
		UPDATE projects
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + projectColumns

	p, err := scanProject(r.pool.QueryRow(ctx, query, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, err
}
