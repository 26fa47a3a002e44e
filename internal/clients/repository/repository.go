package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ClientStatus is the stored sales status for an email address. The email is
// stored lower-cased; it is the join key that unifies quote requests and call
// bookings into one client record.
type ClientStatus struct {
	Email     string
	Status    string
	Notes     *string
	UpdatedAt time.Time
}

// Upsert writes the status for an email, overwriting any previous row. The
// caller is responsible for normalizing the email.
func (r *Repository) Upsert(ctx context.Context, email, status string, notes *string) (ClientStatus, error) {
	var cs ClientStatus
	err := r.pool.QueryRow(ctx, `
		INSERT INTO client_statuses (client_email, status, notes)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_email)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = now()
		RETURNING client_email, status, notes, updated_at
	`, email, status, notes).Scan(&cs.Email, &cs.Status, &cs.Notes, &cs.UpdatedAt)
	return cs, err
}

func (r *Repository) ListAll(ctx context.Context) ([]ClientStatus, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT client_email, status, notes, updated_at
		FROM client_statuses
		ORDER BY client_email ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ClientStatus, 0)
	for rows.Next() {
		var cs ClientStatus
		if err := rows.Scan(&cs.Email, &cs.Status, &cs.Notes, &cs.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, cs)
	}
	return items, rows.Err()
}
