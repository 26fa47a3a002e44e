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

// ErrNotFound is returned when a quote does not exist.
var ErrNotFound = errors.New("quote not found")

// Quote represents a quote document row.
type Quote struct {
	ID            uuid.UUID
	Number        string
	PartnerID     *uuid.UUID
	ClientName    string
	ClientEmail   string
	ClientCompany *string
	Status        string
	TaxRateBps    int
	DiscountType  *string
	DiscountValue int64
	ValidUntil    *time.Time
	Notes         *string
	PublicToken   uuid.UUID
	PDFKey        *string
	AcceptedAt    *time.Time
	AcceptedBy    *string
	RejectReason  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Item represents a quote line item row.
type Item struct {
	ID             uuid.UUID
	QuoteID        uuid.UUID
	Description    string
	Quantity       string
	UnitPriceCents int64
	Position       int
}

// HeaderParams holds the mutable header fields of a quote.
type HeaderParams struct {
	ClientName    string
	ClientEmail   string
	ClientCompany *string
	TaxRateBps    int
	DiscountType  *string
	DiscountValue int64
	ValidUntil    *time.Time
	Notes         *string
}

// ItemParams holds the fields of a new line item.
type ItemParams struct {
	Description    string
	Quantity       string
	UnitPriceCents int64
}

// ListFilters narrows the quote listing.
type ListFilters struct {
	Status    *string
	PartnerID *uuid.UUID
	Limit     int
}

// Repository provides PostgreSQL persistence for quotes.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const quoteColumns = `id, number, partner_id, client_name, client_email, client_company, status,
	tax_rate_bps, discount_type, discount_value, valid_until, notes, public_token,
	pdf_key, accepted_at, accepted_by, reject_reason, created_at, updated_at`

func scanQuote(row pgx.Row) (Quote, error) {
	var q Quote
	err := row.Scan(
		&q.ID, &q.Number, &q.PartnerID, &q.ClientName, &q.ClientEmail, &q.ClientCompany, &q.Status,
		&q.TaxRateBps, &q.DiscountType, &q.DiscountValue, &q.ValidUntil, &q.Notes, &q.PublicToken,
		&q.PDFKey, &q.AcceptedAt, &q.AcceptedBy, &q.RejectReason, &q.CreatedAt, &q.UpdatedAt,
	)
	return q, err
}

// nextNumber reserves the next quote number for a year. Runs inside the
// create transaction so concurrent creates never collide.
func nextNumber(ctx context.Context, tx pgx.Tx, year int) (string, error) {
	var value int
	err := tx.QueryRow(ctx, `
		INSERT INTO quote_counters (year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = quote_counters.last_value + 1
		RETURNING last_value`, year).Scan(&value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DEV-%d-%04d", year, value), nil
}

// Create inserts a draft quote with its items in one transaction.
func (r *Repository) Create(ctx context.Context, partnerID *uuid.UUID, header HeaderParams, items []ItemParams) (Quote, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Quote{}, err
	}
	defer tx.Rollback(ctx)

	number, err := nextNumber(ctx, tx, time.Now().Year())
	if err != nil {
		return Quote{}, err
	}

	query := `
		INSERT INTO quotes (number, partner_id, client_name, client_email, client_company,
			tax_rate_bps, discount_type, discount_value, valid_until, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + quoteColumns

	quote, err := scanQuote(tx.QueryRow(ctx, query,
		number, partnerID, header.ClientName, header.ClientEmail, header.ClientCompany,
		header.TaxRateBps, header.DiscountType, header.DiscountValue, header.ValidUntil, header.Notes,
	))
	if err != nil {
		return Quote{}, err
	}

	if err := insertItems(ctx, tx, quote.ID, items); err != nil {
		return Quote{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Quote{}, err
	}
	return quote, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, quoteID uuid.UUID, items []ItemParams) error {
	for i, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO quote_items (quote_id, description, quantity, unit_price_cents, position)
			VALUES ($1, $2, $3, $4, $5)`,
			quoteID, item.Description, item.Quantity, item.UnitPriceCents, i)
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdateHeader replaces the mutable header fields of a quote.
func (r *Repository) UpdateHeader(ctx context.Context, id uuid.UUID, header HeaderParams) (Quote, error) {
	query := `
		UPDATE quotes
		SET client_name = $2, client_email = $3, client_company = $4, tax_rate_bps = $5,
		    discount_type = $6, discount_value = $7, valid_until = $8, notes = $9, updated_at = now()
		WHERE id = $1
		RETURNING ` + quoteColumns

	q, err := scanQuote(r.pool.QueryRow(ctx, query,
		id, header.ClientName, header.ClientEmail, header.ClientCompany, header.TaxRateBps,
		header.DiscountType, header.DiscountValue, header.ValidUntil, header.Notes,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	return q, err
}

// ReplaceItems swaps the item list of a quote in one transaction.
func (r *Repository) ReplaceItems(ctx context.Context, id uuid.UUID, items []ItemParams) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE quotes SET updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM quote_items WHERE quote_id = $1`, id); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, id, items); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByID fetches a single quote.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`

	q, err := scanQuote(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	return q, err
}

// GetByToken fetches a quote through its public share token.
func (r *Repository) GetByToken(ctx context.Context, token uuid.UUID) (Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE public_token = $1`

	q, err := scanQuote(r.pool.QueryRow(ctx, query, token))
	if errors.Is(err, pgx.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	return q, err
}

// List returns quotes newest first, optionally filtered.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE 1=1`
	args := []any{}
	argPos := 1

	if filters.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, *filters.Status)
		argPos++
	}
	if filters.PartnerID != nil {
		query += fmt.Sprintf(" AND partner_id = $%d", argPos)
		args = append(args, *filters.PartnerID)
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

	var quotes []Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// ListItems returns a quote's line items in insertion order.
func (r *Repository) ListItems(ctx context.Context, quoteID uuid.UUID) ([]Item, error) {
	query := `
		SELECT id, quote_id, description, quantity, unit_price_cents, position
		FROM quote_items
		WHERE quote_id = $1
		ORDER BY position`

	rows, err := r.pool.Query(ctx, query, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.QuoteID, &item.Description, &item.Quantity,
			&item.UnitPriceCents, &item.Position); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateStatus sets a quote status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Quote, error) {
	query := `
		UPDATE quotes
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + quoteColumns

	q, err := scanQuote(r.pool.QueryRow(ctx, query, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	return q, err
}

// AcceptQuote records an acceptance. Only a sent quote can flip; anything
// else reports ErrNotFound so the caller can re-read and explain.
func (r *Repository) AcceptQuote(ctx context.Context, id uuid.UUID, signatureName string) (Quote, error) {
	query := `
		UPDATE quotes
		SET status = 'accepted', accepted_at = now(), accepted_by = $2, updated_at = now()
		WHERE id = $1 AND status = 'sent'
		RETURNING ` + quoteColumns

	q, err := scanQuote(r.pool.QueryRow(ctx, query, id, signatureName))
	if errors.Is(err, pgx.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	return q, err
}

// RejectQuote records a rejection with an optional reason.
func (r *Repository) RejectQuote(ctx context.Context, id uuid.UUID, reason *string) (Quote, error) {
	query := `
		UPDATE quotes
		SET status = 'rejected', reject_reason = $2, updated_at = now()
		WHERE id = $1 AND status = 'sent'
		RETURNING ` + quoteColumns

	q, err := scanQuote(r.pool.QueryRow(ctx, query, id, reason))
	if errors.Is(err, pgx.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	return q, err
}

// SetPDFKey records the storage key of the rendered document.
func (r *Repository) SetPDFKey(ctx context.Context, id uuid.UUID, key string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE quotes SET pdf_key = $2, updated_at = now() WHERE id = $1`, id, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
