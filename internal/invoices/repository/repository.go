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

var ErrNotFound = errors.New("invoice not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Invoice struct {
	ID          uuid.UUID
	Number      string
	ClientName  string
	ClientEmail string
	IssueDate   time.Time
	DueDate     time.Time
	Status      string
	TaxRateBps  int
	Notes       *string
	PDFKey      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Item struct {
	ID             uuid.UUID
	InvoiceID      uuid.UUID
	Description    string
	Quantity       string
	UnitPriceCents int64
	Position       int
}

type HeaderParams struct {
	ClientName  string
	ClientEmail string
	IssueDate   time.Time
	DueDate     time.Time
	TaxRateBps  int
	Notes       *string
}

type ItemParams struct {
	Description    string
	Quantity       string
	UnitPriceCents int64
}

const invoiceColumns = `id, number, client_name, client_email, issue_date, due_date, status, tax_rate_bps, notes, pdf_key, created_at, updated_at`

func scanInvoice(row pgx.Row) (Invoice, error) {
	var inv Invoice
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.ClientName, &inv.ClientEmail, &inv.IssueDate, &inv.DueDate,
		&inv.Status, &inv.TaxRateBps, &inv.Notes, &inv.PDFKey, &inv.CreatedAt, &inv.UpdatedAt,
	)
	return inv, err
}

// nextNumber reserves the next invoice number for the issue year. The counter
// row is locked by the upsert, so concurrent creates get distinct numbers.
func nextNumber(ctx context.Context, tx pgx.Tx, year int) (string, error) {
	var value int
	err := tx.QueryRow(ctx, `
		INSERT INTO invoice_counters (year, last_value)
		VALUES ($1, 1)
		ON CONFLICT (year)
		DO UPDATE SET last_value = invoice_counters.last_value + 1
		RETURNING last_value
	`, year).Scan(&value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%04d", year, value), nil
}

// Create stores the invoice header and its items in one transaction, assigning
// the next number in the issue year's sequence.
func (r *Repository) Create(ctx context.Context, header HeaderParams, items []ItemParams) (Invoice, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Invoice{}, err
	}
	defer tx.Rollback(ctx)

	number, err := nextNumber(ctx, tx, header.IssueDate.Year())
	if err != nil {
		return Invoice{}, err
	}

	inv, err := scanInvoice(tx.QueryRow(ctx, `
		INSERT INTO invoices (number, client_name, client_email, issue_date, due_date, tax_rate_bps, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+invoiceColumns+`
	`, number, header.ClientName, header.ClientEmail, header.IssueDate, header.DueDate, header.TaxRateBps, header.Notes))
	if err != nil {
		return Invoice{}, err
	}

	if err := insertItems(ctx, tx, inv.ID, items); err != nil {
		return Invoice{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, invoiceID uuid.UUID, items []ItemParams) error {
	for i, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, description, quantity, unit_price_cents, position)
			VALUES ($1, $2, $3, $4, $5)
		`, invoiceID, item.Description, item.Quantity, item.UnitPriceCents, i)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReplaceItems swaps the whole item list inside one transaction, so a reader
// never observes the invoice with no items.
func (r *Repository) ReplaceItems(ctx context.Context, invoiceID uuid.UUID, items []ItemParams) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE invoices SET updated_at = now() WHERE id = $1`, invoiceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, invoiceID, items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repository) UpdateHeader(ctx context.Context, id uuid.UUID, header HeaderParams) (Invoice, error) {
	inv, err := scanInvoice(r.pool.QueryRow(ctx, `
		UPDATE invoices
		SET client_name = $2, client_email = $3, issue_date = $4, due_date = $5,
		    tax_rate_bps = $6, notes = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+invoiceColumns+`
	`, id, header.ClientName, header.ClientEmail, header.IssueDate, header.DueDate, header.TaxRateBps, header.Notes))
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, ErrNotFound
	}
	if err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Invoice, error) {
	inv, err := scanInvoice(r.pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+` FROM invoices WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, ErrNotFound
	}
	if err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

type ListFilters struct {
	Status      *string
	ClientEmail *string
	Limit       int
}

func (r *Repository) List(ctx context.Context, filters ListFilters) ([]Invoice, error) {
	limit := filters.Limit
	if limit <= 0 || limit > 200 {
		limit = 200
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR client_email = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`, filters.Status, filters.ClientEmail, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, inv)
	}
	return items, rows.Err()
}

func (r *Repository) ListItems(ctx context.Context, invoiceID uuid.UUID) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, invoice_id, description, quantity, unit_price_cents, position
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position ASC
	`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.UnitPriceCents, &it.Position); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Invoice, error) {
	inv, err := scanInvoice(r.pool.QueryRow(ctx, `
		UPDATE invoices SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+invoiceColumns+`
	`, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, ErrNotFound
	}
	if err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func (r *Repository) SetPDFKey(ctx context.Context, id uuid.UUID, key string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE invoices SET pdf_key = $2, updated_at = now() WHERE id = $1
	`, id, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkOverdue flips every sent invoice past its due date to overdue and
// returns the affected rows. Run by the worker sweep.
func (r *Repository) MarkOverdue(ctx context.Context, asOf time.Time) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE invoices
		SET status = 'overdue', updated_at = now()
		WHERE status = 'sent' AND due_date < $1
		RETURNING `+invoiceColumns+`
	`, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, inv)
	}
	return items, rows.Err()
}
