package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a partner, prospect or commission does not exist.
var ErrNotFound = errors.New("not found")

// Partner represents a sales partner row.
type Partner struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	DisplayName       string
	Company           *string
	CommissionRateBps int
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Prospect represents a partner-owned prospect row.
type Prospect struct {
	ID        uuid.UUID
	PartnerID uuid.UUID
	Name      string
	Company   *string
	Email     string
	Phone     *string
	Stage     string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Commission represents an earned commission row.
type Commission struct {
	ID              uuid.UUID
	PartnerID       uuid.UUID
	QuoteID         uuid.UUID
	QuoteNumber     string
	BaseAmountCents int64
	RateBps         int
	CommissionCents int64
	Status          string
	CreatedAt       time.Time
	PaidAt          *time.Time
}

// PartnerParams holds the mutable fields of a partner.
type PartnerParams struct {
	DisplayName       string
	Company           *string
	CommissionRateBps int
	Active            bool
}

// ProspectParams holds the mutable fields of a prospect.
type ProspectParams struct {
	Name    string
	Company *string
	Email   string
	Phone   *string
	Stage   string
	Notes   *string
}

// CommissionParams holds the fields of a new commission.
type CommissionParams struct {
	PartnerID       uuid.UUID
	QuoteID         uuid.UUID
	QuoteNumber     string
	BaseAmountCents int64
	RateBps         int
	CommissionCents int64
}

// Repository provides PostgreSQL persistence for the partner portal.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const partnerColumns = `id, user_id, display_name, company, commission_rate_bps, active, created_at, updated_at`

func scanPartner(row pgx.Row) (Partner, error) {
	var p Partner
	err := row.Scan(
		&p.ID, &p.UserID, &p.DisplayName, &p.Company,
		&p.CommissionRateBps, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// CreatePartner enrolls a user as an active sales partner.
func (r *Repository) CreatePartner(ctx context.Context, userID uuid.UUID, params PartnerParams) (Partner, error) {
	query := `
		INSERT INTO sales_partners (user_id, display_name, company, commission_rate_bps, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + partnerColumns

	return scanPartner(r.pool.QueryRow(ctx, query,
		userID, params.DisplayName, params.Company, params.CommissionRateBps, params.Active,
	))
}

// UpdatePartner replaces the mutable fields of a partner.
func (r *Repository) UpdatePartner(ctx context.Context, id uuid.UUID, params PartnerParams) (Partner, error) {
	query := `
		UPDATE sales_partners
		SET display_name = $2, company = $3, commission_rate_bps = $4, active = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + partnerColumns

	p, err := scanPartner(r.pool.QueryRow(ctx, query,
		id, params.DisplayName, params.Company, params.CommissionRateBps, params.Active,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Partner{}, ErrNotFound
	}
	return p, err
}

// GetPartner fetches a partner by ID.
func (r *Repository) GetPartner(ctx context.Context, id uuid.UUID) (Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM sales_partners WHERE id = $1`

	p, err := scanPartner(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Partner{}, ErrNotFound
	}
	return p, err
}

// GetPartnerByUserID fetches the partner record of a portal user.
func (r *Repository) GetPartnerByUserID(ctx context.Context, userID uuid.UUID) (Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM sales_partners WHERE user_id = $1`

	p, err := scanPartner(r.pool.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Partner{}, ErrNotFound
	}
	return p, err
}

// GetPartnerContact returns the display name and account email of a partner.
func (r *Repository) GetPartnerContact(ctx context.Context, id uuid.UUID) (string, string, error) {
	query := `
		SELECT p.display_name, u.email
		FROM sales_partners p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1`

	var name, email string
	err := r.pool.QueryRow(ctx, query, id).Scan(&name, &email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return name, email, err
}

// ListPartners returns all partners, newest first.
func (r *Repository) ListPartners(ctx context.Context) ([]Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM sales_partners ORDER BY created_at DESC LIMIT 200`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

const prospectColumns = `id, partner_id, name, company, email, phone, stage, notes, created_at, updated_at`

func scanProspect(row pgx.Row) (Prospect, error) {
	var p Prospect
	err := row.Scan(
		&p.ID, &p.PartnerID, &p.Name, &p.Company, &p.Email,
		&p.Phone, &p.Stage, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// CreateProspect adds a prospect to a partner's book in stage "new".
func (r *Repository) CreateProspect(ctx context.Context, partnerID uuid.UUID, params ProspectParams) (Prospect, error) {
	query := `
		INSERT INTO partner_prospects (partner_id, name, company, email, phone, stage, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + prospectColumns

	return scanProspect(r.pool.QueryRow(ctx, query,
		partnerID, params.Name, params.Company, params.Email,
		params.Phone, params.Stage, params.Notes,
	))
}

// UpdateProspect replaces the mutable fields of a prospect. The partner ID is
// part of the predicate so a partner can only touch its own book.
func (r *Repository) UpdateProspect(ctx context.Context, partnerID, id uuid.UUID, params ProspectParams) (Prospect, error) {
	query := `
		UPDATE partner_prospects
		SET name = $3, company = $4, email = $5, phone = $6, stage = $7, notes = $8, updated_at = now()
		WHERE id = $1 AND partner_id = $2
		RETURNING ` + prospectColumns

	p, err := scanProspect(r.pool.QueryRow(ctx, query,
		id, partnerID, params.Name, params.Company, params.Email,
		params.Phone, params.Stage, params.Notes,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Prospect{}, ErrNotFound
	}
	return p, err
}

// DeleteProspect removes a prospect from a partner's book.
func (r *Repository) DeleteProspect(ctx context.Context, partnerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM partner_prospects WHERE id = $1 AND partner_id = $2`, id, partnerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProspects returns a partner's prospects, newest first.
func (r *Repository) ListProspects(ctx context.Context, partnerID uuid.UUID) ([]Prospect, error) {
	query := `SELECT ` + prospectColumns + `
		FROM partner_prospects
		WHERE partner_id = $1
		ORDER BY created_at DESC
		LIMIT 200`

	rows, err := r.pool.Query(ctx, query, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prospects []Prospect
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		prospects = append(prospects, p)
	}
	return prospects, rows.Err()
}

const commissionColumns = `id, partner_id, quote_id, quote_number, base_amount_cents, rate_bps, commission_cents, status, created_at, paid_at`

func scanCommission(row pgx.Row) (Commission, error) {
	var c Commission
	err := row.Scan(
		&c.ID, &c.PartnerID, &c.QuoteID, &c.QuoteNumber, &c.BaseAmountCents,
		&c.RateBps, &c.CommissionCents, &c.Status, &c.CreatedAt, &c.PaidAt,
	)
	return c, err
}

// CreateCommission records a pending commission for an accepted quote. The
// quote_id unique constraint makes redelivered events a no-op.
func (r *Repository) CreateCommission(ctx context.Context, params CommissionParams) (Commission, error) {
	query := `
		INSERT INTO partner_commissions
			(partner_id, quote_id, quote_number, base_amount_cents, rate_bps, commission_cents)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (quote_id) DO NOTHING
		RETURNING ` + commissionColumns

	c, err := scanCommission(r.pool.QueryRow(ctx, query,
		params.PartnerID, params.QuoteID, params.QuoteNumber,
		params.BaseAmountCents, params.RateBps, params.CommissionCents,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Commission{}, ErrNotFound
	}
	return c, err
}

// ListCommissions returns a partner's commissions, newest first.
func (r *Repository) ListCommissions(ctx context.Context, partnerID uuid.UUID) ([]Commission, error) {
	query := `SELECT ` + commissionColumns + `
		FROM partner_commissions
		WHERE partner_id = $1
		ORDER BY created_at DESC
		LIMIT 200`

	rows, err := r.pool.Query(ctx, query, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commissions []Commission
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, err
		}
		commissions = append(commissions, c)
	}
	return commissions, rows.Err()
}

// MarkCommissionPaid flips a pending commission to paid.
func (r *Repository) MarkCommissionPaid(ctx context.Context, id uuid.UUID) (Commission, error) {
	query := `
		UPDATE partner_commissions
		SET status = 'paid', paid_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + commissionColumns

	c, err := scanCommission(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Commission{}, ErrNotFound
	}
	return c, err
}
