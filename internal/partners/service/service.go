package service

import (
	"context"
	"errors"
	"fmt"

	"nexus_backend/internal/events"
	"nexus_backend/internal/partners/repository"
	"nexus_backend/internal/partners/transport"
	"nexus_backend/internal/shared/money"
	"nexus_backend/platform/apperr"
	"nexus_backend/platform/phone"
	"nexus_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Service provides business logic for the sales partner portal.
type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePartner(ctx context.Context, req transport.CreatePartnerRequest) (repository.Partner, error) {
	params := repository.PartnerParams{
		DisplayName:       sanitize.Text(req.DisplayName),
		Company:           optional(req.Company),
		CommissionRateBps: req.CommissionRateBps,
		Active:            true,
	}

	partner, err := s.repo.CreatePartner(ctx, req.UserID, params)
	if err != nil {
		return repository.Partner{}, apperr.Wrap(apperr.KindInternal, "failed to create partner", err)
	}
	return partner, nil
}

func (s *Service) UpdatePartner(ctx context.Context, id uuid.UUID, req transport.UpdatePartnerRequest) (repository.Partner, error) {
	params := repository.PartnerParams{
		DisplayName:       sanitize.Text(req.DisplayName),
		Company:           optional(req.Company),
		CommissionRateBps: req.CommissionRateBps,
		Active:            req.Active,
	}

	partner, err := s.repo.UpdatePartner(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Partner{}, apperr.NotFound("partner not found")
		}
		return repository.Partner{}, apperr.Wrap(apperr.KindInternal, "failed to update partner", err)
	}
	return partner, nil
}

func (s *Service) ListPartners(ctx context.Context) ([]repository.Partner, error) {
	partners, err := s.repo.ListPartners(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list partners", err)
	}
	return partners, nil
}

// ProfileByUserID resolves the partner record behind a signed-in sales user.
func (s *Service) ProfileByUserID(ctx context.Context, userID uuid.UUID) (repository.Partner, error) {
	partner, err := s.repo.GetPartnerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Partner{}, apperr.NotFound("no partner profile for this account")
		}
		return repository.Partner{}, apperr.Wrap(apperr.KindInternal, "failed to load partner profile", err)
	}
	return partner, nil
}

// PartnerContact resolves the display name and account email of a partner.
// Used by the notification module to mail the partner about accepted quotes.
func (s *Service) PartnerContact(ctx context.Context, partnerID uuid.UUID) (string, string, error) {
	name, email, err := s.repo.GetPartnerContact(ctx, partnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", apperr.NotFound("partner not found")
		}
		return "", "", apperr.Wrap(apperr.KindInternal, "failed to load partner contact", err)
	}
	return name, email, nil
}

// PartnerIDByUserID resolves just the partner ID for cross-module callers.
func (s *Service) PartnerIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	partner, err := s.ProfileByUserID(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	return partner.ID, nil
}

func (s *Service) CreateProspect(ctx context.Context, userID uuid.UUID, req transport.CreateProspectRequest) (repository.Prospect, error) {
	partner, err := s.ProfileByUserID(ctx, userID)
	if err != nil {
		return repository.Prospect{}, err
	}

	params := prospectParams(req.Name, req.Company, req.Email, req.Phone, string(transport.ProspectNew), req.Notes)
	prospect, err := s.repo.CreateProspect(ctx, partner.ID, params)
	if err != nil {
		return repository.Prospect{}, apperr.Wrap(apperr.KindInternal, "failed to create prospect", err)
	}
	return prospect, nil
}

func (s *Service) UpdateProspect(ctx context.Context, userID, prospectID uuid.UUID, req transport.UpdateProspectRequest) (repository.Prospect, error) {
	partner, err := s.ProfileByUserID(ctx, userID)
	if err != nil {
		return repository.Prospect{}, err
	}

	params := prospectParams(req.Name, req.Company, req.Email, req.Phone, string(req.Stage), req.Notes)
	prospect, err := s.repo.UpdateProspect(ctx, partner.ID, prospectID, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Prospect{}, apperr.NotFound("prospect not found")
		}
		return repository.Prospect{}, apperr.Wrap(apperr.KindInternal, "failed to update prospect", err)
	}
	return prospect, nil
}

func (s *Service) DeleteProspect(ctx context.Context, userID, prospectID uuid.UUID) error {
	partner, err := s.ProfileByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteProspect(ctx, partner.ID, prospectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("prospect not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to delete prospect", err)
	}
	return nil
}

func (s *Service) ListProspects(ctx context.Context, userID uuid.UUID) ([]repository.Prospect, error) {
	partner, err := s.ProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prospects, err := s.repo.ListProspects(ctx, partner.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list prospects", err)
	}
	return prospects, nil
}

func (s *Service) ListCommissions(ctx context.Context, userID uuid.UUID) ([]repository.Commission, error) {
	partner, err := s.ProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	commissions, err := s.repo.ListCommissions(ctx, partner.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list commissions", err)
	}
	return commissions, nil
}

func (s *Service) MarkCommissionPaid(ctx context.Context, id uuid.UUID) (repository.Commission, error) {
	commission, err := s.repo.MarkCommissionPaid(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Commission{}, apperr.NotFound("pending commission not found")
		}
		return repository.Commission{}, apperr.Wrap(apperr.KindInternal, "failed to mark commission paid", err)
	}
	return commission, nil
}

// HandleQuoteAccepted records a commission when a partner-attributed quote is
// accepted. Quotes without a partner and inactive partners earn nothing.
func (s *Service) HandleQuoteAccepted(ctx context.Context, event events.Event) error {
	accepted, ok := event.(events.QuoteAccepted)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if accepted.PartnerID == nil {
		return nil
	}

	partner, err := s.repo.GetPartner(ctx, *accepted.PartnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load partner for commission: %w", err)
	}
	if !partner.Active {
		return nil
	}

	_, err = s.repo.CreateCommission(ctx, repository.CommissionParams{
		PartnerID:       partner.ID,
		QuoteID:         accepted.QuoteID,
		QuoteNumber:     accepted.QuoteNumber,
		BaseAmountCents: accepted.TotalCents,
		RateBps:         partner.CommissionRateBps,
		CommissionCents: money.ApplyBps(accepted.TotalCents, partner.CommissionRateBps),
	})
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("record commission for quote %s: %w", accepted.QuoteNumber, err)
	}
	return nil
}

// PendingTotal sums the unpaid commissions in a listing.
func PendingTotal(commissions []repository.Commission) int64 {
	var total int64
	for _, c := range commissions {
		if c.Status == string(transport.CommissionPending) {
			total += c.CommissionCents
		}
	}
	return total
}

func prospectParams(name, company, email, rawPhone, stage, notes string) repository.ProspectParams {
	params := repository.ProspectParams{
		Name:    sanitize.Text(name),
		Company: optional(company),
		Email:   sanitize.Email(email),
		Stage:   stage,
	}
	if cleaned := sanitize.Text(rawPhone); cleaned != "" {
		normalized := phone.NormalizeE164(cleaned)
		params.Phone = &normalized
	}
	if cleaned := sanitize.Text(notes); cleaned != "" {
		params.Notes = &cleaned
	}
	return params
}

func optional(s string) *string {
	cleaned := sanitize.Text(s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
