package service

import (
	"context"
	"errors"
	"time"

	"nexus_backend/internal/adapters/storage"
	"nexus_backend/internal/events"
	"nexus_backend/internal/quotes/repository"
	"nexus_backend/internal/quotes/transport"
	"nexus_backend/platform/apperr"
	"nexus_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	msgQuoteLinkInvalid = "quote link is invalid"
	msgQuoteExpired     = "this quote has expired"
	msgAlreadyAccepted  = "this quote has already been accepted"
	msgAlreadyRejected  = "this quote has been rejected"
	msgNotOpen          = "this quote is not open for a decision"
)

// GetPublic resolves a share token to the client-facing view. A sent quote
// past its validity date is flipped to expired on read.
func (s *Service) GetPublic(ctx context.Context, rawToken string) (Quote, error) {
	quote, err := s.resolveToken(ctx, rawToken)
	if err != nil {
		return Quote{}, err
	}
	return s.expireIfStale(ctx, quote)
}

// Accept records a client acceptance behind the share token.
func (s *Service) Accept(ctx context.Context, rawToken string, req transport.AcceptQuoteRequest) (Quote, error) {
	quote, err := s.resolveToken(ctx, rawToken)
	if err != nil {
		return Quote{}, err
	}
	quote, err = s.expireIfStale(ctx, quote)
	if err != nil {
		return Quote{}, err
	}
	if err := openForDecision(quote); err != nil {
		return Quote{}, err
	}

	accepted, err := s.repo.AcceptQuote(ctx, quote.ID, sanitize.Text(req.SignatureName))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Lost the race against a concurrent decision.
			return Quote{}, apperr.Validation(msgNotOpen)
		}
		return Quote{}, apperr.Wrap(apperr.KindInternal, "failed to accept quote", err)
	}

	s.eventBus.Publish(ctx, events.QuoteAccepted{
		BaseEvent:   events.NewBaseEvent(),
		QuoteID:     accepted.ID,
		QuoteNumber: accepted.Number,
		PartnerID:   accepted.PartnerID,
		ClientEmail: accepted.ClientEmail,
		TotalCents:  quote.Totals.TotalCents,
	})

	return s.attach(ctx, accepted)
}

// Reject records a client rejection behind the share token.
func (s *Service) Reject(ctx context.Context, rawToken string, req transport.RejectQuoteRequest) (Quote, error) {
	quote, err := s.resolveToken(ctx, rawToken)
	if err != nil {
		return Quote{}, err
	}
	quote, err = s.expireIfStale(ctx, quote)
	if err != nil {
		return Quote{}, err
	}
	if err := openForDecision(quote); err != nil {
		return Quote{}, err
	}

	var reason *string
	if cleaned := sanitize.Text(req.Reason); cleaned != "" {
		reason = &cleaned
	}

	rejected, err := s.repo.RejectQuote(ctx, quote.ID, reason)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Quote{}, apperr.Validation(msgNotOpen)
		}
		return Quote{}, apperr.Wrap(apperr.KindInternal, "failed to reject quote", err)
	}

	return s.attach(ctx, rejected)
}

// PublicPDF presigns the stored document for a share token, rendering it
// first if it was never generated.
func (s *Service) PublicPDF(ctx context.Context, rawToken string) (*storage.PresignedURL, error) {
	if s.store == nil {
		return nil, apperr.Validation("document storage is not configured")
	}

	quote, err := s.resolveToken(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	if quote.PDFKey == nil {
		return s.GeneratePDF(ctx, quote.ID)
	}

	link, err := s.store.GenerateDownloadURL(ctx, s.bucket, *quote.PDFKey)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to presign quote PDF", err)
	}
	return link, nil
}

func (s *Service) resolveToken(ctx context.Context, rawToken string) (Quote, error) {
	token, err := uuid.Parse(rawToken)
	if err != nil {
		return Quote{}, apperr.NotFound(msgQuoteLinkInvalid)
	}

	header, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Quote{}, apperr.NotFound(msgQuoteLinkInvalid)
		}
		return Quote{}, apperr.Wrap(apperr.KindInternal, "failed to resolve quote link", err)
	}
	if transport.QuoteStatus(header.Status) == transport.StatusDraft {
		// Drafts are not shared yet.
		return Quote{}, apperr.NotFound(msgQuoteLinkInvalid)
	}

	return s.attach(ctx, header)
}

func (s *Service) expireIfStale(ctx context.Context, quote Quote) (Quote, error) {
	if transport.QuoteStatus(quote.Status) != transport.StatusSent {
		return quote, nil
	}
	if quote.ValidUntil == nil || !quote.ValidUntil.Before(time.Now().Truncate(24*time.Hour)) {
		return quote, nil
	}

	header, err := s.repo.UpdateStatus(ctx, quote.ID, string(transport.StatusExpired))
	if err != nil {
		return Quote{}, apperr.Wrap(apperr.KindInternal, "failed to expire quote", err)
	}
	return s.attach(ctx, header)
}

func openForDecision(quote Quote) error {
	switch transport.QuoteStatus(quote.Status) {
	case transport.StatusSent:
		return nil
	case transport.StatusAccepted:
		return apperr.Validation(msgAlreadyAccepted)
	case transport.StatusRejected:
		return apperr.Validation(msgAlreadyRejected)
	case transport.StatusExpired:
		return apperr.Validation(msgQuoteExpired)
	}
	return apperr.Validation(msgNotOpen)
}
