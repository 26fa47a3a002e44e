package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nexus_backend/internal/adapters/storage"
	"nexus_backend/internal/events"
	"nexus_backend/internal/pdf"
	"nexus_backend/internal/quotes/repository"
	"nexus_backend/internal/quotes/transport"
	"nexus_backend/internal/shared/money"
	"nexus_backend/platform/apperr"
	"nexus_backend/platform/config"
	"nexus_backend/platform/sanitize"

	"github.com/google/uuid"
)

const dateFormat = "2006-01-02"

// Service provides business logic for quote documents.
type Service struct {
	repo       *repository.Repository
	eventBus   events.Bus
	store      storage.DocumentStore
	agency     config.AgencyConfig
	bucket     string
	appBaseURL string
}

func New(repo *repository.Repository, eventBus events.Bus, store storage.DocumentStore, agency config.AgencyConfig, bucket, appBaseURL string) *Service {
	return &Service{
		repo:       repo,
		eventBus:   eventBus,
		store:      store,
		agency:     agency,
		bucket:     bucket,
		appBaseURL: appBaseURL,
	}
}

// Quote couples a stored header with its items and computed totals.
type Quote struct {
	repository.Quote
	Items  []repository.Item
	Totals money.Totals
}

// DiscountFor resolves the discount in cents for a subtotal. Percent values
// are whole percent, fixed values are cents already.
func DiscountFor(subtotalCents int64, discountType *string, value int64) int64 {
	if discountType == nil || value <= 0 {
		return 0
	}
	switch transport.DiscountType(*discountType) {
	case transport.DiscountPercent:
		return money.PercentOf(subtotalCents, value)
	case transport.DiscountFixed:
		return value
	}
	return 0
}

func (s *Service) Create(ctx context.Context, partnerID *uuid.UUID, req transport.CreateQuoteRequest) (Quote, error) {
	header, err := headerParams(req.ClientName, req.ClientEmail, req.ClientCompany,
		req.TaxRateBps, req.DiscountType, req.DiscountValue, req.ValidUntil, req.Notes)
	if err != nil {
		return Quote{}, err
	}

	items, err := itemParams(req.Items)
	if err != nil {
		return Quote{}, err
	}

	quote, err := s.repo.Create(ctx, partnerID, header, items)
	if err != nil {
		return Quote{}, apperr.Wrap(apperr.KindInternal, "failed to create quote", err)
	}

	return s.load(ctx, quote.ID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateQuoteRequest) (Quote, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return Quote{}, err
	}
	if transport.QuoteStatus(current.Status) != transport.StatusDraft {
		return Quote{}, apperr.Validation("only draft quotes can be edited")
	}

	header, err := headerParams(req.ClientName, req.ClientEmail, req.ClientCompany,
		req.TaxRateBps, req.DiscountType, req.DiscountValue, req.ValidUntil, req.Notes)
	if err != nil {
		return Quote{}, err
	}

	if _, err := s.repo.UpdateHeader(ctx, id, header); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Quote{}, apperr.NotFound("quote not found")
		}
		return Quote{}, apperr.Wrap(apperr.KindInternal, "failed to update quote", err)
	}

	return s.load(ctx, id)
}

// ReplaceItems swaps the item list of a draft quote atomically.
func (s *Service) ReplaceItems(ctx context.Context, id uuid.UUID, req transport.ReplaceItemsRequest) (Quote, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return Quote{}, err
	}
	if transport.QuoteStatus(current.Status) != transport.StatusDraft {
		return Quote{}, apperr.Validation("only draft quotes can be edited")
	}

	items, err := itemParams(req.Items)
	if err != nil {
		return Quote{}, err
	}

	if err := s.repo.ReplaceItems(ctx, id, items); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Quote{}, apperr.NotFound("quote not found")
		}
		return Quote{}, apperr.Wrap(apperr.KindInternal, "failed to replace quote items", err)
	}

	return s.load(ctx, id)
}

func (s *Service) List(ctx context.Context, status *transport.QuoteStatus, partnerID *uuid.UUID, limit int) ([]Quote, error) {
	filters := repository.ListFilters{PartnerID: partnerID, Limit: limit}
	if status != nil {
		value := string(*status)
		filters.Status = &value
	}

	headers, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list quotes", err)
	}

	quotes := make([]Quote, 0, len(headers))
	for _, header := range headers {
		quote, err := s.attach(ctx, header)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (Quote, error) {
	return s.load(ctx, id)
}

// GetOwned fetches a quote and verifies partner ownership.
func (s *Service) GetOwned(ctx context.Context, id, partnerID uuid.UUID) (Quote, error) {
	quote, err := s.load(ctx, id)
	if err != nil {
		return Quote{}, err
	}
	if quote.PartnerID == nil || *quote.PartnerID != partnerID {
		return Quote{}, apperr.NotFound("quote not found")
	}
	return quote, nil
}

// Send marks a draft as sent and publishes the share link for delivery.
func (s *Service) Send(ctx context.Context, id uuid.UUID) (Quote, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return Quote{}, err
	}
	if transport.QuoteStatus(current.Status) != transport.StatusDraft {
		return Quote{}, apperr.Validation("only draft quotes can be sent")
	}

	if _, err := s.repo.UpdateStatus(ctx, id, string(transport.StatusSent)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Quote{}, apperr.NotFound("quote not found")
		}
		return Quote{}, apperr.Wrap(apperr.KindInternal, "failed to send quote", err)
	}

	s.eventBus.Publish(ctx, events.QuoteSent{
		BaseEvent:   events.NewBaseEvent(),
		QuoteID:     id,
		QuoteNumber: current.Number,
		ClientEmail: current.ClientEmail,
		ClientName:  current.ClientName,
		PublicToken: current.PublicToken.String(),
	})

	return s.load(ctx, id)
}

// GeneratePDF renders the quote, stores it and returns a presigned link.
func (s *Service) GeneratePDF(ctx context.Context, id uuid.UUID) (*storage.PresignedURL, error) {
	if s.store == nil {
		return nil, apperr.Validation("document storage is not configured")
	}

	quote, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := s.buildDocument(quote)
	data, err := pdf.Generate(doc)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "quote cannot be rendered", err)
	}

	fileKey := fmt.Sprintf("%s.pdf", quote.Number)
	if err := s.store.UploadPDF(ctx, s.bucket, fileKey, data); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to store quote PDF", err)
	}
	if err := s.repo.SetPDFKey(ctx, id, fileKey); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to record PDF key", err)
	}

	link, err := s.store.GenerateDownloadURL(ctx, s.bucket, fileKey)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to presign quote PDF", err)
	}
	return link, nil
}

// AcceptURL builds the public quote page link for a share token.
func (s *Service) AcceptURL(token uuid.UUID) string {
	return fmt.Sprintf("%s/devis/%s", s.appBaseURL, token)
}

func (s *Service) buildDocument(quote Quote) pdf.Document {
	items := make([]pdf.LineItem, 0, len(quote.Items))
	for i, item := range quote.Items {
		items = append(items, pdf.LineItem{
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: quote.Totals.LineTotals[i],
		})
	}

	return pdf.Document{
		Kind:          pdf.KindQuote,
		Number:        quote.Number,
		Status:        quote.Status,
		AgencyName:    s.agency.GetAgencyName(),
		AgencyPhone:   s.agency.GetAgencyPhone(),
		AgencyAddress: s.agency.GetAgencyAddress(),
		AgencySIRET:   s.agency.GetAgencySIRET(),
		AgencyTVA:     s.agency.GetAgencyTVANumber(),
		ClientName:    quote.ClientName,
		ClientEmail:   quote.ClientEmail,
		IssuedAt:      quote.CreatedAt,
		ValidUntil:    quote.ValidUntil,
		Notes:         quote.Notes,
		Items:         items,
		SubtotalCents: quote.Totals.SubtotalCents,
		DiscountCents: quote.Totals.DiscountCents,
		TaxRateBps:    quote.TaxRateBps,
		TaxCents:      quote.Totals.TaxCents,
		TotalCents:    quote.Totals.TotalCents,
		AcceptURL:     s.AcceptURL(quote.PublicToken),
	}
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (Quote, error) {
	header, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Quote{}, apperr.NotFound("quote not found")
		}
		return Quote{}, apperr.Wrap(apperr.KindInternal, "failed to load quote", err)
	}
	return s.attach(ctx, header)
}

func (s *Service) attach(ctx context.Context, header repository.Quote) (Quote, error) {
	items, err := s.repo.ListItems(ctx, header.ID)
	if err != nil {
		return Quote{}, apperr.Wrap(apperr.KindInternal, "failed to load quote items", err)
	}

	lines := make([]money.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, money.Line{Quantity: item.Quantity, UnitPriceCents: item.UnitPriceCents})
	}
	subtotal := money.Compute(lines, 0, 0).SubtotalCents
	discount := DiscountFor(subtotal, header.DiscountType, header.DiscountValue)

	return Quote{
		Quote:  header,
		Items:  items,
		Totals: money.Compute(lines, discount, header.TaxRateBps),
	}, nil
}

func headerParams(clientName, clientEmail, clientCompany string, taxRateBps int, discountType transport.DiscountType, discountValue int64, validUntil, notes string) (repository.HeaderParams, error) {
	params := repository.HeaderParams{
		ClientName:    sanitize.Text(clientName),
		ClientEmail:   sanitize.Email(clientEmail),
		TaxRateBps:    taxRateBps,
		DiscountValue: discountValue,
	}

	if cleaned := sanitize.Text(clientCompany); cleaned != "" {
		params.ClientCompany = &cleaned
	}
	if discountType != "" {
		if discountType == transport.DiscountPercent && discountValue > 100 {
			return repository.HeaderParams{}, apperr.Validation("percent discount cannot exceed 100")
		}
		value := string(discountType)
		params.DiscountType = &value
	}
	if validUntil != "" {
		parsed, err := time.Parse(dateFormat, validUntil)
		if err != nil {
			return repository.HeaderParams{}, apperr.Validation("validUntil must be formatted YYYY-MM-DD")
		}
		params.ValidUntil = &parsed
	}
	if cleaned := sanitize.Text(notes); cleaned != "" {
		params.Notes = &cleaned
	}
	return params, nil
}

func itemParams(inputs []transport.ItemInput) ([]repository.ItemParams, error) {
	if len(inputs) == 0 {
		return nil, apperr.Validation("at least one line item is required")
	}

	items := make([]repository.ItemParams, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, repository.ItemParams{
			Description:    sanitize.Text(in.Description),
			Quantity:       sanitize.Text(in.Quantity),
			UnitPriceCents: in.UnitPriceCents,
		})
	}
	return items, nil
}
