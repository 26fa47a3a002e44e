package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nexus_backend/internal/adapters/storage"
	"nexus_backend/internal/events"
	"nexus_backend/internal/invoices/repository"
	"nexus_backend/internal/invoices/transport"
	"nexus_backend/internal/pdf"
	"nexus_backend/internal/shared/money"
	"nexus_backend/platform/apperr"
	"nexus_backend/platform/config"
	"nexus_backend/platform/sanitize"

	"github.com/google/uuid"
)

const dateFormat = "2006-01-02"

// validTransitions is the invoice lifecycle. Paid and cancelled are terminal;
// overdue can still be paid or cancelled.
var validTransitions = map[transport.InvoiceStatus][]transport.InvoiceStatus{
	transport.StatusDraft:     {transport.StatusSent, transport.StatusCancelled},
	transport.StatusSent:      {transport.StatusPaid, transport.StatusOverdue, transport.StatusCancelled},
	transport.StatusOverdue:   {transport.StatusPaid, transport.StatusCancelled},
	transport.StatusPaid:      {},
	transport.StatusCancelled: {},
}

// Service provides business logic for invoices.
type Service struct {
	repo     *repository.Repository
	eventBus events.Bus
	store    storage.DocumentStore
	agency   config.AgencyConfig
	bucket   string
}

func New(repo *repository.Repository, eventBus events.Bus, store storage.DocumentStore, agency config.AgencyConfig, bucket string) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		store:    store,
		agency:   agency,
		bucket:   bucket,
	}
}

// Invoice couples a stored header with its items and computed totals.
type Invoice struct {
	repository.Invoice
	Items  []repository.Item
	Totals money.Totals
}

func (s *Service) Create(ctx context.Context, req transport.CreateInvoiceRequest) (Invoice, error) {
	header, err := headerParams(req.ClientName, req.ClientEmail, req.IssueDate, req.DueDate, req.TaxRateBps, req.Notes)
	if err != nil {
		return Invoice{}, err
	}

	items, err := itemParams(req.Items)
	if err != nil {
		return Invoice{}, err
	}

	inv, err := s.repo.Create(ctx, header, items)
	if err != nil {
		return Invoice{}, apperr.Wrap(apperr.KindInternal, "failed to create invoice", err)
	}

	return s.load(ctx, inv.ID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateInvoiceRequest) (Invoice, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	if transport.InvoiceStatus(current.Status) != transport.StatusDraft {
		return Invoice{}, apperr.Validation("only draft invoices can be edited")
	}

	header, err := headerParams(req.ClientName, req.ClientEmail, req.IssueDate, req.DueDate, req.TaxRateBps, req.Notes)
	if err != nil {
		return Invoice{}, err
	}

	if _, err := s.repo.UpdateHeader(ctx, id, header); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Invoice{}, apperr.NotFound("invoice not found")
		}
		return Invoice{}, apperr.Wrap(apperr.KindInternal, "failed to update invoice", err)
	}

	return s.load(ctx, id)
}

// ReplaceItems swaps the item list of a draft invoice atomically.
func (s *Service) ReplaceItems(ctx context.Context, id uuid.UUID, req transport.ReplaceItemsRequest) (Invoice, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	if transport.InvoiceStatus(current.Status) != transport.StatusDraft {
		return Invoice{}, apperr.Validation("only draft invoices can be edited")
	}

	items, err := itemParams(req.Items)
	if err != nil {
		return Invoice{}, err
	}

	if err := s.repo.ReplaceItems(ctx, id, items); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Invoice{}, apperr.NotFound("invoice not found")
		}
		return Invoice{}, apperr.Wrap(apperr.KindInternal, "failed to replace invoice items", err)
	}

	return s.load(ctx, id)
}

func (s *Service) List(ctx context.Context, status *transport.InvoiceStatus, clientEmail string, limit int) ([]Invoice, error) {
	filters := repository.ListFilters{Limit: limit}
	if status != nil {
		value := string(*status)
		filters.Status = &value
	}
	if clientEmail != "" {
		email := sanitize.Email(clientEmail)
		filters.ClientEmail = &email
	}

	headers, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list invoices", err)
	}

	invoices := make([]Invoice, 0, len(headers))
	for _, header := range headers {
		inv, err := s.attach(ctx, header)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (Invoice, error) {
	return s.load(ctx, id)
}

// UpdateStatus moves an invoice through its lifecycle, publishing the change.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus transport.InvoiceStatus) (Invoice, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return Invoice{}, err
	}

	oldStatus := transport.InvoiceStatus(current.Status)
	if oldStatus == newStatus {
		return current, nil
	}
	if !transitionAllowed(oldStatus, newStatus) {
		return Invoice{}, apperr.Validation(
			fmt.Sprintf("cannot move invoice from %s to %s", oldStatus, newStatus))
	}

	if _, err := s.repo.UpdateStatus(ctx, id, string(newStatus)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Invoice{}, apperr.NotFound("invoice not found")
		}
		return Invoice{}, apperr.Wrap(apperr.KindInternal, "failed to update invoice status", err)
	}

	s.eventBus.Publish(ctx, events.InvoiceStatusChanged{
		BaseEvent:     events.NewBaseEvent(),
		InvoiceID:     id,
		InvoiceNumber: current.Number,
		OldStatus:     string(oldStatus),
		NewStatus:     string(newStatus),
	})

	return s.load(ctx, id)
}

// MarkOverdue flips sent invoices past their due date, publishing one status
// change per invoice. Used by the worker sweep.
func (s *Service) MarkOverdue(ctx context.Context, asOf time.Time) (int, error) {
	flipped, err := s.repo.MarkOverdue(ctx, asOf)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "overdue sweep failed", err)
	}

	for _, inv := range flipped {
		s.eventBus.Publish(ctx, events.InvoiceStatusChanged{
			BaseEvent:     events.NewBaseEvent(),
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.Number,
			OldStatus:     string(transport.StatusSent),
			NewStatus:     string(transport.StatusOverdue),
		})
	}
	return len(flipped), nil
}

// GeneratePDF renders the invoice, stores it and returns a presigned link.
func (s *Service) GeneratePDF(ctx context.Context, id uuid.UUID) (*storage.PresignedURL, error) {
	if s.store == nil {
		return nil, apperr.Validation("document storage is not configured")
	}

	inv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := s.buildDocument(inv)
	data, err := pdf.Generate(doc)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invoice cannot be rendered", err)
	}

	fileKey := fmt.Sprintf("%s.pdf", inv.Number)
	if err := s.store.UploadPDF(ctx, s.bucket, fileKey, data); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to store invoice PDF", err)
	}
	if err := s.repo.SetPDFKey(ctx, id, fileKey); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to record PDF key", err)
	}

	link, err := s.store.GenerateDownloadURL(ctx, s.bucket, fileKey)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to presign invoice PDF", err)
	}
	return link, nil
}

func (s *Service) buildDocument(inv Invoice) pdf.Document {
	items := make([]pdf.LineItem, 0, len(inv.Items))
	for i, item := range inv.Items {
		items = append(items, pdf.LineItem{
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			LineTotalCents: inv.Totals.LineTotals[i],
		})
	}

	due := inv.DueDate
	return pdf.Document{
		Kind:          pdf.KindInvoice,
		Number:        inv.Number,
		Status:        inv.Status,
		AgencyName:    s.agency.GetAgencyName(),
		AgencyPhone:   s.agency.GetAgencyPhone(),
		AgencyAddress: s.agency.GetAgencyAddress(),
		AgencySIRET:   s.agency.GetAgencySIRET(),
		AgencyTVA:     s.agency.GetAgencyTVANumber(),
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		IssuedAt:      inv.IssueDate,
		DueDate:       &due,
		Notes:         inv.Notes,
		Items:         items,
		SubtotalCents: inv.Totals.SubtotalCents,
		TaxRateBps:    inv.TaxRateBps,
		TaxCents:      inv.Totals.TaxCents,
		TotalCents:    inv.Totals.TotalCents,
	}
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (Invoice, error) {
	header, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Invoice{}, apperr.NotFound("invoice not found")
		}
		return Invoice{}, apperr.Wrap(apperr.KindInternal, "failed to load invoice", err)
	}
	return s.attach(ctx, header)
}

func (s *Service) attach(ctx context.Context, header repository.Invoice) (Invoice, error) {
	items, err := s.repo.ListItems(ctx, header.ID)
	if err != nil {
		return Invoice{}, apperr.Wrap(apperr.KindInternal, "failed to load invoice items", err)
	}

	lines := make([]money.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, money.Line{Quantity: item.Quantity, UnitPriceCents: item.UnitPriceCents})
	}

	return Invoice{
		Invoice: header,
		Items:   items,
		Totals:  money.Compute(lines, 0, header.TaxRateBps),
	}, nil
}

func headerParams(clientName, clientEmail, issueDate, dueDate string, taxRateBps int, notes string) (repository.HeaderParams, error) {
	issued, err := time.Parse(dateFormat, issueDate)
	if err != nil {
		return repository.HeaderParams{}, apperr.Validation("issueDate must be formatted YYYY-MM-DD")
	}
	due, err := time.Parse(dateFormat, dueDate)
	if err != nil {
		return repository.HeaderParams{}, apperr.Validation("dueDate must be formatted YYYY-MM-DD")
	}
	if due.Before(issued) {
		return repository.HeaderParams{}, apperr.Validation("dueDate must not precede issueDate")
	}

	params := repository.HeaderParams{
		ClientName:  sanitize.Text(clientName),
		ClientEmail: sanitize.Email(clientEmail),
		IssueDate:   issued,
		DueDate:     due,
		TaxRateBps:  taxRateBps,
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

func transitionAllowed(from, to transport.InvoiceStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
