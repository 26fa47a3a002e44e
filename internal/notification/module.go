// Package notification provides event handlers for sending transactional
// emails and pushing real-time updates in response to domain events.
// Domain modules publish events without knowing about email providers or
// connected dashboards.
package notification

import (
	"context"
	"fmt"

	"nexus_backend/internal/email"
	"nexus_backend/internal/events"
	apphttp "nexus_backend/internal/http"
	"nexus_backend/internal/notification/sse"
	"nexus_backend/platform/config"
	"nexus_backend/platform/httpkit"
	"nexus_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PartnerContactReader resolves the contact details of a sales partner.
type PartnerContactReader interface {
	PartnerContact(ctx context.Context, partnerID uuid.UUID) (name, email string, err error)
}

// Module wires domain events to email delivery and SSE broadcasts.
type Module struct {
	sender   email.Sender
	cfg      config.EmailConfig
	log      *logger.Logger
	sse      *sse.Service
	partners PartnerContactReader
}

// New creates the notification module.
func New(sender email.Sender, cfg config.EmailConfig, log *logger.Logger) *Module {
	return &Module{
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

func (m *Module) Name() string { return "notification" }

// SetSSE attaches the SSE service for real-time broadcasts.
func (m *Module) SetSSE(s *sse.Service) { m.sse = s }

// SetPartnerContactReader attaches the partner lookup used for accepted-quote
// notifications.
func (m *Module) SetPartnerContactReader(r PartnerContactReader) { m.partners = r }

// RegisterRoutes registers the SSE stream endpoint for authenticated users.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	if m.sse == nil {
		return
	}

	ctx.Protected.GET("/notifications/stream", m.sse.Handler(func(c *gin.Context) (uuid.UUID, []string, bool) {
		identity := httpkit.GetIdentity(c)
		if identity == nil || !identity.IsAuthenticated() {
			return uuid.Nil, nil, false
		}
		return identity.UserID(), identity.Roles(), true
	}))
}

// RegisterHandlers subscribes the module to all events it reacts to.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.QuoteRequestSubmitted{}.EventName(), m)
	bus.Subscribe(events.QuoteRequestStatusChanged{}.EventName(), m)
	bus.Subscribe(events.CallBookingCreated{}.EventName(), m)
	bus.Subscribe(events.CallBookingCancelled{}.EventName(), m)
	bus.Subscribe(events.CallBookingReminderDue{}.EventName(), m)
	bus.Subscribe(events.ClientStatusChanged{}.EventName(), m)
	bus.Subscribe(events.InvoiceStatusChanged{}.EventName(), m)
	bus.Subscribe(events.QuoteSent{}.EventName(), m)
	bus.Subscribe(events.QuoteAccepted{}.EventName(), m)
	bus.Subscribe(events.UserInvited{}.EventName(), m)
	bus.Subscribe(events.OpportunityStageChanged{}.EventName(), m)
	bus.Subscribe(events.ProjectStatusChanged{}.EventName(), m)
}

// Handle dispatches a domain event to its handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.QuoteRequestSubmitted:
		return m.handleQuoteRequestSubmitted(ctx, e)
	case events.QuoteRequestStatusChanged:
		m.broadcastAdmin(sse.EventQuoteRequestsChanged)
		return nil
	case events.CallBookingCreated:
		return m.handleCallBookingCreated(ctx, e)
	case events.CallBookingCancelled:
		return m.handleCallBookingCancelled(ctx, e)
	case events.CallBookingReminderDue:
		return m.handleCallBookingReminderDue(ctx, e)
	case events.ClientStatusChanged:
		m.broadcastAdmin(sse.EventClientStatusesChanged)
		return nil
	case events.InvoiceStatusChanged:
		m.broadcastAdmin(sse.EventInvoicesChanged)
		return nil
	case events.QuoteSent:
		return m.handleQuoteSent(ctx, e)
	case events.QuoteAccepted:
		return m.handleQuoteAccepted(ctx, e)
	case events.UserInvited:
		return m.handleUserInvited(ctx, e)
	case events.OpportunityStageChanged:
		m.broadcastAdmin(sse.EventOpportunitiesChanged)
		return nil
	case events.ProjectStatusChanged:
		m.broadcastAdmin(sse.EventProjectsChanged)
		return nil
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) broadcastAdmin(eventType sse.EventType) {
	if m.sse == nil {
		return
	}
	m.sse.PublishToRole("admin", sse.Event{Type: eventType})
}

func (m *Module) broadcastSales(eventType sse.EventType) {
	if m.sse == nil {
		return
	}
	m.sse.PublishToRole("sales", sse.Event{Type: eventType})
}

func (m *Module) buildURL(path, token string) string {
	return fmt.Sprintf("%s%s?token=%s", m.cfg.GetAppBaseURL(), path, token)
}

func (m *Module) handleQuoteRequestSubmitted(ctx context.Context, e events.QuoteRequestSubmitted) error {
	if err := m.sender.SendQuoteRequestAckEmail(ctx, e.Email, e.Name); err != nil {
		m.log.Error("failed to send quote request ack email",
			"quoteRequestId", e.QuoteRequestID,
			"email", e.Email,
			"error", err,
		)
		return err
	}

	inbox := m.cfg.GetAgencyInboxAddress()
	if inbox != "" {
		if err := m.sender.SendQuoteRequestAlertEmail(ctx, inbox, e.Name, e.Email, e.Services); err != nil {
			m.log.Error("failed to send quote request alert email",
				"quoteRequestId", e.QuoteRequestID,
				"error", err,
			)
			return err
		}
	}

	m.broadcastAdmin(sse.EventQuoteRequestsChanged)
	m.log.Info("quote request notifications sent", "quoteRequestId", e.QuoteRequestID)
	return nil
}

func (m *Module) handleCallBookingCreated(ctx context.Context, e events.CallBookingCreated) error {
	if err := m.sender.SendBookingConfirmationEmail(ctx, e.Email, e.Name, e.BookingDate, e.TimeSlot); err != nil {
		m.log.Error("failed to send booking confirmation email",
			"bookingId", e.BookingID,
			"email", e.Email,
			"error", err,
		)
		return err
	}

	inbox := m.cfg.GetAgencyInboxAddress()
	if inbox != "" {
		if err := m.sender.SendBookingAlertEmail(ctx, inbox, e.Name, e.Email, e.BookingDate, e.TimeSlot); err != nil {
			m.log.Error("failed to send booking alert email", "bookingId", e.BookingID, "error", err)
			return err
		}
	}

	m.broadcastAdmin(sse.EventCallBookingsChanged)
	m.log.Info("booking notifications sent", "bookingId", e.BookingID)
	return nil
}

func (m *Module) handleCallBookingCancelled(ctx context.Context, e events.CallBookingCancelled) error {
	if err := m.sender.SendBookingCancelledEmail(ctx, e.Email, e.Name, e.BookingDate, e.TimeSlot); err != nil {
		m.log.Error("failed to send booking cancelled email",
			"bookingId", e.BookingID,
			"email", e.Email,
			"error", err,
		)
		return err
	}

	// Only alert the agency when the client cancelled. Admin cancellations
	// originate from the dashboard itself.
	inbox := m.cfg.GetAgencyInboxAddress()
	if inbox != "" && e.CancelledBy == "client" {
		if err := m.sender.SendBookingCancelAlertEmail(ctx, inbox, e.Name, e.BookingDate, e.TimeSlot); err != nil {
			m.log.Error("failed to send booking cancel alert email", "bookingId", e.BookingID, "error", err)
			return err
		}
	}

	m.broadcastAdmin(sse.EventCallBookingsChanged)
	m.log.Info("booking cancellation notifications sent", "bookingId", e.BookingID)
	return nil
}

func (m *Module) handleCallBookingReminderDue(ctx context.Context, e events.CallBookingReminderDue) error {
	if err := m.sender.SendBookingReminderEmail(ctx, e.Email, e.Name, e.BookingDate, e.TimeSlot); err != nil {
		m.log.Error("failed to send booking reminder email",
			"bookingId", e.BookingID,
			"email", e.Email,
			"error", err,
		)
		return err
	}
	m.log.Info("booking reminder sent", "bookingId", e.BookingID, "email", e.Email)
	return nil
}

func (m *Module) handleQuoteSent(ctx context.Context, e events.QuoteSent) error {
	quoteURL := m.cfg.GetAppBaseURL() + "/devis/" + e.PublicToken
	if err := m.sender.SendQuoteProposalEmail(ctx, e.ClientEmail, e.ClientName, e.QuoteNumber, quoteURL); err != nil {
		m.log.Error("failed to send quote proposal email",
			"quoteId", e.QuoteID,
			"email", e.ClientEmail,
			"error", err,
		)
		return err
	}

	m.broadcastAdmin(sse.EventQuotesChanged)
	m.broadcastSales(sse.EventQuotesChanged)
	m.log.Info("quote proposal email sent", "quoteId", e.QuoteID, "number", e.QuoteNumber)
	return nil
}

func (m *Module) handleQuoteAccepted(ctx context.Context, e events.QuoteAccepted) error {
	m.broadcastAdmin(sse.EventQuotesChanged)
	m.broadcastSales(sse.EventQuotesChanged)
	m.broadcastSales(sse.EventCommissionsChanged)

	if e.PartnerID == nil || m.partners == nil {
		return nil
	}

	name, partnerEmail, err := m.partners.PartnerContact(ctx, *e.PartnerID)
	if err != nil {
		m.log.Error("failed to resolve partner contact",
			"quoteId", e.QuoteID,
			"partnerId", *e.PartnerID,
			"error", err,
		)
		return nil
	}

	if err := m.sender.SendQuoteAcceptedPartnerEmail(ctx, partnerEmail, name, e.QuoteNumber, e.TotalCents); err != nil {
		m.log.Error("failed to send quote accepted partner email",
			"quoteId", e.QuoteID,
			"partnerId", *e.PartnerID,
			"error", err,
		)
		return err
	}

	m.log.Info("quote accepted partner email sent", "quoteId", e.QuoteID, "partnerId", *e.PartnerID)
	return nil
}

func (m *Module) handleUserInvited(ctx context.Context, e events.UserInvited) error {
	inviteURL := m.buildURL("/accept-invite", e.InviteToken)
	if err := m.sender.SendInviteEmail(ctx, e.Email, inviteURL); err != nil {
		m.log.Error("failed to send invite email", "email", e.Email, "error", err)
		return err
	}
	m.log.Info("invite email sent", "email", e.Email)
	return nil
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)

// Compile-time check that Module implements events.Handler.
var _ events.Handler = (*Module)(nil)
