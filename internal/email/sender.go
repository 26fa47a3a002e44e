// Package email renders and delivers the agency's transactional emails.
package email

import "context"

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte
	FileName string
	MIMEType string
}

// Sender delivers transactional email. Implementations render the embedded
// French templates and hand the result to a transport.
type Sender interface {
	SendQuoteRequestAckEmail(ctx context.Context, toEmail, name string) error
	SendQuoteRequestAlertEmail(ctx context.Context, toEmail, requesterName, requesterEmail string, services []string) error
	SendBookingConfirmationEmail(ctx context.Context, toEmail, name, bookingDate, timeSlot string) error
	SendBookingAlertEmail(ctx context.Context, toEmail, clientName, clientEmail, bookingDate, timeSlot string) error
	SendBookingCancelledEmail(ctx context.Context, toEmail, name, bookingDate, timeSlot string) error
	SendBookingCancelAlertEmail(ctx context.Context, toEmail, clientName, bookingDate, timeSlot string) error
	SendBookingReminderEmail(ctx context.Context, toEmail, name, bookingDate, timeSlot string) error
	SendInviteEmail(ctx context.Context, toEmail, inviteURL string) error
	SendQuoteProposalEmail(ctx context.Context, toEmail, clientName, quoteNumber, quoteURL string) error
	SendQuoteAcceptedPartnerEmail(ctx context.Context, toEmail, partnerName, quoteNumber string, totalCents int64) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender drops every email. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendQuoteRequestAckEmail(ctx context.Context, toEmail, name string) error {
	return nil
}

func (NoopSender) SendQuoteRequestAlertEmail(ctx context.Context, toEmail, requesterName, requesterEmail string, services []string) error {
	return nil
}

func (NoopSender) SendBookingConfirmationEmail(ctx context.Context, toEmail, name, bookingDate, timeSlot string) error {
	return nil
}

func (NoopSender) SendBookingAlertEmail(ctx context.Context, toEmail, clientName, clientEmail, bookingDate, timeSlot string) error {
	return nil
}

func (NoopSender) SendBookingCancelledEmail(ctx context.Context, toEmail, name, bookingDate, timeSlot string) error {
	return nil
}

func (NoopSender) SendBookingCancelAlertEmail(ctx context.Context, toEmail, clientName, bookingDate, timeSlot string) error {
	return nil
}

func (NoopSender) SendBookingReminderEmail(ctx context.Context, toEmail, name, bookingDate, timeSlot string) error {
	return nil
}

func (NoopSender) SendInviteEmail(ctx context.Context, toEmail, inviteURL string) error {
	return nil
}

func (NoopSender) SendQuoteProposalEmail(ctx context.Context, toEmail, clientName, quoteNumber, quoteURL string) error {
	return nil
}

func (NoopSender) SendQuoteAcceptedPartnerEmail(ctx context.Context, toEmail, partnerName, quoteNumber string, totalCents int64) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

var _ Sender = NoopSender{}
