package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	"nexus_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface over a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host       string
	port       int
	username   string
	password   string
	fromName   string
	fromEmail  string
	appBaseURL string
}

// NewSMTPSender creates an SMTPSender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:       cfg.GetSMTPHost(),
		port:       cfg.GetSMTPPort(),
		username:   cfg.GetSMTPUsername(),
		password:   cfg.GetSMTPPassword(),
		fromName:   cfg.GetEmailFromName(),
		fromEmail:  cfg.GetEmailFromAddress(),
		appBaseURL: cfg.GetAppBaseURL(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, att := range attachments {
		msg.AttachReader(att.FileName, bytes.NewReader(att.Content))
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (s *SMTPSender) SendQuoteRequestAckEmail(ctx context.Context, toEmail, name string) error {
	content, err := renderEmailTemplate("quote_request_ack.html", quoteRequestAckEmailData{
		baseEmailData: baseEmailData{
			Title:   "Demande de devis reçue",
			Heading: "Merci pour votre demande",
		},
		Name: name,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectQuoteRequestAck, content)
}

func (s *SMTPSender) SendQuoteRequestAlertEmail(ctx context.Context, toEmail, requesterName, requesterEmail string, services []string) error {
	content, err := renderEmailTemplate("quote_request_alert.html", quoteRequestAlertEmailData{
		baseEmailData: baseEmailData{
			Title:    "Nouvelle demande de devis",
			Heading:  "Nouvelle demande de devis",
			CTALabel: "Ouvrir le tableau de bord",
			CTAURL:   s.appBaseURL + "/admin/quote-requests",
		},
		RequesterName:  requesterName,
		RequesterEmail: requesterEmail,
		Services:       formatServices(services),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectQuoteRequestAlertFmt, requesterName), content)
}

func (s *SMTPSender) SendBookingConfirmationEmail(ctx context.Context, toEmail, name, bookingDate, timeSlot string) error {
	content, err := renderEmailTemplate("booking_confirmation.html", bookingEmailData{
		baseEmailData: baseEmailData{
			Title:   "Rendez-vous confirmé",
			Heading: "Votre rendez-vous est réservé",
		},
		Name:        name,
		BookingDate: bookingDate,
		TimeSlot:    timeSlot,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectBookingConfirmation, content)
}

func (s *SMTPSender) SendBookingAlertEmail(ctx context.Context, toEmail, clientName, clientEmail, bookingDate, timeSlot string) error {
	content, err := renderEmailTemplate("booking_alert.html", bookingAlertEmailData{
		baseEmailData: baseEmailData{
			Title:    "Nouveau rendez-vous",
			Heading:  "Nouveau rendez-vous réservé",
			CTALabel: "Voir les rendez-vous",
			CTAURL:   s.appBaseURL + "/admin/call-bookings",
		},
		ClientName:  clientName,
		ClientEmail: clientEmail,
		BookingDate: bookingDate,
		TimeSlot:    timeSlot,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectBookingAlertFmt, clientName), content)
}

func (s *SMTPSender) SendBookingCancelledEmail(ctx context.Context, toEmail, name, bookingDate, timeSlot string) error {
	content, err := renderEmailTemplate("booking_cancelled.html", bookingEmailData{
		baseEmailData: baseEmailData{
			Title:   "Rendez-vous annulé",
			Heading: "Votre rendez-vous a été annulé",
		},
		Name:        name,
		BookingDate: bookingDate,
		TimeSlot:    timeSlot,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectBookingCancelled, content)
}

func (s *SMTPSender) SendBookingCancelAlertEmail(ctx context.Context, toEmail, clientName, bookingDate, timeSlot string) error {
	content, err := renderEmailTemplate("booking_cancel_alert.html", bookingAlertEmailData{
		baseEmailData: baseEmailData{
			Title:   "Rendez-vous annulé",
			Heading: "Un rendez-vous a été annulé",
		},
		ClientName:  clientName,
		BookingDate: bookingDate,
		TimeSlot:    timeSlot,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectBookingCancelAlert, content)
}

func (s *SMTPSender) SendBookingReminderEmail(ctx context.Context, toEmail, name, bookingDate, timeSlot string) error {
	content, err := renderEmailTemplate("booking_reminder.html", bookingEmailData{
		baseEmailData: baseEmailData{
			Title:   "Rappel de rendez-vous",
			Heading: "Votre rendez-vous approche",
		},
		Name:        name,
		BookingDate: bookingDate,
		TimeSlot:    timeSlot,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectBookingReminder, content)
}

func (s *SMTPSender) SendInviteEmail(ctx context.Context, toEmail, inviteURL string) error {
	content, err := renderEmailTemplate("invite.html", inviteEmailData{
		baseEmailData: baseEmailData{
			Title:    "Invitation au portail",
			Heading:  "Vous êtes invité(e)",
			CTALabel: "Créer mon mot de passe",
			CTAURL:   inviteURL,
		},
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectInvite, content)
}

func (s *SMTPSender) SendQuoteProposalEmail(ctx context.Context, toEmail, clientName, quoteNumber, quoteURL string) error {
	content, err := renderEmailTemplate("quote_proposal.html", quoteProposalEmailData{
		baseEmailData: baseEmailData{
			Title:    "Votre devis",
			Heading:  "Votre devis est prêt",
			CTALabel: "Consulter le devis",
			CTAURL:   quoteURL,
		},
		ClientName:  clientName,
		QuoteNumber: quoteNumber,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectQuoteProposalFmt, quoteNumber), content)
}

func (s *SMTPSender) SendQuoteAcceptedPartnerEmail(ctx context.Context, toEmail, partnerName, quoteNumber string, totalCents int64) error {
	content, err := renderEmailTemplate("quote_accepted.html", quoteAcceptedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Devis accepté",
			Heading: "Bonne nouvelle !",
		},
		PartnerName:    partnerName,
		QuoteNumber:    quoteNumber,
		TotalFormatted: formatCurrencyEUR(totalCents),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectQuoteAcceptedFmt, quoteNumber), content)
}

func (s *SMTPSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return s.send(ctx, toEmail, subject, htmlContent)
}

var _ Sender = (*SMTPSender)(nil)
