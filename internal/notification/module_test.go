package notification

import (
	"context"
	"testing"

	"nexus_backend/internal/events"
	"nexus_backend/platform/logger"

	"github.com/google/uuid"
)

type testEmailConfig struct {
	inbox string
}

func (c testEmailConfig) GetEmailEnabled() bool { return true }
func (c testEmailConfig) GetSMTPHost() string { return "localhost" }
func (c testEmailConfig) GetSMTPPort() int { return 1025 }
func (c testEmailConfig) GetSMTPUsername() string { return "" }
func (c testEmailConfig) GetSMTPPassword() string { return "" }
func (c testEmailConfig) GetEmailFromName() string { return "Nexus" }
func (c testEmailConfig) GetEmailFromAddress() string { return "no-reply@example.com" }
func (c testEmailConfig) GetAgencyInboxAddress() string { return c.inbox }
func (c testEmailConfig) GetAppBaseURL() string { return "https://app.example.com" }

type testSender struct {
	ackCalls          int
	alertCalls        int
	confirmationCalls int
	bookingAlertCalls int
	cancelledCalls    int
	cancelAlertCalls  int
	reminderCalls     int
	inviteCalls       int
	inviteURL         string
	proposalCalls     int
	proposalURL       string
	partnerCalls      int
	partnerEmail      string
}

func (s *testSender) SendQuoteRequestAckEmail(context.Context, string, string) error {
	s.ackCalls++
	return nil
}
func (s *testSender) SendQuoteRequestAlertEmail(context.Context, string, string, string, []string) error {
	s.alertCalls++
	return nil
}
func (s *testSender) SendBookingConfirmationEmail(context.Context, string, string, string, string) error {
	s.confirmationCalls++
	return nil
}
func (s *testSender) SendBookingAlertEmail(context.Context, string, string, string, string, string) error {
	s.bookingAlertCalls++
	return nil
}
func (s *testSender) SendBookingCancelledEmail(context.Context, string, string, string, string) error {
	s.cancelledCalls++
	return nil
}
func (s *testSender) SendBookingCancelAlertEmail(context.Context, string, string, string, string) error {
	s.cancelAlertCalls++
	return nil
}
func (s *testSender) SendBookingReminderEmail(context.Context, string, string, string, string) error {
	s.reminderCalls++
	return nil
}
func (s *testSender) SendInviteEmail(_ context.Context, _ string, inviteURL string) error {
	s.inviteCalls++
	s.inviteURL = inviteURL
	return nil
}
func (s *testSender) SendQuoteProposalEmail(_ context.Context, _, _, _, quoteURL string) error {
	s.proposalCalls++
	s.proposalURL = quoteURL
	return nil
}
func (s *testSender) SendQuoteAcceptedPartnerEmail(_ context.Context, toEmail, _, _ string, _ int64) error {
	s.partnerCalls++
	s.partnerEmail = toEmail
	return nil
}
func (s *testSender) SendCustomEmail(context.Context, string, string, string) error { return nil }

type testPartnerContacts struct {
	name  string
	email string
}

func (r testPartnerContacts) PartnerContact(context.Context, uuid.UUID) (string, string, error) {
	return r.name, r.email, nil
}

func newTestModule(sender *testSender, inbox string) *Module {
	return New(sender, testEmailConfig{inbox: inbox}, logger.New("development"))
}

func TestQuoteRequestSubmittedSendsAckAndAlert(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender, "contact@example.com")

	err := m.Handle(context.Background(), events.QuoteRequestSubmitted{
		QuoteRequestID: uuid.New(),
		Name:           "Alice Martin",
		Email:          "alice@example.com",
		Services:       []string{"vitrine"},
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if sender.ackCalls != 1 {
		t.Fatalf("expected 1 ack email, got %d", sender.ackCalls)
	}
	if sender.alertCalls != 1 {
		t.Fatalf("expected 1 alert email, got %d", sender.alertCalls)
	}
}

func TestQuoteRequestSubmittedSkipsAlertWithoutInbox(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender, "")

	err := m.Handle(context.Background(), events.QuoteRequestSubmitted{
		QuoteRequestID: uuid.New(),
		Name:           "Alice Martin",
		Email:          "alice@example.com",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if sender.ackCalls != 1 {
		t.Fatalf("expected 1 ack email, got %d", sender.ackCalls)
	}
	if sender.alertCalls != 0 {
		t.Fatalf("expected no alert email without inbox, got %d", sender.alertCalls)
	}
}

func TestBookingCancelledByAdminSkipsAgencyAlert(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender, "contact@example.com")

	err := m.Handle(context.Background(), events.CallBookingCancelled{
		BookingID:   uuid.New(),
		Name:        "Bob",
		Email:       "bob@example.com",
		BookingDate: "2026-09-15",
		TimeSlot:    "10:00",
		CancelledBy: "admin",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if sender.cancelledCalls != 1 {
		t.Fatalf("expected 1 cancelled email, got %d", sender.cancelledCalls)
	}
	if sender.cancelAlertCalls != 0 {
		t.Fatalf("expected no cancel alert for admin cancellation, got %d", sender.cancelAlertCalls)
	}
}

func TestBookingCancelledByClientAlertsAgency(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender, "contact@example.com")

	err := m.Handle(context.Background(), events.CallBookingCancelled{
		BookingID:   uuid.New(),
		Name:        "Bob",
		Email:       "bob@example.com",
		BookingDate: "2026-09-15",
		TimeSlot:    "10:00",
		CancelledBy: "client",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if sender.cancelAlertCalls != 1 {
		t.Fatalf("expected 1 cancel alert, got %d", sender.cancelAlertCalls)
	}
}

func TestQuoteSentBuildsPublicURL(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender, "")

	token := uuid.New().String()
	err := m.Handle(context.Background(), events.QuoteSent{
		QuoteID:     uuid.New(),
		QuoteNumber: "DEV-2026-0001",
		ClientEmail: "client@example.com",
		ClientName:  "Client",
		PublicToken: token,
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if sender.proposalCalls != 1 {
		t.Fatalf("expected 1 proposal email, got %d", sender.proposalCalls)
	}
	want := "https://app.example.com/devis/" + token
	if sender.proposalURL != want {
		t.Fatalf("expected quote URL %q, got %q", want, sender.proposalURL)
	}
}

func TestQuoteAcceptedNotifiesPartner(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender, "")
	m.SetPartnerContactReader(testPartnerContacts{name: "Paul", email: "paul@example.com"})

	partnerID := uuid.New()
	err := m.Handle(context.Background(), events.QuoteAccepted{
		QuoteID:     uuid.New(),
		QuoteNumber: "DEV-2026-0002",
		PartnerID:   &partnerID,
		ClientEmail: "client@example.com",
		TotalCents:  360000,
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if sender.partnerCalls != 1 {
		t.Fatalf("expected 1 partner email, got %d", sender.partnerCalls)
	}
	if sender.partnerEmail != "paul@example.com" {
		t.Fatalf("expected partner email to paul@example.com, got %q", sender.partnerEmail)
	}
}

func TestQuoteAcceptedWithoutPartnerSendsNoEmail(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender, "")
	m.SetPartnerContactReader(testPartnerContacts{name: "Paul", email: "paul@example.com"})

	err := m.Handle(context.Background(), events.QuoteAccepted{
		QuoteID:     uuid.New(),
		QuoteNumber: "DEV-2026-0003",
		ClientEmail: "client@example.com",
		TotalCents:  100000,
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if sender.partnerCalls != 0 {
		t.Fatalf("expected no partner email, got %d", sender.partnerCalls)
	}
}

func TestUserInvitedBuildsInviteURL(t *testing.T) {
	sender := &testSender{}
	m := newTestModule(sender, "")

	err := m.Handle(context.Background(), events.UserInvited{
		Email:       "new@example.com",
		Roles:       []string{"sales"},
		InviteToken: "tok-123",
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if sender.inviteCalls != 1 {
		t.Fatalf("expected 1 invite email, got %d", sender.inviteCalls)
	}
	want := "https://app.example.com/accept-invite?token=tok-123"
	if sender.inviteURL != want {
		t.Fatalf("expected invite URL %q, got %q", want, sender.inviteURL)
	}
}
