package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type quoteRequestAckEmailData struct {
	baseEmailData
	Name string
}

type quoteRequestAlertEmailData struct {
	baseEmailData
	RequesterName  string
	RequesterEmail string
	Services       string
}

type bookingEmailData struct {
	baseEmailData
	Name        string
	BookingDate string
	TimeSlot    string
}

type bookingAlertEmailData struct {
	baseEmailData
	ClientName  string
	ClientEmail string
	BookingDate string
	TimeSlot    string
}

type inviteEmailData struct {
	baseEmailData
}

type quoteProposalEmailData struct {
	baseEmailData
	ClientName  string
	QuoteNumber string
}

type quoteAcceptedEmailData struct {
	baseEmailData
	PartnerName    string
	QuoteNumber    string
	TotalFormatted string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatCurrencyEUR(cents int64) string {
	return fmt.Sprintf("%d,%02d €", cents/100, cents%100)
}

func formatServices(services []string) string {
	if len(services) == 0 {
		return "non précisé"
	}
	return strings.Join(services, ", ")
}
