// Package pdf renders quote (devis) and invoice (facture) documents with
// maroto/v2. Layout follows French commercial conventions: agency identity
// with SIRET and TVA numbers, line items, a TVA breakdown and mandatory
// payment mentions in the footer.
package pdf

import (
	"fmt"
	"strings"
	"time"
)

// DocumentKind selects the title and wording of the rendered document.
type DocumentKind string

const (
	KindQuote   DocumentKind = "devis"
	KindInvoice DocumentKind = "facture"
)

// LineItem is one billable row.
type LineItem struct {
	Description    string
	Quantity       string
	UnitPriceCents int64
	LineTotalCents int64
}

// Document carries everything a quote or invoice render needs.
type Document struct {
	Kind   DocumentKind
	Number string
	Status string

	// Agency identity, shown in the header and repeated in the footer.
	AgencyName    string
	AgencyEmail   string
	AgencyPhone   string
	AgencyAddress string
	AgencySIRET   string
	AgencyTVA     string

	// Client identity. Name and email are mandatory; rendering a document
	// against an anonymous client is refused.
	ClientName  string
	ClientEmail string

	IssuedAt   time.Time
	DueDate    *time.Time
	ValidUntil *time.Time
	Notes      *string

	Items              []LineItem
	SubtotalCents      int64
	DiscountCents      int64
	TaxRateBps         int
	TaxCents           int64
	TotalCents         int64

	// AcceptURL, when set, is rendered as a QR code so the client can open
	// the public acceptance page from the printed document.
	AcceptURL string
}

// Validate refuses documents that would render blank or anonymous.
func (d Document) Validate() error {
	if strings.TrimSpace(d.ClientName) == "" {
		return fmt.Errorf("%s %s: client name is required", d.Kind, d.Number)
	}
	if strings.TrimSpace(d.ClientEmail) == "" {
		return fmt.Errorf("%s %s: client email is required", d.Kind, d.Number)
	}
	if len(d.Items) == 0 {
		return fmt.Errorf("%s %s: at least one line item is required", d.Kind, d.Number)
	}
	return nil
}

// Title returns the document heading.
func (d Document) Title() string {
	if d.Kind == KindInvoice {
		return "FACTURE"
	}
	return "DEVIS"
}

// FormatEuros renders cents in the French style: "1 234,56 €".
func FormatEuros(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	euros := cents / 100
	remainder := cents % 100

	digits := fmt.Sprintf("%d", euros)
	var grouped strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		grouped.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if grouped.Len() > 0 {
			grouped.WriteString(" ")
		}
		grouped.WriteString(digits[i : i+3])
	}

	out := fmt.Sprintf("%s,%02d €", grouped.String(), remainder)
	if negative {
		return "-" + out
	}
	return out
}
