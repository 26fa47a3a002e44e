package pdf

import (
	"strings"
	"testing"
	"time"
)

func validDocument() Document {
	return Document{
		Kind:        KindQuote,
		Number:      "DEV-2025-0001",
		AgencyName:  "Nexus Développement",
		ClientName:  "Marie Dupont",
		ClientEmail: "marie@example.fr",
		IssuedAt:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Items: []LineItem{
			{Description: "Site vitrine", Quantity: "1", UnitPriceCents: 150000, LineTotalCents: 150000},
		},
		SubtotalCents: 150000,
		TaxRateBps:    2000,
		TaxCents:      30000,
		TotalCents:    180000,
	}
}

func TestValidate(t *testing.T) {
	if err := validDocument().Validate(); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}

	noName := validDocument()
	noName.ClientName = "   "
	if err := noName.Validate(); err == nil {
		t.Error("document without client name should be rejected")
	}

	noEmail := validDocument()
	noEmail.ClientEmail = ""
	if err := noEmail.Validate(); err == nil {
		t.Error("document without client email should be rejected")
	}

	noItems := validDocument()
	noItems.Items = nil
	if err := noItems.Validate(); err == nil {
		t.Error("document without line items should be rejected")
	}
}

func TestTitle(t *testing.T) {
	if got := (Document{Kind: KindQuote}).Title(); got != "DEVIS" {
		t.Errorf("quote title = %q", got)
	}
	if got := (Document{Kind: KindInvoice}).Title(); got != "FACTURE" {
		t.Errorf("invoice title = %q", got)
	}
}

func TestFormatEuros(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0,00 €"},
		{5, "0,05 €"},
		{150, "1,50 €"},
		{123456, "1 234,56 €"},
		{100000000, "1 000 000,00 €"},
		{-123456, "-1 234,56 €"},
	}

	for _, tc := range cases {
		if got := FormatEuros(tc.cents); got != tc.want {
			t.Errorf("FormatEuros(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestFormatEurosUsesNonBreakingSpaces(t *testing.T) {
	got := FormatEuros(123456789)
	if strings.Contains(got, " ") {
		t.Errorf("%q contains a breaking space", got)
	}
}
