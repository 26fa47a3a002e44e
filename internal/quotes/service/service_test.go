package service

import (
	"testing"
	"time"

	"nexus_backend/internal/quotes/repository"
	"nexus_backend/internal/quotes/transport"
	"nexus_backend/internal/shared/money"
)

func strPtr(s string) *string { return &s }

func TestDiscountFor(t *testing.T) {
	percent := strPtr(string(transport.DiscountPercent))
	fixed := strPtr(string(transport.DiscountFixed))

	cases := []struct {
		name         string
		subtotal     int64
		discountType *string
		value        int64
		want         int64
	}{
		{"no type means no discount", 25000, nil, 5000, 0},
		{"zero value means no discount", 25000, percent, 0, 0},
		{"ten percent", 25000, percent, 10, 2500},
		{"fixed cents", 25000, fixed, 5000, 5000},
		{"percent rounds half up", 1050, percent, 5, 53},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DiscountFor(tc.subtotal, tc.discountType, tc.value); got != tc.want {
				t.Errorf("DiscountFor = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDiscountAppliedBeforeTax(t *testing.T) {
	lines := []money.Line{
		{Quantity: "2", UnitPriceCents: 10000},
		{Quantity: "1", UnitPriceCents: 5000},
	}
	subtotal := money.Compute(lines, 0, 0).SubtotalCents
	discount := DiscountFor(subtotal, strPtr(string(transport.DiscountPercent)), 20)
	totals := money.Compute(lines, discount, 2000)

	if totals.SubtotalCents != 25000 {
		t.Errorf("subtotal = %d, want 25000", totals.SubtotalCents)
	}
	if totals.DiscountCents != 5000 {
		t.Errorf("discount = %d, want 5000", totals.DiscountCents)
	}
	// 20% VAT on 20 000, not on 25 000
	if totals.TaxCents != 4000 {
		t.Errorf("tax = %d, want 4000", totals.TaxCents)
	}
	if totals.TotalCents != 24000 {
		t.Errorf("total = %d, want 24000", totals.TotalCents)
	}
}

func TestOpenForDecision(t *testing.T) {
	cases := []struct {
		status  transport.QuoteStatus
		wantErr bool
	}{
		{transport.StatusSent, false},
		{transport.StatusDraft, true},
		{transport.StatusAccepted, true},
		{transport.StatusRejected, true},
		{transport.StatusExpired, true},
	}

	for _, tc := range cases {
		quote := Quote{Quote: repository.Quote{Status: string(tc.status)}}
		err := openForDecision(quote)
		if (err != nil) != tc.wantErr {
			t.Errorf("openForDecision(%s) error = %v, wantErr %v", tc.status, err, tc.wantErr)
		}
	}
}

func TestHeaderParamsRejectsOversizedPercent(t *testing.T) {
	_, err := headerParams("Client", "client@example.fr", "", 2000, transport.DiscountPercent, 120, "", "")
	if err == nil {
		t.Fatal("expected error for percent discount above 100")
	}
}

func TestHeaderParamsParsesValidity(t *testing.T) {
	params, err := headerParams("Client", "client@example.fr", "", 2000, "", 0, "2025-12-31", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	if params.ValidUntil == nil || !params.ValidUntil.Equal(want) {
		t.Errorf("validUntil = %v, want %v", params.ValidUntil, want)
	}
	if params.DiscountType != nil {
		t.Errorf("empty discount type should stay nil, got %q", *params.DiscountType)
	}
}
