package service

import (
	"testing"

	"nexus_backend/internal/partners/repository"
	"nexus_backend/internal/shared/money"
)

func TestPendingTotal(t *testing.T) {
	commissions := []repository.Commission{
		{Status: "pending", CommissionCents: 15_000},
		{Status: "paid", CommissionCents: 40_000},
		{Status: "pending", CommissionCents: 2_500},
	}
	if got := PendingTotal(commissions); got != 17_500 {
		t.Errorf("PendingTotal = %d, want 17500", got)
	}

	if got := PendingTotal(nil); got != 0 {
		t.Errorf("PendingTotal(nil) = %d, want 0", got)
	}
}

func TestCommissionAmountFromRate(t *testing.T) {
	// 10% of 3 600,00 €
	if got := money.ApplyBps(360_000, 1000); got != 36_000 {
		t.Errorf("commission = %d, want 36000", got)
	}
	// 12.5% rounds half up
	if got := money.ApplyBps(100, 1250); got != 13 {
		t.Errorf("commission = %d, want 13", got)
	}
}

func TestProspectParamsNormalization(t *testing.T) {
	params := prospectParams("  Marie Laurent ", "", "Marie@Example.FR", "06 12 34 56 78", "new", "")
	if params.Name != "Marie Laurent" {
		t.Errorf("name = %q", params.Name)
	}
	if params.Email != "marie@example.fr" {
		t.Errorf("email = %q", params.Email)
	}
	if params.Company != nil {
		t.Errorf("blank company should stay nil, got %q", *params.Company)
	}
	if params.Phone == nil || *params.Phone != "+33612345678" {
		t.Errorf("phone not normalized, got %v", params.Phone)
	}
}
