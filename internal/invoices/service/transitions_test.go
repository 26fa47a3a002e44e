package service

import (
	"testing"

	"nexus_backend/internal/invoices/transport"
)

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		name string
		from transport.InvoiceStatus
		to   transport.InvoiceStatus
		want bool
	}{
		{"draft to sent", transport.StatusDraft, transport.StatusSent, true},
		{"draft to cancelled", transport.StatusDraft, transport.StatusCancelled, true},
		{"draft to paid skips sending", transport.StatusDraft, transport.StatusPaid, false},
		{"draft to overdue", transport.StatusDraft, transport.StatusOverdue, false},
		{"sent to paid", transport.StatusSent, transport.StatusPaid, true},
		{"sent to overdue", transport.StatusSent, transport.StatusOverdue, true},
		{"sent to cancelled", transport.StatusSent, transport.StatusCancelled, true},
		{"sent back to draft", transport.StatusSent, transport.StatusDraft, false},
		{"overdue to paid", transport.StatusOverdue, transport.StatusPaid, true},
		{"overdue to cancelled", transport.StatusOverdue, transport.StatusCancelled, true},
		{"overdue back to sent", transport.StatusOverdue, transport.StatusSent, false},
		{"paid is terminal", transport.StatusPaid, transport.StatusCancelled, false},
		{"cancelled is terminal", transport.StatusCancelled, transport.StatusSent, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := transitionAllowed(tc.from, tc.to); got != tc.want {
				t.Errorf("transitionAllowed(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, status := range []transport.InvoiceStatus{transport.StatusPaid, transport.StatusCancelled} {
		if exits := validTransitions[status]; len(exits) != 0 {
			t.Errorf("status %s should be terminal, has exits %v", status, exits)
		}
	}
}

func TestHeaderParamsRejectsInvertedDates(t *testing.T) {
	_, err := headerParams("Client SARL", "client@example.fr", "2025-06-10", "2025-06-01", 2000, "")
	if err == nil {
		t.Fatal("expected error when due date precedes issue date")
	}
}

func TestHeaderParamsNormalizesEmail(t *testing.T) {
	params, err := headerParams("Client SARL", "  Client@Example.FR ", "2025-06-01", "2025-07-01", 2000, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.ClientEmail != "client@example.fr" {
		t.Errorf("email = %q, want normalized lowercase", params.ClientEmail)
	}
	if params.Notes != nil {
		t.Errorf("empty notes should stay nil, got %q", *params.Notes)
	}
}
