package service

import (
	"testing"

	"nexus_backend/internal/projects/transport"
)

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		name string
		from transport.ProjectStatus
		to   transport.ProjectStatus
		want bool
	}{
		{"planning to in_progress", transport.StatusPlanning, transport.StatusInProgress, true},
		{"planning skips to review", transport.StatusPlanning, transport.StatusReview, false},
		{"in_progress to review", transport.StatusInProgress, transport.StatusReview, true},
		{"in_progress skips to delivered", transport.StatusInProgress, transport.StatusDelivered, false},
		{"review back to in_progress", transport.StatusReview, transport.StatusInProgress, true},
		{"review to delivered", transport.StatusReview, transport.StatusDelivered, true},
		{"delivered to maintenance", transport.StatusDelivered, transport.StatusMaintenance, true},
		{"delivered back to review", transport.StatusDelivered, transport.StatusReview, false},
		{"maintenance is terminal", transport.StatusMaintenance, transport.StatusCancelled, false},
		{"cancelled is terminal", transport.StatusCancelled, transport.StatusPlanning, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := transitionAllowed(tc.from, tc.to); got != tc.want {
				t.Errorf("transitionAllowed(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestCancelAllowedFromEveryNonTerminalStatus(t *testing.T) {
	nonTerminal := []transport.ProjectStatus{
		transport.StatusPlanning,
		transport.StatusInProgress,
		transport.StatusReview,
		transport.StatusDelivered,
	}
	for _, status := range nonTerminal {
		if !transitionAllowed(status, transport.StatusCancelled) {
			t.Errorf("cancel should be allowed from %s", status)
		}
	}
}

func TestBuildParamsParsesDeadline(t *testing.T) {
	params, err := buildParams("Site vitrine", "client@example.fr", "vitrine", nil, "2025-09-15", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Deadline == nil || params.Deadline.Format("2006-01-02") != "2025-09-15" {
		t.Errorf("deadline not parsed, got %v", params.Deadline)
	}

	if _, err := buildParams("Site vitrine", "client@example.fr", "vitrine", nil, "15/09/2025", ""); err == nil {
		t.Fatal("expected error for malformed deadline")
	}
}
