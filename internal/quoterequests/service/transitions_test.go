package service

import (
	"testing"

	"nexus_backend/internal/quoterequests/transport"
)

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to transport.RequestStatus
		want     bool
	}{
		{transport.StatusPending, transport.StatusContacted, true},
		{transport.StatusPending, transport.StatusArchived, true},
		{transport.StatusPending, transport.StatusCompleted, false},
		{transport.StatusContacted, transport.StatusInProgress, true},
		{transport.StatusContacted, transport.StatusPending, false},
		{transport.StatusInProgress, transport.StatusCompleted, true},
		{transport.StatusCompleted, transport.StatusArchived, true},
		{transport.StatusCompleted, transport.StatusInProgress, false},
		{transport.StatusArchived, transport.StatusPending, false},
		{transport.StatusArchived, transport.StatusContacted, false},
	}

	for _, tc := range cases {
		if got := transitionAllowed(tc.from, tc.to); got != tc.want {
			t.Errorf("transitionAllowed(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestArchivedIsTerminal(t *testing.T) {
	for _, to := range []transport.RequestStatus{
		transport.StatusPending, transport.StatusContacted,
		transport.StatusInProgress, transport.StatusCompleted,
	} {
		if transitionAllowed(transport.StatusArchived, to) {
			t.Errorf("archived should not transition to %s", to)
		}
	}
}
