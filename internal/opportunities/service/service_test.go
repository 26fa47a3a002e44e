package service

import (
	"testing"

	"nexus_backend/internal/opportunities/repository"
	"nexus_backend/internal/opportunities/transport"
)

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		name string
		from transport.Stage
		to   transport.Stage
		want bool
	}{
		{"prospecting to qualification", transport.StageProspecting, transport.StageQualification, true},
		{"prospecting skips to proposal", transport.StageProspecting, transport.StageProposal, false},
		{"qualification to proposal", transport.StageQualification, transport.StageProposal, true},
		{"proposal to negotiation", transport.StageProposal, transport.StageNegotiation, true},
		{"proposal skips to closed_won", transport.StageProposal, transport.StageClosedWon, false},
		{"negotiation to closed_won", transport.StageNegotiation, transport.StageClosedWon, true},
		{"negotiation back to proposal", transport.StageNegotiation, transport.StageProposal, false},
		{"closed_won is terminal", transport.StageClosedWon, transport.StageProspecting, false},
		{"closed_lost is terminal", transport.StageClosedLost, transport.StageProspecting, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := transitionAllowed(tc.from, tc.to); got != tc.want {
				t.Errorf("transitionAllowed(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestLostAllowedFromEveryOpenStage(t *testing.T) {
	for _, stage := range pipelineOrder {
		if !transitionAllowed(stage, transport.StageClosedLost) {
			t.Errorf("closed_lost should be reachable from %s", stage)
		}
	}
}

func TestWeightedValue(t *testing.T) {
	cases := []struct {
		stage transport.Stage
		want  int64
	}{
		{transport.StageProspecting, 1000},
		{transport.StageQualification, 2500},
		{transport.StageProposal, 5000},
		{transport.StageNegotiation, 7500},
		{transport.StageClosedWon, 10000},
		{transport.StageClosedLost, 0},
	}
	for _, tc := range cases {
		if got := WeightedValue(10000, tc.stage); got != tc.want {
			t.Errorf("WeightedValue(10000, %s) = %d, want %d", tc.stage, got, tc.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	open := []repository.Opportunity{
		{Stage: "prospecting", AmountCents: 100_000},
		{Stage: "prospecting", AmountCents: 50_000},
		{Stage: "proposal", AmountCents: 200_000},
		{Stage: "negotiation", AmountCents: 80_000},
	}

	summary := Summarize(open)

	if len(summary.Stages) != 4 {
		t.Fatalf("expected 4 stages, got %d", len(summary.Stages))
	}
	if summary.Stages[0].Stage != transport.StageProspecting {
		t.Errorf("stage order should start with prospecting, got %s", summary.Stages[0].Stage)
	}

	prospecting := summary.Stages[0]
	if prospecting.Count != 2 || prospecting.AmountCents != 150_000 || prospecting.WeightedCents != 15_000 {
		t.Errorf("prospecting summary = %+v", prospecting)
	}

	qualification := summary.Stages[1]
	if qualification.Count != 0 || qualification.AmountCents != 0 {
		t.Errorf("empty stage should report zeros, got %+v", qualification)
	}

	if summary.TotalAmountCents != 430_000 {
		t.Errorf("total amount = %d, want 430000", summary.TotalAmountCents)
	}
	// 15000 + 100000 + 60000
	if summary.TotalWeightedCents != 175_000 {
		t.Errorf("total weighted = %d, want 175000", summary.TotalWeightedCents)
	}
}

func TestSummarizeIgnoresClosedStages(t *testing.T) {
	summary := Summarize([]repository.Opportunity{
		{Stage: "closed_won", AmountCents: 999_999},
		{Stage: "closed_lost", AmountCents: 999_999},
	})
	if summary.TotalAmountCents != 0 || summary.TotalWeightedCents != 0 {
		t.Errorf("closed opportunities should not count, got %+v", summary)
	}
}
