package wizard

import "testing"

func TestResolve_TotalOverAllServiceTypes(t *testing.T) {
	for _, st := range AllServiceTypes {
		resolved, steps := Resolve(string(st))
		if resolved != st {
			t.Errorf("%s: resolved as %s", st, resolved)
		}
		if len(steps) == 0 {
			t.Fatalf("%s: empty step list", st)
		}
		if last := steps[len(steps)-1]; last.ID != "summary" {
			t.Errorf("%s: last step is %q, want summary", st, last.ID)
		}
		for _, step := range steps {
			if step.ID == "" || step.Label == "" || step.Component == "" {
				t.Errorf("%s: incomplete step %+v", st, step)
			}
		}
	}
}

func TestResolve_UnknownTagFallsBackToVitrine(t *testing.T) {
	resolved, steps := Resolve("blog")
	if resolved != ServiceVitrine {
		t.Fatalf("expected vitrine fallback, got %s", resolved)
	}
	_, vitrineSteps := Resolve(string(ServiceVitrine))
	if len(steps) != len(vitrineSteps) {
		t.Fatalf("fallback flow has %d steps, vitrine has %d", len(steps), len(vitrineSteps))
	}
}

func TestResolve_StableAcrossCalls(t *testing.T) {
	_, first := Resolve(string(ServiceEcommerce))
	_, second := Resolve(string(ServiceEcommerce))

	if len(first) != len(second) {
		t.Fatalf("step counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("step %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}

	// Mutating a returned slice must not leak into the table.
	first[0].Label = "changed"
	_, third := Resolve(string(ServiceEcommerce))
	if third[0].Label == "changed" {
		t.Fatal("Resolve leaked internal state")
	}
}

func TestStepCount(t *testing.T) {
	if got := StepCount(string(ServiceEcommerce)); got != 6 {
		t.Fatalf("ecommerce step count = %d, want 6", got)
	}
	if got := StepCount("unknown"); got != StepCount(string(ServiceVitrine)) {
		t.Fatal("unknown tag should count the vitrine flow")
	}
}
