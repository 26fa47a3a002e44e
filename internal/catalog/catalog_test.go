package catalog

import "testing"

func TestEveryCategoryHasPlans(t *testing.T) {
	for _, cat := range Categories() {
		plans, ok := PlansFor(cat.ID)
		if !ok {
			t.Fatalf("category %s has no pricing plans", cat.ID)
		}
		if len(plans) == 0 {
			t.Fatalf("category %s has an empty plan list", cat.ID)
		}
		for _, plan := range plans {
			if plan.Name == "" || plan.Price == "" {
				t.Fatalf("category %s has a plan with missing name or price: %+v", cat.ID, plan)
			}
			if len(plan.Features) == 0 {
				t.Fatalf("plan %s in category %s has no features", plan.Name, cat.ID)
			}
		}
	}
}

func TestAtMostOneHighlightPerCategory(t *testing.T) {
	for _, cat := range Categories() {
		plans, _ := PlansFor(cat.ID)
		highlights := 0
		for _, plan := range plans {
			if plan.Highlight {
				highlights++
			}
		}
		if highlights > 1 {
			t.Fatalf("category %s has %d highlighted plans", cat.ID, highlights)
		}
	}
}

func TestUnknownCategoryIsRejected(t *testing.T) {
	if _, ok := PlansFor("plomberie"); ok {
		t.Fatal("expected unknown category to be rejected")
	}
}
