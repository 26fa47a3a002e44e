package showcase

import "testing"

func TestAllSitesParse(t *testing.T) {
	for _, name := range Sites() {
		content, ok := Get(name)
		if !ok {
			t.Fatalf("site %s not loaded", name)
		}
		if content.Name == "" {
			t.Fatalf("site %s has no name", name)
		}
		if content.Hero.Title == "" {
			t.Fatalf("site %s has no hero title", name)
		}
		if len(content.Section) == 0 {
			t.Fatalf("site %s has no sections", name)
		}
		if content.Contact.Phone == "" || content.Contact.Address == "" {
			t.Fatalf("site %s has an incomplete contact block", name)
		}
	}
}

func TestUnknownSiteNotFound(t *testing.T) {
	if _, ok := Get("boulangerie"); ok {
		t.Fatal("expected unknown site to be rejected")
	}
}

func TestDealershipListingsHavePrices(t *testing.T) {
	content, ok := Get(SiteDealership)
	if !ok {
		t.Fatal("dealership site not loaded")
	}
	for _, section := range content.Section {
		if section.ID != "listings" {
			continue
		}
		if len(section.Items) == 0 {
			t.Fatal("dealership listings section has no items")
		}
		for _, item := range section.Items {
			if item.Price == "" {
				t.Fatalf("listing %q has no price", item.Title)
			}
		}
		return
	}
	t.Fatal("dealership site has no listings section")
}
