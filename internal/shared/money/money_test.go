package money

import "testing"

func TestParseQuantityMilli(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1", 1000},
		{"2", 2000},
		{"2,5", 2500},
		{"2.5 jours", 2500},
		{"10 m²", 10000},
		{"0", 1000},
		{"", 1000},
		{"n/a", 1000},
		{"3.1415", 3141},
	}

	for _, tc := range cases {
		if got := ParseQuantityMilli(tc.in); got != tc.want {
			t.Errorf("ParseQuantityMilli(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestLineTotal(t *testing.T) {
	if got := LineTotal(2000, 10000); got != 20000 {
		t.Errorf("2 x 100.00 = %d cents, want 20000", got)
	}
	if got := LineTotal(2500, 9999); got != 24998 {
		t.Errorf("2.5 x 99.99 = %d cents, want 24998", got)
	}
}

func TestTaxFor(t *testing.T) {
	if got := TaxFor(25000, 2000); got != 5000 {
		t.Errorf("20%% of 250.00 = %d cents, want 5000", got)
	}
	if got := TaxFor(1, 2000); got != 0 {
		t.Errorf("20%% of 0.01 = %d cents, want 0", got)
	}
	if got := TaxFor(3, 2000); got != 1 {
		t.Errorf("20%% of 0.03 = %d cents, want 1", got)
	}
}

// The reference fixture: two items at 100.00 and one at 50.00, taxed at 20%,
// must come out at exactly 250.00 / 50.00 / 300.00.
func TestComputeReferenceFixture(t *testing.T) {
	totals := Compute([]Line{
		{Quantity: "2", UnitPriceCents: 10000},
		{Quantity: "1", UnitPriceCents: 5000},
	}, 0, 2000)

	if totals.SubtotalCents != 25000 {
		t.Errorf("subtotal = %d, want 25000", totals.SubtotalCents)
	}
	if totals.TaxCents != 5000 {
		t.Errorf("tax = %d, want 5000", totals.TaxCents)
	}
	if totals.TotalCents != 30000 {
		t.Errorf("total = %d, want 30000", totals.TotalCents)
	}
	if len(totals.LineTotals) != 2 || totals.LineTotals[0] != 20000 || totals.LineTotals[1] != 5000 {
		t.Errorf("line totals = %v, want [20000 5000]", totals.LineTotals)
	}
}

func TestComputeDiscountCappedAtSubtotal(t *testing.T) {
	totals := Compute([]Line{{Quantity: "1", UnitPriceCents: 10000}}, 99999, 2000)

	if totals.DiscountCents != 10000 {
		t.Errorf("discount = %d, should be capped at subtotal", totals.DiscountCents)
	}
	if totals.TotalCents != 0 {
		t.Errorf("total = %d, want 0 after full discount", totals.TotalCents)
	}
}

func TestComputeDiscountBeforeTax(t *testing.T) {
	totals := Compute([]Line{{Quantity: "1", UnitPriceCents: 10000}}, 2000, 2000)

	if totals.SubtotalCents != 10000 {
		t.Errorf("subtotal = %d, want 10000", totals.SubtotalCents)
	}
	// Tax applies to 80.00, not 100.00.
	if totals.TaxCents != 1600 {
		t.Errorf("tax = %d, want 1600", totals.TaxCents)
	}
	if totals.TotalCents != 9600 {
		t.Errorf("total = %d, want 9600", totals.TotalCents)
	}
}

func TestComputeEmptyLines(t *testing.T) {
	totals := Compute(nil, 0, 2000)
	if totals.SubtotalCents != 0 || totals.TaxCents != 0 || totals.TotalCents != 0 {
		t.Errorf("empty computation should be all zero, got %+v", totals)
	}
}
