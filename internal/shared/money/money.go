// Package money implements billing arithmetic in integer cents. Floats never
// touch an amount: quantities are parsed into thousandths and every division
// rounds half away from zero, so totals are exact and reproducible.
package money

import (
	"regexp"
	"strconv"
	"strings"
)

var quantityRegex = regexp.MustCompile(`^([\d.,]+)`)

// ParseQuantityMilli extracts the numeric value from a free-form quantity
// string as thousandths. "2" -> 2000, "2,5 jours" -> 2500, "10 m²" -> 10000.
// Unparseable or non-positive values count as one unit.
func ParseQuantityMilli(quantity string) int64 {
	matches := quantityRegex.FindStringSubmatch(strings.TrimSpace(quantity))
	if len(matches) < 2 {
		return 1000
	}

	cleaned := strings.ReplaceAll(matches[1], ",", ".")
	parts := strings.SplitN(cleaned, ".", 2)

	whole, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 1000
	}

	var frac int64
	if len(parts) == 2 {
		digits := parts[1]
		if len(digits) > 3 {
			digits = digits[:3]
		}
		for len(digits) < 3 {
			digits += "0"
		}
		frac, err = strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 1000
		}
	}

	milli := whole*1000 + frac
	if milli <= 0 {
		return 1000
	}
	return milli
}

// LineTotal computes quantity × unit price in cents, rounding half up.
func LineTotal(quantityMilli, unitPriceCents int64) int64 {
	return divRound(quantityMilli*unitPriceCents, 1000)
}

// TaxFor computes the tax on an amount at a rate in basis points,
// rounding half up. 2000 bps is 20%.
func TaxFor(amountCents int64, rateBps int) int64 {
	return ApplyBps(amountCents, rateBps)
}

// ApplyBps computes a basis-point fraction of an amount, rounding half up.
func ApplyBps(amountCents int64, bps int) int64 {
	return divRound(amountCents*int64(bps), 10000)
}

// PercentOf computes pct percent of an amount, rounding half up.
func PercentOf(amountCents, pct int64) int64 {
	return divRound(amountCents*pct, 100)
}

func divRound(numerator, denominator int64) int64 {
	if numerator >= 0 {
		return (numerator + denominator/2) / denominator
	}
	return -((-numerator + denominator/2) / denominator)
}

// Line is one billable row in a totals computation.
type Line struct {
	Quantity       string
	UnitPriceCents int64
}

// Totals is the result of a cents computation.
type Totals struct {
	LineTotals    []int64
	SubtotalCents int64
	DiscountCents int64
	TaxCents      int64
	TotalCents    int64
}

// Compute derives subtotal, discount, tax and total for a set of lines. The
// discount (in cents, may be zero) is capped at the subtotal and applied
// before tax.
func Compute(lines []Line, discountCents int64, taxRateBps int) Totals {
	t := Totals{LineTotals: make([]int64, 0, len(lines))}

	for _, line := range lines {
		lt := LineTotal(ParseQuantityMilli(line.Quantity), line.UnitPriceCents)
		t.LineTotals = append(t.LineTotals, lt)
		t.SubtotalCents += lt
	}

	if discountCents > t.SubtotalCents {
		discountCents = t.SubtotalCents
	}
	if discountCents > 0 {
		t.DiscountCents = discountCents
	}

	taxable := t.SubtotalCents - t.DiscountCents
	t.TaxCents = TaxFor(taxable, taxRateBps)
	t.TotalCents = taxable + t.TaxCents

	return t
}
