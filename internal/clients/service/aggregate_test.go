package service

import (
	"testing"
	"time"

	bookingrepo "nexus_backend/internal/bookings/repository"
	"nexus_backend/internal/clients/repository"
	quoterepo "nexus_backend/internal/quoterequests/repository"
)

func at(day int, hour int) time.Time {
	return time.Date(2025, 4, day, hour, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func quote(email, name string, phone *string, created time.Time) quoterepo.QuoteRequest {
	return quoterepo.QuoteRequest{Email: email, Name: name, Phone: phone, CreatedAt: created}
}

func booking(email, name, phone string, created time.Time) bookingrepo.Booking {
	return bookingrepo.Booking{Email: email, Name: name, Phone: phone, CreatedAt: created}
}

func TestAggregate_OneClientPerNormalizedEmail(t *testing.T) {
	quotes := []quoterepo.QuoteRequest{
		quote("Marie@Example.FR", "Marie Dupont", nil, at(1, 9)),
		quote("marie@example.fr", "Marie D.", nil, at(3, 9)),
	}
	bookings := []bookingrepo.Booking{
		booking("  MARIE@example.fr ", "Marie", "+33612345678", at(2, 14)),
	}

	clients := Aggregate(quotes, bookings, nil)
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}

	c := clients[0]
	if c.Email != "marie@example.fr" {
		t.Errorf("email = %q, want normalized form", c.Email)
	}
	if c.QuoteCount != 2 || c.BookingCount != 1 {
		t.Errorf("counts = %d quotes / %d bookings, want 2/1", c.QuoteCount, c.BookingCount)
	}
	if c.Name != "Marie Dupont" {
		t.Errorf("name = %q, should prefer the quote source", c.Name)
	}
	if c.Phone != "+33612345678" {
		t.Errorf("phone = %q, booking should backfill it", c.Phone)
	}
	if c.Status != DefaultStatus {
		t.Errorf("status = %q, want default %q", c.Status, DefaultStatus)
	}
}

func TestAggregate_IdempotentAcrossInputOrder(t *testing.T) {
	quotes := []quoterepo.QuoteRequest{
		quote("a@example.fr", "A", nil, at(5, 10)),
		quote("b@example.fr", "B", nil, at(3, 10)),
		quote("c@example.fr", "C", nil, at(4, 10)),
	}
	bookings := []bookingrepo.Booking{
		booking("b@example.fr", "B", "+33600000001", at(6, 10)),
		booking("a@example.fr", "A", "+33600000002", at(2, 10)),
	}
	statuses := []repository.ClientStatus{
		{Email: "c@example.fr", Status: "prospect"},
	}

	first := Aggregate(quotes, bookings, statuses)

	// Reverse every input. The output must not change.
	rQuotes := []quoterepo.QuoteRequest{quotes[2], quotes[1], quotes[0]}
	rBookings := []bookingrepo.Booking{bookings[1], bookings[0]}
	second := Aggregate(rQuotes, rBookings, statuses)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Email != second[i].Email {
			t.Errorf("position %d: %s vs %s", i, first[i].Email, second[i].Email)
		}
	}

	// Ordering: last contact descending.
	if first[0].Email != "b@example.fr" || first[1].Email != "a@example.fr" || first[2].Email != "c@example.fr" {
		t.Errorf("unexpected order: %s, %s, %s", first[0].Email, first[1].Email, first[2].Email)
	}
}

func TestAggregate_CoverageAndStatusAttachment(t *testing.T) {
	quotes := []quoterepo.QuoteRequest{
		quote("seen@example.fr", "Seen", nil, at(1, 9)),
	}
	statuses := []repository.ClientStatus{
		{Email: "SEEN@example.fr", Status: "client", Notes: strPtr("signed in April")},
		{Email: "manual@example.fr", Status: "prospect"},
	}

	clients := Aggregate(quotes, nil, statuses)
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}

	byEmail := make(map[string]Client)
	for _, c := range clients {
		byEmail[c.Email] = c
	}

	seen := byEmail["seen@example.fr"]
	if seen.Status != "client" {
		t.Errorf("status match must be case-insensitive, got %q", seen.Status)
	}
	if seen.Notes == nil || *seen.Notes != "signed in April" {
		t.Error("notes should carry over from the status row")
	}
	if seen.StatusOnly {
		t.Error("a client with a quote must not be flagged status-only")
	}

	manual := byEmail["manual@example.fr"]
	if !manual.StatusOnly {
		t.Error("a status row without leads should materialize a status-only client")
	}
	if manual.FirstContact != nil || manual.LastContact != nil {
		t.Error("status-only clients carry no contact timestamps")
	}
	if manual.Status != "prospect" {
		t.Errorf("manual status = %q, want prospect", manual.Status)
	}
}

func TestAggregate_ContactTimestampBounds(t *testing.T) {
	stamps := []time.Time{at(10, 16), at(2, 9), at(7, 11), at(4, 15)}

	quotes := []quoterepo.QuoteRequest{
		quote("x@example.fr", "X", nil, stamps[0]),
		quote("x@example.fr", "X", nil, stamps[1]),
	}
	bookings := []bookingrepo.Booking{
		booking("x@example.fr", "X", "+33600000003", stamps[2]),
		booking("x@example.fr", "X", "+33600000003", stamps[3]),
	}

	clients := Aggregate(quotes, bookings, nil)
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}

	c := clients[0]
	if c.FirstContact == nil || c.LastContact == nil {
		t.Fatal("contact timestamps must be set")
	}
	for _, stamp := range stamps {
		if stamp.Before(*c.FirstContact) || stamp.After(*c.LastContact) {
			t.Errorf("timestamp %s outside [%s, %s]", stamp, c.FirstContact, c.LastContact)
		}
	}
	if !c.FirstContact.Equal(at(2, 9)) {
		t.Errorf("firstContact = %s, want earliest stamp", c.FirstContact)
	}
	if !c.LastContact.Equal(at(10, 16)) {
		t.Errorf("lastContact = %s, want latest stamp", c.LastContact)
	}
}

func TestAggregate_SingleQuoteSubmission(t *testing.T) {
	quotes := []quoterepo.QuoteRequest{
		quote("jean@example.fr", "Jean Martin", strPtr("+33698765432"), at(12, 10)),
	}

	clients := Aggregate(quotes, nil, nil)
	if len(clients) != 1 {
		t.Fatalf("expected exactly 1 client, got %d", len(clients))
	}

	c := clients[0]
	if c.Email != "jean@example.fr" {
		t.Errorf("email = %q", c.Email)
	}
	if c.QuoteCount != 1 {
		t.Errorf("quoteCount = %d, want 1", c.QuoteCount)
	}
	if c.BookingCount != 0 {
		t.Errorf("bookingCount = %d, want 0", c.BookingCount)
	}
	if c.Status != DefaultStatus {
		t.Errorf("status = %q, want %q", c.Status, DefaultStatus)
	}
}

func TestAggregate_BlankEmailsAreDropped(t *testing.T) {
	quotes := []quoterepo.QuoteRequest{
		quote("   ", "Nobody", nil, at(1, 9)),
		quote("real@example.fr", "Real", nil, at(1, 10)),
	}

	clients := Aggregate(quotes, nil, nil)
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
	if clients[0].Email != "real@example.fr" {
		t.Errorf("unexpected client %q", clients[0].Email)
	}
}
