package service

import (
	"testing"
	"time"

	"nexus_backend/internal/bookings/repository"
	"nexus_backend/internal/bookings/transport"
)

func TestBuildSlots(t *testing.T) {
	if len(allSlots) != 17 {
		t.Fatalf("expected 17 bookable slots, got %d", len(allSlots))
	}
	if allSlots[0] != "09:00" {
		t.Errorf("first slot = %s, want 09:00", allSlots[0])
	}
	if last := allSlots[len(allSlots)-1]; last != "17:00" {
		t.Errorf("last slot = %s, want 17:00", last)
	}
}

func TestSlotKnown(t *testing.T) {
	for _, slot := range []string{"09:00", "09:30", "12:00", "17:00"} {
		if !slotKnown(slot) {
			t.Errorf("%s should be bookable", slot)
		}
	}
	for _, slot := range []string{"08:30", "17:30", "18:00", "12:15", ""} {
		if slotKnown(slot) {
			t.Errorf("%s should not be bookable", slot)
		}
	}
}

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to transport.BookingStatus
		want     bool
	}{
		{transport.StatusPending, transport.StatusConfirmed, true},
		{transport.StatusPending, transport.StatusCancelled, true},
		{transport.StatusPending, transport.StatusCompleted, false},
		{transport.StatusConfirmed, transport.StatusCompleted, true},
		{transport.StatusConfirmed, transport.StatusCancelled, true},
		{transport.StatusConfirmed, transport.StatusPending, false},
		{transport.StatusCancelled, transport.StatusPending, false},
		{transport.StatusCompleted, transport.StatusCancelled, false},
	}

	for _, tc := range cases {
		if got := transitionAllowed(tc.from, tc.to); got != tc.want {
			t.Errorf("transitionAllowed(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCallStart(t *testing.T) {
	booking := repository.Booking{
		BookingDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "10:30",
	}

	start, err := callStart(booking)
	if err != nil {
		t.Fatalf("callStart: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start time = %s, want 10:30", start.Format("15:04"))
	}
	if start.Year() != 2025 || start.Month() != time.March || start.Day() != 14 {
		t.Errorf("start date = %s, want 2025-03-14", start.Format("2006-01-02"))
	}
}
