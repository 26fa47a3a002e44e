package service

import (
	"sort"
	"time"

	bookingrepo "nexus_backend/internal/bookings/repository"
	"nexus_backend/internal/clients/repository"
	quoterepo "nexus_backend/internal/quoterequests/repository"
	"nexus_backend/platform/sanitize"
)

// DefaultStatus is assigned when no status row exists for an email.
const DefaultStatus = "lead"

// Client is the derived per-email record the dashboard shows. It is never
// persisted; it is recomputed from the three source tables on every read.
type Client struct {
	Email        string
	Name         string
	Phone        string
	Status       string
	Notes        *string
	QuoteCount   int
	BookingCount int

	// StatusOnly marks a client that exists only as a staff-entered status
	// row, with no quote or booking behind it. Such entries carry no contact
	// timestamps.
	StatusOnly bool

	FirstContact *time.Time
	LastContact  *time.Time
}

// Aggregate merges quote requests, call bookings and stored statuses into one
// client record per distinct normalized email. Name and phone prefer the
// quote source; bookings backfill the phone. First and last contact are the
// min and max of every contributing creation timestamp. The result ordering
// is deterministic regardless of input order: last contact descending, then
// email ascending, with status-only entries after all dated ones.
func Aggregate(quotes []quoterepo.QuoteRequest, bookings []bookingrepo.Booking, statuses []repository.ClientStatus) []Client {
	byEmail := make(map[string]*Client)

	entry := func(email string) (*Client, bool) {
		key := sanitize.Email(email)
		if key == "" {
			return nil, false
		}
		c, ok := byEmail[key]
		if !ok {
			c = &Client{Email: key, Status: DefaultStatus}
			byEmail[key] = c
		}
		return c, true
	}

	for _, q := range quotes {
		c, ok := entry(q.Email)
		if !ok {
			continue
		}
		c.QuoteCount++
		if c.Name == "" {
			c.Name = q.Name
		}
		if c.Phone == "" && q.Phone != nil {
			c.Phone = *q.Phone
		}
		touch(c, q.CreatedAt)
	}

	for _, b := range bookings {
		c, ok := entry(b.Email)
		if !ok {
			continue
		}
		c.BookingCount++
		if c.Name == "" {
			c.Name = b.Name
		}
		if c.Phone == "" {
			c.Phone = b.Phone
		}
		touch(c, b.CreatedAt)
	}

	for _, s := range statuses {
		key := sanitize.Email(s.Email)
		if key == "" {
			continue
		}
		c, ok := byEmail[key]
		if !ok {
			// Status rows with no lead behind them still surface, so staff
			// can track manually entered contacts.
			c = &Client{Email: key, StatusOnly: true}
			byEmail[key] = c
		}
		c.Status = s.Status
		c.Notes = s.Notes
	}

	result := make([]Client, 0, len(byEmail))
	for _, c := range byEmail {
		result = append(result, *c)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch {
		case a.LastContact == nil && b.LastContact == nil:
			return a.Email < b.Email
		case a.LastContact == nil:
			return false
		case b.LastContact == nil:
			return true
		case !a.LastContact.Equal(*b.LastContact):
			return a.LastContact.After(*b.LastContact)
		default:
			return a.Email < b.Email
		}
	})

	return result
}

func touch(c *Client, at time.Time) {
	if c.FirstContact == nil || at.Before(*c.FirstContact) {
		t := at
		c.FirstContact = &t
	}
	if c.LastContact == nil || at.After(*c.LastContact) {
		t := at
		c.LastContact = &t
	}
}
