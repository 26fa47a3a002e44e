package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nexus_backend/internal/bookings/repository"
	"nexus_backend/internal/bookings/transport"
	"nexus_backend/internal/events"
	"nexus_backend/internal/scheduler"
	"nexus_backend/platform/apperr"
	"nexus_backend/platform/logger"
	"nexus_backend/platform/phone"
	"nexus_backend/platform/sanitize"

	"github.com/google/uuid"
)

const dateFormat = "2006-01-02"

// reminderLead is how far before the call the reminder fires.
const reminderLead = 24 * time.Hour

// allSlots is the bookable grid: half-hour starts over the working day,
// Paris time on the caller side.
var allSlots = buildSlots()

func buildSlots() []string {
	slots := make([]string, 0, 17)
	for hour := 9; hour <= 17; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
		if hour != 17 {
			slots = append(slots, fmt.Sprintf("%02d:30", hour))
		}
	}
	return slots
}

var validTransitions = map[transport.BookingStatus][]transport.BookingStatus{
	transport.StatusPending:   {transport.StatusConfirmed, transport.StatusCancelled},
	transport.StatusConfirmed: {transport.StatusCompleted, transport.StatusCancelled},
	transport.StatusCancelled: {},
	transport.StatusCompleted: {},
}

// Service provides business logic for consultation call bookings.
type Service struct {
	repo              *repository.Repository
	eventBus          events.Bus
	reminderScheduler scheduler.ReminderScheduler
	log               *logger.Logger
	now               func() time.Time
}

func New(repo *repository.Repository, eventBus events.Bus, reminderScheduler scheduler.ReminderScheduler, log *logger.Logger) *Service {
	return &Service{
		repo:              repo,
		eventBus:          eventBus,
		reminderScheduler: reminderScheduler,
		log:               log,
		now:               time.Now,
	}
}

// Create books a consultation call slot. The slot must be free and in the
// future; a taken slot is a conflict, not a validation error, so the client
// can offer the next free one.
func (s *Service) Create(ctx context.Context, req transport.CreateBookingRequest) (repository.Booking, error) {
	bookingDate, err := time.Parse(dateFormat, req.BookingDate)
	if err != nil {
		return repository.Booking{}, apperr.Validation("bookingDate must be formatted YYYY-MM-DD")
	}
	if !slotKnown(req.TimeSlot) {
		return repository.Booking{}, apperr.Validation("timeSlot is outside bookable hours")
	}
	if bookingDate.Before(s.now().Truncate(24 * time.Hour)) {
		return repository.Booking{}, apperr.Validation("bookingDate must not be in the past")
	}

	taken, err := s.repo.SlotTaken(ctx, bookingDate, req.TimeSlot)
	if err != nil {
		return repository.Booking{}, apperr.Wrap(apperr.KindInternal, "failed to check slot availability", err)
	}
	if taken {
		return repository.Booking{}, apperr.Conflict("this time slot is already booked")
	}

	params := repository.CreateParams{
		Name:        sanitize.Text(req.Name),
		Email:       sanitize.Email(req.Email),
		Phone:       phone.NormalizeE164(req.Phone),
		BookingDate: bookingDate,
		TimeSlot:    req.TimeSlot,
		DurationMin: req.DurationMin,
	}
	if topic := sanitize.Text(req.Topic); topic != "" {
		params.Topic = &topic
	}

	booking, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Booking{}, apperr.Wrap(apperr.KindInternal, "failed to store booking", err)
	}

	s.eventBus.Publish(ctx, events.CallBookingCreated{
		BaseEvent:   events.NewBaseEvent(),
		BookingID:   booking.ID,
		Name:        booking.Name,
		Email:       booking.Email,
		Phone:       booking.Phone,
		BookingDate: booking.BookingDate.Format(dateFormat),
		TimeSlot:    booking.TimeSlot,
		DurationMin: booking.DurationMin,
	})

	s.scheduleReminder(ctx, booking)

	return booking, nil
}

func (s *Service) scheduleReminder(ctx context.Context, booking repository.Booking) {
	if s.reminderScheduler == nil {
		return
	}

	startAt, err := callStart(booking)
	if err != nil {
		return
	}
	runAt := startAt.Add(-reminderLead)
	if runAt.Before(s.now()) {
		return
	}

	payload := scheduler.CallBookingReminderPayload{BookingID: booking.ID.String()}
	if err := s.reminderScheduler.ScheduleCallReminder(ctx, payload, runAt); err != nil {
		s.log.JobEvent(scheduler.TaskCallBookingReminder, err)
	}
}

func callStart(booking repository.Booking) (time.Time, error) {
	return time.Parse(dateFormat+" 15:04", booking.BookingDate.Format(dateFormat)+" "+booking.TimeSlot)
}

// Availability returns the free slots for a date.
func (s *Service) Availability(ctx context.Context, date string) ([]string, error) {
	day, err := time.Parse(dateFormat, date)
	if err != nil {
		return nil, apperr.Validation("date must be formatted YYYY-MM-DD")
	}

	taken, err := s.repo.TakenSlots(ctx, day)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load booked slots", err)
	}

	takenSet := make(map[string]struct{}, len(taken))
	for _, slot := range taken {
		takenSet[slot] = struct{}{}
	}

	free := make([]string, 0, len(allSlots))
	for _, slot := range allSlots {
		if _, ok := takenSet[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free, nil
}

func (s *Service) List(ctx context.Context, status *transport.BookingStatus, from *time.Time, limit int) ([]repository.Booking, error) {
	filters := repository.ListFilters{From: from, Limit: limit}
	if status != nil {
		value := string(*status)
		filters.Status = &value
	}

	items, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list bookings", err)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Booking{}, apperr.NotFound("booking not found")
		}
		return repository.Booking{}, apperr.Wrap(apperr.KindInternal, "failed to load booking", err)
	}
	return booking, nil
}

// Confirm moves a pending booking to confirmed.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (repository.Booking, error) {
	return s.transition(ctx, id, transport.StatusConfirmed)
}

// Complete marks a confirmed booking as held.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (repository.Booking, error) {
	return s.transition(ctx, id, transport.StatusCompleted)
}

// Cancel cancels a booking and frees its slot. cancelledBy distinguishes a
// prospect cancelling from an admin doing so, the notification wording differs.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, cancelledBy string) (repository.Booking, error) {
	booking, err := s.transition(ctx, id, transport.StatusCancelled)
	if err != nil {
		return repository.Booking{}, err
	}

	s.eventBus.Publish(ctx, events.CallBookingCancelled{
		BaseEvent:   events.NewBaseEvent(),
		BookingID:   booking.ID,
		Name:        booking.Name,
		Email:       booking.Email,
		BookingDate: booking.BookingDate.Format(dateFormat),
		TimeSlot:    booking.TimeSlot,
		CancelledBy: cancelledBy,
	})

	return booking, nil
}

// CancelWithToken cancels a booking on behalf of the prospect. The token was
// issued at booking time and is the only credential the public side has.
func (s *Service) CancelWithToken(ctx context.Context, id uuid.UUID, token uuid.UUID) (repository.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return repository.Booking{}, err
	}
	if booking.CancelToken != token {
		return repository.Booking{}, apperr.Forbidden("invalid cancellation token")
	}

	return s.Cancel(ctx, id, "client")
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to transport.BookingStatus) (repository.Booking, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return repository.Booking{}, err
	}

	from := transport.BookingStatus(current.Status)
	if from == to {
		return current, nil
	}
	if !transitionAllowed(from, to) {
		return repository.Booking{}, apperr.Validation(
			fmt.Sprintf("cannot move booking from %s to %s", from, to))
	}

	booking, err := s.repo.UpdateStatus(ctx, id, string(to))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Booking{}, apperr.NotFound("booking not found")
		}
		return repository.Booking{}, apperr.Wrap(apperr.KindInternal, "failed to update booking status", err)
	}
	return booking, nil
}

func (s *Service) AddNote(ctx context.Context, bookingID, authorID uuid.UUID, body string) (repository.Note, error) {
	if _, err := s.GetByID(ctx, bookingID); err != nil {
		return repository.Note{}, err
	}

	note, err := s.repo.AddNote(ctx, bookingID, authorID, sanitize.Text(body))
	if err != nil {
		return repository.Note{}, apperr.Wrap(apperr.KindInternal, "failed to store note", err)
	}
	return note, nil
}

func (s *Service) ListNotes(ctx context.Context, bookingID uuid.UUID) ([]repository.Note, error) {
	if _, err := s.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}

	notes, err := s.repo.ListNotes(ctx, bookingID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list notes", err)
	}
	return notes, nil
}

func transitionAllowed(from, to transport.BookingStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func slotKnown(slot string) bool {
	for _, known := range allSlots {
		if known == slot {
			return true
		}
	}
	return false
}
