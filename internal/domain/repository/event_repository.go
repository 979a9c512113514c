package repository

import (
	"context"
	"errors"
	"time"

	"wellness/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrEventNotFound is returned when an event does not exist.
	ErrEventNotFound = errors.New("vip event not found")

	// ErrDuplicateAttendee is returned when the user already RSVPed to the event.
	ErrDuplicateAttendee = errors.New("attendee already registered")
)

// EventRepository persists VIP events and their attendees.
type EventRepository interface {
	// CreateEvent inserts a new event.
	CreateEvent(ctx context.Context, event *entity.VipEvent) error

	// FindEventByID retrieves a single event.
	FindEventByID(ctx context.Context, id uuid.UUID) (*entity.VipEvent, error)

	// FindEventForUpdate retrieves an event and locks its row for the rest of the transaction.
	FindEventForUpdate(ctx context.Context, id uuid.UUID) (*entity.VipEvent, error)

	// FindUpcoming lists active events dated after now, soonest first,
	// optionally restricted to one required tier.
	FindUpcoming(ctx context.Context, now time.Time, requiredTier *entity.Tier) ([]*entity.VipEvent, error)

	// CreateAttendee records an RSVP.
	CreateAttendee(ctx context.Context, attendee *entity.EventAttendee) error

	// CountAttendees returns how many RSVPs an event has.
	CountAttendees(ctx context.Context, eventID uuid.UUID) (int64, error)

	// FindAttendanceByUser lists the user's RSVPs newest first.
	FindAttendanceByUser(ctx context.Context, userID string) ([]*entity.EventAttendee, error)
}
