package usecase

import (
	"context"
	"time"

	"wellness/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateEventInput is a staff request to schedule a VIP event.
type CreateEventInput struct {
	StaffID      string
	Title        string
	Description  string
	EventDate    time.Time
	ImageURL     string
	RequiredTier entity.Tier
	MaxAttendees *int
}

// RsvpOutput is the recorded RSVP and the membership after the allowance was consumed.
type RsvpOutput struct {
	Attendee   *entity.EventAttendee
	Membership *entity.Membership
}

// EventUsecase defines VIP event operations.
type EventUsecase interface {
	// ListUpcomingEvents lists active future events soonest first, optionally for one tier.
	ListUpcomingEvents(ctx context.Context, requiredTier *entity.Tier) ([]*entity.VipEvent, error)

	// CreateEvent schedules a new event.
	CreateEvent(ctx context.Context, input *CreateEventInput) (*entity.VipEvent, error)

	// Rsvp registers the user for an event.
	Rsvp(ctx context.Context, userID string, eventID uuid.UUID) (*RsvpOutput, error)

	// ListAttendance lists the user's RSVPs newest first.
	ListAttendance(ctx context.Context, userID string) ([]*entity.EventAttendee, error)
}
