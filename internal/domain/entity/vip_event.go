package entity

import (
	"strings"
	"time"

	domainerrors "wellness/internal/domain/errors"

	"github.com/google/uuid"
)

// VipEvent is a tier-gated clinic event.
type VipEvent struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	EventDate    time.Time `json:"eventDate"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	RequiredTier Tier      `json:"requiredTier"`
	MaxAttendees *int      `json:"maxAttendees,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewVipEvent validates and builds an active event.
func NewVipEvent(title, description string, eventDate time.Time, imageURL string, required Tier, maxAttendees *int, now time.Time) (*VipEvent, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("title is required")
	}

	if !required.IsValid() {
		return nil, domainerrors.ErrInvalidTier.WithDetails("unknown tier: " + required.String())
	}

	if !eventDate.After(now) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("eventDate must be in the future")
	}

	if maxAttendees != nil && *maxAttendees <= 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("maxAttendees must be positive")
	}

	return &VipEvent{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(title),
		Description:  description,
		EventDate:    eventDate.UTC(),
		ImageURL:     imageURL,
		RequiredTier: required,
		MaxAttendees: maxAttendees,
		IsActive:     true,
		CreatedAt:    now.UTC(),
	}, nil
}

// IsOpen reports whether the event still accepts RSVPs.
func (e *VipEvent) IsOpen(now time.Time) bool {
	return e.IsActive && e.EventDate.After(now)
}

// HasCapacity reports whether one more attendee fits. Events without a cap always fit.
func (e *VipEvent) HasCapacity(attendees int64) bool {
	if e.MaxAttendees == nil {
		return true
	}

	return attendees < int64(*e.MaxAttendees)
}

// EventAttendee records one RSVP.
type EventAttendee struct {
	ID           uuid.UUID `json:"id"`
	EventID      uuid.UUID `json:"eventId"`
	UserID       string    `json:"userId"`
	MembershipID uuid.UUID `json:"membershipId"`
	RsvpDate     time.Time `json:"rsvpDate"`
}

// NewEventAttendee builds the RSVP row for a member.
func NewEventAttendee(event *VipEvent, m *Membership, now time.Time) *EventAttendee {
	return &EventAttendee{
		ID:           uuid.New(),
		EventID:      event.ID,
		UserID:       m.UserID,
		MembershipID: m.ID,
		RsvpDate:     now.UTC(),
	}
}
