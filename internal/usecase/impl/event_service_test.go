package impl

import (
	"context"
	"testing"
	"time"

	"wellness/internal/domain/entity"
	domainerrors "wellness/internal/domain/errors"
	"wellness/internal/infra/cache"
	"wellness/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventService(repos *testRepos) usecase.EventUsecase {
	return NewEventService(EventServiceParams{
		TxManager: repos.tx,
		EventRepo: repos.events,
		Cache:     cache.NewMemoryCache(time.Minute, time.Minute),
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})
}

func createEvent(t *testing.T, svc usecase.EventUsecase, tier entity.Tier, maxAttendees *int) *entity.VipEvent {
	t.Helper()

	event, err := svc.CreateEvent(context.Background(), &usecase.CreateEventInput{
		StaffID:      "staff-1",
		Title:        "Spring Gala " + tier.String(),
		EventDate:    time.Now().Add(72 * time.Hour),
		RequiredTier: tier,
		MaxAttendees: maxAttendees,
	})
	require.NoError(t, err)

	return event
}

func intPtr(v int) *int {
	return &v
}

func TestEventService_RsvpConsumesAllowance(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(repos)
	ctx := context.Background()

	m := repos.seedMembership(t, "user-1", entity.TierGold)
	first := createEvent(t, svc, entity.TierSilver, nil)
	second := createEvent(t, svc, entity.TierGold, nil)
	third := createEvent(t, svc, entity.TierGold, nil)

	out, err := svc.Rsvp(ctx, "user-1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Membership.VipEventsRemaining)
	assert.Equal(t, m.ID, out.Attendee.MembershipID)

	_, err = svc.Rsvp(ctx, "user-1", second.ID)
	require.NoError(t, err)

	_, err = svc.Rsvp(ctx, "user-1", third.ID)
	require.ErrorIs(t, err, domainerrors.ErrNoVipAllowance)

	stored, err := repos.membership.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.VipEventsRemaining)

	attendance, err := svc.ListAttendance(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, attendance, 2)
}

func TestEventService_RsvpUnlimitedAllowance(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(repos)
	ctx := context.Background()

	repos.seedMembership(t, "user-1", entity.TierPlatinum)

	for i := 0; i < 3; i++ {
		event := createEvent(t, svc, entity.TierPlatinum, nil)
		out, err := svc.Rsvp(ctx, "user-1", event.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.UnlimitedVipEvents, out.Membership.VipEventsRemaining)
	}
}

func TestEventService_RsvpPolicyOrder(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(repos)
	ctx := context.Background()

	platinumOnly := createEvent(t, svc, entity.TierPlatinum, nil)

	// No membership wins over every other check.
	_, err := svc.Rsvp(ctx, "user-1", platinumOnly.ID)
	require.ErrorIs(t, err, domainerrors.ErrMembershipNotFound)

	repos.seedMembership(t, "user-1", entity.TierSilver)

	_, err = svc.Rsvp(ctx, "user-1", uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrEventNotFound)

	_, err = svc.Rsvp(ctx, "user-1", platinumOnly.ID)
	require.ErrorIs(t, err, domainerrors.ErrTierNotEligible)

	open := createEvent(t, svc, entity.TierSilver, nil)
	_, err = svc.Rsvp(ctx, "user-1", open.ID)
	require.NoError(t, err)

	// Duplicate is reported before the exhausted allowance.
	_, err = svc.Rsvp(ctx, "user-1", open.ID)
	require.ErrorIs(t, err, domainerrors.ErrAlreadyRegistered)
}

func TestEventService_RsvpCapacity(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(repos)
	ctx := context.Background()

	repos.seedMembership(t, "user-1", entity.TierGold)
	repos.seedMembership(t, "user-2", entity.TierGold)
	event := createEvent(t, svc, entity.TierSilver, intPtr(1))

	_, err := svc.Rsvp(ctx, "user-1", event.ID)
	require.NoError(t, err)

	_, err = svc.Rsvp(ctx, "user-2", event.ID)
	require.ErrorIs(t, err, domainerrors.ErrEventFull)

	stored, err := repos.membership.FindActiveByUserID(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.VipEventsRemaining, "rejected RSVP keeps the allowance")
}

func TestEventService_RsvpPastEvent(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(repos)
	ctx := context.Background()

	repos.seedMembership(t, "user-1", entity.TierGold)

	past := &entity.VipEvent{
		ID:           uuid.New(),
		Title:        "Last year",
		EventDate:    time.Now().Add(-time.Hour).UTC(),
		RequiredTier: entity.TierSilver,
		IsActive:     true,
		CreatedAt:    time.Now().Add(-48 * time.Hour).UTC(),
	}
	require.NoError(t, repos.events.CreateEvent(ctx, past))

	_, err := svc.Rsvp(ctx, "user-1", past.ID)
	require.ErrorIs(t, err, domainerrors.ErrEventNotFound)
}

func TestEventService_ListUpcomingEvents(t *testing.T) {
	repos := newTestRepos(t)
	svc := newEventService(repos)
	ctx := context.Background()

	events, err := svc.ListUpcomingEvents(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, events)

	createEvent(t, svc, entity.TierSilver, nil)
	createEvent(t, svc, entity.TierGold, nil)

	// Creating an event invalidated the cached empty listing.
	events, err = svc.ListUpcomingEvents(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	gold := entity.TierGold
	events, err = svc.ListUpcomingEvents(ctx, &gold)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entity.TierGold, events[0].RequiredTier)
}

func TestEventService_CreateEventValidation(t *testing.T) {
	svc := newEventService(newTestRepos(t))
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, &usecase.CreateEventInput{
		Title: "Gala", EventDate: time.Now().Add(-time.Hour), RequiredTier: entity.TierGold,
	})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = svc.CreateEvent(ctx, &usecase.CreateEventInput{
		Title: "Gala", EventDate: time.Now().Add(time.Hour), RequiredTier: "diamond",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidTier)
}
