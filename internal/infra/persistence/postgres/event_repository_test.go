package postgres

import (
	"context"
	"testing"
	"time"

	"wellness/internal/domain/entity"
	"wellness/internal/domain/repository"
	"wellness/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_FindUpcoming(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	later, err := entity.NewVipEvent("Platinum dinner", "", now.Add(72*time.Hour), "", entity.TierPlatinum, nil, now)
	require.NoError(t, err)
	sooner, err := entity.NewVipEvent("Gold brunch", "", now.Add(24*time.Hour), "", entity.TierGold, nil, now)
	require.NoError(t, err)
	inactive, err := entity.NewVipEvent("Cancelled", "", now.Add(48*time.Hour), "", entity.TierGold, nil, now)
	require.NoError(t, err)
	inactive.IsActive = false
	past, err := entity.NewVipEvent("Past", "", now.Add(time.Hour), "", entity.TierSilver, nil, now)
	require.NoError(t, err)
	past.EventDate = now.Add(-time.Hour)

	for _, e := range []*entity.VipEvent{later, sooner, inactive, past} {
		require.NoError(t, repo.CreateEvent(ctx, e))
	}

	events, err := repo.FindUpcoming(ctx, now, nil)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, sooner.ID, events[0].ID)
	assert.Equal(t, later.ID, events[1].ID)

	gold := entity.TierGold
	filtered, err := repo.FindUpcoming(ctx, now, &gold)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, sooner.ID, filtered[0].ID)
}

func TestEventRepository_Attendees(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	limit := 10
	event, err := entity.NewVipEvent("Gala", "Annual gala", now.Add(24*time.Hour), "", entity.TierSilver, &limit, now)
	require.NoError(t, err)
	require.NoError(t, repo.CreateEvent(ctx, event))

	locked, err := repo.FindEventForUpdate(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, locked.MaxAttendees)
	assert.Equal(t, 10, *locked.MaxAttendees)

	m := newMembership(t, "user-1", entity.TierSilver)
	require.NoError(t, repo.CreateAttendee(ctx, entity.NewEventAttendee(event, m, now)))

	err = repo.CreateAttendee(ctx, entity.NewEventAttendee(event, m, now))
	require.ErrorIs(t, err, repository.ErrDuplicateAttendee)

	other := newMembership(t, "user-2", entity.TierGold)
	require.NoError(t, repo.CreateAttendee(ctx, entity.NewEventAttendee(event, other, now)))

	count, err := repo.CountAttendees(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	attendance, err := repo.FindAttendanceByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, attendance, 1)
	assert.Equal(t, event.ID, attendance[0].EventID)

	_, err = repo.FindEventByID(ctx, uuid.New())
	require.ErrorIs(t, err, repository.ErrEventNotFound)
}
