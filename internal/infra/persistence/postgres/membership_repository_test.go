package postgres

import (
	"context"
	"testing"
	"time"

	"wellness/internal/domain/entity"
	"wellness/internal/domain/repository"
	"wellness/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMembership(t *testing.T, userID string, tier entity.Tier) *entity.Membership {
	t.Helper()

	m, err := entity.NewMembership(userID, tier, time.Now())
	require.NoError(t, err)

	return m
}

func TestMembershipRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	m := newMembership(t, "user-1", entity.TierGold)
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.FindActiveByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, entity.TierGold, got.Tier)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(20000)), "balance = %s", got.Balance)
	assert.Equal(t, 2, got.VipEventsRemaining)
	assert.Equal(t, int64(0), got.Version)

	byID, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", byID.UserID)

	_, err = repo.FindByID(ctx, uuid.New())
	require.ErrorIs(t, err, repository.ErrMembershipNotFound)

	_, err = repo.FindActiveByUserID(ctx, "user-2")
	require.ErrorIs(t, err, repository.ErrMembershipNotFound)
}

func TestMembershipRepository_OneActivePerUser(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	first := newMembership(t, "user-1", entity.TierSilver)
	require.NoError(t, repo.Create(ctx, first))

	second := newMembership(t, "user-1", entity.TierPlatinum)
	err := repo.Create(ctx, second)
	require.ErrorIs(t, err, repository.ErrActiveMembershipExists)

	// Once the first is deactivated, a new active one is accepted.
	require.NoError(t, first.Deactivate(time.Now()))
	require.NoError(t, repo.UpdateWithVersion(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	active, err := repo.FindActiveByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestMembershipRepository_UpdateWithVersion(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()

	m := newMembership(t, "user-1", entity.TierGold)
	require.NoError(t, repo.Create(ctx, m))

	// Two readers load the same version.
	reader1, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	reader2, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)

	require.NoError(t, reader1.Apply(entity.TransactionDebit, decimal.NewFromInt(5000), time.Now()))
	require.NoError(t, repo.UpdateWithVersion(ctx, reader1))
	assert.Equal(t, int64(1), reader1.Version)

	require.NoError(t, reader2.Apply(entity.TransactionDebit, decimal.NewFromInt(1000), time.Now()))
	err = repo.UpdateWithVersion(ctx, reader2)
	require.ErrorIs(t, err, repository.ErrVersionConflict)

	stored, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(decimal.NewFromInt(15000)), "balance = %s", stored.Balance)
	assert.Equal(t, int64(1), stored.Version)
}
