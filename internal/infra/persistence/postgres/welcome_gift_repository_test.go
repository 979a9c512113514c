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

func TestWelcomeGiftRepository_RedeemOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewWelcomeGiftRepository(db)
	ctx := context.Background()

	m := newMembership(t, "user-1", entity.TierPlatinum)
	gifts, err := entity.NewWelcomeGifts(m, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.CreateBatch(ctx, gifts))

	stored, err := repo.FindByMembershipID(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)

	gift := stored[0]
	require.NoError(t, gift.Redeem(time.Now()))
	require.NoError(t, repo.MarkRedeemed(ctx, gift))

	reloaded, err := repo.FindByID(ctx, gift.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsRedeemed)
	assert.NotNil(t, reloaded.RedeemedAt)

	// A stale copy that still believes the gift is unredeemed loses.
	stale := *gift
	stale.IsRedeemed = false
	require.NoError(t, stale.Redeem(time.Now()))
	err = repo.MarkRedeemed(ctx, &stale)
	require.ErrorIs(t, err, repository.ErrGiftAlreadyRedeemed)

	missing := &entity.WelcomeGift{ID: uuid.New()}
	require.NoError(t, missing.Redeem(time.Now()))
	err = repo.MarkRedeemed(ctx, missing)
	require.ErrorIs(t, err, repository.ErrGiftNotFound)

	_, err = repo.FindByID(ctx, uuid.New())
	require.ErrorIs(t, err, repository.ErrGiftNotFound)
}
