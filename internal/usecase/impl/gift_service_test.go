package impl

import (
	"context"
	"testing"

	"wellness/internal/domain/entity"
	domainerrors "wellness/internal/domain/errors"
	"wellness/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGiftService(repos *testRepos) usecase.GiftUsecase {
	return NewGiftService(GiftServiceParams{
		TxManager:      repos.tx,
		MembershipRepo: repos.membership,
		GiftRepo:       repos.gifts,
		Logger:         newDiscardLogger(),
	})
}

func TestGiftService_RedeemOnce(t *testing.T) {
	repos := newTestRepos(t)
	memberships := newMembershipService(repos)
	svc := newGiftService(repos)
	ctx := context.Background()

	created, err := memberships.CreateMembership(ctx, "user-1", entity.TierGold)
	require.NoError(t, err)

	gifts, err := svc.ListWelcomeGifts(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, gifts, 2)

	giftID := created.WelcomeGifts[0].ID
	redeemed, err := svc.RedeemWelcomeGift(ctx, "user-1", giftID)
	require.NoError(t, err)
	assert.True(t, redeemed.IsRedeemed)
	require.NotNil(t, redeemed.RedeemedAt)

	_, err = svc.RedeemWelcomeGift(ctx, "user-1", giftID)
	require.ErrorIs(t, err, domainerrors.ErrGiftAlreadyRedeemed)

	stored, err := repos.gifts.FindByID(ctx, giftID)
	require.NoError(t, err)
	assert.True(t, stored.IsRedeemed)
}

func TestGiftService_RedeemForeignOrMissingGift(t *testing.T) {
	repos := newTestRepos(t)
	memberships := newMembershipService(repos)
	svc := newGiftService(repos)
	ctx := context.Background()

	_, err := svc.RedeemWelcomeGift(ctx, "user-1", uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrMembershipNotFound)

	other, err := memberships.CreateMembership(ctx, "user-2", entity.TierSilver)
	require.NoError(t, err)
	_, err = memberships.CreateMembership(ctx, "user-1", entity.TierSilver)
	require.NoError(t, err)

	_, err = svc.RedeemWelcomeGift(ctx, "user-1", uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrGiftNotFound)

	_, err = svc.RedeemWelcomeGift(ctx, "user-1", other.WelcomeGifts[0].ID)
	require.ErrorIs(t, err, domainerrors.ErrGiftNotFound)
}

func TestGiftService_ListRequiresMembership(t *testing.T) {
	svc := newGiftService(newTestRepos(t))

	_, err := svc.ListWelcomeGifts(context.Background(), "user-1")
	require.ErrorIs(t, err, domainerrors.ErrMembershipNotFound)
}
