package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "wellness/internal/delivery/context"
	"wellness/internal/domain/entity"
	domainerrors "wellness/internal/domain/errors"
	"wellness/internal/domain/repository"
	"wellness/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type giftService struct {
	txManager      repository.TransactionManager
	membershipRepo repository.MembershipRepository
	giftRepo       repository.WelcomeGiftRepository
	logger         *slog.Logger
}

// GiftServiceParams holds dependencies for GiftService, injected by Fx.
type GiftServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	MembershipRepo repository.MembershipRepository
	GiftRepo       repository.WelcomeGiftRepository
	Logger         *slog.Logger
}

// NewGiftService creates a new welcome gift service instance
func NewGiftService(params GiftServiceParams) usecase.GiftUsecase {
	return &giftService{
		txManager:      params.TxManager,
		membershipRepo: params.MembershipRepo,
		giftRepo:       params.GiftRepo,
		logger:         params.Logger,
	}
}

// ListWelcomeGifts lists the gifts of the user's active membership.
func (srv *giftService) ListWelcomeGifts(ctx context.Context, userID string) ([]*entity.WelcomeGift, error) {
	membership, err := findActiveMembership(ctx, srv.membershipRepo, userID)
	if err != nil {
		return nil, err
	}

	gifts, err := srv.giftRepo.FindByMembershipID(ctx, membership.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list welcome gifts")
	}

	return gifts, nil
}

// RedeemWelcomeGift redeems a gift of the user's active membership exactly once.
func (srv *giftService) RedeemWelcomeGift(ctx context.Context, userID string, giftID uuid.UUID) (*entity.WelcomeGift, error) {
	var redeemed *entity.WelcomeGift

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		membership, err := findActiveMembership(ctx, repoFactory.NewMembershipRepository(), userID)
		if err != nil {
			return err
		}

		giftRepo := repoFactory.NewWelcomeGiftRepository()

		gift, err := giftRepo.FindByID(ctx, giftID)
		if err != nil {
			if errors.Is(err, repository.ErrGiftNotFound) {
				return domainerrors.ErrGiftNotFound
			}

			return errors.Wrap(err, "failed to find welcome gift")
		}

		// Gifts of other members are indistinguishable from missing ones.
		if gift.MembershipID != membership.ID {
			return domainerrors.ErrGiftNotFound
		}

		if err := gift.Redeem(time.Now()); err != nil {
			return err
		}

		if err := giftRepo.MarkRedeemed(ctx, gift); err != nil {
			switch {
			case errors.Is(err, repository.ErrGiftAlreadyRedeemed):
				return domainerrors.ErrGiftAlreadyRedeemed
			case errors.Is(err, repository.ErrGiftNotFound):
				return domainerrors.ErrGiftNotFound
			default:
				return errors.Wrap(err, "failed to redeem welcome gift")
			}
		}

		redeemed = gift

		return nil
	})
	if err != nil {
		return nil, err
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Welcome gift redeemed",
		slog.String("userID", userID),
		slog.String("giftID", giftID.String()),
		slog.String("giftType", string(redeemed.GiftType)),
	)

	return redeemed, nil
}
