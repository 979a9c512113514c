package usecase

import (
	"context"

	"wellness/internal/domain/entity"

	"github.com/google/uuid"
)

// GiftUsecase defines welcome gift operations.
type GiftUsecase interface {
	// ListWelcomeGifts lists the gifts of the user's active membership newest first.
	ListWelcomeGifts(ctx context.Context, userID string) ([]*entity.WelcomeGift, error)

	// RedeemWelcomeGift redeems one of the user's gifts.
	RedeemWelcomeGift(ctx context.Context, userID string, giftID uuid.UUID) (*entity.WelcomeGift, error)
}
