package repository

import (
	"context"
	"errors"

	"wellness/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrGiftNotFound is returned when a gift does not exist.
	ErrGiftNotFound = errors.New("welcome gift not found")

	// ErrGiftAlreadyRedeemed is returned when the conditional redeem matched no unredeemed row.
	ErrGiftAlreadyRedeemed = errors.New("welcome gift already redeemed")
)

// WelcomeGiftRepository persists welcome gifts.
type WelcomeGiftRepository interface {
	// CreateBatch inserts the gifts provisioned with a membership.
	CreateBatch(ctx context.Context, gifts []*entity.WelcomeGift) error

	// FindByMembershipID lists a membership's gifts newest first.
	FindByMembershipID(ctx context.Context, membershipID uuid.UUID) ([]*entity.WelcomeGift, error)

	// FindByID retrieves a single gift.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.WelcomeGift, error)

	// MarkRedeemed flips an unredeemed gift to redeemed.
	MarkRedeemed(ctx context.Context, gift *entity.WelcomeGift) error
}
