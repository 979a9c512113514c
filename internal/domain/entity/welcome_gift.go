package entity

import (
	"time"

	domainerrors "wellness/internal/domain/errors"

	"github.com/google/uuid"
)

// WelcomeGift is a one-time perk granted when a membership is opened.
type WelcomeGift struct {
	ID           uuid.UUID  `json:"id"`
	MembershipID uuid.UUID  `json:"membershipId"`
	GiftType     GiftType   `json:"giftType"`
	Description  string     `json:"description"`
	IsRedeemed   bool       `json:"isRedeemed"`
	RedeemedAt   *time.Time `json:"redeemedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// NewWelcomeGifts provisions the gifts of the membership's tier.
func NewWelcomeGifts(m *Membership, now time.Time) ([]*WelcomeGift, error) {
	ent, err := EntitlementFor(m.Tier)
	if err != nil {
		return nil, err
	}

	gifts := make([]*WelcomeGift, 0, len(ent.WelcomeGifts))
	for _, spec := range ent.WelcomeGifts {
		gifts = append(gifts, &WelcomeGift{
			ID:           uuid.New(),
			MembershipID: m.ID,
			GiftType:     spec.Type,
			Description:  spec.Description,
			CreatedAt:    now.UTC(),
		})
	}

	return gifts, nil
}

// Redeem flips the gift to redeemed. Redemption is one-way.
func (g *WelcomeGift) Redeem(now time.Time) error {
	if g.IsRedeemed {
		return domainerrors.ErrGiftAlreadyRedeemed
	}

	redeemedAt := now.UTC()
	g.IsRedeemed = true
	g.RedeemedAt = &redeemedAt

	return nil
}
