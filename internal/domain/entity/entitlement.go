package entity

import (
	"wellness/internal/domain/constants"
	domainerrors "wellness/internal/domain/errors"

	"github.com/shopspring/decimal"
)

// UnlimitedVipEvents is the allowance sentinel meaning RSVPs never consume it.
const UnlimitedVipEvents = 999

// GiftType identifies a welcome gift kind.
type GiftType string

const (
	GiftSkincareProduct GiftType = "skincare_product"
	GiftFacialTreatment GiftType = "facial_treatment"
	GiftPremiumFacial   GiftType = "premium_facial"
	GiftLaserFacial     GiftType = "laser_facial"
)

// GiftSpec describes a gift provisioned when a membership is created.
type GiftSpec struct {
	Type        GiftType `json:"giftType"`
	Description string   `json:"description"`
	Label       string   `json:"label"`
}

// Entitlement is everything a tier grants. Price doubles as the opening balance.
type Entitlement struct {
	Tier               Tier            `json:"name"`
	Price              decimal.Decimal `json:"price"`
	Currency           string          `json:"currency"`
	DiscountPercentage int             `json:"discount"`
	VipEvents          int             `json:"vipEvents"`
	Benefits           []string        `json:"benefits"`
	WelcomeGifts       []GiftSpec      `json:"welcomeGifts"`
}

// DefaultBalance is the balance a new membership opens with.
func (e Entitlement) DefaultBalance() decimal.Decimal {
	return e.Price
}

var entitlements = map[Tier]Entitlement{
	TierSilver: {
		Tier:               TierSilver,
		Price:              decimal.NewFromInt(12000),
		Currency:           constants.Currency,
		DiscountPercentage: 5,
		VipEvents:          1,
		Benefits: []string{
			"5% off all services",
			"5% off non-medical retail products",
			"Access to exclusive member-only promotions",
			"1 annual VIP event access",
		},
		WelcomeGifts: []GiftSpec{
			{
				Type:        GiftSkincareProduct,
				Description: "Complimentary skincare product based on skin type",
				Label:       "1 complimentary skincare product (based on skin type)",
			},
		},
	},
	TierGold: {
		Tier:               TierGold,
		Price:              decimal.NewFromInt(20000),
		Currency:           constants.Currency,
		DiscountPercentage: 10,
		VipEvents:          2,
		Benefits: []string{
			"10% off all services",
			"10% off non-medical retail products",
			"Priority booking",
			"2 annual VIP event accesses",
		},
		WelcomeGifts: []GiftSpec{
			{Type: GiftSkincareProduct, Description: "Premium skincare product", Label: "1 skincare product"},
			{Type: GiftFacialTreatment, Description: "Personalized facial treatment", Label: "1 personalized facial treatment"},
		},
	},
	TierPlatinum: {
		Tier:               TierPlatinum,
		Price:              decimal.NewFromInt(30000),
		Currency:           constants.Currency,
		DiscountPercentage: 15,
		VipEvents:          UnlimitedVipEvents,
		Benefits: []string{
			"15% off all services",
			"15% off non-medical retail products",
			"Exclusive member-only promotions",
			"Priority booking",
			"Guaranteed invitation to all VIP events",
		},
		WelcomeGifts: []GiftSpec{
			{Type: GiftSkincareProduct, Description: "Premium skincare product", Label: "1 skincare product"},
			{Type: GiftPremiumFacial, Description: "Premium personalized facial", Label: "1 premium personalized facial"},
			{Type: GiftLaserFacial, Description: "Laser facial from selected options", Label: "1 laser facial (chosen from selected options)"},
		},
	},
}

// EntitlementFor looks up the entitlement of a tier.
func EntitlementFor(t Tier) (Entitlement, error) {
	e, ok := entitlements[t]
	if !ok {
		return Entitlement{}, domainerrors.ErrInvalidTier.WithDetails("unknown tier: " + t.String())
	}

	return e, nil
}

// Entitlements returns every tier's entitlement ordered from lowest to highest tier.
func Entitlements() []Entitlement {
	return []Entitlement{
		entitlements[TierSilver],
		entitlements[TierGold],
		entitlements[TierPlatinum],
	}
}
