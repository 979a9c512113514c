package usecase

import (
	"context"
	"time"

	"wellness/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMembershipOutput is a freshly opened membership with its provisioned gifts.
type CreateMembershipOutput struct {
	Membership   *entity.Membership
	WelcomeGifts []*entity.WelcomeGift
}

// WalletPass describes the store card shown in mobile wallets.
type WalletPass struct {
	FormatVersion      int             `json:"formatVersion"`
	PassTypeIdentifier string          `json:"passTypeIdentifier"`
	SerialNumber       uuid.UUID       `json:"serialNumber"`
	OrganizationName   string          `json:"organizationName"`
	BackgroundColor    string          `json:"backgroundColor"`
	Description        string          `json:"description"`
	MemberName         string          `json:"memberName"`
	Tier               entity.Tier     `json:"tier"`
	Balance            decimal.Decimal `json:"balance"`
	Currency           string          `json:"currency"`
	DiscountPercentage int             `json:"discountPercentage"`
	VipEventsRemaining int             `json:"vipEventsRemaining"`
	UnlimitedVipEvents bool            `json:"unlimitedVipEvents"`
	ExpiresAt          time.Time       `json:"expiresAt"`
	Terms              string          `json:"terms"`
	Barcode            WalletBarcode   `json:"barcode"`
}

// WalletBarcode is the barcode block of a wallet pass.
type WalletBarcode struct {
	Format          string `json:"format"`
	Message         string `json:"message"`
	MessageEncoding string `json:"messageEncoding"`
}

// MembershipUsecase defines the membership lifecycle operations.
type MembershipUsecase interface {
	// ListTiers returns the entitlement table in tier order.
	ListTiers(ctx context.Context) []entity.Entitlement

	// GetActiveMembership returns the user's active membership.
	GetActiveMembership(ctx context.Context, userID string) (*entity.Membership, error)

	// CreateMembership opens a membership at the tier and provisions its welcome gifts.
	CreateMembership(ctx context.Context, userID string, tier entity.Tier) (*CreateMembershipOutput, error)

	// DeactivateMembership ends a membership on behalf of staff.
	DeactivateMembership(ctx context.Context, staffID string, membershipID uuid.UUID) (*entity.Membership, error)

	// GenerateMembershipQR renders the user's membership card QR code.
	GenerateMembershipQR(ctx context.Context, userID string) ([]byte, error)

	// GetWalletPass builds the wallet pass description for the user's membership.
	GetWalletPass(ctx context.Context, userID string) (*WalletPass, error)

	// LookupByQR resolves a scanned membership card to its active membership.
	LookupByQR(ctx context.Context, qrData string) (*entity.Membership, error)
}
