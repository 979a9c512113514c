package entity

import (
	"time"

	"wellness/internal/domain/constants"
	domainerrors "wellness/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MembershipValidity is how long a membership lasts from purchase.
const MembershipValidity = 365 * 24 * time.Hour

// Membership is a user's tiered wallet. Balance never drops below zero.
type Membership struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             string          `json:"userId"`
	Tier               Tier            `json:"tier"`
	Balance            decimal.Decimal `json:"balance"`
	Currency           string          `json:"currency"`
	DiscountPercentage int             `json:"discountPercentage"`
	VipEventsRemaining int             `json:"vipEventsRemaining"`
	ExpiresAt          time.Time       `json:"expiresAt"`
	IsActive           bool            `json:"isActive"`
	Version            int64           `json:"-"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// NewMembership opens a membership at the tier's defaults.
func NewMembership(userID string, tier Tier, now time.Time) (*Membership, error) {
	ent, err := EntitlementFor(tier)
	if err != nil {
		return nil, err
	}

	now = now.UTC()

	return &Membership{
		ID:                 uuid.New(),
		UserID:             userID,
		Tier:               tier,
		Balance:            ent.DefaultBalance(),
		Currency:           constants.Currency,
		DiscountPercentage: ent.DiscountPercentage,
		VipEventsRemaining: ent.VipEvents,
		ExpiresAt:          now.Add(MembershipValidity),
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// Apply moves the balance according to the type's ledger rule.
// On error the membership is left untouched.
func (m *Membership) Apply(t TransactionType, amount decimal.Decimal, now time.Time) error {
	if err := m.checkMutable(amount); err != nil {
		return err
	}

	rule, ok := ledgerRules[t]
	if !ok {
		return domainerrors.ErrInvalidTransactionType.WithDetails("unknown transaction type: " + t.String())
	}

	if rule.requiresFunds && m.Balance.LessThan(amount) {
		return domainerrors.ErrInsufficientBalance.WithDetails(
			"balance " + m.Balance.StringFixed(2) + " is less than " + amount.StringFixed(2))
	}

	balance := m.Balance.Add(amount.Mul(decimal.NewFromInt(int64(rule.sign))))
	if err := checkBalanceFits(balance); err != nil {
		return err
	}

	m.Balance = balance
	m.UpdatedAt = now.UTC()

	return nil
}

// Adjust is the staff variant: add credits, deduct debits but clamps at zero instead of failing.
// It returns the transaction type the adjustment is recorded under.
func (m *Membership) Adjust(kind AdjustmentKind, amount decimal.Decimal, now time.Time) (TransactionType, error) {
	t, err := kind.TransactionType()
	if err != nil {
		return "", err
	}

	if err := m.checkMutable(amount); err != nil {
		return "", err
	}

	balance := m.Balance
	switch kind {
	case AdjustmentAdd:
		balance = balance.Add(amount)
	case AdjustmentDeduct:
		balance = decimal.Max(decimal.Zero, balance.Sub(amount))
	}

	if err := checkBalanceFits(balance); err != nil {
		return "", err
	}

	m.Balance = balance
	m.UpdatedAt = now.UTC()

	return t, nil
}

// HasUnlimitedVipEvents reports whether RSVPs leave the allowance untouched.
func (m *Membership) HasUnlimitedVipEvents() bool {
	return m.VipEventsRemaining == UnlimitedVipEvents
}

// ConsumeVipEvent takes one RSVP from the allowance.
func (m *Membership) ConsumeVipEvent(now time.Time) error {
	if m.VipEventsRemaining <= 0 {
		return domainerrors.ErrNoVipAllowance
	}

	if !m.HasUnlimitedVipEvents() {
		m.VipEventsRemaining--
	}
	m.UpdatedAt = now.UTC()

	return nil
}

// Deactivate ends the membership so the user may purchase a new one.
func (m *Membership) Deactivate(now time.Time) error {
	if !m.IsActive {
		return domainerrors.ErrMembershipInactive
	}

	m.IsActive = false
	m.UpdatedAt = now.UTC()

	return nil
}

func (m *Membership) checkMutable(amount decimal.Decimal) error {
	if !m.IsActive {
		return domainerrors.ErrMembershipInactive
	}

	if !amount.IsPositive() {
		return domainerrors.ErrInvalidAmount
	}

	return ValidateMoney("amount", amount)
}

func checkBalanceFits(balance decimal.Decimal) error {
	if balance.GreaterThan(MaxMoney) {
		return domainerrors.ErrInvalidAmount.WithDetails("resulting balance would exceed " + MaxMoney.StringFixed(MoneyScale))
	}

	return nil
}
