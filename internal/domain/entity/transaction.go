package entity

import (
	"time"

	domainerrors "wellness/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Money is stored as numeric(12,2).
const MoneyScale = 2

// MaxMoney is the largest value a numeric(12,2) column holds.
var MaxMoney = decimal.RequireFromString("9999999999.99")

// ValidateMoney rejects values the money columns cannot store exactly: more than
// two decimal places, or above MaxMoney. Sign is left to the caller.
func ValidateMoney(field string, v decimal.Decimal) error {
	if !v.Equal(v.Truncate(MoneyScale)) {
		return domainerrors.ErrInvalidAmount.WithDetails(field + " must have at most 2 decimal places")
	}

	if v.Abs().GreaterThan(MaxMoney) {
		return domainerrors.ErrInvalidAmount.WithDetails(field + " must not exceed " + MaxMoney.StringFixed(MoneyScale))
	}

	return nil
}

// TransactionType is the closed set of balance mutations.
type TransactionType string

const (
	TransactionDebit    TransactionType = "debit"
	TransactionCredit   TransactionType = "credit"
	TransactionPurchase TransactionType = "purchase"
	TransactionTopup    TransactionType = "topup"
)

// ledgerRule is how a transaction type moves the balance.
type ledgerRule struct {
	sign          int
	requiresFunds bool
}

var ledgerRules = map[TransactionType]ledgerRule{
	TransactionDebit:    {sign: -1, requiresFunds: true},
	TransactionPurchase: {sign: -1, requiresFunds: true},
	TransactionCredit:   {sign: 1},
	TransactionTopup:    {sign: 1},
}

// String returns the string representation of the TransactionType.
func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the TransactionType is a known variant.
func (t TransactionType) IsValid() bool {
	_, ok := ledgerRules[t]

	return ok
}

// Sign returns -1 for types that decrease the balance and +1 for those that increase it.
func (t TransactionType) Sign() int {
	return ledgerRules[t].sign
}

// ParseTransactionType validates a transaction type name.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", domainerrors.ErrInvalidTransactionType.WithDetails("unknown transaction type: " + s)
	}

	return t, nil
}

// AdjustmentKind is the staff-facing balance operation.
type AdjustmentKind string

const (
	AdjustmentAdd    AdjustmentKind = "add"
	AdjustmentDeduct AdjustmentKind = "deduct"
)

// TransactionType maps the staff operation to the ledger type it is recorded under.
func (k AdjustmentKind) TransactionType() (TransactionType, error) {
	switch k {
	case AdjustmentAdd:
		return TransactionCredit, nil
	case AdjustmentDeduct:
		return TransactionDebit, nil
	default:
		return "", domainerrors.ErrInvalidTransactionType.WithDetails("type must be add or deduct")
	}
}

// Transaction is an append-only record of one balance mutation.
// Amount is always the requested amount, even when a staff deduction was clamped.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	UserID          string          `json:"userId"`
	MembershipID    uuid.UUID       `json:"membershipId"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description"`
	DiscountApplied decimal.Decimal `json:"discountApplied"`
	StaffID         *string         `json:"staffId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// NewTransaction builds the ledger row for a mutation already applied to m.
// IDs are UUIDv7, so they increase in creation order and break created_at ties.
func NewTransaction(m *Membership, t TransactionType, amount decimal.Decimal, description string, discount decimal.Decimal, staffID *string, now time.Time) *Transaction {
	return &Transaction{
		ID:              uuid.Must(uuid.NewV7()),
		UserID:          m.UserID,
		MembershipID:    m.ID,
		Type:            t,
		Amount:          amount,
		Currency:        m.Currency,
		Description:     description,
		DiscountApplied: discount,
		StaffID:         staffID,
		CreatedAt:       now.UTC(),
	}
}
