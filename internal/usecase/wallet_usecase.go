package usecase

import (
	"context"

	"wellness/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction listing bounds.
const (
	DefaultTransactionLimit = 10
	MaxTransactionLimit     = 100
)

// RecordTransactionInput is a member-initiated balance mutation.
type RecordTransactionInput struct {
	UserID          string
	Type            entity.TransactionType
	Amount          decimal.Decimal
	Description     string
	DiscountApplied decimal.Decimal
}

// AdjustBalanceInput is a staff balance adjustment on a target membership.
type AdjustBalanceInput struct {
	StaffID      string
	MembershipID uuid.UUID
	Kind         entity.AdjustmentKind
	Amount       decimal.Decimal
	Description  string
}

// LedgerOutput is the committed state after one balance mutation.
type LedgerOutput struct {
	Membership  *entity.Membership
	Transaction *entity.Transaction
}

// WalletUsecase defines the balance ledger operations.
type WalletUsecase interface {
	// RecordTransaction applies a debit/credit/purchase/topup to the caller's active membership.
	RecordTransaction(ctx context.Context, input *RecordTransactionInput) (*LedgerOutput, error)

	// AdjustBalance adds to or deducts from a membership; deductions clamp at zero.
	AdjustBalance(ctx context.Context, input *AdjustBalanceInput) (*LedgerOutput, error)

	// ListTransactions lists the user's transactions newest first.
	ListTransactions(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error)
}
