package service

import (
	"context"
	"time"
)

// WalletEventTransactionRecorded is emitted after a ledger mutation commits.
const WalletEventTransactionRecorded = "wallet.transaction.recorded"

// WalletEvent describes a committed balance mutation for downstream consumers.
type WalletEvent struct {
	EventID         string    `json:"event_id"`
	Type            string    `json:"type"`
	RequestID       string    `json:"request_id,omitempty"` // For distributed tracing
	TransactionID   string    `json:"transaction_id"`
	MembershipID    string    `json:"membership_id"`
	UserID          string    `json:"user_id"`
	TransactionType string    `json:"transaction_type"`
	Amount          string    `json:"amount"`
	BalanceAfter    string    `json:"balance_after"`
	Currency        string    `json:"currency"`
	StaffID         string    `json:"staff_id,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishWalletEvent publishes a wallet event for async processing
	PublishWalletEvent(ctx context.Context, event *WalletEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
