package repository

import (
	"context"

	"wellness/internal/domain/entity"

	"github.com/google/uuid"
)

// LedgerRepository stores the append-only transaction log.
type LedgerRepository interface {
	// Create appends a transaction record.
	Create(ctx context.Context, tx *entity.Transaction) error

	// FindByUserID lists the user's transactions newest first.
	FindByUserID(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error)

	// FindByMembershipID lists a membership's transactions newest first.
	FindByMembershipID(ctx context.Context, membershipID uuid.UUID, limit int) ([]*entity.Transaction, error)
}
