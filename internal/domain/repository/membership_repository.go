package repository

import (
	"context"
	"errors"

	"wellness/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrMembershipNotFound is returned when no membership matches.
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrActiveMembershipExists is returned when the user already holds an active membership.
	ErrActiveMembershipExists = errors.New("active membership already exists")

	// ErrVersionConflict is returned when a compare-and-swap update lost the race.
	ErrVersionConflict = errors.New("membership version conflict")
)

// MembershipRepository persists memberships.
type MembershipRepository interface {
	// Create inserts a new membership.
	Create(ctx context.Context, membership *entity.Membership) error

	// FindActiveByUserID returns the user's active membership.
	FindActiveByUserID(ctx context.Context, userID string) (*entity.Membership, error)

	// FindByID retrieves a membership regardless of its state.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Membership, error)

	// UpdateWithVersion writes the mutable fields only if the stored version still equals
	// membership.Version, then bumps membership.Version. Returns ErrVersionConflict otherwise.
	UpdateWithVersion(ctx context.Context, membership *entity.Membership) error
}
