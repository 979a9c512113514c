package postgres

import (
	"context"

	"wellness/internal/domain/entity"
	domainerrors "wellness/internal/domain/errors"
	"wellness/internal/domain/repository"
	"wellness/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// membershipRepository implements the repository.MembershipRepository interface.
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository is the constructor for membershipRepository.
func NewMembershipRepository(db *gorm.DB) repository.MembershipRepository {
	return &membershipRepository{
		db: db,
	}
}

// Create persists a new membership. The partial unique index turns a second active
// membership for the same user into ErrActiveMembershipExists.
func (repo *membershipRepository) Create(ctx context.Context, membership *entity.Membership) error {
	membershipM := fromMembershipDomain(membership)

	if err := repo.db.WithContext(ctx).Create(membershipM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrActiveMembershipExists
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("membership violates a check constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create membership")
	}

	membership.CreatedAt = membershipM.CreatedAt
	membership.UpdatedAt = membershipM.UpdatedAt

	return nil
}

// FindActiveByUserID returns the user's active membership.
func (repo *membershipRepository) FindActiveByUserID(ctx context.Context, userID string) (*entity.Membership, error) {
	var membershipM model.MembershipModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&membershipM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMembershipNotFound
		}

		return nil, errors.Wrap(err, "failed to find active membership by user")
	}

	return toMembershipDomain(&membershipM), nil
}

// FindByID retrieves a membership by its ID.
func (repo *membershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Membership, error) {
	var membershipM model.MembershipModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&membershipM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMembershipNotFound
		}

		return nil, errors.Wrap(err, "failed to find membership by id")
	}

	return toMembershipDomain(&membershipM), nil
}

// UpdateWithVersion is a compare-and-swap on the version column.
func (repo *membershipRepository) UpdateWithVersion(ctx context.Context, membership *entity.Membership) error {
	result := repo.db.WithContext(ctx).
		Model(&model.MembershipModel{}).
		Where("id = ? AND version = ?", membership.ID, membership.Version).
		Updates(map[string]any{
			"balance":              membership.Balance,
			"vip_events_remaining": membership.VipEventsRemaining,
			"is_active":            membership.IsActive,
			"updated_at":           membership.UpdatedAt,
			"version":              gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("membership violates a check constraint")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update membership")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVersionConflict
	}

	membership.Version++

	return nil
}

// toMembershipDomain converts a GORM MembershipModel to a domain Membership entity.
func toMembershipDomain(data *model.MembershipModel) *entity.Membership {
	if data == nil {
		return nil
	}

	return &entity.Membership{
		ID:                 data.ID,
		UserID:             data.UserID,
		Tier:               entity.Tier(data.Tier),
		Balance:            data.Balance,
		Currency:           data.Currency,
		DiscountPercentage: data.DiscountPercentage,
		VipEventsRemaining: data.VipEventsRemaining,
		ExpiresAt:          data.ExpiresAt,
		IsActive:           data.IsActive,
		Version:            data.Version,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

// fromMembershipDomain converts a domain Membership entity to a GORM MembershipModel.
func fromMembershipDomain(data *entity.Membership) *model.MembershipModel {
	if data == nil {
		return nil
	}

	return &model.MembershipModel{
		ID:                 data.ID,
		UserID:             data.UserID,
		Tier:               data.Tier.String(),
		Balance:            data.Balance,
		Currency:           data.Currency,
		DiscountPercentage: data.DiscountPercentage,
		VipEventsRemaining: data.VipEventsRemaining,
		ExpiresAt:          data.ExpiresAt,
		IsActive:           data.IsActive,
		Version:            data.Version,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}
