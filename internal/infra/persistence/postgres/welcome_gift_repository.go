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

// welcomeGiftRepository implements the repository.WelcomeGiftRepository interface.
type welcomeGiftRepository struct {
	db *gorm.DB
}

// NewWelcomeGiftRepository is the constructor for welcomeGiftRepository.
func NewWelcomeGiftRepository(db *gorm.DB) repository.WelcomeGiftRepository {
	return &welcomeGiftRepository{
		db: db,
	}
}

// CreateBatch inserts the gifts provisioned with a membership.
func (repo *welcomeGiftRepository) CreateBatch(ctx context.Context, gifts []*entity.WelcomeGift) error {
	if len(gifts) == 0 {
		return nil
	}

	giftModels := make([]*model.WelcomeGiftModel, 0, len(gifts))
	for _, gift := range gifts {
		giftModels = append(giftModels, fromWelcomeGiftDomain(gift))
	}

	if err := repo.db.WithContext(ctx).Create(&giftModels).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrMembershipNotFound.WrapMessage("gift references an unknown membership")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create welcome gifts")
	}

	return nil
}

// FindByMembershipID lists a membership's gifts newest first.
func (repo *welcomeGiftRepository) FindByMembershipID(ctx context.Context, membershipID uuid.UUID) ([]*entity.WelcomeGift, error) {
	var giftModels []*model.WelcomeGiftModel

	if err := repo.db.WithContext(ctx).
		Where("membership_id = ?", membershipID).
		Order("created_at DESC").
		Find(&giftModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find welcome gifts by membership")
	}

	gifts := make([]*entity.WelcomeGift, 0, len(giftModels))
	for _, giftM := range giftModels {
		gifts = append(gifts, toWelcomeGiftDomain(giftM))
	}

	return gifts, nil
}

// FindByID retrieves a single gift.
func (repo *welcomeGiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WelcomeGift, error) {
	var giftM model.WelcomeGiftModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&giftM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGiftNotFound
		}

		return nil, errors.Wrap(err, "failed to find welcome gift by id")
	}

	return toWelcomeGiftDomain(&giftM), nil
}

// MarkRedeemed is a conditional update: only a still-unredeemed row is flipped.
func (repo *welcomeGiftRepository) MarkRedeemed(ctx context.Context, gift *entity.WelcomeGift) error {
	result := repo.db.WithContext(ctx).
		Model(&model.WelcomeGiftModel{}).
		Where("id = ? AND is_redeemed = ?", gift.ID, false).
		Updates(map[string]any{
			"is_redeemed": true,
			"redeemed_at": gift.RedeemedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to redeem welcome gift")
	}

	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.WelcomeGiftModel{}).
		Where("id = ?", gift.ID).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check welcome gift")
	}

	if count == 0 {
		return repository.ErrGiftNotFound
	}

	return repository.ErrGiftAlreadyRedeemed
}

// toWelcomeGiftDomain converts a GORM WelcomeGiftModel to a domain WelcomeGift entity.
func toWelcomeGiftDomain(data *model.WelcomeGiftModel) *entity.WelcomeGift {
	if data == nil {
		return nil
	}

	return &entity.WelcomeGift{
		ID:           data.ID,
		MembershipID: data.MembershipID,
		GiftType:     entity.GiftType(data.GiftType),
		Description:  data.Description,
		IsRedeemed:   data.IsRedeemed,
		RedeemedAt:   data.RedeemedAt,
		CreatedAt:    data.CreatedAt,
	}
}

// fromWelcomeGiftDomain converts a domain WelcomeGift entity to a GORM WelcomeGiftModel.
func fromWelcomeGiftDomain(data *entity.WelcomeGift) *model.WelcomeGiftModel {
	if data == nil {
		return nil
	}

	return &model.WelcomeGiftModel{
		ID:           data.ID,
		MembershipID: data.MembershipID,
		GiftType:     string(data.GiftType),
		Description:  data.Description,
		IsRedeemed:   data.IsRedeemed,
		RedeemedAt:   data.RedeemedAt,
		CreatedAt:    data.CreatedAt,
	}
}
