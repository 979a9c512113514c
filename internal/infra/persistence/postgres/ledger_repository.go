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

// ledgerRepository implements the repository.LedgerRepository interface.
// Rows are only ever inserted.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository is the constructor for ledgerRepository.
func NewLedgerRepository(db *gorm.DB) repository.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// Create appends a transaction record.
func (repo *ledgerRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	txM := fromTransactionDomain(tx)

	if err := repo.db.WithContext(ctx).Create(txM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrMembershipNotFound.WrapMessage("transaction references an unknown membership")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record transaction")
	}

	tx.CreatedAt = txM.CreatedAt

	return nil
}

// FindByUserID lists the user's transactions newest first.
func (repo *ledgerRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	return repo.find(ctx, repo.db.WithContext(ctx).Where("user_id = ?", userID), limit)
}

// FindByMembershipID lists a membership's transactions newest first.
func (repo *ledgerRepository) FindByMembershipID(ctx context.Context, membershipID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	return repo.find(ctx, repo.db.WithContext(ctx).Where("membership_id = ?", membershipID), limit)
}

func (repo *ledgerRepository) find(_ context.Context, query *gorm.DB, limit int) ([]*entity.Transaction, error) {
	var txModels []*model.TransactionModel

	query = query.Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&txModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	txs := make([]*entity.Transaction, 0, len(txModels))
	for _, txM := range txModels {
		txs = append(txs, toTransactionDomain(txM))
	}

	return txs, nil
}

// toTransactionDomain converts a GORM TransactionModel to a domain Transaction entity.
func toTransactionDomain(data *model.TransactionModel) *entity.Transaction {
	if data == nil {
		return nil
	}

	return &entity.Transaction{
		ID:              data.ID,
		UserID:          data.UserID,
		MembershipID:    data.MembershipID,
		Type:            entity.TransactionType(data.Type),
		Amount:          data.Amount,
		Currency:        data.Currency,
		Description:     data.Description,
		DiscountApplied: data.DiscountApplied,
		StaffID:         data.StaffID,
		CreatedAt:       data.CreatedAt,
	}
}

// fromTransactionDomain converts a domain Transaction entity to a GORM TransactionModel.
func fromTransactionDomain(data *entity.Transaction) *model.TransactionModel {
	if data == nil {
		return nil
	}

	return &model.TransactionModel{
		ID:              data.ID,
		UserID:          data.UserID,
		MembershipID:    data.MembershipID,
		Type:            data.Type.String(),
		Amount:          data.Amount,
		Currency:        data.Currency,
		Description:     data.Description,
		DiscountApplied: data.DiscountApplied,
		StaffID:         data.StaffID,
		CreatedAt:       data.CreatedAt,
	}
}
