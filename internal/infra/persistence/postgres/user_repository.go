package postgres

import (
	"context"
	"time"

	"wellness/internal/domain/entity"
	domainerrors "wellness/internal/domain/errors"
	"wellness/internal/domain/repository"
	"wellness/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindByID retrieves a single user by their identity provider subject.
func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// Upsert inserts the user or refreshes the identity provider fields on conflict.
// is_admin and language are owned locally and never overwritten here.
func (repo *userRepository) Upsert(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "profile_image_url", "updated_at"}),
		}).
		Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("email already belongs to another user")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert user")
	}

	return nil
}

// SetAdmin grants or revokes staff access.
func (repo *userRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	return repo.updateColumns(ctx, id, map[string]any{"is_admin": isAdmin})
}

// UpdateLanguage stores the user's preferred language.
func (repo *userRepository) UpdateLanguage(ctx context.Context, id, language string) error {
	return repo.updateColumns(ctx, id, map[string]any{"language": language})
}

func (repo *userRepository) updateColumns(ctx context.Context, id string, values map[string]any) error {
	values["updated_at"] = time.Now().UTC()

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:              data.ID,
		Email:           data.Email,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		ProfileImageURL: data.ProfileImageURL,
		Language:        data.Language,
		IsAdmin:         data.IsAdmin,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:              data.ID,
		Email:           data.Email,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		ProfileImageURL: data.ProfileImageURL,
		Language:        data.Language,
		IsAdmin:         data.IsAdmin,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
