package postgres

import (
	"context"
	"testing"
	"time"

	"wellness/internal/domain/entity"
	"wellness/internal/domain/repository"
	"wellness/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_UpsertPreservesLocalState(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	user := &entity.User{
		ID:        "google-sub-1",
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "Lopez",
		Language:  "en",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Upsert(ctx, user))
	require.NoError(t, repo.SetAdmin(ctx, user.ID, true))
	require.NoError(t, repo.UpdateLanguage(ctx, user.ID, "es"))

	refreshed := &entity.User{
		ID:              "google-sub-1",
		Email:           "ana.lopez@example.com",
		FirstName:       "Ana María",
		LastName:        "Lopez",
		ProfileImageURL: "https://example.com/ana.png",
		Language:        "en",
		CreatedAt:       now,
		UpdatedAt:       now.Add(time.Minute),
	}
	require.NoError(t, repo.Upsert(ctx, refreshed))

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana.lopez@example.com", got.Email)
	assert.Equal(t, "Ana María", got.FirstName)
	assert.Equal(t, "https://example.com/ana.png", got.ProfileImageURL)
	assert.True(t, got.IsAdmin)
	assert.Equal(t, "es", got.Language)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrUserNotFound)

	err = repo.UpdateLanguage(ctx, "missing", "es")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}
