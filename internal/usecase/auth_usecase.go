// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"wellness/internal/domain/entity"
)

// --- Input DTOs ---

// GoogleSignInInput carries the ID token obtained by the client from Google Sign-In.
type GoogleSignInInput struct {
	IDToken string
}

// --- Output DTOs ---

// AuthOutput returns the issued token pair and the mirrored user.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	User         *entity.User
}

// AuthUsecase defines the interface for sign-in and profile operations.
type AuthUsecase interface {
	// SignInWithGoogle verifies the ID token, mirrors the user locally and issues tokens.
	SignInWithGoogle(ctx context.Context, input *GoogleSignInInput) (*AuthOutput, error)

	// RefreshToken exchanges a refresh token for a new token pair.
	RefreshToken(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// GetUser returns the mirrored user.
	GetUser(ctx context.Context, userID string) (*entity.User, error)

	// UpdateLanguage stores the user's preferred UI language.
	UpdateLanguage(ctx context.Context, userID, language string) (*entity.User, error)
}
