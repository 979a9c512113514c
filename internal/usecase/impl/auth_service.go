// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"wellness/config"
	deliverycontext "wellness/internal/delivery/context"
	"wellness/internal/domain/constants"
	"wellness/internal/domain/entity"
	domainerrors "wellness/internal/domain/errors"
	"wellness/internal/domain/repository"
	"wellness/internal/domain/service"
	"wellness/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo          repository.UserRepository
	tokenService      service.TokenService
	googleAuthService service.OAuthAuthService
	adminEmails       map[string]struct{}
	logger            *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo          repository.UserRepository
	TokenService      service.TokenService
	GoogleAuthService service.OAuthAuthService
	Config            *config.Config
	Logger            *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	adminEmails := make(map[string]struct{})
	if params.Config != nil && params.Config.Auth != nil {
		for _, email := range params.Config.Auth.AdminEmails {
			if email = normalizeEmail(email); email != "" {
				adminEmails[email] = struct{}{}
			}
		}
	}

	return &authService{
		userRepo:          params.UserRepo,
		tokenService:      params.TokenService,
		googleAuthService: params.GoogleAuthService,
		adminEmails:       adminEmails,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignInWithGoogle verifies the ID token and mirrors the identity locally before issuing tokens.
func (srv *authService) SignInWithGoogle(ctx context.Context, input *usecase.GoogleSignInInput) (*usecase.AuthOutput, error) {
	if input == nil || strings.TrimSpace(input.IDToken) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("idToken is required")
	}

	oauthUser, err := srv.googleAuthService.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		srv.log(ctx).Warn("Google sign-in rejected", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidIDToken.WithDetails(err.Error())
	}

	now := time.Now().UTC()
	isAdmin := srv.isAdminEmail(oauthUser.Email)
	user := &entity.User{
		ID:              oauthUser.ID,
		Email:           oauthUser.Email,
		FirstName:       oauthUser.FirstName,
		LastName:        oauthUser.LastName,
		ProfileImageURL: oauthUser.AvatarURL,
		Language:        languageFromLocale(oauthUser.Locale),
		IsAdmin:         isAdmin,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := srv.userRepo.Upsert(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to upsert user")
	}

	stored, err := srv.userRepo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload user")
	}

	// Promotion is one-way: removing an address from config does not demote.
	if isAdmin && !stored.IsAdmin {
		if err := srv.userRepo.SetAdmin(ctx, stored.ID, true); err != nil {
			return nil, errors.Wrap(err, "failed to promote admin")
		}
		stored.IsAdmin = true
		srv.log(ctx).Info("User promoted to admin", slog.String("userID", stored.ID))
	}

	output, err := srv.issueTokens(stored)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User signed in", slog.String("userID", stored.ID), slog.Bool("isAdmin", stored.IsAdmin))

	return output, nil
}

// RefreshToken exchanges a valid refresh token for a new pair. Roles are re-read from storage.
func (srv *authService) RefreshToken(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid.WithDetails(err.Error())
	}

	user, err := srv.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid.WithDetails("user no longer exists")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return srv.issueTokens(user)
}

// GetUser returns the mirrored user.
func (srv *authService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateLanguage stores the preferred language and returns the updated user.
func (srv *authService) UpdateLanguage(ctx context.Context, userID, language string) (*entity.User, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if !entity.IsSupportedLanguage(language) {
		return nil, domainerrors.ErrUnsupportedLanguage.WithDetails("unsupported language: " + language)
	}

	if err := srv.userRepo.UpdateLanguage(ctx, userID, language); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to update language")
	}

	return srv.GetUser(ctx, userID)
}

func (srv *authService) issueTokens(user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Roles().ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(srv.tokenService.GetAccessTokenDuration().Seconds()),
		User:         user,
	}, nil
}

func (srv *authService) isAdminEmail(email string) bool {
	_, ok := srv.adminEmails[normalizeEmail(email)]

	return ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// languageFromLocale maps an IdP locale such as "es-419" to a supported language.
func languageFromLocale(locale string) string {
	lang, _, _ := strings.Cut(strings.ToLower(locale), "-")
	if entity.IsSupportedLanguage(lang) {
		return lang
	}

	return constants.LanguageEnglish
}
