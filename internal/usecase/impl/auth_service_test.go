package impl

import (
	"context"
	"testing"

	domainerrors "wellness/internal/domain/errors"
	"wellness/internal/domain/service"
	"wellness/internal/infra/auth"
	mockSvc "wellness/internal/mocks/service"
	"wellness/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	repos  *testRepos
	google *mockSvc.MockOAuthAuthService
	tokens service.TokenService
	svc    usecase.AuthUsecase
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := newTestConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	repos := newTestRepos(t)
	google := mockSvc.NewMockOAuthAuthService(t)

	return &authFixture{
		repos:  repos,
		google: google,
		tokens: tokens,
		svc: NewAuthService(AuthServiceParams{
			UserRepo:          repos.users,
			TokenService:      tokens,
			GoogleAuthService: google,
			Config:            cfg,
			Logger:            newDiscardLogger(),
		}),
	}
}

func googleUser(id, email, locale string) *service.OAuthUser {
	return &service.OAuthUser{
		ID:            id,
		Email:         email,
		FirstName:     "Ana",
		LastName:      "Lopez",
		AvatarURL:     "https://example.com/a.png",
		EmailVerified: true,
		Locale:        locale,
	}
}

func TestAuthService_SignInWithGoogle_MirrorsUser(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	fx.google.EXPECT().
		VerifyIDToken(mock.Anything, "id-token").
		Return(googleUser("sub-1", "ana@example.com", "es-419"), nil)

	out, err := fx.svc.SignInWithGoogle(ctx, &usecase.GoogleSignInInput{IDToken: "id-token"})
	require.NoError(t, err)
	assert.Equal(t, "sub-1", out.User.ID)
	assert.Equal(t, "es", out.User.Language)
	assert.False(t, out.User.IsAdmin)
	assert.Equal(t, int64(60), out.ExpiresIn)

	claims, err := fx.tokens.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", claims.Subject)
	assert.Equal(t, []string{"member"}, claims.Roles)

	stored, err := fx.repos.users.FindByID(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", stored.Email)
}

func TestAuthService_SignInWithGoogle_KeepsLocalState(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	fx.google.EXPECT().
		VerifyIDToken(mock.Anything, "first").
		Return(googleUser("sub-1", "ana@example.com", "en"), nil)
	fx.google.EXPECT().
		VerifyIDToken(mock.Anything, "second").
		Return(&service.OAuthUser{ID: "sub-1", Email: "ana@example.com", FirstName: "Anita", EmailVerified: true}, nil)

	_, err := fx.svc.SignInWithGoogle(ctx, &usecase.GoogleSignInInput{IDToken: "first"})
	require.NoError(t, err)

	_, err = fx.svc.UpdateLanguage(ctx, "sub-1", "es")
	require.NoError(t, err)

	out, err := fx.svc.SignInWithGoogle(ctx, &usecase.GoogleSignInInput{IDToken: "second"})
	require.NoError(t, err)
	assert.Equal(t, "Anita", out.User.FirstName)
	assert.Equal(t, "es", out.User.Language)
}

func TestAuthService_SignInWithGoogle_PromotesAdminEmails(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	fx.google.EXPECT().
		VerifyIDToken(mock.Anything, "staff-token").
		Return(googleUser("staff-1", "staff@clinic.example", ""), nil)

	out, err := fx.svc.SignInWithGoogle(ctx, &usecase.GoogleSignInInput{IDToken: "staff-token"})
	require.NoError(t, err)
	assert.True(t, out.User.IsAdmin)
	assert.Equal(t, "en", out.User.Language)

	claims, err := fx.tokens.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"member", "admin"}, claims.Roles)
}

func TestAuthService_SignInWithGoogle_Rejections(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, err := fx.svc.SignInWithGoogle(ctx, &usecase.GoogleSignInInput{IDToken: "  "})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	fx.google.EXPECT().
		VerifyIDToken(mock.Anything, "bad").
		Return(nil, errors.New("token expired"))

	_, err = fx.svc.SignInWithGoogle(ctx, &usecase.GoogleSignInInput{IDToken: "bad"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidIDToken)
}

func TestAuthService_RefreshToken(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	fx.google.EXPECT().
		VerifyIDToken(mock.Anything, "id-token").
		Return(googleUser("sub-1", "ana@example.com", "en"), nil)

	signedIn, err := fx.svc.SignInWithGoogle(ctx, &usecase.GoogleSignInInput{IDToken: "id-token"})
	require.NoError(t, err)

	refreshed, err := fx.svc.RefreshToken(ctx, signedIn.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "sub-1", refreshed.User.ID)

	_, err = fx.svc.RefreshToken(ctx, signedIn.AccessToken)
	require.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_RefreshToken_UnknownUser(t *testing.T) {
	fx := newAuthFixture(t)

	_, refreshToken, err := fx.tokens.GenerateTokens("ghost", []string{"member"})
	require.NoError(t, err)

	_, err = fx.svc.RefreshToken(context.Background(), refreshToken)
	require.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_GetUserAndLanguage(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, err := fx.svc.GetUser(ctx, "missing")
	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	fx.repos.seedMembership(t, "sub-2", "silver")

	user, err := fx.svc.UpdateLanguage(ctx, "sub-2", " ES ")
	require.NoError(t, err)
	assert.Equal(t, "es", user.Language)

	_, err = fx.svc.UpdateLanguage(ctx, "sub-2", "fr")
	require.ErrorIs(t, err, domainerrors.ErrUnsupportedLanguage)

	_, err = fx.svc.UpdateLanguage(ctx, "missing", "en")
	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
