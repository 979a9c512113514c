package auth

import (
	"testing"
	"time"

	"wellness/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
		},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	roles := []string{"member", "admin"}
	accessToken, refreshToken, err := jwtService.GenerateTokens("google-sub-1", roles)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	accessClaims, err := jwtService.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", accessClaims.Subject)
	assert.Equal(t, roles, accessClaims.Roles)
	assert.Equal(t, "access", accessClaims.Type)

	refreshClaims, err := jwtService.ValidateRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", refreshClaims.Subject)
	assert.Nil(t, refreshClaims.Roles) // Refresh tokens don't have roles
	assert.Equal(t, "refresh", refreshClaims.Type)

	assert.Equal(t, time.Minute, jwtService.GetAccessTokenDuration())
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	accessToken, refreshToken, err := jwtService.GenerateTokens("google-sub-1", nil)
	require.NoError(t, err)

	// Each token is signed with its own secret, so swapping them fails.
	_, err = jwtService.ValidateAccessToken(refreshToken)
	require.Error(t, err)

	_, err = jwtService.ValidateRefreshToken(accessToken)
	require.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken("clearly-not-a-jwt-token-format")
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token")
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	impl, ok := svc.(*jwtService)
	require.True(t, ok)

	issued := time.Now().Add(-2 * time.Minute)
	impl.now = func() time.Time { return issued }
	accessToken, _, err := impl.GenerateTokens("google-sub-1", nil)
	require.NoError(t, err)

	impl.now = time.Now
	_, err = impl.ValidateAccessToken(accessToken)
	require.Error(t, err)
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	require.Error(t, err)
}
