package google

import (
	"context"
	"log/slog"

	"wellness/config"
	"wellness/internal/domain/service"

	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"
)

// validIssuers are the issuers Google signs ID tokens with.
var validIssuers = map[string]bool{
	"https://accounts.google.com": true,
	"accounts.google.com":         true,
}

// validateFunc checks signature, expiry and audience. idtoken.Validate in production.
type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// AuthServiceImpl implements service.OAuthAuthService for Google Sign-In ID tokens.
type AuthServiceImpl struct {
	clientID string
	logger   *slog.Logger
	validate validateFunc
}

// NewAuthService creates a new Google AuthService
func NewAuthService(cfg *config.Config, logger *slog.Logger) service.OAuthAuthService {
	clientID := ""
	if cfg.Auth != nil {
		clientID = cfg.Auth.GoogleClientID
	}

	return &AuthServiceImpl{
		clientID: clientID,
		logger:   logger,
		validate: idtoken.Validate,
	}
}

// VerifyIDToken implements service.OAuthAuthService interface
func (s *AuthServiceImpl) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	if s.clientID == "" {
		return nil, errors.New("google client id is not configured")
	}

	payload, err := s.validate(ctx, idToken, s.clientID)
	if err != nil {
		s.logger.Warn("Google ID token rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "token verification failed")
	}

	if !validIssuers[payload.Issuer] {
		return nil, errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if payload.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	user := &service.OAuthUser{
		ID:            payload.Subject,
		Email:         stringClaim(payload.Claims, "email"),
		FirstName:     stringClaim(payload.Claims, "given_name"),
		LastName:      stringClaim(payload.Claims, "family_name"),
		AvatarURL:     stringClaim(payload.Claims, "picture"),
		EmailVerified: boolClaim(payload.Claims, "email_verified"),
		Locale:        stringClaim(payload.Claims, "locale"),
	}

	if user.Email == "" || !user.EmailVerified {
		return nil, errors.New("email not verified")
	}

	s.logger.Debug("Google ID token verified", slog.String("userID", user.ID))

	return user, nil
}

func stringClaim(claims map[string]any, key string) string {
	v, _ := claims[key].(string)

	return v
}

// boolClaim accepts both JSON booleans and the "true" string some tokens carry.
func boolClaim(claims map[string]any, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
