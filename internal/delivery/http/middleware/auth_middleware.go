package middleware

import (
	"strings"

	deliverycontext "wellness/internal/delivery/context"
	"wellness/internal/domain/entity"
	domainerrors "wellness/internal/domain/errors"
	"wellness/internal/domain/repository"
	"wellness/internal/domain/service"
	"wellness/internal/errors"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	users    repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, users: users}
}

// Authenticate validates the Bearer access token and stores the caller on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WithDetails("authorization header is missing")
		}

		tokenString, found := strings.CutPrefix(authHeader, bearerPrefix)
		if !found || strings.TrimSpace(tokenString) == "" {
			return domainerrors.ErrUnauthorized.WithDetails("authorization header must be a Bearer token")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(strings.TrimSpace(tokenString))
		if err != nil {
			return domainerrors.ErrAccessTokenInvalid
		}

		if claims.Subject == "" {
			return domainerrors.ErrAccessTokenInvalid
		}

		deliverycontext.SetCaller(c, claims.Subject, entity.RolesFromStrings(claims.Roles))

		return next(c)
	}
}

// RequireRole checks the authenticated caller carries role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := GetRoles(c)
			if !ok || !roles.Contains(role) {
				if role == entity.RoleAdmin {
					return domainerrors.ErrAdminRequired
				}

				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

// RequireAdmin restricts a route group to clinic staff. Besides the token's role claim,
// the stored is_admin flag must still be set, so a revoked admin loses access immediately.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
		userID, _ := GetUserID(c)

		user, err := m.users.FindByID(c.Request().Context(), userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrAdminRequired
		}
		if err != nil {
			return errors.Wrap(err, "load admin user")
		}

		if !user.IsAdmin {
			return domainerrors.ErrAdminRequired.WithDetails("admin access was revoked")
		}

		return next(c)
	})
}

// GetUserID returns the authenticated subject set by Authenticate.
func GetUserID(c echo.Context) (string, bool) {
	return deliverycontext.GetUserID(c)
}

// GetRoles returns the authenticated caller's roles set by Authenticate.
func GetRoles(c echo.Context) (entity.Roles, bool) {
	return deliverycontext.GetRoles(c)
}
