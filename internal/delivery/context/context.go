// Package context carries per-request values (request ID, logger, authenticated caller)
// through echo.Context and context.Context.
package context

import (
	"context"
	"log/slog"

	"wellness/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"
	KeyUserID    ContextKey = "user_id"
	KeyRoles     ContextKey = "roles"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the request ID stored on c, or a fresh UUID when none was set.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns "" when ctx carries no request ID.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger returns the request-scoped logger, or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(KeyLogger).(*slog.Logger)

	return logger
}

// GetLoggerOrDefault returns the request-scoped logger, falling back to fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetCaller records the authenticated caller on c and on its request context,
// so usecases see the same identity through ctx. An existing request logger
// gains a user_id attribute.
func SetCaller(c echo.Context, userID string, roles entity.Roles) {
	c.Set(string(KeyUserID), userID)
	c.Set(string(KeyRoles), roles)

	req := c.Request()
	ctx := context.WithValue(req.Context(), KeyUserID, userID)
	ctx = context.WithValue(ctx, KeyRoles, roles)
	if logger := GetLogger(ctx); logger != nil {
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", userID)))
	}
	c.SetRequest(req.WithContext(ctx))
}

// GetUserID returns the authenticated subject stored by SetCaller.
func GetUserID(c echo.Context) (string, bool) {
	userID, ok := c.Get(string(KeyUserID)).(string)

	return userID, ok && userID != ""
}

// GetRoles returns the authenticated caller's roles stored by SetCaller.
func GetRoles(c echo.Context) (entity.Roles, bool) {
	roles, ok := c.Get(string(KeyRoles)).(entity.Roles)

	return roles, ok
}

// UserIDFromContext is GetUserID for code that only holds a context.Context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(KeyUserID).(string)

	return userID, ok && userID != ""
}
