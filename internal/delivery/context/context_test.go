package context

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"wellness/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestRequestID(t *testing.T) {
	c := newContext()

	generated := GetRequestID(c)
	assert.NotEmpty(t, generated)
	assert.NotEqual(t, generated, GetRequestID(c), "unset request IDs are minted per call")

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))

	assert.Empty(t, GetRequestIDFromContext(context.Background()))
	assert.Equal(t, "req-1", GetRequestIDFromContext(WithRequestID(context.Background(), "req-1")))
}

func TestLoggerOrDefault(t *testing.T) {
	fallback := slog.New(slog.DiscardHandler)
	scoped := slog.New(slog.DiscardHandler)

	assert.Nil(t, GetLogger(context.Background()))
	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}

func TestSetCaller(t *testing.T) {
	var buf bytes.Buffer
	c := newContext()
	c.SetRequest(c.Request().WithContext(WithLogger(c.Request().Context(), slog.New(slog.NewTextHandler(&buf, nil)))))

	_, ok := GetUserID(c)
	require.False(t, ok)

	SetCaller(c, "user-1", entity.Roles{entity.RoleMember, entity.RoleAdmin})

	userID, ok := GetUserID(c)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)

	roles, ok := GetRoles(c)
	require.True(t, ok)
	assert.True(t, roles.Contains(entity.RoleAdmin))

	ctx := c.Request().Context()
	userID, ok = UserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)

	GetLogger(ctx).Info("hello")
	assert.Contains(t, buf.String(), "user_id=user-1")
}
