package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "wellness/internal/delivery/context"
	domainerrors "wellness/internal/domain/errors"
	"wellness/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	deliverycontext.SetRequestID(c, "req-1")

	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestSuccess(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Success(c, http.StatusCreated, map[string]string{"k": "v"}, ""))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "Success", body.Message)
	assert.Equal(t, "req-1", body.RequestID)
	assert.Nil(t, body.Error)
}

func TestHandleAppError(t *testing.T) {
	t.Run("app error keeps code and details", func(t *testing.T) {
		c, rec := newContext()

		err := errors.Wrap(domainerrors.ErrInsufficientBalance.WithDetails("balance 10.00"), "apply")
		require.NoError(t, HandleAppError(c, err))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		assert.False(t, body.Success)
		assert.Equal(t, "INSUFFICIENT_BALANCE", body.Error.Code)
		assert.Equal(t, "balance 10.00", body.Error.Details)
	})

	t.Run("server error hides details", func(t *testing.T) {
		c, rec := newContext()

		require.NoError(t, HandleAppError(c, domainerrors.NewDatabaseExecuteError(errors.New("boom"), "insert failed")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "DATABASE_ERROR", body.Error.Code)
		assert.Empty(t, body.Error.Details)
	})

	t.Run("plain error is returned to echo", func(t *testing.T) {
		c, rec := newContext()

		err := HandleAppError(c, errors.New("unexpected"))

		require.Error(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, rec.Body.Len())
	})
}
