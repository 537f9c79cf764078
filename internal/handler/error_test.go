package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorean-shop/lorean/internal/domain"
)

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{domain.EINVALID, http.StatusBadRequest},
		{domain.EUNAUTHORIZED, http.StatusUnauthorized},
		{domain.EFORBIDDEN, http.StatusForbidden},
		{domain.ENOTFOUND, http.StatusNotFound},
		{domain.ECONFLICT, http.StatusConflict},
		{domain.EINTERNAL, http.StatusInternalServerError},
		{"unknown_code", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorCodeToHTTPStatus(tt.code))
		})
	}
}

func TestRespondError(t *testing.T) {
	respond := func(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorBody) {
		t.Helper()
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, RespondError(c, zerolog.Nop(), err))

		var body ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec, body
	}

	t.Run("not found", func(t *testing.T) {
		rec, body := respond(t, domain.NotFound("order.get", "order", "abc-123"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, domain.ENOTFOUND, body.Error.Code)
	})

	t.Run("validation", func(t *testing.T) {
		rec, body := respond(t, domain.Invalid("tax_rule.create", "rate must be positive"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domain.EINVALID, body.Error.Code)
		assert.Equal(t, "rate must be positive", body.Error.Message)
	})

	t.Run("delete guard", func(t *testing.T) {
		rec, body := respond(t, domain.ErrOrderNotCancelled)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, domain.EFORBIDDEN, body.Error.Code)
	})

	t.Run("internal errors hide details", func(t *testing.T) {
		rec, body := respond(t, domain.Internal(assert.AnError, "order.list", "failed to list orders"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, domain.EINTERNAL, body.Error.Code)
		assert.NotContains(t, body.Error.Message, assert.AnError.Error())
	})
}
