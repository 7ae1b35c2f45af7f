package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Akshan03/Personal-Finance-Agent/internal/analytics"
	"github.com/Akshan03/Personal-Finance-Agent/internal/infra/llm"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/market"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/user"
	apperrors "github.com/Akshan03/Personal-Finance-Agent/internal/shared/errors"
)

func TestToAppError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"wrapped validation", fmt.Errorf("validation failed: %w", transaction.ErrZeroAmount), http.StatusBadRequest},
		{"savings target", analytics.ErrInvalidSavingsTarget, http.StatusBadRequest},
		{"duplicate user", user.ErrUserAlreadyExists, http.StatusConflict},
		{"bad credentials", user.ErrInvalidPassword, http.StatusUnauthorized},
		{"inactive user", user.ErrUserInactive, http.StatusForbidden},
		{"foreign transaction", transaction.ErrUnauthorizedAccess, http.StatusNotFound},
		{"missing holding", holding.ErrHoldingNotFound, http.StatusNotFound},
		{"quote unavailable", market.ErrQuoteUnavailable, http.StatusServiceUnavailable},
		{"llm disabled", llm.ErrDisabled, http.StatusServiceUnavailable},
		{"llm malformed", llm.ErrMalformedResponse, http.StatusBadGateway},
		{"timeout", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"app error passes through", apperrors.Conflict("taken"), http.StatusConflict},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, toAppError(tt.err).HTTPStatus())
		})
	}
}

func TestRespondAppError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	respondAppError(rec, errors.New("pq: password authentication failed for user admin"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error","code":"INTERNAL_ERROR"}`, rec.Body.String())
}

func TestParseFilter(t *testing.T) {
	t.Run("full query", func(t *testing.T) {
		q := map[string][]string{
			"category":        {"food"},
			"start_date":      {"2024-01-01"},
			"end_date":        {"2024-01-31"},
			"fraudulent_only": {"true"},
			"limit":           {"25"},
			"offset":          {"50"},
		}

		f, err := parseFilter(q)

		assert.NoError(t, err)
		assert.Equal(t, transaction.CategoryFood, *f.Category)
		assert.Equal(t, "2024-01-01T00:00:00Z", f.StartDate.Format("2006-01-02T15:04:05Z07:00"))
		assert.Equal(t, "2024-01-31T23:59:59Z", f.EndDate.Format("2006-01-02T15:04:05Z07:00"))
		assert.True(t, f.FraudulentOnly)
		assert.Equal(t, 25, f.Limit)
		assert.Equal(t, 50, f.Offset)
	})

	t.Run("rfc3339 dates", func(t *testing.T) {
		f, err := parseFilter(map[string][]string{"start_date": {"2024-03-01T10:00:00+02:00"}})
		assert.NoError(t, err)
		assert.Equal(t, 8, f.StartDate.Hour())
	})

	for _, bad := range []map[string][]string{
		{"start_date": {"yesterday"}},
		{"limit": {"0"}},
		{"limit": {"abc"}},
		{"offset": {"-1"}},
		{"fraudulent_only": {"maybe"}},
	} {
		_, err := parseFilter(bad)
		assert.Error(t, err, "%v", bad)
	}
}
