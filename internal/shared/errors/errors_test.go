package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: holding not found", NotFound("holding").Error())

	cause := stderrors.New("connection refused")
	err := ServiceUnavailable("llm unavailable", cause)
	assert.Equal(t, "SERVICE_UNAVAILABLE: llm unavailable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestGetAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("scan: %w", Upstream("bad completion", nil))

	require.True(t, IsAppError(wrapped))
	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrCodeUpstream, appErr.Code)

	assert.Nil(t, GetAppError(stderrors.New("plain")))
}

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
		{Unauthorized("no"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{Conflict("dup"), http.StatusConflict},
		{Internal("boom", nil), http.StatusInternalServerError},
		{ServiceUnavailable("down", nil), http.StatusServiceUnavailable},
		{Upstream("garbled", nil), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}
