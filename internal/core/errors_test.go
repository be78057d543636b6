// AngelaMos | 2026
// errors_test.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToAppError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{ErrInvalidInput, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{ErrIdentityConflict, http.StatusConflict, "IDENTITY_CONFLICT"},
		{ErrConflict, http.StatusConflict, "CONFLICT"},
		{ErrInvalidOperation, http.StatusBadRequest, "INVALID_OPERATION"},
		{ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{ErrTokenRevoked, http.StatusUnauthorized, "TOKEN_REVOKED"},
		{ErrTokenInvalid, http.StatusUnauthorized, "TOKEN_INVALID"},
		{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{ErrUnavailable, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			wrapped := fmt.Errorf("update account: %w", tt.err)
			appErr := ToAppError(wrapped, "account")

			assert.Equal(t, tt.status, appErr.StatusCode)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestToAppErrorKeepsAppError(t *testing.T) {
	original := ValidationError("at least one field")
	err := fmt.Errorf("handler: %w", original)

	assert.Same(t, original, ToAppError(err, "account"))
	assert.True(t, IsAppError(err))
}

func TestNotFoundMessageNamesResource(t *testing.T) {
	assert.Equal(t, "account not found", ToAppError(ErrNotFound, "account").Message)
}

func TestForbiddenMessageIsGeneric(t *testing.T) {
	err := fmt.Errorf("delete account: target holds ROLE_ADMIN: %w", ErrForbidden)
	appErr := ToAppError(err, "account")

	assert.Equal(t, "insufficient permissions", appErr.Message)
	assert.ErrorIs(t, appErr, ErrForbidden)
}
