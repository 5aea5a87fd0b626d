package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	wrapped := fmt.Errorf("handler: %w", NewNotFound("User", nil))
	de := ToDomainError(wrapped)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.Equal(t, "User not found", de.Message)

	cause := errors.New("socket closed")
	de = ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.ErrorIs(t, de, cause)
}

func TestHasStatus(t *testing.T) {
	assert.True(t, HasStatus(NewForbidden("no"), http.StatusForbidden))
	assert.True(t, HasStatus(NewConflict("dup", nil), http.StatusConflict))
	assert.False(t, HasStatus(NewUnauthorized("no"), http.StatusForbidden))
	assert.False(t, HasStatus(nil, http.StatusOK))
}

func TestInternalErrorHidesCause(t *testing.T) {
	err := NewInternalError(errors.New("dial tcp: refused"))
	de := ToDomainError(err)
	assert.Equal(t, "internal server error", de.Message)
	assert.Contains(t, err.Error(), "refused")
}
