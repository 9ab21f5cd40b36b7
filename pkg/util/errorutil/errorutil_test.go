package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationErrors(t *testing.T) {
	assert.NoError(t, NewValidationErrors(nil))

	err := NewValidationErrors([]string{"id is required", "title is required"})
	require.Error(t, err)
	de := ToDomainError(err)
	assert.Equal(t, CodeValidation, de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, []string{"id is required", "title is required"}, de.Details["errors"])
	assert.Equal(t, "id is required; title is required", de.Message)
}

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{name: "domain error passes through", err: NewNotFound("ticket", nil), code: CodeNotFound, status: http.StatusNotFound},
		{name: "wrapped domain error", err: errors.Join(errors.New("ctx"), NewInvalidStatus("Open")), code: CodeInvalidStatus, status: http.StatusBadRequest},
		{name: "fiber error", err: fiber.NewError(http.StatusForbidden, "nope"), code: CodeForbidden, status: http.StatusForbidden},
		{name: "generic error", err: errors.New("boom"), code: CodeInternal, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
		})
	}

	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}

func TestHasCode(t *testing.T) {
	assert.True(t, HasCode(NewInvalidStatus("x"), CodeInvalidStatus))
	assert.False(t, HasCode(NewInvalidStatus("x"), CodeNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
}
