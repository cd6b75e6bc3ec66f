package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithErrKeepsIdentity(t *testing.T) {
	sentinel := New(http.StatusBadRequest, "invalid schedule")
	cause := errors.New("monday: closing time must not be before opening time")

	err := fmt.Errorf("update: %w", sentinel.WithErr(cause))

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "update: invalid schedule", err.Error())

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestIsRequiresSameCodeAndMessage(t *testing.T) {
	a := New(http.StatusNotFound, "barber not found")
	b := New(http.StatusNotFound, "service not found")
	c := New(http.StatusConflict, "barber not found")

	assert.NotErrorIs(t, a, b)
	assert.NotErrorIs(t, a, c)
	assert.ErrorIs(t, Wrap(nil, http.StatusNotFound, "barber not found"), a)
}
