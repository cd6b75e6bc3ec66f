package request

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)

	got, err := ParseDate("2026-10-19", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, loc), got)

	_, err = ParseDate("19/10/2026", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestValidateClock(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("clock", validateClock))

	type hours struct {
		Start string `validate:"clock"`
	}

	assert.NoError(t, v.Struct(hours{Start: "09:30"}))
	assert.Error(t, v.Struct(hours{Start: "9:30"}))
	assert.Error(t, v.Struct(hours{Start: "24:00"}))
}
