package request

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/nekogravitycat/barber-booking-backend/internal/availability"
)

// RegisterValidators adds the project's custom tags to gin's validator engine.
// It must run before the router handles requests.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("clock", validateClock)
}

// validateClock accepts strict "HH:MM" wall-clock strings.
func validateClock(fl validator.FieldLevel) bool {
	_, err := availability.ParseClock(fl.Field().String())
	return err == nil
}
