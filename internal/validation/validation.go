package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "reviewbox/internal/errors"
)

// validate is shared by the HTTP layer and the action pipelines so every
// mutation payload passes through the same gate.
var validate = validator.New()

// Check validates a payload against its struct tags. On failure it returns
// an action error describing the first violated constraint.
func Check(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	if violations, ok := err.(validator.ValidationErrors); ok && len(violations) > 0 {
		return apperrors.NewActionError("Invalid input: " + describe(violations[0]))
	}
	return apperrors.NewActionError("Invalid input: " + err.Error())
}

// Struct exposes raw validation for the echo.Validator hook.
func Struct(payload interface{}) error {
	return validate.Struct(payload)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", fe.Field())
	default:
		return fmt.Sprintf("%s failed the %s constraint", fe.Field(), fe.Tag())
	}
}
