package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// TagRegexp validates that a string field holds a compilable regular expression.
// Empty strings pass; combine with "required" when a pattern is mandatory.
const TagRegexp = "regexp"

// New creates a new validator instance with the custom tags registered.
func New() *Validate {
	v := validator.New()
	_ = v.RegisterValidation(TagRegexp, validateRegexp)
	return v
}

func validateRegexp(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := regexp.Compile(value)
	return err == nil
}
