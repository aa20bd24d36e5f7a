// Package validator provides validation infrastructure for the gateway.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"whatsapp_gateway/platform/apperr"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single failed rule, keyed by the JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator wraps the go-playground validator for structured validation.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance. Field names in errors follow the
// struct's json tags.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Struct validates a struct based on validation tags. Rule failures come back
// as an *apperr.Error of KindValidation with []FieldError details.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	return apperr.Validation("validation failed").WithDetails(translate(validationErrs))
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

func translate(errs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, err := range errs {
		var message string

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must have at least %s items or characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must have at most %s items or characters", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("%s failed %s", err.Field(), err.Tag())
		}

		out = append(out, FieldError{Field: err.Field(), Message: message})
	}
	return out
}
