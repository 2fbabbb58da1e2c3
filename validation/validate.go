// Package validation wraps go-playground/validator for request bodies,
// converting tag violations into client-facing AppErrors.
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/skillsenselab/authd/errors"
	"github.com/skillsenselab/authd/util"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report field names as they appear on the wire.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// "safe" rejects values carrying injection-style payloads.
		_ = validate.RegisterValidation("safe", func(fl validator.FieldLevel) bool {
			return util.IsSafeString(fl.Field().String())
		})
	})
	return validate
}

// Validate validates a struct using `validate:"..."` tags and returns an
// INVALID_INPUT AppError describing every violated field.
func Validate(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed")
	}

	messages := make([]string, 0, len(verrs))
	fields := make(map[string]any, len(verrs))
	for _, e := range verrs {
		msg := describe(e)
		messages = append(messages, e.Field()+" "+msg)
		fields[e.Field()] = msg
	}

	return errors.Validation(strings.Join(messages, "; ")).WithDetail("fields", fields)
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "safe":
		return "contains disallowed characters"
	default:
		return "is invalid"
	}
}
