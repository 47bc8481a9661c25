package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phonePattern accepts an optional leading +, then 8 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// RegisterCustomValidators installs domain validation rules on gin's
// binding engine. Call once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// FieldErrors converts a binding error into a field -> message map for
// 400 responses. Non-validation errors (malformed JSON, wrong types)
// collapse into a single "body" entry.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = "Invalid request body."
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if _, seen := out[field]; !seen {
			out[field] = message(field, fe.Tag())
		}
	}
	return out
}

func message(field, tag string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "phone":
		return "Enter a valid phone number."
	case "min":
		return "Value is too short or too small."
	case "max":
		return "Value is too long or too large."
	case "gt", "gte":
		return "Value must be positive."
	case "url":
		return "Enter a valid URL."
	case "oneof":
		return "Value is not one of the allowed choices."
	default:
		return "Invalid value for " + field + "."
	}
}
