package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	UseJSONNames(validate)
}

// UseJSONNames makes v report fields by their json names. The server
// applies it to gin's binding engine too.
func UseJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	return Details(validate.Struct(v))
}

// Details flattens validator errors (including those returned by gin
// binding) into field -> message pairs. It returns nil for other errors.
func Details(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	out := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		out[fieldName(fe)] = message(fe)
	}
	return out
}

func fieldName(fe validator.FieldError) string {
	if fe.Field() != "" {
		return fe.Field()
	}
	return fe.StructField()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "numeric":
		return "must be a number"
	case "gtfield":
		return "must be after " + fe.Param()
	default:
		return "is invalid"
	}
}
