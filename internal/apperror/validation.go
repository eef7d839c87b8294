package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FromBinding converts a gin binding failure into a VALIDATION_FAILED error
// with a field -> message map.
func FromBinding(err error) *Error {
	details := map[string]string{}

	var verrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			details[jsonFieldName(fe)] = describe(fe)
		}
	case errors.As(err, &typeErr):
		details[typeErr.Field] = fmt.Sprintf("must be of type %s", typeErr.Type.String())
	case errors.As(err, &syntaxErr):
		details["body"] = "malformed JSON"
	default:
		details["body"] = err.Error()
	}

	return ErrValidation.WithDetails(details)
}

func jsonFieldName(fe validator.FieldError) string {
	// Namespace looks like "CreateOrderRequest.items[0].quantity" once
	// RegisterJSONTagNames is installed; drop the struct name.
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

// RegisterJSONTagNames makes validation errors report json field names.
func RegisterJSONTagNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = fld.Tag.Get("form")
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "dive":
		return "invalid element"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
