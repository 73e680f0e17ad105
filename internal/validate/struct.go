package validate

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		// report json names so errors line up with the request body
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return v
}

// Struct runs the `validate` struct tags of s and converts failures into Errs.
func Struct(s any) Errs {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var out Errs
	fes, ok := err.(validator.ValidationErrors)
	if !ok {
		out.Set("non_field_errors", err.Error())
		return out
	}
	for _, fe := range fes {
		out.Set(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return `"` + toString(fe.Value()) + `" is not a valid choice.`
	case "min", "gte":
		if isString {
			return "Ensure this field has at least " + fe.Param() + " characters."
		}
		return "Ensure this value is greater than or equal to " + fe.Param() + "."
	case "max", "lte":
		if isString {
			return "Ensure this field has no more than " + fe.Param() + " characters."
		}
		return "Ensure this value is less than or equal to " + fe.Param() + "."
	case "uuid":
		return "Must be a valid UUID."
	case "e164", "phone":
		return "Enter a valid phone number."
	}
	return "Invalid value."
}

func toString(v any) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return ""
}
