package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/escola-api/pkg/errors"
)

// New returns a validator reporting JSON field names.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Messages renders human readable messages for validator failures.
func Messages(err error) []string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, formatFieldError(fe))
	}
	return out
}

// Wrap converts err into a validation error carrying per-field details.
func Wrap(err error, message string) *appErrors.Error {
	wrapped := appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	wrapped.Details = Messages(err)
	return wrapped
}

// Field reports a single invalid field outside of struct validation.
func Field(field, message string) *appErrors.Error {
	err := appErrors.Clone(appErrors.ErrValidation, "dados inválidos")
	err.Details = []string{field + " " + message}
	return err
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " é obrigatório"
	case "min":
		return e.Field() + " deve ter no mínimo " + e.Param()
	case "max":
		return e.Field() + " deve ter no máximo " + e.Param()
	case "gt":
		return e.Field() + " deve ser maior que " + e.Param()
	case "email":
		return e.Field() + " deve ser um e-mail válido"
	case "oneof":
		return e.Field() + " deve ser um de: " + e.Param()
	default:
		return e.Field() + " inválido: " + e.Tag()
	}
}
