package dto

import (
	"encoding/json"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/escola-api/pkg/validation"
)

// Optional records whether a JSON field was present in a payload, which lets
// partial updates tell an omitted key from an explicit null.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON marks the field as present, including for null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

// ValidationValue exposes the wrapped value to the validator. Absent fields
// validate as nil so omitempty rules skip them.
func (o Optional[T]) ValidationValue() interface{} {
	if !o.Set {
		return nil
	}
	return o.Value
}

type validationValuer interface {
	ValidationValue() interface{}
}

// NewValidator returns the shared validator with Optional field support.
func NewValidator() *validator.Validate {
	v := validation.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if valuer, ok := field.Interface().(validationValuer); ok {
			return valuer.ValidationValue()
		}
		return nil
	}, Optional[*string]{}, Optional[*int]{}, Optional[*int64]{})
	return v
}
