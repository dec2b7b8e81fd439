// Package validation checks request DTOs against their `validate` tags.
package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so clients see the fields they sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldError describes one violated constraint.
type FieldError struct {
	Field     string `json:"field"`
	Rule      string `json:"rule"`
	Param     string `json:"param,omitempty"`
	ValueType string `json:"value_type"`
}

// Error is returned when a value fails validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		rule := f.Rule
		if f.Param != "" {
			rule += "=" + f.Param
		}
		parts[i] = f.Field + ": " + rule
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Struct validates v, returning *Error listing every failed rule.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = FieldError{
			Field:     fe.Field(),
			Rule:      fe.Tag(),
			Param:     fe.Param(),
			ValueType: valueType(fe),
		}
	}
	return &Error{Fields: fields}
}

// FromDecode turns a JSON type mismatch into an *Error naming the field, the
// expected Go type and the JSON value class that was sent. Any other decode
// failure yields ok == false.
func FromDecode(err error) (*Error, bool) {
	var te *json.UnmarshalTypeError
	if !errors.As(err, &te) {
		return nil, false
	}
	field := te.Field
	if field == "" {
		field = "body"
	}
	return &Error{Fields: []FieldError{{
		Field:     field,
		Rule:      "type",
		Param:     te.Type.String(),
		ValueType: te.Value,
	}}}, true
}

func valueType(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "missing"
	}
	return fe.Kind().String()
}
