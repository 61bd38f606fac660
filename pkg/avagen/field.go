package avagen

import (
	"reflect"

	"github.com/avagen/avagen/pkg/errors"
)

// Validator checks a single field value during generator construction.
// Validators run in declaration order and short-circuit on first failure.
type Validator interface {
	Validate(field string, value any) error
}

// TypeValidator accepts values whose reflect kind is in the allowed set.
type TypeValidator struct {
	Kinds []reflect.Kind
}

// Validate implements Validator.
func (v TypeValidator) Validate(field string, value any) error {
	kind := reflect.ValueOf(value).Kind()
	for _, k := range v.Kinds {
		if kind == k {
			return nil
		}
	}
	return errors.New(errors.ErrCodeValidation,
		"field %q: unexpected type %T", field, value)
}

// MinValueValidator enforces an inclusive numeric lower bound.
type MinValueValidator struct {
	Min int
}

// Validate implements Validator.
func (v MinValueValidator) Validate(field string, value any) error {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() < int64(v.Min) {
			return errors.New(errors.ErrCodeValidation,
				"field %q: value %d is below minimum %d", field, rv.Int(), v.Min)
		}
		return nil
	default:
		return errors.New(errors.ErrCodeValidation,
			"field %q: expected an integer, got %T", field, value)
	}
}

// ColorValidator accepts color specifications the imaging stack understands:
// #rrggbb hex strings or named SVG 1.1 colors.
type ColorValidator struct{}

// Validate implements Validator.
func (v ColorValidator) Validate(field string, value any) error {
	spec, ok := value.(string)
	if !ok {
		return errors.New(errors.ErrCodeValidation,
			"field %q: expected a color string, got %T", field, value)
	}
	if err := errors.ValidateColorSpec(spec); err != nil {
		return errors.Wrap(errors.ErrCodeValidation, err,
			"field %q: invalid color", field)
	}
	return nil
}

// Field is a named, validated, optionally-defaulted configuration attribute.
// A nil value resolves to Default when one is declared; a nil value on a
// Required field is an error. Non-nil values run through Validators in order.
type Field struct {
	Name       string
	Required   bool
	Default    any
	Validators []Validator
}

// Resolve applies default and validation rules to a raw value.
// Defaults are returned verbatim without re-validation.
func (f Field) Resolve(value any) (any, error) {
	if value == nil {
		if f.Default != nil {
			return f.Default, nil
		}
		if f.Required {
			return nil, errors.New(errors.ErrCodeRequiredField,
				"field %q is required", f.Name)
		}
		return nil, nil
	}
	for _, v := range f.Validators {
		if err := v.Validate(f.Name, value); err != nil {
			return nil, err
		}
	}
	return value, nil
}

// Kind groups shared by field declarations.
var (
	intKinds    = []reflect.Kind{reflect.Int, reflect.Int32, reflect.Int64}
	stringKinds = []reflect.Kind{reflect.String}
	sliceKinds  = []reflect.Kind{reflect.Slice, reflect.Array}
)

// Conversion helpers mapping Go zero values to "unset" for Field.Resolve.
// Pointer-typed config fields distinguish explicit zero from unset.

func intOrNil(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func ptrOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func strOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
