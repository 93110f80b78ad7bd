package shipengine

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
)

// The Require functions check a single input value and return a
// validation *Error naming field when the check fails. A nil value
// (including a typed nil pointer) always fails with "<field> must be specified.".
// Pointers are followed before the check is applied.

// RequireString checks that v is a string.
func RequireString(field string, v any) error {
	_, err := stringValue(field, v)
	return err
}

// RequireNonEmptyString checks that v is a string with at least one character.
func RequireNonEmptyString(field string, v any) error {
	s, err := stringValue(field, v)
	if err != nil {
		return err
	}
	if s == "" {
		return InvalidFieldValue(field + " cannot be empty.")
	}
	return nil
}

// RequireNonWhitespaceString checks that v is a string containing a non-space character.
func RequireNonWhitespaceString(field string, v any) error {
	s, err := stringValue(field, v)
	if err != nil {
		return err
	}
	if s == "" {
		return InvalidFieldValue(field + " cannot be empty.")
	}
	if strings.TrimSpace(s) == "" {
		return InvalidFieldValue(field + " cannot be all whitespace.")
	}
	return nil
}

// RequireStruct checks that v is a key/value mapping: a map keyed by
// strings or a struct.
func RequireStruct(field string, v any) error {
	rv, err := present(field, v)
	if err != nil {
		return err
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return nil
		}
	case reflect.Struct:
		return nil
	}
	return InvalidFieldValue(field + " must be a map.")
}

// RequireBoolean checks that v is a bool.
func RequireBoolean(field string, v any) error {
	rv, err := present(field, v)
	if err != nil {
		return err
	}
	if rv.Kind() != reflect.Bool {
		return InvalidFieldValue(field + " must be a boolean.")
	}
	return nil
}

// RequireNumber checks that v is numeric.
func RequireNumber(field string, v any) error {
	_, _, err := numberValue(field, v)
	return err
}

// RequireInteger checks that v is numeric with no fractional part.
func RequireInteger(field string, v any) error {
	_, err := integerValue(field, v)
	return err
}

// RequireNonNegativeInteger checks that v is a whole number >= 0.
func RequireNonNegativeInteger(field string, v any) error {
	n, err := integerValue(field, v)
	if err != nil {
		return err
	}
	if n < 0 {
		return InvalidFieldValue(field + " must be zero or greater.")
	}
	return nil
}

// RequirePositiveInteger checks that v is a whole number > 0.
func RequirePositiveInteger(field string, v any) error {
	n, err := integerValue(field, v)
	if err != nil {
		return err
	}
	if n <= 0 {
		return InvalidFieldValue(field + " must be greater than zero.")
	}
	return nil
}

// RequireArray checks that v is a slice or array.
func RequireArray(field string, v any) error {
	_, err := arrayValue(field, v)
	return err
}

// RequireArrayOfStrings checks that v is a slice or array whose elements are all strings.
func RequireArrayOfStrings(field string, v any) error {
	rv, err := arrayValue(field, v)
	if err != nil {
		return err
	}
	if rv.Type().Elem().Kind() == reflect.String {
		return nil
	}
	for i := range rv.Len() {
		elem := rv.Index(i)
		for elem.Kind() == reflect.Interface || elem.Kind() == reflect.Pointer {
			if elem.IsNil() {
				return InvalidFieldValue(field + " must be an array of strings.")
			}
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.String {
			return InvalidFieldValue(field + " must be an array of strings.")
		}
	}
	return nil
}

func present(field string, v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}, RequiredFieldMissing(field)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || ((rv.Kind() == reflect.Map || rv.Kind() == reflect.Slice) && rv.IsNil()) {
		return reflect.Value{}, RequiredFieldMissing(field)
	}
	return rv, nil
}

func stringValue(field string, v any) (string, error) {
	rv, err := present(field, v)
	if err != nil {
		return "", err
	}
	if rv.Kind() != reflect.String {
		return "", InvalidFieldValue(field + " must be a string.")
	}
	return rv.String(), nil
}

// numberValue returns the value as float64 and whether it is integral.
func numberValue(field string, v any) (float64, bool, error) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return 0, false, InvalidFieldValue(field + " must be a number.")
		}
		return f, isWhole(f), nil
	}

	rv, err := present(field, v)
	if err != nil {
		return 0, false, err
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true, nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return 0, false, InvalidFieldValue(field + " must be a number.")
		}
		return f, isWhole(f), nil
	}
	return 0, false, InvalidFieldValue(field + " must be a number.")
}

func integerValue(field string, v any) (float64, error) {
	f, whole, err := numberValue(field, v)
	if err != nil {
		return 0, err
	}
	if !whole {
		return 0, InvalidFieldValue(field + " must be a whole number.")
	}
	return f, nil
}

func isWhole(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

func arrayValue(field string, v any) (reflect.Value, error) {
	rv, err := present(field, v)
	if err != nil {
		return reflect.Value{}, err
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return reflect.Value{}, InvalidFieldValue(field + " must be an array.")
	}
	return rv, nil
}
