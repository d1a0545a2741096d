// FILE: krail-config/type.go
package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// Kind is a target type for value coercion. The set is closed.
type Kind int

const (
	KindString  Kind = iota // string
	KindInt                 // int
	KindBool                // bool
	KindFloat64             // float64
	KindFloat32             // float32
	KindStrings             // []string
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindFloat64:
		return "float64"
	case KindFloat32:
		return "float32"
	case KindStrings:
		return "[]string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) valid() bool {
	return k >= KindString && k <= KindStrings
}

// kindOf infers the coercion kind from a default value's dynamic type.
func kindOf(v any) (Kind, bool) {
	switch v.(type) {
	case string:
		return KindString, true
	case int:
		return KindInt, true
	case bool:
		return KindBool, true
	case float64:
		return KindFloat64, true
	case float32:
		return KindFloat32, true
	case []string:
		return KindStrings, true
	default:
		return 0, false
	}
}

// Value resolves key in the merged view and coerces it to kind.
// An absent key, or a view that cannot be loaded, gives a *PropertyNotFoundError.
// A kind outside the closed set gives a *PropertyTypeNotKnownError and a
// value that does not convert gives a *CoercionError.
func (c *Config) Value(kind Kind, key string) (any, error) {
	view, err := c.snapshot()
	if err != nil {
		return nil, &PropertyNotFoundError{Key: key, Cause: err}
	}
	if !kind.valid() {
		return nil, &PropertyTypeNotKnownError{Key: key, Type: kind.String()}
	}

	raw, _, found := view.Lookup(key)
	if !found || raw == nil {
		return nil, &PropertyNotFoundError{Key: key}
	}
	return coerce(key, kind, raw)
}

// ValueOr resolves key like Value, inferring the kind from def.
// def is returned when the key is absent. A present value that cannot be
// coerced gives a *PropertyNotFoundError wrapping the *CoercionError; def is
// not substituted in that case.
func (c *Config) ValueOr(key string, def any) (any, error) {
	view, err := c.snapshot()
	if err != nil {
		return nil, &PropertyNotFoundError{Key: key, Cause: err}
	}

	kind, ok := kindOf(def)
	if !ok {
		return nil, &PropertyTypeNotKnownError{Key: key, Type: fmt.Sprintf("%T", def)}
	}

	raw, _, found := view.Lookup(key)
	if !found || raw == nil {
		return def, nil
	}

	value, err := coerce(key, kind, raw)
	if err != nil {
		return nil, &PropertyNotFoundError{Key: key, Cause: err}
	}
	return value, nil
}

// String retrieves a string configuration value using the path.
func (c *Config) String(path string) (string, error) {
	return Get[string](c, path)
}

// Int retrieves an int configuration value using the path.
func (c *Config) Int(path string) (int, error) {
	return Get[int](c, path)
}

// Bool retrieves a boolean configuration value using the path.
func (c *Config) Bool(path string) (bool, error) {
	return Get[bool](c, path)
}

// Float64 retrieves a float64 configuration value using the path.
func (c *Config) Float64(path string) (float64, error) {
	return Get[float64](c, path)
}

// Float32 retrieves a float32 configuration value using the path.
func (c *Config) Float32(path string) (float32, error) {
	return Get[float32](c, path)
}

// Strings retrieves a sequence configuration value as strings.
// A scalar value is returned as a one-element list.
func (c *Config) Strings(path string) ([]string, error) {
	return Get[[]string](c, path)
}

// Coerce converts raw to kind using the same rules as the accessors.
func Coerce(kind Kind, raw any) (any, error) {
	if !kind.valid() {
		return nil, &PropertyTypeNotKnownError{Type: kind.String()}
	}
	if raw == nil {
		return nil, &CoercionError{Kind: kind, Cause: fmt.Errorf("nil value")}
	}
	return coerce("", kind, raw)
}

// coerce converts raw to kind. kind must be valid.
func coerce(key string, kind Kind, raw any) (any, error) {
	var (
		value any
		err   error
	)

	switch kind {
	case KindString:
		value, err = toString(raw)
	case KindInt:
		value, err = toInt(raw)
	case KindBool:
		value, err = toBool(raw)
	case KindFloat64:
		value, err = cast.ToFloat64E(first(raw))
	case KindFloat32:
		value, err = cast.ToFloat32E(first(raw))
	case KindStrings:
		value, err = toStrings(raw)
	default:
		return nil, &PropertyTypeNotKnownError{Key: key, Type: kind.String()}
	}

	if err != nil {
		return nil, &CoercionError{Key: key, Kind: kind, Value: raw, Cause: err}
	}
	return value, nil
}

// first returns the first element of a sequence, or v itself for scalars.
// Scalar accessors read the first element of a sequence value.
func first(v any) any {
	switch s := v.(type) {
	case []any:
		if len(s) > 0 {
			return scalar(s[0])
		}
	case []string:
		if len(s) > 0 {
			return s[0]
		}
	}
	return scalar(v)
}

// scalar reduces decoder-specific number types to their literal text.
func scalar(v any) any {
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	return v
}

func toString(raw any) (string, error) {
	v := first(raw)
	switch v.(type) {
	case []any, []string:
		return "", fmt.Errorf("empty sequence")
	}
	return cast.ToStringE(v)
}

func toInt(raw any) (int, error) {
	switch v := first(raw).(type) {
	case string:
		// Base 10 only; a leading zero is not an octal prefix
		s := strings.TrimSpace(v)
		if i, err := strconv.ParseInt(s, 10, 0); err == nil {
			return int(i), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to int", v)
		}
		return wholeFloatToInt(f)
	case float64:
		return wholeFloatToInt(v)
	case float32:
		return wholeFloatToInt(float64(v))
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, fmt.Errorf("%d overflows int", v)
		}
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", v)
		}
		return int(v), nil
	case uint:
		if uint64(v) > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", v)
		}
		return int(v), nil
	case uint32:
		if uint64(v) > math.MaxInt {
			return 0, fmt.Errorf("%d overflows int", v)
		}
		return int(v), nil
	default:
		return cast.ToIntE(v)
	}
}

func wholeFloatToInt(f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%v is not a whole number", f)
	}
	if f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, fmt.Errorf("%v overflows int", f)
	}
	return int(f), nil
}

func toBool(raw any) (bool, error) {
	v := first(raw)
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "y", "on":
			return true, nil
		case "no", "n", "off":
			return false, nil
		}
		return cast.ToBoolE(strings.TrimSpace(s))
	}
	return cast.ToBoolE(v)
}

func toStrings(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, elem := range v {
			s, err := cast.ToStringE(scalar(elem))
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := cast.ToStringE(scalar(v))
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}
