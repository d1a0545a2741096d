// FILE: krail-config/generic.go
package config

import "fmt"

// Get resolves key and coerces it to T. T must be one of string, int, bool,
// float64, float32 or []string; any other T gives a *PropertyTypeNotKnownError.
//
//	port, err := config.Get[int](cfg, "server.port")
func Get[T any](c *Config, key string) (T, error) {
	var zero T
	kind, ok := kindOf(any(zero))
	if !ok {
		// Resolve load errors before reporting the type
		if _, err := c.snapshot(); err != nil {
			return zero, &PropertyNotFoundError{Key: key, Cause: err}
		}
		return zero, &PropertyTypeNotKnownError{Key: key, Type: fmt.Sprintf("%T", zero)}
	}

	value, err := c.Value(kind, key)
	if err != nil {
		return zero, err
	}
	return value.(T), nil
}

// GetOr resolves key and coerces it to T, returning def when key is absent.
func GetOr[T any](c *Config, key string, def T) (T, error) {
	value, err := c.ValueOr(key, def)
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}

// StringOr retrieves a string value, or def if path is absent.
func (c *Config) StringOr(path, def string) (string, error) {
	return GetOr(c, path, def)
}

// IntOr retrieves an int value, or def if path is absent.
func (c *Config) IntOr(path string, def int) (int, error) {
	return GetOr(c, path, def)
}

// BoolOr retrieves a boolean value, or def if path is absent.
func (c *Config) BoolOr(path string, def bool) (bool, error) {
	return GetOr(c, path, def)
}

// Float64Or retrieves a float64 value, or def if path is absent.
func (c *Config) Float64Or(path string, def float64) (float64, error) {
	return GetOr(c, path, def)
}

// Float32Or retrieves a float32 value, or def if path is absent.
func (c *Config) Float32Or(path string, def float32) (float32, error) {
	return GetOr(c, path, def)
}

// StringsOr retrieves a sequence value as strings, or def if path is absent.
func (c *Config) StringsOr(path string, def []string) ([]string, error) {
	return GetOr(c, path, def)
}
