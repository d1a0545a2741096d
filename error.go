// FILE: krail-config/error.go
package config

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below match these through errors.Is.
var (
	// ErrConfigurationLoad is returned when a required source cannot be loaded
	ErrConfigurationLoad = errors.New("configuration load failed")
	// ErrUnsupportedFileType is returned when a file extension has no known format
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrPropertyNotFound is returned when a key is absent from every source
	ErrPropertyNotFound = errors.New("property not found")
	// ErrPropertyTypeNotKnown is returned when no coercion rule exists for a type
	ErrPropertyTypeNotKnown = errors.New("property type not known")
	// ErrDuplicateIndex is returned when a priority index is registered twice
	ErrDuplicateIndex = errors.New("duplicate source index")
	// ErrRegistrySealed is returned when registering after the service started
	ErrRegistrySealed = errors.New("source registry is sealed")
	// ErrSourceSkipped marks an optional source that failed to load
	ErrSourceSkipped = errors.New("optional source skipped")
	// ErrCoercion is returned when a raw value cannot be converted
	ErrCoercion = errors.New("value coercion failed")
)

// LoadError reports a required source that could not be read or parsed.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("unable to load application configuration file '%s': %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error { return e.Cause }

func (e *LoadError) Is(target error) bool { return target == ErrConfigurationLoad }

// UnsupportedFileTypeError reports a filename whose extension maps to no format.
type UnsupportedFileTypeError struct {
	Filename string
	Ext      string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("file %s is not a supported file type (extension %q)", e.Filename, e.Ext)
}

func (e *UnsupportedFileTypeError) Is(target error) bool { return target == ErrUnsupportedFileType }

// PropertyNotFoundError reports a key that could not be resolved.
// Cause is set when resolution failed upstream (load or coercion failure).
type PropertyNotFoundError struct {
	Key   string
	Cause error
}

func (e *PropertyNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("property not found: %s: %v", e.Key, e.Cause)
	}
	return fmt.Sprintf("property not found: %s", e.Key)
}

func (e *PropertyNotFoundError) Unwrap() error { return e.Cause }

func (e *PropertyNotFoundError) Is(target error) bool { return target == ErrPropertyNotFound }

// PropertyTypeNotKnownError reports a requested type with no coercion rule.
type PropertyTypeNotKnownError struct {
	Key  string
	Type string
}

func (e *PropertyTypeNotKnownError) Error() string {
	return fmt.Sprintf("property type not known for %s: %s", e.Key, e.Type)
}

func (e *PropertyTypeNotKnownError) Is(target error) bool { return target == ErrPropertyTypeNotKnown }

// CoercionError reports a present value that cannot be converted to the requested kind.
type CoercionError struct {
	Key   string
	Kind  Kind
	Value any
	Cause error
}

func (e *CoercionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot convert %T %v to %s for path %s: %v", e.Value, e.Value, e.Kind, e.Key, e.Cause)
	}
	return fmt.Sprintf("cannot convert %T %v to %s for path %s", e.Value, e.Value, e.Kind, e.Key)
}

func (e *CoercionError) Unwrap() error { return e.Cause }

func (e *CoercionError) Is(target error) bool { return target == ErrCoercion }
