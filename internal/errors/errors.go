// Package errors defines the error taxonomy for mpnkit.
//
// Classification and similarity never fail for missing or ambiguous data; those cases
// are represented as empty results and low scores. The errors here cover the remaining
// programmer/config-class failures: malformed numeric attributes, bad configuration,
// and invalid pattern tables.
package errors

import (
	"fmt"
	"time"

	crdb "github.com/cockroachdb/errors"
)

// Wrapping and inspection helpers re-exported so callers import a single package.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Sentinels. Match with Is; the typed errors below unwrap to them.
var (
	// ErrInvalidAttribute marks a value parser fed something that is not a number.
	ErrInvalidAttribute = crdb.New("invalid attribute value")

	// ErrFrozen is returned when a registry is modified after Freeze.
	ErrFrozen = crdb.New("registry is frozen")

	// ErrUnknownType is returned when a configured component type name is not in the taxonomy.
	ErrUnknownType = crdb.New("unknown component type")
)

// ErrorType classifies an error for logging and CLI output.
type ErrorType string

const (
	ErrorTypeInvalidAttribute ErrorType = "invalid_attribute"
	ErrorTypePattern          ErrorType = "pattern"
	ErrorTypeConfig           ErrorType = "config"
	ErrorTypeInternal         ErrorType = "internal"
)

// InvalidAttributeError is raised when a numeric attribute cannot be parsed.
type InvalidAttributeError struct {
	Type       ErrorType
	Attribute  string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewInvalidAttributeError creates an InvalidAttributeError. A nil cause is replaced by
// ErrInvalidAttribute so Is(err, ErrInvalidAttribute) always holds.
func NewInvalidAttributeError(attribute, value string, cause error) *InvalidAttributeError {
	if cause == nil {
		cause = ErrInvalidAttribute
	} else if !crdb.Is(cause, ErrInvalidAttribute) {
		cause = crdb.WithSecondaryError(ErrInvalidAttribute, cause)
	}
	return &InvalidAttributeError{
		Type:       ErrorTypeInvalidAttribute,
		Attribute:  attribute,
		Value:      value,
		Underlying: cause,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %v", e.Attribute, e.Value, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *InvalidAttributeError) Unwrap() error {
	return e.Underlying
}

// PatternError represents a pattern that failed to compile or was rejected by a registry.
type PatternError struct {
	Type          ErrorType
	ComponentType string
	Pattern       string
	Underlying    error
	Timestamp     time.Time
}

// NewPatternError creates a new pattern error
func NewPatternError(componentType, pattern string, err error) *PatternError {
	return &PatternError{
		Type:          ErrorTypePattern,
		ComponentType: componentType,
		Pattern:       pattern,
		Underlying:    err,
		Timestamp:     time.Now(),
	}
}

// Error implements the error interface
func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %q for %s rejected: %v", e.Pattern, e.ComponentType, e.Underlying)
}

// Unwrap returns the underlying error
func (e *PatternError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Type       ErrorType
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Type:       ErrorTypeConfig,
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("config error for field %s: %v", e.Field, e.Underlying)
	}
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// ErrorOrNil returns nil when no errors were collected.
func (e *MultiError) ErrorOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}

// TypeOf reports the ErrorType carried by err, or ErrorTypeInternal.
func TypeOf(err error) ErrorType {
	var attrErr *InvalidAttributeError
	if crdb.As(err, &attrErr) {
		return attrErr.Type
	}
	var patErr *PatternError
	if crdb.As(err, &patErr) {
		return patErr.Type
	}
	var cfgErr *ConfigError
	if crdb.As(err, &cfgErr) {
		return cfgErr.Type
	}
	return ErrorTypeInternal
}
