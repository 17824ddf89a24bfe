// Package domain defines core types, interfaces, and errors for the dashboard.
package domain

import (
	"fmt"
	"strings"
)

// NotFoundError indicates a referenced input file or resource does not exist.
type NotFoundError struct {
	Path    string
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// LoadError indicates a file exists but could not be read or parsed as
// tabular data. Err holds the underlying cause.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError indicates required columns are missing from a dataset.
// Missing preserves the order of the required-columns list.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("missing required columns: [%s]", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: missing required columns: [%s]", e.Source, strings.Join(e.Missing, ", "))
}

// DateParseError indicates an observation date could not be interpreted as a
// calendar date. Line is the 1-based line of the offending row in the source.
type DateParseError struct {
	Line  int
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse observation_date %q", e.Line, e.Value)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// ValidationError indicates invalid input from a caller (query parameters,
// flags), as opposed to invalid data on disk.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError for a path with a formatted message.
func ErrNotFound(path, format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// ErrLoad creates a LoadError wrapping cause.
func ErrLoad(path string, cause error) *LoadError {
	return &LoadError{Path: path, Err: cause}
}

// ErrSchema creates a SchemaError listing the missing columns.
func ErrSchema(source string, missing []string) *SchemaError {
	return &SchemaError{Source: source, Missing: missing}
}

// ErrDateParse creates a DateParseError for the given line and raw value.
func ErrDateParse(line int, value string, cause error) *DateParseError {
	return &DateParseError{Line: line, Value: value, Err: cause}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
