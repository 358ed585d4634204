package errors

import (
	"fmt"
	"strings"
)

// Code classifies a processing failure.
type Code string

const (
	CodeConfigInvalid Code = "CONFIG_INVALID"
	CodeLoadFailed    Code = "LOAD_FAILED"
	CodeSchemaInvalid Code = "SCHEMA_INVALID"
	CodeWriteFailed   Code = "WRITE_FAILED"
)

// ProcessingError is a structured error carried through the pipeline.
// Load and schema errors are fatal to the run; write errors are collected
// per group and reported together.
type ProcessingError struct {
	Code    Code
	Message string
	Details interface{}
	Err     error
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// New creates a ProcessingError with the given code and message.
func New(code Code, message string) *ProcessingError {
	return &ProcessingError{Code: code, Message: message}
}

// ConfigError wraps a configuration failure.
func ConfigError(err error) *ProcessingError {
	return &ProcessingError{
		Code:    CodeConfigInvalid,
		Message: "invalid configuration",
		Err:     err,
	}
}

// LoadError wraps a workbook load failure, naming the file and sheet so
// the message identifies what was missing.
func LoadError(path, sheet string, err error) *ProcessingError {
	return &ProcessingError{
		Code:    CodeLoadFailed,
		Message: fmt.Sprintf("failed to load sheet %q from %s", sheet, path),
		Details: map[string]string{"path": path, "sheet": sheet},
		Err:     err,
	}
}

// SchemaError reports required columns absent from the loaded sheet.
func SchemaError(missing []string) *ProcessingError {
	return &ProcessingError{
		Code:    CodeSchemaInvalid,
		Message: fmt.Sprintf("required columns missing: %s", strings.Join(missing, ", ")),
		Details: missing,
	}
}

// WriteError wraps a failure to write one group's CSV file.
func WriteError(group, path string, err error) *ProcessingError {
	return &ProcessingError{
		Code:    CodeWriteFailed,
		Message: fmt.Sprintf("failed to write group %q to %s", group, path),
		Details: map[string]string{"group": group, "path": path},
		Err:     err,
	}
}

// IsCode reports whether err is a ProcessingError with the given code.
func IsCode(err error, code Code) bool {
	pe, ok := err.(*ProcessingError)
	return ok && pe.Code == code
}

// GroupFailure records one group export that went wrong.
type GroupFailure struct {
	Group string
	Path  string
	Err   error
}

// ExportFailures aggregates per-group write errors. One group failing does
// not abort the others; the caller reports every failure at the end of the
// run.
type ExportFailures struct {
	Failures []GroupFailure
}

// Add records a failed group export.
func (e *ExportFailures) Add(group, path string, err error) {
	e.Failures = append(e.Failures, GroupFailure{Group: group, Path: path, Err: err})
}

// Empty reports whether every group exported cleanly.
func (e *ExportFailures) Empty() bool {
	return len(e.Failures) == 0
}

// Error lists every failed group, one line per group.
func (e *ExportFailures) Error() string {
	if e.Empty() {
		return "no export failures"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d group export(s) failed:", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "\n  group %q: %v", f.Group, f.Err)
	}
	return b.String()
}

// Unwrap exposes the underlying errors for errors.Is/As.
func (e *ExportFailures) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}
