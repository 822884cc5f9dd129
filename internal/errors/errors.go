package errors

import "errors"

// Code identifies a structured error type used across segbox.
type Code string

const (
	// Generic codes
	CodeUnknown            Code = "unknown"
	CodeConfigurationError Code = "configuration_error"

	// Value configuration
	CodeDuplicateValue Code = "duplicate_value"
	CodeConfigLoad     Code = "config_load_failed"
	CodeConfigFetch    Code = "config_fetch_failed"
	CodeConfigDecode   Code = "config_decode_failed"

	// Widget registration
	CodeMissingIdentifier  Code = "missing_identifier"
	CodeInvalidElementKind Code = "invalid_element_kind"

	// Pre-population
	CodeUnresolvableToken Code = "unresolvable_token"

	// Persistence
	CodeStore Code = "store_failed"

	// Release check
	CodeReleaseCheck Code = "release_check_failed"
)

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface. The wrapped cause is appended to the
// message when both are present.
func (e Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
