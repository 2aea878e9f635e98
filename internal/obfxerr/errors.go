// Package obfxerr defines the obfuscation error taxonomy shared by the root
// package, the codecs, and the storage providers.
package obfxerr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Caller-fault errors (surface as 4xx)
	ErrSourceNotFound       = errors.New("source not found")
	ErrUnsupportedFormat    = errors.New("unsupported file format")
	ErrInvalidFieldSpec     = errors.New("invalid PII field specification")
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// Engine-fault errors (surface as 5xx)
	ErrMalformedInput = errors.New("malformed input")
	ErrWriteFailure   = errors.New("write failure")
)

func NewSourceNotFoundError(location string) error {
	return fmt.Errorf("%w: %s", ErrSourceNotFound, location)
}

func NewUnsupportedFormatError(extension string) error {
	if extension == "" {
		return fmt.Errorf("%w: no extension found", ErrUnsupportedFormat)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, extension)
}

func NewInvalidFieldSpecError(details string) error {
	return fmt.Errorf("%w: %s", ErrInvalidFieldSpec, details)
}

func NewMalformedInputError(format string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformedInput, format, cause)
}

func NewWriteFailureError(location string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrWriteFailure, location, cause)
}

// IsCallerError reports whether the error is the caller's fault.
func IsCallerError(err error) bool {
	return errors.Is(err, ErrSourceNotFound) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrInvalidFieldSpec) ||
		errors.Is(err, ErrInvalidConfiguration)
}

// IsEngineError reports whether the error is an engine-side failure.
func IsEngineError(err error) bool {
	return errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrWriteFailure)
}

// HTTPStatus maps an error to the response status used by the event-driven
// entry point. Unknown errors are treated as engine faults.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrSourceNotFound):
		return http.StatusNotFound
	case IsCallerError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
