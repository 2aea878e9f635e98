package obfx

import "github.com/hengadev/obfx/internal/obfxerr"

// Sentinel errors of the obfuscation engine. Every failure returned by the
// engine wraps exactly one of these, so callers classify with errors.Is.
var (
	// ErrSourceNotFound indicates the local file or object key does not
	// exist or cannot be read.
	ErrSourceNotFound = obfxerr.ErrSourceNotFound

	// ErrUnsupportedFormat indicates the locator's extension is not one of
	// csv, json, or parquet.
	ErrUnsupportedFormat = obfxerr.ErrUnsupportedFormat

	// ErrInvalidFieldSpec indicates the PII field list is not a JSON array
	// of strings, or the request is missing required parameters.
	ErrInvalidFieldSpec = obfxerr.ErrInvalidFieldSpec

	// ErrMalformedInput indicates the source bytes could not be parsed by
	// the detected format's codec.
	ErrMalformedInput = obfxerr.ErrMalformedInput

	// ErrWriteFailure indicates the overwrite of the source location failed.
	ErrWriteFailure = obfxerr.ErrWriteFailure

	// ErrInvalidConfiguration indicates the engine was constructed or
	// configured incorrectly.
	ErrInvalidConfiguration = obfxerr.ErrInvalidConfiguration
)

// IsCallerError reports whether the error is the caller's fault (4xx).
func IsCallerError(err error) bool { return obfxerr.IsCallerError(err) }

// IsEngineError reports whether the error is an engine-side failure (5xx).
func IsEngineError(err error) bool { return obfxerr.IsEngineError(err) }

// HTTPStatus maps an engine error to the status code of the event-driven
// interface: 2xx on success, 4xx for caller faults, 5xx for engine faults.
func HTTPStatus(err error) int { return obfxerr.HTTPStatus(err) }
