package errors

import "errors"

// Sentinel errors wrapped by BackendError BuildErrors, so callers can use
// errors.Is against a stable value instead of string-matching Cause.
var (
	// ErrBackendUnavailable indicates no CAD kernel backend could be
	// constructed and the stub backend rejected the operation.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrDegenerateGeometry indicates a geometric operation was asked to
	// act on a degenerate input (e.g. coplanar hull points).
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)
