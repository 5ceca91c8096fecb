package grammar

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrUnavailable marks a checker backend that could not be reached or
	// answered with a malformed response.
	ErrUnavailable = errors.New("grammar checker unavailable")
)
