package rubric

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidRubric marks a rubric that cannot produce a meaningful
	// normalized score. It is the only error allowed to abort scoring.
	ErrInvalidRubric = errors.New("invalid rubric")
)
