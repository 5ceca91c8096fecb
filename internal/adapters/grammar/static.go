package grammar

import "context"

// Static is a deterministic Checker returning a fixed result or error.
// It backs offline deployments and reproducible tests.
type Static struct {
	Result Result
	Err    error
}

// NewStatic creates a checker that always reports the given result.
func NewStatic(result Result) *Static {
	return &Static{Result: result}
}

// NewStaticError creates a checker that always fails with err.
func NewStaticError(err error) *Static {
	return &Static{Err: err}
}

// Check returns the configured result or error.
func (s *Static) Check(_ context.Context, _ string) (Result, error) {
	if s.Err != nil {
		return Result{}, s.Err
	}
	return s.Result, nil
}
