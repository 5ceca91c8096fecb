package embedding

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrProviderInit = errors.New("embedding provider init failed")
	ErrEmbed        = errors.New("embedding failed")
)
