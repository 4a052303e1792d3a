package dupfind

import "errors"

// Sentinel errors for package dupfind.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// ErrRegistryFrozen is returned when a file is registered after the walk finished.
	ErrRegistryFrozen = errors.New("registry is frozen")
)
