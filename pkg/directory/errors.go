package directory

import "errors"

var (
	// ErrPrimaryNotFound is returned by FindPrimary when no registered
	// node currently reports itself as primary.
	ErrPrimaryNotFound = errors.New("directory: no primary found")

	// ErrQuery wraps any registry query failure.
	ErrQuery = errors.New("directory: query failed")
)
