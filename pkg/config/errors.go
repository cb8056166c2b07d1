package config

import "errors"

// Load/parse errors
var (
	ErrBadConfig    = errors.New("invalid configuration")
	ErrFileNotFound = errors.New("config file not found")
	ErrMissingNode  = errors.New("config: node is required")
)

// CLI errors
var (
	ErrHelpRequested    = errors.New("help requested")
	ErrVersionRequested = errors.New("version requested")
)
