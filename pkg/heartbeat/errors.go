package heartbeat

import "errors"

var (
	// ErrAlreadyRunning means Start was called twice without an
	// intervening Stop.
	ErrAlreadyRunning = errors.New("heartbeat: already running")
)
