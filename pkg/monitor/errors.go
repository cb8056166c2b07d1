package monitor

import "errors"

// ErrTickAborted wraps any failure inside a single monitoring tick.
// Per spec.md §4.4, errors in any step abort the tick and are retried
// on the next schedule; they never kill the daemon.
var ErrTickAborted = errors.New("monitor: tick aborted")
