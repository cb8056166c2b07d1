package dbsession

import "errors"

var (
	// ErrConnectFailed is returned by Open when a required session
	// cannot be established; callers exit fatally on this.
	ErrConnectFailed = errors.New("dbsession: connect failed")

	// ErrQuery wraps any failure from exec/send_async; soft error, the
	// caller aborts only the current tick.
	ErrQuery = errors.New("dbsession: query failed")

	// ErrClosed is returned by operations attempted on a sentinel
	// closed session (the non-required Open failure path).
	ErrClosed = errors.New("dbsession: session is closed")

	// ErrAsyncInFlight is returned by SendAsync when a previous async
	// result has not yet been drained or cancelled.
	ErrAsyncInFlight = errors.New("dbsession: async query already in flight")
)
