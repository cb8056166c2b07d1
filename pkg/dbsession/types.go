package dbsession

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
)

// Status is a session's coarse health as seen by its owner (the Primary
// Supervisor or the orchestrator's local-node session holder).
type Status int

const (
	StatusOK Status = iota
	StatusBroken
)

func (s Status) String() string {
	if s == StatusOK {
		return "OK"
	}
	return "BROKEN"
}

// asyncResult is what SendAsync delivers on its single-slot channel:
// the error from the fire-and-forget Exec, or nil on success.
type asyncResult struct {
	err error
}

// Session is a single database connection plus the bookkeeping needed
// to run one asynchronous query at a time and cancel it before a tick
// that needs a synchronous query begins. It wraps a single *pgx.Conn,
// never a pool: §3's Ownership invariant caps a daemon at two live
// sessions (local + primary), so a dedicated connection per role
// matches the access pattern better than sharing a pool meant for many
// concurrent callers.
type Session struct {
	conninfo string
	conn     *pgx.Conn

	mu       sync.Mutex
	status   Status
	cancel   context.CancelFunc
	pending  chan asyncResult
	required bool
}
