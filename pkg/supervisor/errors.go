package supervisor

import "errors"

var (
	// ErrDBCon means the MANUAL rediscovery ladder exhausted its
	// attempts without finding a primary; fatal, maps to ERR_DB_CON.
	ErrDBCon = errors.New("supervisor: unable to reach a primary")

	// ErrPromoted means the local node's own is_standby() probe came
	// back false -- this daemon is now the primary and must not
	// continue running its standby monitoring loop.
	ErrPromoted = errors.New("supervisor: local node promoted")

	// ErrFailoverFail wraps election.ErrQuorumLost for callers that
	// only depend on this package's exit-code mapping.
	ErrFailoverFail = errors.New("supervisor: failover failed")

	// ErrDBQuery wraps a hard failure inside the AUTOMATIC branch's
	// election (e.g. election.ErrSelfReportFailed).
	ErrDBQuery = errors.New("supervisor: election query failed")
)
