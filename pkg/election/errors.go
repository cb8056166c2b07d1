package election

import "errors"

var (
	// ErrSelfReportFailed means the local node could not read or
	// publish its own LSN; per spec.md §4.6 step 1, a crashed reporter
	// must not participate and the daemon exits ERR_DB_QUERY.
	ErrSelfReportFailed = errors.New("election: self-report failed")

	// ErrQuorumLost means fewer than total/2 nodes (integer division,
	// self counted in both) were reachable; the daemon exits with a distinct
	// failover-failure code and no promote/follow command runs.
	ErrQuorumLost = errors.New("election: quorum lost")

	// ErrEnumeratePeersFailed means the Cluster Directory could not be
	// queried for the candidate set at all.
	ErrEnumeratePeersFailed = errors.New("election: enumerating peers failed")

	// ErrReattachFailed means the local session could not be reopened
	// after the election concluded.
	ErrReattachFailed = errors.New("election: re-attaching local session failed")
)
