package election

import "github.com/repmgr-go/repmgrd/pkg/lsn"

// HasQuorum implements spec.md §9's exact integer-truncation semantics:
// visible must be strictly less than total/2 to fail. For total=3 the
// threshold is 1 (any visible node passes); for total=4 it is 2.
func HasQuorum(total, visible int) bool {
	return visible >= total/2
}

// SelectWinner picks the best failover candidate: self starts as the
// incumbent best, and is replaced only by a peer with a strictly
// greater LSN. On an exact tie the earlier-held best wins, which is
// always self here since self is considered first -- spec.md §9
// deliberately does not add a node-id tiebreak beyond this traversal
// order.
func SelectWinner(selfNode int, selfLSN lsn.LSN, snapshots []PeerSnapshot) int {
	best := selfNode
	bestLSN := selfLSN
	for _, snap := range snapshots {
		if !snap.IsReady {
			continue
		}
		if lsn.Compare(snap.XlogLocation, bestLSN) > 0 {
			bestLSN = snap.XlogLocation
			best = snap.NodeID
		}
	}
	return best
}
