package election

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/repmgr-go/repmgrd/pkg/dbsession"
	"github.com/repmgr-go/repmgrd/pkg/directory"
	"github.com/repmgr-go/repmgrd/pkg/logging"
	"github.com/repmgr-go/repmgrd/pkg/lsn"
	"github.com/repmgr-go/repmgrd/pkg/metrics"
	"github.com/repmgr-go/repmgrd/pkg/shellexec"
)

// Elect runs the distributed election of spec.md §4.6, triggered only
// when the primary is confirmed lost, this node is still a standby, and
// failover is AUTOMATIC. It re-attaches local in place (step 7) and
// returns the completed Outcome and, on ActionFollowed, a new session
// already open against the winning peer for the Primary Supervisor to
// adopt as its PrimaryBinding.
func Elect(ctx context.Context, local *dbsession.Session, deps Deps, log logging.Logger, reg *metrics.Registry) (*Outcome, *dbsession.Session, error) {
	start := time.Now()
	electionID := uuid.New().String()
	log = log.With(logging.String("election_id", electionID))

	// Step 1: self-report. A crashed reporter must not participate.
	var selfText string
	scanErr := local.QueryRow(ctx, `SELECT pg_last_xlog_replay_location()`).Scan(&selfText)

	var selfLSN lsn.LSN
	var parseErr error
	if scanErr == nil {
		selfLSN, parseErr = lsn.Parse(selfText)
	}

	if scanErr != nil || parseErr != nil {
		directory.PublishStandbyLocation(ctx, local, lsn.Zero) // best effort
		recordElection(reg, ActionQuorumLost, start)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrSelfReportFailed, scanErr)
		}
		return nil, nil, fmt.Errorf("%w: unparseable self LSN %q: %v", ErrSelfReportFailed, selfText, parseErr)
	}

	if err := directory.PublishStandbyLocation(ctx, local, selfLSN); err != nil {
		directory.PublishStandbyLocation(ctx, local, lsn.Zero) // best effort sentinel
		recordElection(reg, ActionQuorumLost, start)
		return nil, nil, fmt.Errorf("%w: %v", ErrSelfReportFailed, err)
	}

	// Step 2: enumerate peers.
	peers, err := directory.ListPeerStandbys(ctx, local, deps.ClusterName, deps.Self.NodeID)
	if err != nil {
		recordElection(reg, ActionQuorumLost, start)
		return nil, nil, fmt.Errorf("%w: %v", ErrEnumeratePeersFailed, err)
	}

	// Step 3: probe each peer with a short-lived, non-required session.
	conninfoByNode := make(map[int]string, len(peers))
	snapshots := make([]PeerSnapshot, 0, len(peers))
	readyCount := 0

	for _, peer := range peers {
		conninfoByNode[peer.NodeID] = peer.Conninfo

		snap := PeerSnapshot{NodeID: peer.NodeID}
		probe, openErr := dbsession.Open(ctx, peer.Conninfo, false)
		if openErr == nil && probe.Status() == dbsession.StatusOK {
			loc, readErr := directory.ReadLastStandbyLocation(ctx, probe)
			if readErr == nil {
				snap.XlogLocation = loc
				snap.IsReady = true
				readyCount++
			}
			probe.Close(ctx)
		}
		snapshots = append(snapshots, snap)
	}

	// Step 4: quorum check. Integer truncation per spec.md §9: for
	// total=3 the threshold is 1, so any single visible node passes.
	total := len(peers) + 1
	visible := readyCount + 1
	if !HasQuorum(total, visible) {
		log.Warn("election: quorum lost", logging.Int("visible", visible), logging.Int("total", total))
		recordElection(reg, ActionQuorumLost, start)
		return &Outcome{ElectionID: electionID, Action: ActionQuorumLost, Candidates: snapshots, Total: total, Visible: visible}, nil, ErrQuorumLost
	}

	// Step 5: candidate selection. Self starts as best; strict '<'
	// means a tie leaves self as the winner -- no node-id tiebreak is
	// applied, matching the source's traversal-order behavior made
	// explicit here rather than left implicit.
	bestNode := SelectWinner(deps.Self.NodeID, selfLSN, snapshots)

	outcome := &Outcome{ElectionID: electionID, Candidates: snapshots, Total: total, Visible: visible, Winner: bestNode}

	// Step 6: action.
	var newPrimary *dbsession.Session
	if bestNode == deps.Self.NodeID {
		outcome.Action = ActionPromoted
		log.Notice("election: promoting self", logging.NodeID(bestNode))
		if err := shellexec.Run(ctx, deps.PromoteCommand); err != nil {
			recordElection(reg, outcome.Action, start)
			return outcome, nil, err
		}
	} else {
		outcome.Action = ActionFollowed
		log.Notice("election: following new primary", logging.NodeID(bestNode))
		if err := shellexec.Run(ctx, deps.FollowCommand); err != nil {
			recordElection(reg, outcome.Action, start)
			return outcome, nil, err
		}

		newPrimary, err = dbsession.Open(ctx, conninfoByNode[bestNode], true)
		if err != nil {
			recordElection(reg, outcome.Action, start)
			return outcome, nil, fmt.Errorf("%w: opening new primary session: %v", ErrReattachFailed, err)
		}
	}

	// Step 7: re-attach the local session.
	if err := local.Reset(ctx); err != nil {
		recordElection(reg, outcome.Action, start)
		return outcome, newPrimary, fmt.Errorf("%w: %v", ErrReattachFailed, err)
	}

	recordElection(reg, outcome.Action, start)
	return outcome, newPrimary, nil
}

func recordElection(reg *metrics.Registry, action Action, start time.Time) {
	if reg == nil {
		return
	}
	reg.RecordElection(string(action), time.Since(start))
}
