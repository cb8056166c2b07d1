package election

import (
	"github.com/repmgr-go/repmgrd/pkg/directory"
	"github.com/repmgr-go/repmgrd/pkg/lsn"
)

// PeerSnapshot is one probed peer's candidacy state, transient for the
// duration of a single election.
type PeerSnapshot struct {
	NodeID        int
	XlogLocation  lsn.LSN
	IsReady       bool
}

// Action names the outcome of a completed election.
type Action string

const (
	ActionPromoted    Action = "promoted"
	ActionFollowed    Action = "followed"
	ActionQuorumLost  Action = "quorum_lost"
)

// Outcome is the full record of one election run, used both to drive
// the promote/follow command and to produce the log line spec.md §7
// requires ("candidate set, chosen node, action taken").
type Outcome struct {
	ElectionID string
	Action     Action
	Winner     int
	Candidates []PeerSnapshot
	Total      int
	Visible    int
}

// Deps bundles the collaborators an election needs, so Elect's
// signature stays readable as the Primary Supervisor's one call site.
type Deps struct {
	ClusterName    string
	Self           directory.NodeIdentity
	PromoteCommand string
	FollowCommand  string
}
