package supervisor

import (
	"time"

	"github.com/repmgr-go/repmgrd/pkg/config"
	"github.com/repmgr-go/repmgrd/pkg/dbsession"
	"github.com/repmgr-go/repmgrd/pkg/directory"
	"github.com/repmgr-go/repmgrd/pkg/election"
)

// State is the Primary Supervisor's owned resources: the PrimaryBinding
// (conn + node id) and the local session it probes for self-promotion.
// At most one PrimaryBinding exists per daemon, per spec.md §3.
type State struct {
	Local         *dbsession.Session
	Primary       *dbsession.Session
	PrimaryNodeID int
	Self          directory.NodeIdentity
}

// LastSeen reports the most recent heartbeat observed from nodeID, used
// only to log a disagreement with the DB-based liveness check -- never
// to change a reconnect or failover decision (SPEC_FULL.md §4.5).
type LastSeen interface {
	LastSeen(nodeID int) (time.Time, bool)
}

// Deps bundles the supervisor's collaborators.
type Deps struct {
	Config         *config.Config
	ElectionDeps   election.Deps
	Heartbeat      LastSeen // optional, may be nil
}
