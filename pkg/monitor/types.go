package monitor

import (
	"time"

	"github.com/repmgr-go/repmgrd/pkg/lsn"
)

// LagSample is one tick's measurement of a standby's replication lag
// relative to its primary. Transient: created by the Lag Reporter,
// persisted to the primary's repl_monitor table, never retained locally.
type LagSample struct {
	PrimaryNode  int
	StandbyNode  int
	Ts           time.Time
	PrimaryLSN   lsn.LSN
	ReceivedLSN  lsn.LSN
	AppliedLSN   lsn.LSN
	ReceiveLag   uint64
	ApplyLag     uint64
}
