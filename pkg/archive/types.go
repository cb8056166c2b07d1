package archive

import "time"

// Sample mirrors one repl_monitor row as read back for archiving. It
// deliberately duplicates monitor.LagSample's shape rather than
// importing it, so the archiver's JSON framing is stable even if the
// live table's in-process representation changes.
type Sample struct {
	PrimaryNode        int       `json:"primary_node"`
	StandbyNode        int       `json:"standby_node"`
	Ts                 time.Time `json:"ts"`
	PrimaryLSN         string    `json:"primary_lsn"`
	StandbyReceivedLSN string    `json:"standby_received_lsn"`
	ReceiveLagBytes    uint64    `json:"receive_lag_bytes"`
	ApplyLagBytes      uint64    `json:"apply_lag_bytes"`
}

// Window is the bounded span of repl_monitor history one archive
// upload covers. SPEC_FULL.md §3's ArchivedSample payload is the
// snappy-compressed, newline-delimited JSON encoding of Samples.
type Window struct {
	ClusterName string
	Start       time.Time
	End         time.Time
	Samples     []Sample
}
