package main

import (
	"context"
	"fmt"
	"time"

	"github.com/repmgr-go/repmgrd/pkg/dbsession"
)

// MemberStatus is one row of the status CLI's view: a cluster member's
// role, how recently it reported lag, and its most recent lag sample.
type MemberStatus struct {
	NodeID          int       `yaml:"node_id"`
	Role            string    `yaml:"role"`
	LastSeen        time.Time `yaml:"last_seen"`
	ReceiveLagBytes uint64    `yaml:"receive_lag_bytes"`
	ApplyLagBytes   uint64    `yaml:"apply_lag_bytes"`
}

// Snapshot is a single point-in-time read of cluster state, the shape
// both the TUI's refresh tick and --format yaml emit.
type Snapshot struct {
	ClusterName string         `yaml:"cluster_name"`
	TakenAt     time.Time      `yaml:"taken_at"`
	Members     []MemberStatus `yaml:"members"`
}

// FetchSnapshot lists cluster membership via repl_nodes, probes each
// member's current role, and joins in its most recent repl_monitor row.
func FetchSnapshot(ctx context.Context, local *dbsession.Session, clusterName string) (Snapshot, error) {
	rows, err := local.Query(ctx, `SELECT id, conninfo FROM repl_nodes WHERE cluster = $1 ORDER BY id`, clusterName)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing cluster members: %w", err)
	}

	type member struct {
		id       int
		conninfo string
	}
	var members []member
	for rows.Next() {
		var m member
		if err := rows.Scan(&m.id, &m.conninfo); err != nil {
			rows.Close()
			return Snapshot{}, fmt.Errorf("reading cluster member row: %w", err)
		}
		members = append(members, m)
	}
	rows.Close()

	snapshot := Snapshot{ClusterName: clusterName, TakenAt: time.Now()}
	for _, m := range members {
		snapshot.Members = append(snapshot.Members, probeMember(ctx, m.id, m.conninfo))
	}
	return snapshot, nil
}

func probeMember(ctx context.Context, nodeID int, conninfo string) MemberStatus {
	status := MemberStatus{NodeID: nodeID, Role: "UNKNOWN"}

	session, err := dbsession.Open(ctx, conninfo, false)
	if err != nil || session.Status() != dbsession.StatusOK {
		return status
	}
	defer session.Close(ctx)

	var isStandby bool
	if err := session.QueryRow(ctx, `SELECT is_standby()`).Scan(&isStandby); err == nil {
		if isStandby {
			status.Role = "STANDBY"
		} else {
			status.Role = "PRIMARY"
		}
	}

	row := session.QueryRow(ctx,
		`SELECT ts, receive_lag_bytes, apply_lag_bytes FROM repl_monitor
		 WHERE standby_node = $1 ORDER BY ts DESC LIMIT 1`, nodeID)
	row.Scan(&status.LastSeen, &status.ReceiveLagBytes, &status.ApplyLagBytes)

	return status
}
