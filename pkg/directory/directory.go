package directory

import (
	"context"
	"fmt"

	"github.com/repmgr-go/repmgrd/pkg/dbsession"
	"github.com/repmgr-go/repmgrd/pkg/lsn"
)

// FindPrimary scans repl_nodes for cluster_name, opening a short-lived,
// non-required probe session against each registered conninfo in turn
// and asking it whether it is currently a standby via is_standby().
// The first node that answers false is the primary; its session is
// returned open (the caller adopts it as the new PrimaryBinding). If no
// registered node answers, ErrPrimaryNotFound is returned and every
// probe session opened along the way has already been closed.
func FindPrimary(ctx context.Context, local *dbsession.Session, clusterName string) (*dbsession.Session, int, error) {
	rows, err := local.Query(ctx, `SELECT id, conninfo FROM repl_nodes WHERE cluster = $1`, clusterName)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrQuery, err)
	}

	type candidate struct {
		id       int
		conninfo string
	}
	var candidates []candidate
	for rows.Next() {
		var c candidate
		if err := rows.Scan(&c.id, &c.conninfo); err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		candidates = append(candidates, c)
	}
	rows.Close()

	for _, c := range candidates {
		probe, err := dbsession.Open(ctx, c.conninfo, false)
		if err != nil || probe.Status() != dbsession.StatusOK {
			continue
		}

		var isStandby bool
		if scanErr := probe.QueryRow(ctx, `SELECT is_standby()`).Scan(&isStandby); scanErr != nil {
			probe.Close(ctx)
			continue
		}

		if !isStandby {
			return probe, c.id, nil
		}
		probe.Close(ctx)
	}

	return nil, 0, ErrPrimaryNotFound
}

// EnsureSelfRegistered idempotently inserts self into repl_nodes,
// executed over the primary connection (only the primary writes
// membership, per §3's Ownership invariant). Safe to call on every
// startup: a second call is a no-op.
func EnsureSelfRegistered(ctx context.Context, primary *dbsession.Session, self NodeIdentity) error {
	err := primary.Exec(ctx,
		`INSERT INTO repl_nodes (id, cluster, conninfo) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		self.NodeID, self.ClusterName, self.Conninfo,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return nil
}

// ListPeerStandbys returns every registered node in clusterName except
// excludeSelf, the candidate set for a failover election.
func ListPeerStandbys(ctx context.Context, session *dbsession.Session, clusterName string, excludeSelf int) ([]NodeIdentity, error) {
	rows, err := session.Query(ctx,
		`SELECT id, conninfo FROM repl_nodes WHERE cluster = $1 AND id != $2`,
		clusterName, excludeSelf,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer rows.Close()

	var peers []NodeIdentity
	for rows.Next() {
		var n NodeIdentity
		if err := rows.Scan(&n.NodeID, &n.Conninfo); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		n.ClusterName = clusterName
		n.Role = RoleStandby
		peers = append(peers, n)
	}
	return peers, nil
}

// PublishStandbyLocation writes this standby's latest applied LSN into
// the shared last-standby-location register, last-writer-wins, visible
// to peers probing during an election.
func PublishStandbyLocation(ctx context.Context, local *dbsession.Session, location lsn.LSN) error {
	if err := local.Exec(ctx, `SELECT pg_update_standby_location($1)`, location.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return nil
}

// ReadLastStandbyLocation reads a peer's published standby location, as
// used by the Failover Elector's peer probe step. Per §9's open
// question on peer LSN parsing, the original reads row 0 of a
// single-row result; this client naturally does the same since
// QueryRow only ever exposes row 0.
func ReadLastStandbyLocation(ctx context.Context, peer *dbsession.Session) (lsn.LSN, error) {
	var text string
	if err := peer.QueryRow(ctx, `SELECT repmgr_get_last_standby_location()`).Scan(&text); err != nil {
		return lsn.Zero, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return lsn.Parse(text)
}
