package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/repmgr-go/repmgrd/pkg/dbsession"
)

// ReadWindow selects every repl_monitor row in [since, until), the span
// the next archive upload will cover. The query does not filter by
// cluster; clusterName only labels the returned Window.
func ReadWindow(ctx context.Context, session *dbsession.Session, clusterName string, since, until time.Time) (Window, error) {
	rows, err := session.Query(ctx,
		`SELECT primary_node, standby_node, ts, primary_lsn, standby_received_lsn,
		        receive_lag_bytes, apply_lag_bytes
		 FROM repl_monitor
		 WHERE ts >= $1 AND ts < $2
		 ORDER BY ts`,
		since, until,
	)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer rows.Close()

	window := Window{ClusterName: clusterName, Start: since, End: until}
	for rows.Next() {
		var s Sample
		if err := rows.Scan(&s.PrimaryNode, &s.StandbyNode, &s.Ts, &s.PrimaryLSN,
			&s.StandbyReceivedLSN, &s.ReceiveLagBytes, &s.ApplyLagBytes); err != nil {
			return Window{}, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		window.Samples = append(window.Samples, s)
	}
	if err := rows.Err(); err != nil {
		return Window{}, fmt.Errorf("%w: %v", ErrQuery, err)
	}

	return window, nil
}
