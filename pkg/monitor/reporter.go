package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/repmgr-go/repmgrd/pkg/dbsession"
	"github.com/repmgr-go/repmgrd/pkg/logging"
	"github.com/repmgr-go/repmgrd/pkg/lsn"
	"github.com/repmgr-go/repmgrd/pkg/metrics"
)

// RunTick performs one Lag Reporter cycle per spec.md §4.4:
//  1. drain (or cancel) the previous tick's outstanding async insert
//  2. read the local standby's received/applied LSN
//  3. read the primary's current LSN
//  4. compute receive/apply lag, clamped to zero on underflow
//  5. fire an async insert of the sample into the primary's monitor table
//
// Steps 2 and 3 are the only ones that abort the tick on failure; a
// failed drain or a failed insert only costs a lost sample and is
// logged, matching the monitor table's append-only, best-effort nature.
func RunTick(ctx context.Context, local, primary *dbsession.Session, primaryNodeID, standbyNodeID int, log logging.Logger, reg *metrics.Registry) (*LagSample, error) {
	start := time.Now()
	defer func() {
		if reg != nil {
			reg.RecordTick(time.Since(start))
		}
	}()

	if err := primary.DrainAsync(); err != nil {
		log.Warn("monitor: previous insert failed", logging.Error(err))
	}

	var now time.Time
	var receivedText, appliedText string
	err := local.QueryRow(ctx,
		`SELECT now(), pg_last_xlog_receive_location(), pg_last_xlog_replay_location()`,
	).Scan(&now, &receivedText, &appliedText)
	if err != nil {
		return nil, fmt.Errorf("%w: reading local standby LSN: %v", ErrTickAborted, err)
	}

	received, err := lsn.Parse(receivedText)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable received LSN %q: %v", ErrTickAborted, receivedText, err)
	}
	applied, err := lsn.Parse(appliedText)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable applied LSN %q: %v", ErrTickAborted, appliedText, err)
	}

	var primaryText string
	if err := primary.QueryRow(ctx, `SELECT pg_current_xlog_location()`).Scan(&primaryText); err != nil {
		return nil, fmt.Errorf("%w: reading primary LSN: %v", ErrTickAborted, err)
	}
	primaryLSN, err := lsn.Parse(primaryText)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable primary LSN %q: %v", ErrTickAborted, primaryText, err)
	}

	sample := &LagSample{
		PrimaryNode: primaryNodeID,
		StandbyNode: standbyNodeID,
		Ts:          now,
		PrimaryLSN:  primaryLSN,
		ReceivedLSN: received,
		AppliedLSN:  applied,
		ReceiveLag:  lsn.Sub(primaryLSN, received),
		ApplyLag:    lsn.Sub(received, applied),
	}

	if reg != nil {
		reg.SetLag(sample.ReceiveLag, sample.ApplyLag)
	}

	if err := publish(primary, sample); err != nil {
		log.Warn("monitor: failed to send lag sample insert", logging.Error(err))
	}

	return sample, nil
}

func publish(primary *dbsession.Session, sample *LagSample) error {
	return primary.SendAsync(
		`INSERT INTO repl_monitor
			(primary_node, standby_node, ts, primary_lsn, standby_received_lsn, receive_lag_bytes, apply_lag_bytes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sample.PrimaryNode, sample.StandbyNode, sample.Ts,
		sample.PrimaryLSN.String(), sample.ReceivedLSN.String(),
		sample.ReceiveLag, sample.ApplyLag,
	)
}
