package supervisor

import (
	"context"
	"fmt"
	"time"

	"github.com/repmgr-go/repmgrd/pkg/config"
	"github.com/repmgr-go/repmgrd/pkg/dbsession"
	"github.com/repmgr-go/repmgrd/pkg/directory"
	"github.com/repmgr-go/repmgrd/pkg/election"
	"github.com/repmgr-go/repmgrd/pkg/logging"
	"github.com/repmgr-go/repmgrd/pkg/metrics"
)

// Ensure runs the reconnect ladder of spec.md §4.5 at the start of a
// tick. If state.Primary is already healthy, it only performs the
// post-ladder self-promotion sanity check and returns. Any fatal exit
// condition is returned as one of this package's sentinel errors; the
// orchestrator maps those to process exit codes.
func Ensure(ctx context.Context, state *State, deps Deps, log logging.Logger, reg *metrics.Registry) error {
	if state.Primary.Status() == dbsession.StatusBroken {
		if heartbeatDisagrees(state, deps.Heartbeat) {
			log.Warn("supervisor: heartbeat channel has a sighting of the primary, DB probe disagrees",
				logging.NodeID(state.PrimaryNodeID))
		}

		if err := reconnectLadder(ctx, state, deps, log, reg); err != nil {
			return err
		}
	}

	if reg != nil {
		reg.SetPrimaryConnectionUp(state.Primary.Status() == dbsession.StatusOK)
	}

	return sanityCheckNotPromoted(ctx, state, log)
}

func reconnectLadder(ctx context.Context, state *State, deps Deps, log logging.Logger, reg *metrics.Registry) error {
	cfg := deps.Config

	for attempt := 1; attempt <= cfg.ReconnectAttempts; attempt++ {
		if reg != nil {
			reg.RecordReconnectAttempt()
		}
		log.Warn("supervisor: primary connection broken, attempting reset",
			logging.Attempt(attempt, cfg.ReconnectAttempts))

		if err := state.Primary.Reset(ctx); err == nil {
			log.Notice("supervisor: primary connection recovered", logging.Attempt(attempt, cfg.ReconnectAttempts))
			return nil
		}

		if attempt < cfg.ReconnectAttempts {
			if err := sleep(ctx, cfg.ReconnectInterval); err != nil {
				return err
			}
		}
	}

	log.Warn("supervisor: reconnect ladder exhausted", logging.Int("attempts", cfg.ReconnectAttempts))

	if cfg.Failover == config.FailoverManual {
		return manualRediscovery(ctx, state, cfg, log)
	}
	return automaticFailover(ctx, state, deps, log, reg)
}

func manualRediscovery(ctx context.Context, state *State, cfg *config.Config, log logging.Logger) error {
	for attempt := 1; attempt <= cfg.RediscoverAttempts; attempt++ {
		log.Notice("supervisor: searching for new primary",
			logging.Attempt(attempt, cfg.RediscoverAttempts))

		primary, nodeID, err := directory.FindPrimary(ctx, state.Local, state.Self.ClusterName)
		if err == nil {
			state.Primary.Close(ctx)
			state.Primary = primary
			state.PrimaryNodeID = nodeID
			log.Notice("supervisor: adopted new primary", logging.NodeID(nodeID))
			return nil
		}

		if attempt < cfg.RediscoverAttempts {
			if err := sleep(ctx, cfg.RediscoverInterval); err != nil {
				return err
			}
		}
	}

	return fmt.Errorf("%w: no primary found after %d attempts", ErrDBCon, cfg.RediscoverAttempts)
}

func automaticFailover(ctx context.Context, state *State, deps Deps, log logging.Logger, reg *metrics.Registry) error {
	outcome, newPrimary, err := election.Elect(ctx, state.Local, deps.ElectionDeps, log, reg)
	if err != nil {
		if outcome != nil && outcome.Action == election.ActionQuorumLost {
			return fmt.Errorf("%w: %v", ErrFailoverFail, err)
		}
		return fmt.Errorf("%w: %v", ErrDBQuery, err)
	}

	if outcome.Action == election.ActionFollowed && newPrimary != nil {
		state.Primary.Close(ctx)
		state.Primary = newPrimary
		state.PrimaryNodeID = outcome.Winner
	}

	return nil
}

func sanityCheckNotPromoted(ctx context.Context, state *State, log logging.Logger) error {
	var isStandby bool
	if err := state.Local.QueryRow(ctx, `SELECT is_standby()`).Scan(&isStandby); err != nil {
		// Can't determine role; leave the decision to the next tick
		// rather than exit on an unrelated transient query failure.
		return nil
	}
	if !isStandby {
		log.Notice("supervisor: local node promoted out-of-band, exiting")
		return ErrPromoted
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// heartbeatDisagrees reports whether the heartbeat surveyor holds any
// sighting of the current primary. The sighting's age is not checked.
func heartbeatDisagrees(state *State, hb LastSeen) bool {
	if hb == nil {
		return false
	}
	_, seenRecently := hb.LastSeen(state.PrimaryNodeID)
	return seenRecently
}
