package orchestrator

import (
	"context"
	"time"

	"github.com/repmgr-go/repmgrd/pkg/config"
	"github.com/repmgr-go/repmgrd/pkg/election"
	"github.com/repmgr-go/repmgrd/pkg/logging"
	"github.com/repmgr-go/repmgrd/pkg/metrics"
	"github.com/repmgr-go/repmgrd/pkg/monitor"
	"github.com/repmgr-go/repmgrd/pkg/supervisor"
)

// Component is a side channel the orchestrator supervises alongside the
// tick loop -- the Heartbeat Surveyor/Respondent, the metrics HTTP
// server, the Monitor Archiver. None of them may block or participate
// in the tick loop's ordering guarantees (SPEC_FULL.md §5).
type Component interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Name() string
}

// Run identifies this node, then drives the tick loop until ctx is
// cancelled or a fatal condition is reached, returning the process
// exit code spec.md §6 defines. components are started before the tick
// loop begins and stopped on every exit path; hb, when non-nil, feeds
// the Primary Supervisor's heartbeat-disagreement logging only.
func Run(ctx context.Context, cfg *config.Config, log logging.Logger, reg *metrics.Registry, components []Component, hb supervisor.LastSeen) int {
	state, alreadyPrimary, err := Identify(ctx, cfg, log)
	if err != nil {
		log.Error("orchestrator: startup failed", logging.Error(err))
		return mapExitCode(err)
	}
	if alreadyPrimary {
		return ExitSuccess
	}
	defer state.Local.Close(ctx)
	defer state.Primary.Close(ctx)

	for _, c := range components {
		if err := c.Start(ctx); err != nil {
			log.Warn("orchestrator: component failed to start", logging.String("component", c.Name()), logging.Error(err))
		}
	}
	defer func() {
		for _, c := range components {
			c.Stop(context.Background())
		}
	}()

	deps := supervisor.Deps{
		Config: cfg,
		ElectionDeps: election.Deps{
			ClusterName:    cfg.ClusterName,
			Self:           state.Self,
			PromoteCommand: cfg.PromoteCommand,
			FollowCommand:  cfg.FollowCommand,
		},
		Heartbeat: hb,
	}

	if reg != nil {
		reg.SetRole("standby")
	}

	ticker := time.NewTicker(cfg.MonitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			state.Primary.CancelInFlight()
			log.Notice("orchestrator: shutting down")
			return ExitSuccess

		case <-ticker.C:
			if err := supervisor.Ensure(ctx, state, deps, log, reg); err != nil {
				log.Error("orchestrator: fatal supervisor error", logging.Error(err))
				return mapExitCode(err)
			}

			if _, err := monitor.RunTick(ctx, state.Local, state.Primary, state.PrimaryNodeID, state.Self.NodeID, log, reg); err != nil {
				log.Warn("orchestrator: tick failed, retrying next schedule", logging.Error(err))
			}
		}
	}
}
