package orchestrator

import (
	"context"
	"fmt"

	"github.com/repmgr-go/repmgrd/pkg/config"
	"github.com/repmgr-go/repmgrd/pkg/dbsession"
	"github.com/repmgr-go/repmgrd/pkg/directory"
	"github.com/repmgr-go/repmgrd/pkg/logging"
	"github.com/repmgr-go/repmgrd/pkg/supervisor"
)

// Identify performs startup self-identification: open the local
// session, ask it whether it is a standby, and if so locate and adopt
// the cluster's current primary. A node that is already primary at
// startup has nothing to monitor and the caller should exit
// immediately with success, matching the state diagram's
// primary-role-at-startup branch.
func Identify(ctx context.Context, cfg *config.Config, log logging.Logger) (state *supervisor.State, alreadyPrimary bool, err error) {
	local, err := dbsession.Open(ctx, cfg.Conninfo, true)
	if err != nil {
		return nil, false, err
	}

	var isStandby bool
	if scanErr := local.QueryRow(ctx, `SELECT is_standby()`).Scan(&isStandby); scanErr != nil {
		local.Close(ctx)
		return nil, false, fmt.Errorf("%w: %v", ErrStartupQuery, scanErr)
	}

	self := directory.NodeIdentity{
		NodeID:      cfg.Node,
		ClusterName: cfg.ClusterName,
		Conninfo:    cfg.Conninfo,
	}

	if !isStandby {
		log.Notice("orchestrator: local node is already primary, nothing to monitor")
		local.Close(ctx)
		return nil, true, nil
	}
	self.Role = directory.RoleStandby

	primary, primaryNodeID, err := directory.FindPrimary(ctx, local, cfg.ClusterName)
	if err != nil {
		local.Close(ctx)
		return nil, false, err
	}

	if err := directory.EnsureSelfRegistered(ctx, primary, self); err != nil {
		log.Warn("orchestrator: failed to register self in cluster directory", logging.Error(err))
	}

	log.Notice("orchestrator: identified as standby",
		logging.NodeID(cfg.Node), logging.NodeID(primaryNodeID))

	return &supervisor.State{
		Local:         local,
		Primary:       primary,
		PrimaryNodeID: primaryNodeID,
		Self:          self,
	}, false, nil
}
