package supervisor

import (
	"context"
	"testing"
	"time"

	"github.com/repmgr-go/repmgrd/pkg/config"
	"github.com/repmgr-go/repmgrd/pkg/dbsession"
	"github.com/repmgr-go/repmgrd/pkg/directory"
	"github.com/repmgr-go/repmgrd/pkg/election"
	"github.com/repmgr-go/repmgrd/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedSession(t *testing.T) *dbsession.Session {
	t.Helper()
	s, err := dbsession.Open(context.Background(), "", false)
	require.NoError(t, err)
	return s
}

func baseConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Node = 1
	cfg.ClusterName = "prod"
	cfg.Conninfo = "host=unused"
	cfg.ReconnectAttempts = 2
	cfg.ReconnectInterval = time.Millisecond
	cfg.RediscoverAttempts = 2
	cfg.RediscoverInterval = time.Millisecond
	return cfg
}

func TestEnsure_ManualRediscoveryExhaustedReturnsErrDBCon(t *testing.T) {
	cfg := baseConfig()
	cfg.Failover = config.FailoverManual

	state := &State{
		Local:   closedSession(t),
		Primary: closedSession(t),
		Self:    directory.NodeIdentity{NodeID: 1, ClusterName: "prod"},
	}

	err := Ensure(context.Background(), state, Deps{Config: cfg}, logging.NewNopLogger(), nil)
	assert.ErrorIs(t, err, ErrDBCon)
}

func TestEnsure_AutomaticFailoverSelfReportFailureReturnsErrDBQuery(t *testing.T) {
	cfg := baseConfig()
	cfg.Failover = config.FailoverAutomatic

	state := &State{
		Local:   closedSession(t),
		Primary: closedSession(t),
		Self:    directory.NodeIdentity{NodeID: 1, ClusterName: "prod"},
	}

	deps := Deps{
		Config: cfg,
		ElectionDeps: election.Deps{
			ClusterName: "prod",
			Self:        state.Self,
		},
	}

	err := Ensure(context.Background(), state, deps, logging.NewNopLogger(), nil)
	assert.ErrorIs(t, err, ErrDBQuery)
}

func TestHeartbeatDisagrees_NilHeartbeatNeverDisagrees(t *testing.T) {
	assert.False(t, heartbeatDisagrees(&State{}, nil))
}
