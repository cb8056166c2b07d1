package orchestrator

import (
	"errors"

	"github.com/repmgr-go/repmgrd/pkg/config"
	"github.com/repmgr-go/repmgrd/pkg/dbsession"
	"github.com/repmgr-go/repmgrd/pkg/directory"
	"github.com/repmgr-go/repmgrd/pkg/election"
	"github.com/repmgr-go/repmgrd/pkg/supervisor"
)

// Exit codes, per spec.md §6.
const (
	ExitSuccess      = 0
	ExitBadConfig    = 1
	ExitDBCon        = 2
	ExitDBQuery      = 3
	ExitBadQuery     = 4
	ExitPromoted     = 5
	ExitFailoverFail = 6
)

// mapExitCode translates a fatal error surfaced by the tick loop or
// startup into the CLI's exit code.
func mapExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, config.ErrBadConfig):
		return ExitBadConfig
	case errors.Is(err, supervisor.ErrPromoted):
		return ExitPromoted
	case errors.Is(err, supervisor.ErrFailoverFail), errors.Is(err, election.ErrQuorumLost):
		return ExitFailoverFail
	case errors.Is(err, supervisor.ErrDBQuery), errors.Is(err, election.ErrSelfReportFailed), errors.Is(err, ErrStartupQuery):
		return ExitDBQuery
	case errors.Is(err, supervisor.ErrDBCon), errors.Is(err, directory.ErrPrimaryNotFound), errors.Is(err, dbsession.ErrConnectFailed):
		return ExitDBCon
	default:
		return ExitDBQuery
	}
}
