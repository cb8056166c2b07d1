package orchestrator

import "errors"

// ErrStartupQuery means the local node's is_standby() probe failed
// during startup self-identification, before any tick has run.
var ErrStartupQuery = errors.New("orchestrator: startup role probe failed")
