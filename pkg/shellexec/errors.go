package shellexec

import "errors"

// ErrCommandFailed wraps a non-zero exit from a promote/follow command.
// The daemon's core never inspects the cause further: per spec.md §6,
// exit status is not examined beyond success/failure.
var ErrCommandFailed = errors.New("shellexec: command failed")
