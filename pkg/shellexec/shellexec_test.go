package shellexec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_EmptyCommandIsNoop(t *testing.T) {
	assert.NoError(t, Run(context.Background(), ""))
}

func TestRun_SuccessfulCommand(t *testing.T) {
	assert.NoError(t, Run(context.Background(), "true"))
}

func TestRun_FailingCommandReturnsErrCommandFailed(t *testing.T) {
	err := Run(context.Background(), "exit 1")
	assert.ErrorIs(t, err, ErrCommandFailed)
}

func TestRun_DoesNotSplitArguments(t *testing.T) {
	// A command containing shell metacharacters must reach /bin/sh
	// intact, not be split and exec'd as a literal argv.
	assert.NoError(t, Run(context.Background(), "test 1 -eq 1 && true"))
}
