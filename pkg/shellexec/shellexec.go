package shellexec

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Run passes command verbatim to the system shell and waits for it to
// exit. No argument splitting is attempted: promote_command and
// follow_command are opaque operator-supplied shell strings (spec.md
// §6), so this is the one place in the daemon that deliberately hands
// untouched, operator-controlled input to /bin/sh -c.
//
// This has no library grounding in the surrounding stack: shelling out
// to an operator-supplied command string is an os/exec concern the
// corpus has no wrapper for, and inventing one would add indirection
// without adding correctness.
func Run(ctx context.Context, command string) error {
	if command == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCommandFailed, command, err)
	}
	return nil
}
