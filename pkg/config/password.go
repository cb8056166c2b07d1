package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh/terminal"
)

// EnsurePassword inspects cfg.Conninfo: if it carries no "password="
// component and the process is attached to an interactive terminal, it
// prompts for a password with echo disabled and appends it to the
// connection string. In non-interactive contexts the prompt is skipped
// and the connection is attempted without an explicit password (trust
// or peer authentication, or a failure surfaced later by the Node
// Client).
func EnsurePassword(cfg *Config) error {
	if strings.Contains(cfg.Conninfo, "password=") {
		return nil
	}
	if !terminal.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	passwordBytes, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	password := string(passwordBytes)
	if password == "" {
		return nil
	}

	sep := " "
	if cfg.Conninfo == "" {
		sep = ""
	}
	cfg.Conninfo = cfg.Conninfo + sep + "password=" + password
	return nil
}
