package config

import "time"

// FailoverMode selects how the Primary Supervisor reacts to a confirmed
// loss of the primary: MANUAL waits for an operator-visible new primary
// to appear in the Cluster Directory, AUTOMATIC runs the Failover Elector.
type FailoverMode string

const (
	FailoverManual    FailoverMode = "MANUAL"
	FailoverAutomatic FailoverMode = "AUTOMATIC"
)

// Config is the fully merged, validated configuration for one daemon
// instance: defaults, overridden by the key=value file, overridden by
// CLI flags.
type Config struct {
	Node        int          `validate:"required"`
	ClusterName string       `validate:"required"`
	Conninfo    string       `validate:"required"`
	Failover    FailoverMode `validate:"required,oneof=MANUAL AUTOMATIC"`

	PromoteCommand string
	FollowCommand  string

	LogLevel    string
	LogFacility string

	MonitorInterval     time.Duration `validate:"gt=0"`
	ReconnectAttempts   int           `validate:"gt=0"`
	ReconnectInterval   time.Duration `validate:"gt=0"`
	RediscoverAttempts  int           `validate:"gt=0"`
	RediscoverInterval  time.Duration `validate:"gt=0"`

	MetricsListenAddr string
	HeartbeatAddr     string
	HeartbeatPeers    []string

	ArchiveS3Bucket string
	ArchiveInterval time.Duration
	ArchivePrefix   string

	// ConfigPath records where this Config was loaded from, for logging.
	ConfigPath string
}

// Defaults returns a Config with every default from spec.md §6 and
// SPEC_FULL.md §6 set, before the file and flags are layered on top.
func Defaults() *Config {
	return &Config{
		Failover:           FailoverManual,
		LogLevel:           "INFO",
		MonitorInterval:    3 * time.Second,
		ReconnectAttempts:  15,
		ReconnectInterval:  20 * time.Second,
		RediscoverAttempts: 6,
		RediscoverInterval: 300 * time.Second,
		ArchiveInterval:    time.Hour,
	}
}

// CLIOptions holds the parsed command-line flags, applied on top of a
// loaded Config by Merge.
type CLIOptions struct {
	ConfigPath string
	Verbose    bool
	Help       bool
	Version    bool
}
