package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/repmgr-go/repmgrd/pkg/logging"
)

// Load reads a key=value configuration file from path, applying it on
// top of Defaults(). Blank lines and lines starting with "#" are
// skipped; each remaining line is split on the first "=", both sides
// trimmed of whitespace, and the value stripped of surrounding quotes. Unknown keys are logged
// at warning and ignored, for forward compatibility with newer config
// files read by an older daemon.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	cfg := Defaults()
	cfg.ConfigPath = path

	if err := parseInto(cfg, f); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseInto(cfg *Config, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx < 0 {
			logging.DefaultLogger().Warn("config: ignoring malformed line",
				logging.Int("line", lineNo))
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := unquote(strings.TrimSpace(line[idx+1:]))

		if err := applyKey(cfg, key, value); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func applyKey(cfg *Config, key, value string) error {
	switch key {
	case "node":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: node must be an integer: %v", ErrBadConfig, err)
		}
		cfg.Node = n
	case "cluster_name":
		cfg.ClusterName = value
	case "conninfo":
		cfg.Conninfo = value
	case "failover":
		cfg.Failover = FailoverMode(strings.ToUpper(value))
	case "promote_command":
		cfg.PromoteCommand = value
	case "follow_command":
		cfg.FollowCommand = value
	case "loglevel":
		cfg.LogLevel = value
	case "logfacility":
		cfg.LogFacility = value
	case "monitor_interval":
		d, err := parseDuration(value, time.Second)
		if err != nil {
			return fmt.Errorf("%w: monitor_interval: %v", ErrBadConfig, err)
		}
		cfg.MonitorInterval = d
	case "reconnect_attempts":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: reconnect_attempts: %v", ErrBadConfig, err)
		}
		cfg.ReconnectAttempts = n
	case "reconnect_interval":
		d, err := parseDuration(value, time.Second)
		if err != nil {
			return fmt.Errorf("%w: reconnect_interval: %v", ErrBadConfig, err)
		}
		cfg.ReconnectInterval = d
	case "rediscover_attempts":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: rediscover_attempts: %v", ErrBadConfig, err)
		}
		cfg.RediscoverAttempts = n
	case "rediscover_interval":
		d, err := parseDuration(value, time.Second)
		if err != nil {
			return fmt.Errorf("%w: rediscover_interval: %v", ErrBadConfig, err)
		}
		cfg.RediscoverInterval = d
	case "metrics_listen_addr":
		cfg.MetricsListenAddr = value
	case "heartbeat_addr":
		cfg.HeartbeatAddr = value
	case "heartbeat_peers":
		cfg.HeartbeatPeers = splitNonEmpty(value, ",")
	case "archive_s3_bucket":
		cfg.ArchiveS3Bucket = value
	case "archive_interval":
		d, err := parseDuration(value, time.Hour)
		if err != nil {
			return fmt.Errorf("%w: archive_interval: %v", ErrBadConfig, err)
		}
		cfg.ArchiveInterval = d
	case "archive_prefix":
		cfg.ArchivePrefix = value
	default:
		logging.DefaultLogger().Warn("config: ignoring unknown key", logging.String("key", key))
	}
	return nil
}

// parseDuration accepts either a Go duration string ("20s", "5m") or a
// bare integer, interpreted in unit (matching the C daemon's
// plain-seconds config values).
func parseDuration(value string, unit time.Duration) (time.Duration, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("not a duration or integer: %q", value)
	}
	return time.Duration(n) * unit, nil
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
