package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "repmgrd.conf")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ParsesKnownKeys(t *testing.T) {
	path := writeTempConfig(t, `
# a comment
node = 1
cluster_name = "prod"
conninfo = 'host=localhost dbname=repmgr'
failover = automatic
promote_command = /usr/bin/repmgr-promote.sh
reconnect_attempts = 20
reconnect_interval = 30s
monitor_interval = 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Node)
	assert.Equal(t, "prod", cfg.ClusterName)
	assert.Equal(t, "host=localhost dbname=repmgr", cfg.Conninfo)
	assert.Equal(t, FailoverAutomatic, cfg.Failover)
	assert.Equal(t, "/usr/bin/repmgr-promote.sh", cfg.PromoteCommand)
	assert.Equal(t, 20, cfg.ReconnectAttempts)
	assert.Equal(t, 30*time.Second, cfg.ReconnectInterval)
	assert.Equal(t, 5*time.Second, cfg.MonitorInterval)
}

func TestLoad_UnknownFileReturnsErrFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/repmgrd.conf")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoad_MalformedLineSkippedNotFatal(t *testing.T) {
	path := writeTempConfig(t, "this line has no equals sign\nnode = 2\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Node)
}

func TestLoad_BadIntegerReturnsErrBadConfig(t *testing.T) {
	path := writeTempConfig(t, "node = not-a-number\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrBadConfig)
}

func TestLoad_AppliesDefaultsForUnsetKeys(t *testing.T) {
	path := writeTempConfig(t, "node = 1\ncluster_name = c\nconninfo = x\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, FailoverManual, cfg.Failover)
	assert.Equal(t, 15, cfg.ReconnectAttempts)
	assert.Equal(t, 20*time.Second, cfg.ReconnectInterval)
	assert.Equal(t, 6, cfg.RediscoverAttempts)
	assert.Equal(t, 300*time.Second, cfg.RediscoverInterval)
	assert.Equal(t, 3*time.Second, cfg.MonitorInterval)
}

func TestParseFlags_ConfigWinsOverFile(t *testing.T) {
	opts, err := ParseFlags([]string{"-f", "/tmp/other.conf", "-v"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.conf", opts.ConfigPath)
	assert.True(t, opts.Verbose)

	cfg := Defaults()
	cfg.ConfigPath = "/tmp/original.conf"
	cfg = Merge(cfg, opts)
	assert.Equal(t, "/tmp/other.conf", cfg.ConfigPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestParseFlags_HelpReturnsSentinel(t *testing.T) {
	_, err := ParseFlags([]string{"--help"})
	assert.ErrorIs(t, err, ErrHelpRequested)

	_, err = ParseFlags([]string{"-?"})
	assert.ErrorIs(t, err, ErrHelpRequested)
}

func TestParseFlags_VersionReturnsSentinel(t *testing.T) {
	_, err := ParseFlags([]string{"--version"})
	assert.ErrorIs(t, err, ErrVersionRequested)

	_, err = ParseFlags([]string{"-V"})
	assert.ErrorIs(t, err, ErrVersionRequested)
}

func TestValidate_RejectsMissingRequiredFields(t *testing.T) {
	cfg := Defaults()
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrBadConfig)
}

func TestValidate_RejectsUnknownFailoverMode(t *testing.T) {
	cfg := Defaults()
	cfg.Node = 1
	cfg.ClusterName = "c"
	cfg.Conninfo = "host=localhost"
	cfg.Failover = "BOGUS"

	assert.ErrorIs(t, cfg.Validate(), ErrBadConfig)
}

func TestValidate_AcceptsCompleteConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Node = 1
	cfg.ClusterName = "c"
	cfg.Conninfo = "host=localhost"

	assert.NoError(t, cfg.Validate())
}

func TestEnsurePassword_NoopWhenPasswordAlreadyPresent(t *testing.T) {
	cfg := &Config{Conninfo: "host=localhost password=secret"}
	require.NoError(t, EnsurePassword(cfg))
	assert.Equal(t, "host=localhost password=secret", cfg.Conninfo)
}
