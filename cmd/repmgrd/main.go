// Command repmgrd is the replication manager daemon: it monitors a
// PostgreSQL standby's connection to its primary, reports lag, and
// drives reconnect or failover when that connection is lost.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/repmgr-go/repmgrd/pkg/archive"
	"github.com/repmgr-go/repmgrd/pkg/config"
	"github.com/repmgr-go/repmgrd/pkg/dbsession"
	"github.com/repmgr-go/repmgrd/pkg/heartbeat"
	"github.com/repmgr-go/repmgrd/pkg/logging"
	"github.com/repmgr-go/repmgrd/pkg/metrics"
	"github.com/repmgr-go/repmgrd/pkg/orchestrator"
	"github.com/repmgr-go/repmgrd/pkg/supervisor"
)

const version = "1.0.0"

func main() {
	opts, err := config.ParseFlags(os.Args[1:])
	switch {
	case err == config.ErrHelpRequested:
		printUsage()
		os.Exit(orchestrator.ExitSuccess)
	case err == config.ErrVersionRequested:
		fmt.Println("repmgrd", version)
		os.Exit(orchestrator.ExitSuccess)
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(orchestrator.ExitBadConfig)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(orchestrator.ExitBadConfig)
	}

	log := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel), cfg.LogFacility).
		With(logging.NodeID(cfg.Node), logging.ClusterName(cfg.ClusterName))

	reg := metrics.NewRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Notice("repmgrd: received shutdown signal")
		cancel()
	}()

	components, hb := buildComponents(ctx, cfg, log, reg)

	code := orchestrator.Run(ctx, cfg, log, reg, components, hb)
	os.Exit(code)
}

func loadConfig(opts *config.CLIOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg = config.Defaults()
	}
	if err != nil {
		return nil, err
	}

	cfg = config.Merge(cfg, opts)

	if err := config.EnsurePassword(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildComponents wires the optional side channels (heartbeat surveyor,
// metrics HTTP server, monitor archiver) that run alongside the tick
// loop. Each is independently optional; a component that cannot be
// constructed is skipped with a warning rather than failing startup.
func buildComponents(ctx context.Context, cfg *config.Config, log logging.Logger, reg *metrics.Registry) ([]orchestrator.Component, supervisor.LastSeen) {
	var components []orchestrator.Component
	var hb supervisor.LastSeen

	if cfg.HeartbeatAddr != "" && len(cfg.HeartbeatPeers) > 0 {
		surveyor, err := heartbeat.NewSurveyor(heartbeat.NewNNGSocketFactory(), cfg.HeartbeatPeers, cfg.MonitorInterval, log)
		if err != nil {
			log.Warn("repmgrd: failed to construct heartbeat surveyor", logging.Error(err))
		} else {
			components = append(components, surveyor)
			hb = surveyor
		}
	}

	if cfg.MetricsListenAddr != "" {
		components = append(components, newMetricsServer(cfg.MetricsListenAddr, reg, log))
	}

	if cfg.ArchiveS3Bucket != "" {
		archiveSession, err := dbsession.Open(ctx, cfg.Conninfo, false)
		if err != nil {
			log.Warn("repmgrd: failed to open archiver session", logging.Error(err))
		} else {
			archiver, err := archive.NewArchiver(ctx, archiveSession, cfg.ClusterName, cfg.ArchiveS3Bucket, cfg.ArchivePrefix, cfg.ArchiveInterval, log)
			if err != nil {
				log.Warn("repmgrd: failed to construct monitor archiver", logging.Error(err))
			} else if archiver != nil {
				components = append(components, archiver)
			}
		}
	}

	return components, hb
}

// metricsServer serves the Prometheus registry over HTTP as an
// orchestrator.Component.
type metricsServer struct {
	addr   string
	server *http.Server
	log    logging.Logger
}

func newMetricsServer(addr string, reg *metrics.Registry, log logging.Logger) *metricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
	return &metricsServer{
		addr:   addr,
		server: &http.Server{Addr: addr, Handler: mux},
		log:    log,
	}
}

func (m *metricsServer) Name() string { return "metrics-http-server" }

func (m *metricsServer) Start(ctx context.Context) error {
	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.log.Warn("repmgrd: metrics server exited", logging.Error(err))
		}
	}()
	return nil
}

func (m *metricsServer) Stop(ctx context.Context) error {
	return m.server.Shutdown(ctx)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `repmgrd - PostgreSQL replication manager daemon

Usage:
  repmgrd -f <config file> [options]

Options:
  -f, --config FILE   path to configuration file
  -v, --verbose       verbose logging (DEBUG level)
  --help, -?          show this help and exit
  --version, -V       show version and exit`)
}
