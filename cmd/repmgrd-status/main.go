// Command repmgrd-status is a read-only viewer of cluster topology and
// replication lag: an interactive TUI by default, or a single
// non-interactive YAML snapshot with --format yaml.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/repmgr-go/repmgrd/pkg/config"
	"github.com/repmgr-go/repmgrd/pkg/dbsession"
)

func main() {
	configPath := flag.String("f", "", "path to configuration file")
	format := flag.String("format", "", "output format: leave empty for the interactive TUI, or \"yaml\" for a single snapshot")
	interval := flag.Duration("interval", 3*time.Second, "TUI refresh interval")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	session, err := dbsession.Open(ctx, cfg.Conninfo, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer session.Close(ctx)

	if *format == "yaml" {
		runSnapshot(ctx, session, cfg.ClusterName)
		return
	}

	runTUI(session, cfg.ClusterName, *interval)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, fmt.Errorf("repmgrd-status: -f <config file> is required")
	}
	return config.Load(path)
}

func runSnapshot(ctx context.Context, session *dbsession.Session, clusterName string) {
	snapshot, err := FetchSnapshot(ctx, session, clusterName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(snapshot)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(string(out))
}

func runTUI(session *dbsession.Session, clusterName string, interval time.Duration) {
	p := tea.NewProgram(newModel(session, clusterName, interval))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
