package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/repmgr-go/repmgrd/pkg/dbsession"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginLeft(1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginLeft(1).MarginTop(1)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).MarginLeft(1)
)

type tickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type snapshotMsg struct {
	snapshot Snapshot
	err      error
}

type model struct {
	session     *dbsession.Session
	clusterName string
	interval    time.Duration
	table       table.Model
	lastErr     error
	takenAt     time.Time
}

func newModel(session *dbsession.Session, clusterName string, interval time.Duration) model {
	columns := []table.Column{
		{Title: "Node", Width: 6},
		{Title: "Role", Width: 10},
		{Title: "Last Seen", Width: 20},
		{Title: "Receive Lag", Width: 14},
		{Title: "Apply Lag", Width: 14},
	}
	t := table.New(table.WithColumns(columns), table.WithFocused(false), table.WithHeight(12))

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Bold(false)
	t.SetStyles(styles)

	return model{session: session, clusterName: clusterName, interval: interval, table: t}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), tickCmd(m.interval))
}

func (m model) fetch() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		snapshot, err := FetchSnapshot(ctx, m.session, m.clusterName)
		return snapshotMsg{snapshot: snapshot, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tickMsg:
		return m, m.fetch()
	case snapshotMsg:
		m.lastErr = msg.err
		if msg.err == nil {
			m.takenAt = msg.snapshot.TakenAt
			m.table.SetRows(rowsFor(msg.snapshot))
		}
		return m, tickCmd(m.interval)
	}
	return m, nil
}

func (m model) View() string {
	var s string
	s += titleStyle.Render(fmt.Sprintf("repmgrd-status: %s", m.clusterName)) + "\n\n"
	s += m.table.View() + "\n"
	if m.lastErr != nil {
		s += errStyle.Render("error: "+m.lastErr.Error()) + "\n"
	} else if !m.takenAt.IsZero() {
		s += helpStyle.Render("last refreshed " + m.takenAt.Format(time.RFC3339))
	}
	s += helpStyle.Render("  (q to quit)")
	return s
}

func rowsFor(s Snapshot) []table.Row {
	var rows []table.Row
	for _, member := range s.Members {
		lastSeen := "never"
		if !member.LastSeen.IsZero() {
			lastSeen = member.LastSeen.Format(time.RFC3339)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", member.NodeID),
			member.Role,
			lastSeen,
			fmt.Sprintf("%d B", member.ReceiveLagBytes),
			fmt.Sprintf("%d B", member.ApplyLagBytes),
		})
	}
	return rows
}
