// Package tui renders monitor rounds as a live bubbletea view.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codeberg.org/mutker/sysmon/internal/history"
	"codeberg.org/mutker/sysmon/internal/monitor"
	"codeberg.org/mutker/sysmon/internal/platform"
	"codeberg.org/mutker/sysmon/internal/render"
)

const maxSessionRows = 8

type Options struct {
	Samples  int
	Interval time.Duration
	CPUCount int
	Info     platform.SystemInfo
	Uptime   platform.Uptime
}

// Model renders the latest round, the CPU history and the session list.
type Model struct {
	opts     Options
	history  history.Reader
	cancel   context.CancelFunc
	latest   monitor.Round
	sessions monitor.Sessions
	rounds   int
	done     bool
	err      error
	width    int
	height   int
}

// Messages
type (
	roundMsg    monitor.Round
	sessionsMsg monitor.Sessions

	// DoneMsg reports the end of the monitoring run.
	DoneMsg struct{ Err error }
)

// New builds a model. cancel stops the monitoring run when the user quits;
// hist may be nil.
func New(opts Options, hist history.Reader, cancel context.CancelFunc) *Model {
	return &Model{
		opts:    opts,
		history: hist,
		cancel:  cancel,
		width:   120,
		height:  40,
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case sessionsMsg:
		m.sessions = monitor.Sessions(msg)
	case roundMsg:
		m.latest = monitor.Round(msg)
		m.rounds++
	case DoneMsg:
		// keep the final state on screen until the user quits
		m.done = true
		m.err = msg.Err
	}
	return m, nil
}

func (m *Model) View() string {
	r := m.latest

	status := fmt.Sprintf("sample %d/%d every %s", m.rounds, m.opts.Samples, m.opts.Interval)
	if m.done {
		status += "  finished"
	}
	header := titleStyle.Render("sysmon") + "  " + subtleStyle.Render(status)

	cpuBody := fmt.Sprintf("%s  %d cores", render.Gauge(r.CPUPercent, gaugeWidth), m.opts.CPUCount)
	mem := r.Memory
	memBody := fmt.Sprintf("%s  %.2f/%.2f GB\nSwap %3.0f%%  virtual %.2f/%.2f GB",
		render.Gauge(mem.PhysPercent(), gaugeWidth),
		mem.PhysUsedGB, mem.PhysTotalGB,
		mem.SwapPercent(), mem.VirtualUsedGB(), mem.VirtualTotalGB())

	if m.history != nil {
		series := m.history.CPUSeries()
		if spark := render.Sparkline(series); spark != "" {
			cpuBody += fmt.Sprintf("\n%s  avg %.1f%%", spark, history.Average(series))
		}
		if spark := render.Sparkline(percentOf(m.history.MemorySeries(), mem.VirtualTotalGB())); spark != "" {
			memBody += "\n" + spark
		}
	}
	cpuCard := card("CPU", cpuBody)
	memCard := card("Memory", memBody)

	line1 := lipgloss.JoinHorizontal(lipgloss.Top, cpuCard, memCard)
	line2 := lipgloss.JoinHorizontal(lipgloss.Top, m.sessionsCard(), m.systemCard())

	parts := []string{header, line1, line2}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	}
	parts = append(parts, subtleStyle.Render("q to quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) sessionsCard() string {
	lines := m.sessions.Lines()
	if len(lines) == 0 {
		return card("Sessions", "No active user sessions")
	}
	shown := min(maxSessionRows, len(lines))
	body := strings.Join(lines[:shown], "\n")
	if shown < len(lines) {
		body += fmt.Sprintf("\n+%d more", len(lines)-shown)
	}
	return card(fmt.Sprintf("Sessions (%d)", m.sessions.Count), strings.ReplaceAll(body, "\t", ""))
}

func (m *Model) systemCard() string {
	i := m.opts.Info
	return card("System", fmt.Sprintf("%s %s %s\n%s\nup %s",
		i.SysName, i.Release, i.Machine, i.NodeName, render.UptimeString(m.opts.Uptime)))
}

// percentOf scales values against total. A zero total yields zeros.
func percentOf(values []float64, total float64) []float64 {
	out := make([]float64, len(values))
	if total <= 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / total * 100
	}
	return out
}
