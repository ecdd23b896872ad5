package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/mutker/sysmon/internal/monitor"
)

// Sink forwards monitor results to a running program.
type Sink struct {
	send func(tea.Msg)
}

var _ monitor.Sink = (*Sink)(nil)

func NewSink(p *tea.Program) *Sink {
	return &Sink{send: p.Send}
}

func (s *Sink) Sessions(sessions monitor.Sessions) error {
	s.send(sessionsMsg(sessions))
	return nil
}

func (s *Sink) Round(r monitor.Round) error {
	s.send(roundMsg(r))
	return nil
}
