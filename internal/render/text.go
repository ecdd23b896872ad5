// Package render formats monitor rounds for a plain terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"codeberg.org/mutker/sysmon/internal/errors"
	"codeberg.org/mutker/sysmon/internal/monitor"
	"github.com/charmbracelet/lipgloss"
)

const (
	separator   = "---------------------------------------"
	clearScreen = "\033[H\033[2J"
)

type Options struct {
	Samples    int
	Delay      int
	Sequential bool
	Graphics   bool
	ShowSystem bool
	ShowUsers  bool
	CPUCount   int

	// MaxRSS reports the monitor's own resident high-water mark in kilobytes.
	MaxRSS func() (int64, error)
}

// Text is a monitor.Sink writing the classic report. In refreshing mode every
// round clears the screen and redraws all rounds so far; in sequential mode
// each round is appended below the previous one.
type Text struct {
	w    io.Writer
	opts Options

	heading lipgloss.Style

	sessions    monitor.Sessions
	memLines    []string
	cpuLines    []string
	prevCPU     float64
	prevVirtual float64
}

var _ monitor.Sink = (*Text)(nil)

func NewText(w io.Writer, opts Options) *Text {
	r := lipgloss.NewRenderer(w)
	return &Text{
		w:       w,
		opts:    opts,
		heading: r.NewStyle().Bold(true),
	}
}

func (t *Text) Sessions(s monitor.Sessions) error {
	t.sessions = s
	return nil
}

func (t *Text) Round(r monitor.Round) error {
	first := r.Index == 0

	mem := r.MemoryLine
	if t.opts.Graphics {
		virtual := r.Memory.VirtualUsedGB()
		mem += " " + MemoryGraphic(virtual-t.prevVirtual, virtual, first)
		t.prevVirtual = virtual

		t.cpuLines = append(t.cpuLines, CPUBar(r.CPUPercent, t.prevCPU, first))
	}
	t.memLines = append(t.memLines, mem)
	t.prevCPU = r.CPUPercent

	var b strings.Builder
	t.writeHeader(&b, r.Index)

	if t.opts.ShowSystem {
		b.WriteString(separator + "\n")
		t.writeMemory(&b, r.Index)
		if t.opts.ShowUsers {
			t.writeSessions(&b)
		}
		fmt.Fprintf(&b, "Number of CPU cores: %d\n", t.opts.CPUCount)
		fmt.Fprintf(&b, "total cpu use: %.2f%%\n", r.CPUPercent)
		for _, line := range t.cpuLines {
			b.WriteString(line + "\n")
		}
	} else {
		t.writeSessions(&b)
	}

	if _, err := io.WriteString(t.w, b.String()); err != nil {
		return errors.New().Wrap(errors.ErrRenderFailed, err)
	}
	return nil
}

func (t *Text) writeHeader(b *strings.Builder, iteration int) {
	if t.opts.Sequential {
		fmt.Fprintf(b, ">>> iteration %d\n", iteration)
	} else {
		b.WriteString(clearScreen)
		fmt.Fprintf(b, "Nbr of samples: %d-- every %d secs\n", t.opts.Samples, t.opts.Delay)
	}

	if t.opts.MaxRSS == nil {
		return
	}
	if kb, err := t.opts.MaxRSS(); err == nil {
		fmt.Fprintf(b, "Memory usage: %d kilobytes\n", kb)
	} else {
		b.WriteString("Failed to get resource usage info\n")
	}
}

// writeMemory prints every line so far when refreshing. Sequential mode
// prints one row per sample with only the current one filled in.
func (t *Text) writeMemory(b *strings.Builder, iteration int) {
	b.WriteString(t.heading.Render("### Memory ### (Phys.Used/Tot -- Virtual Used/Tot)") + "\n")

	if !t.opts.Sequential {
		for _, line := range t.memLines {
			b.WriteString(line + "\n")
		}
		return
	}

	for k := 0; k < t.opts.Samples; k++ {
		if k == iteration {
			b.WriteString(t.memLines[iteration])
		}
		b.WriteString("\n")
	}
}

func (t *Text) writeSessions(b *strings.Builder) {
	b.WriteString(separator + "\n")
	b.WriteString(t.heading.Render("### Sessions/users ###") + "\n")
	if t.sessions.Count == 0 || t.sessions.Blob == "" {
		b.WriteString("No active user sessions\n")
	} else {
		b.WriteString(t.sessions.Blob)
	}
	b.WriteString(separator + "\n")
}

// Footer writes the system information block printed after the last round.
func Footer(w io.Writer, block string) error {
	_, err := fmt.Fprintf(w, "------------------------------------\n%s----------------------------------\n", block)
	if err != nil {
		return errors.New().Wrap(errors.ErrRenderFailed, err)
	}
	return nil
}
