package monitor

import (
	"context"
	"log/slog"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const DefaultInterval = 500 * time.Millisecond

// CompletionsMsg carries the latest snapshot of completed task names.
type CompletionsMsg struct {
	Names []string
}

// CompletionLister reports completed task names in completion order.
type CompletionLister interface {
	ListCompletedTaskNames() ([]string, error)
}

// Sender delivers messages to the running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Monitor polls a CompletionLister and forwards changed snapshots to the
// program. It never touches the module; the UI applies each snapshot inside
// Update.
type Monitor struct {
	ctx      context.Context
	lister   CompletionLister
	program  Sender
	interval time.Duration
	last     []string
	polled   bool
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the poll interval.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

func New(ctx context.Context, lister CompletionLister, opts ...Option) *Monitor {
	m := &Monitor{
		ctx:      ctx,
		lister:   lister,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Monitor) SetProgram(p Sender) {
	m.program = p
}

// Start polls until the context is cancelled. Run it in its own goroutine.
func (m *Monitor) Start() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Poll()
	for {
		select {
		case <-m.ctx.Done():
			slog.Info("monitor stopped: context cancelled")
			return
		case <-ticker.C:
		}
		m.Poll()
	}
}

// Poll reads one snapshot and sends it if it differs from the last one sent.
// It reports whether a message was sent.
func (m *Monitor) Poll() bool {
	names, err := m.lister.ListCompletedTaskNames()
	if err != nil {
		slog.Warn("list completed tasks", "error", err)
		return false
	}
	if m.polled && slices.Equal(names, m.last) {
		return false
	}
	m.polled = true
	m.last = slices.Clone(names)

	if m.program == nil {
		return false
	}
	slog.Debug("completions changed", "count", len(names))
	m.program.Send(CompletionsMsg{Names: slices.Clone(names)})
	return true
}
