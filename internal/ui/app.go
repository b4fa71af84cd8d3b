package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/hogwarts/internal/command"
	"github.com/simonbystrom/hogwarts/internal/config"
	"github.com/simonbystrom/hogwarts/internal/hogwarts"
	"github.com/simonbystrom/hogwarts/internal/house"
	"github.com/simonbystrom/hogwarts/internal/monitor"
)

const maxNotifications = 10

type tickMsg time.Time

// walkStepMsg fires when the next step of walk id is due. Steps of a walk
// that has since been cancelled or replaced carry a stale id and are dropped.
type walkStepMsg struct{ id int }

// solvedHookMsg reports the result of the solved hook.
type solvedHookMsg struct{ err error }

type AppModel struct {
	module  *hogwarts.Module
	interp  *command.Interpreter
	signals *Signals
	styles  Styles

	prompt    textinput.Model
	prompting bool
	houses    list.Model

	walk   *command.Walk
	walkID int

	notifications []notification
	runID         string
	startedAt     time.Time
	now           time.Time
	onSolved      func() error
	solvedFired   bool

	width  int
	height int
}

// AppOption configures an AppModel.
type AppOption func(*AppModel)

// WithSolvedHook registers fn to run once, off the update loop, after the
// module is solved.
func WithSolvedHook(fn func() error) AppOption {
	return func(m *AppModel) { m.onSolved = fn }
}

// WithRunID shows id in the header.
func WithRunID(id string) AppOption {
	return func(m *AppModel) { m.runID = id }
}

// NewApp builds the UI around mod. signals must be the Reporter mod was
// created with.
func NewApp(cfg config.Config, mod *hogwarts.Module, signals *Signals, opts ...AppOption) AppModel {
	s := NewStyles(cfg.Colors)
	now := time.Now()
	m := AppModel{
		module:  mod,
		signals: signals,
		styles:  s,
		interp: command.New(mod,
			command.WithFindDelay(cfg.Commands.FindDelay()),
			command.WithCycleDelay(cfg.Commands.CycleDelay()),
		),
		prompt:    newPrompt(s),
		houses:    newHousePicker(s),
		startedAt: now,
		now:       now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	// Anything reported while the module was built.
	m.flushSignals()
	return m
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func stepCmd(id int, delay time.Duration) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return walkStepMsg{id: id} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return walkStepMsg{id: id}
	})
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.houses.SetWidth(max(msg.Width-8, 20))
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()

	case monitor.CompletionsMsg:
		n, cursor := m.module.Len(), m.module.Cursor()
		m.module.Observe(msg.Names)
		// The walk's step count was computed against the old set.
		if m.walk != nil && (m.module.Stage() != hogwarts.StageSelection ||
			m.module.Len() != n || m.module.Cursor() != cursor) {
			m.cancelWalk()
			m.notify("walk cancelled", m.styles.Notification)
		}
		cmd := m.flushSignals()
		return m, cmd

	case walkStepMsg:
		return m.stepWalk(msg)

	case solvedHookMsg:
		if msg.err != nil {
			slog.Warn("solved hook failed", "module", m.module.ID(), "error", msg.err)
			m.notify(fmt.Sprintf("could not record the solve: %v", msg.err), m.styles.Error)
		}
		return m, nil

	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m AppModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case ":", "/":
		m.prompting = true
		m.prompt.Reset()
		m.prompt.Focus()
		return m, textinput.Blink
	case "esc":
		if m.walk != nil {
			m.cancelWalk()
			m.notify("walk cancelled", m.styles.Notification)
		}
		return m, nil
	}

	switch m.module.Stage() {
	case hogwarts.StageSelection:
		return m.updateSelection(msg)
	case hogwarts.StageResolutionPending:
		return m.updateResolution(msg)
	}
	return m, nil
}

func (m AppModel) updateSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Manual navigation cancels any walk in progress.
	var err error
	switch msg.String() {
	case "left", ",":
		m.cancelWalk()
		err = m.module.Move(-1)
	case "right", ".":
		m.cancelWalk()
		err = m.module.Move(1)
	case "home", "g":
		m.cancelWalk()
		err = m.module.Select(0)
	case "end", "G":
		m.cancelWalk()
		err = m.module.Select(m.module.Len() - 1)
	default:
		return m, nil
	}
	if err != nil {
		m.notify(err.Error(), m.styles.Error)
	}
	cmd := m.flushSignals()
	return m, cmd
}

func (m AppModel) updateResolution(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "1", "2", "3", "4":
		return m.choose(house.House(key[0] - '1'))
	case "enter":
		if it, ok := m.houses.SelectedItem().(houseItem); ok {
			return m.choose(it.house)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.houses, cmd = m.houses.Update(msg)
	return m, cmd
}

func (m AppModel) choose(h house.House) (tea.Model, tea.Cmd) {
	slog.Info("house pressed", "module", m.module.ID(), "house", h)
	if _, err := m.module.Choose(h); err != nil {
		m.notify(err.Error(), m.styles.Error)
	}
	cmd := m.flushSignals()
	return m, cmd
}

func (m AppModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		if text == "" {
			return m, nil
		}
		return m.runCommand(text)
	case "esc":
		m.closePrompt()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
}

func (m *AppModel) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
	m.prompt.Reset()
}

// runCommand hands text to the interpreter. A new command always cancels the
// walk in progress.
func (m AppModel) runCommand(text string) (tea.Model, tea.Cmd) {
	m.cancelWalk()
	res := m.interp.Handle(text)
	slog.Debug("command", "module", m.module.ID(), "input", text, "result", res.Kind)

	switch res.Kind {
	case command.Rejected:
		m.notify(res.Message, m.styles.Error)
		return m, nil
	case command.Info:
		m.notify(res.Message, m.styles.Notification)
		return m, nil
	case command.Moves:
		m.notify(res.Message, m.styles.Notification)
		cmd := m.startWalk(res.Walk)
		return m, cmd
	case command.Choice:
		cmd := m.flushSignals()
		return m, cmd
	}
	return m, nil
}

func (m *AppModel) startWalk(w *command.Walk) tea.Cmd {
	step, ok := w.Peek()
	if !ok {
		return nil
	}
	m.walkID++
	m.walk = w
	return stepCmd(m.walkID, step.Delay)
}

func (m *AppModel) cancelWalk() {
	if m.walk == nil {
		return
	}
	m.walk.Cancel()
	m.walk = nil
	m.walkID++
}

func (m AppModel) stepWalk(msg walkStepMsg) (tea.Model, tea.Cmd) {
	if m.walk == nil || msg.id != m.walkID {
		return m, nil
	}
	step, ok := m.walk.Next()
	if !ok {
		m.walk = nil
		return m, nil
	}
	if err := m.module.Move(step.Delta); err != nil {
		m.cancelWalk()
		cmd := m.flushSignals()
		return m, cmd
	}

	cmds := []tea.Cmd{m.flushSignals()}
	if next, ok := m.walk.Peek(); ok {
		cmds = append(cmds, stepCmd(m.walkID, next.Delay))
	} else {
		m.walk = nil
	}
	return m, tea.Batch(cmds...)
}

// flushSignals turns pending module reports into notifications and, the
// first time the module is solved, schedules the solved hook.
func (m *AppModel) flushSignals() tea.Cmd {
	for _, sig := range m.signals.drain() {
		if sig.Success {
			m.notify("Module solved!", m.styles.Success)
			continue
		}
		m.notify("Strike: "+sig.Reason, m.styles.Error)
	}

	if !m.signals.Solved() || m.solvedFired {
		return nil
	}
	m.solvedFired = true
	if m.onSolved == nil {
		return nil
	}
	hook := m.onSolved
	return func() tea.Msg { return solvedHookMsg{err: hook()} }
}

func (m *AppModel) notify(text string, style lipgloss.Style) {
	for _, line := range strings.Split(text, "\n") {
		m.notifications = append(m.notifications, notification{
			text:  line,
			time:  m.now,
			style: style,
		})
	}
	if len(m.notifications) > maxNotifications {
		m.notifications = m.notifications[len(m.notifications)-maxNotifications:]
	}
}
