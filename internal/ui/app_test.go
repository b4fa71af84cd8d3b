package ui

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/hogwarts/internal/config"
	"github.com/simonbystrom/hogwarts/internal/hogwarts"
	"github.com/simonbystrom/hogwarts/internal/house"
	"github.com/simonbystrom/hogwarts/internal/monitor"
)

func newTestModule(t *testing.T, gen hogwarts.Generation) (*hogwarts.Module, *Signals) {
	t.Helper()
	sig := NewSignals()
	mod := hogwarts.New(1, gen, sig,
		hogwarts.WithRand(rand.New(rand.NewPCG(1, 2))),
		hogwarts.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return mod, sig
}

// threeTasks gives Gryffindor, Ravenclaw and Slytherin one task each.
func threeTasks() hogwarts.Generation {
	gen := hogwarts.Generation{
		Associations: []hogwarts.Association{
			{House: house.Gryffindor, Task: "Wires", Points: 5},
			{House: house.Ravenclaw, Task: "Memory", Points: 4},
			{House: house.Slytherin, Task: "Maze", Points: 3},
		},
	}
	gen.Points.Disqualify(house.Hufflepuff)
	return gen
}

// oneTask leaves only Gryffindor in play.
func oneTask() hogwarts.Generation {
	gen := hogwarts.Generation{
		Associations: []hogwarts.Association{{House: house.Gryffindor, Task: "Wires", Points: 5}},
	}
	for _, h := range []house.House{house.Ravenclaw, house.Slytherin, house.Hufflepuff} {
		gen.Points.Disqualify(h)
	}
	return gen
}

func newTestApp(t *testing.T, gen hogwarts.Generation, opts ...AppOption) AppModel {
	t.Helper()
	mod, sig := newTestModule(t, gen)
	return NewApp(config.Default(), mod, sig, opts...)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(AppModel), cmd
}

func hasNotification(m AppModel, substr string) bool {
	for _, n := range m.notifications {
		if strings.Contains(n.text, substr) {
			return true
		}
	}
	return false
}

func TestAppModel_KeyQ_Quits(t *testing.T) {
	m := newTestApp(t, threeTasks())

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected a command from 'q' key")
	}
	msg := cmd()
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", msg)
	}
}

func TestAppModel_WindowSizeMsg(t *testing.T) {
	m := newTestApp(t, threeTasks())

	app, _ := update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if app.width != 120 {
		t.Errorf("width = %d, want 120", app.width)
	}
	if app.height != 40 {
		t.Errorf("height = %d, want 40", app.height)
	}
}

func TestAppModel_ArrowsMoveCursor(t *testing.T) {
	m := newTestApp(t, threeTasks())

	app, _ := update(t, m, key("right"))
	if app.module.Cursor() != 1 {
		t.Errorf("cursor after right = %d, want 1", app.module.Cursor())
	}
	app, _ = update(t, app, key(","))
	app, _ = update(t, app, key(","))
	if app.module.Cursor() != 2 {
		t.Errorf("cursor after two lefts = %d, want 2", app.module.Cursor())
	}
}

func TestAppModel_HomeEndSelect(t *testing.T) {
	m := newTestApp(t, threeTasks())

	app, _ := update(t, m, key("end"))
	if app.module.Cursor() != 2 {
		t.Errorf("cursor after end = %d, want 2", app.module.Cursor())
	}
	app, _ = update(t, app, key("home"))
	if app.module.Cursor() != 0 {
		t.Errorf("cursor after home = %d, want 0", app.module.Cursor())
	}
	app, _ = update(t, app, key("G"))
	if app.module.Cursor() != 2 {
		t.Errorf("cursor after G = %d, want 2", app.module.Cursor())
	}

	model, _ := app.runCommand("cycle 3")
	app = model.(AppModel)
	app, _ = update(t, app, key("g"))
	if app.walk != nil {
		t.Error("jumping should cancel the walk")
	}
}

func TestAppModel_PromptRunsCycle(t *testing.T) {
	m := newTestApp(t, threeTasks())

	app, _ := update(t, m, key(":"))
	if !app.prompting {
		t.Fatal("':' should open the prompt")
	}
	app, _ = update(t, app, key("cycle 2"))
	app, cmd := update(t, app, key("enter"))
	if app.prompting {
		t.Error("enter should close the prompt")
	}
	if app.walk == nil || cmd == nil {
		t.Fatal("expected a walk to start")
	}
	if app.module.Cursor() != 0 {
		t.Fatal("the walk must not move before its first step fires")
	}

	// The first step has no delay, so its command fires immediately.
	step, ok := cmd().(walkStepMsg)
	if !ok {
		t.Fatal("expected a walkStepMsg")
	}
	app, _ = update(t, app, step)
	if app.module.Cursor() != 1 {
		t.Errorf("cursor after first step = %d, want 1", app.module.Cursor())
	}
	if app.walk == nil {
		t.Fatal("walk should still have one step left")
	}

	app, _ = update(t, app, walkStepMsg{id: app.walkID})
	if app.module.Cursor() != 2 {
		t.Errorf("cursor after second step = %d, want 2", app.module.Cursor())
	}
	if app.walk != nil {
		t.Error("walk should be finished")
	}
}

func TestAppModel_EscCancelsWalk(t *testing.T) {
	m := newTestApp(t, threeTasks())

	model, cmd := m.runCommand("cycle 3")
	app, _ := update(t, model.(AppModel), cmd())
	staleID := app.walkID

	app, _ = update(t, app, key("esc"))
	if app.walk != nil {
		t.Fatal("esc should cancel the walk")
	}
	app, _ = update(t, app, walkStepMsg{id: staleID})
	if app.module.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1 (no rollback, no further steps)", app.module.Cursor())
	}
	if !hasNotification(app, "walk cancelled") {
		t.Error("expected a cancel notification")
	}
}

func TestAppModel_ManualMoveCancelsWalk(t *testing.T) {
	m := newTestApp(t, threeTasks())

	model, _ := m.runCommand("find maze")
	app := model.(AppModel)
	if app.walk == nil {
		t.Fatal("expected a walk")
	}
	staleID := app.walkID

	app, _ = update(t, app, key("right"))
	if app.walk != nil {
		t.Error("manual move should cancel the walk")
	}
	app, _ = update(t, app, walkStepMsg{id: staleID})
	if app.module.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", app.module.Cursor())
	}
}

func TestAppModel_CompletionShrinkingSetCancelsWalk(t *testing.T) {
	m := newTestApp(t, threeTasks())

	model, _ := m.runCommand("find maze")
	app := model.(AppModel)
	if app.walk == nil {
		t.Fatal("expected a walk")
	}
	staleID := app.walkID

	app, _ = update(t, app, monitor.CompletionsMsg{Names: []string{"Memory"}})
	if app.module.Len() != 2 {
		t.Fatalf("len = %d, want 2", app.module.Len())
	}
	if app.walk != nil {
		t.Fatal("a walk planned against the old set should be cancelled")
	}
	if !hasNotification(app, "walk cancelled") {
		t.Errorf("notifications = %+v", app.notifications)
	}
	app, _ = update(t, app, walkStepMsg{id: staleID})
	if app.module.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", app.module.Cursor())
	}
}

func TestAppModel_UnrelatedCompletionKeepsWalk(t *testing.T) {
	m := newTestApp(t, threeTasks())

	model, _ := m.runCommand("find maze")
	app := model.(AppModel)

	app, _ = update(t, app, monitor.CompletionsMsg{Names: []string{"Keypad"}})
	if app.walk == nil {
		t.Error("a completion that leaves the set alone should not cancel the walk")
	}
}

func TestAppModel_CommandRejection(t *testing.T) {
	m := newTestApp(t, threeTasks())

	model, cmd := m.runCommand("gryffindor")
	app := model.(AppModel)
	if cmd != nil {
		t.Error("rejection should not schedule anything")
	}
	if !hasNotification(app, "not decided") {
		t.Errorf("notifications = %+v", app.notifications)
	}

	model, _ = app.runCommand("find wire cutter")
	app = model.(AppModel)
	if !hasNotification(app, "not found") {
		t.Errorf("notifications = %+v", app.notifications)
	}
}

func TestAppModel_CompletionsStrike(t *testing.T) {
	m := newTestApp(t, threeTasks())

	app, _ := update(t, m, monitor.CompletionsMsg{Names: []string{"Maze"}})
	if app.signals.Strikes() != 1 {
		t.Errorf("strikes = %d, want 1", app.signals.Strikes())
	}
	if !hasNotification(app, "Strike:") {
		t.Errorf("notifications = %+v", app.notifications)
	}

	// Same snapshot again changes nothing.
	app, _ = update(t, app, monitor.CompletionsMsg{Names: []string{"Maze"}})
	if app.signals.Strikes() != 1 {
		t.Errorf("strikes after repeat = %d, want 1", app.signals.Strikes())
	}
}

func TestAppModel_ResolutionByDigit(t *testing.T) {
	hookCalls := 0
	m := newTestApp(t, oneTask(), WithSolvedHook(func() error {
		hookCalls++
		return nil
	}))

	app, _ := update(t, m, monitor.CompletionsMsg{Names: []string{"Wires"}})
	if app.module.Stage() != hogwarts.StageResolutionPending {
		t.Fatalf("stage = %s", app.module.Stage())
	}

	app, cmd := update(t, app, key("2"))
	if cmd != nil {
		t.Error("wrong answer should not fire the solved hook")
	}
	if app.signals.Strikes() != 1 || app.module.Stage() != hogwarts.StageResolutionPending {
		t.Errorf("after wrong answer: strikes %d stage %s", app.signals.Strikes(), app.module.Stage())
	}

	app, cmd = update(t, app, key("1"))
	if app.module.Stage() != hogwarts.StageResolved {
		t.Fatalf("stage = %s, want resolved", app.module.Stage())
	}
	if cmd == nil {
		t.Fatal("expected the solved hook command")
	}
	app, _ = update(t, app, cmd())
	if hookCalls != 1 {
		t.Errorf("hook calls = %d, want 1", hookCalls)
	}
	if !hasNotification(app, "Module solved!") {
		t.Errorf("notifications = %+v", app.notifications)
	}

	// Keys after the solve do nothing.
	app, cmd = update(t, app, key("1"))
	if cmd != nil || hookCalls != 1 {
		t.Error("solved module should ignore further choices")
	}
}

func TestAppModel_ResolutionByList(t *testing.T) {
	m := newTestApp(t, oneTask())
	app, _ := update(t, m, monitor.CompletionsMsg{Names: []string{"Wires"}})

	// The list starts on Gryffindor.
	app, _ = update(t, app, key("enter"))
	if app.module.Stage() != hogwarts.StageResolved {
		t.Errorf("stage = %s, want resolved", app.module.Stage())
	}
}

func TestAppModel_SolvedHookError(t *testing.T) {
	m := newTestApp(t, oneTask(), WithSolvedHook(func() error {
		return errors.New("disk full")
	}))
	app, _ := update(t, m, monitor.CompletionsMsg{Names: []string{"Wires"}})
	model, cmd := app.runCommand("g")
	app = model.(AppModel)
	if cmd == nil {
		t.Fatal("expected the solved hook command")
	}
	app, _ = update(t, app, cmd())
	if !hasNotification(app, "disk full") {
		t.Errorf("notifications = %+v", app.notifications)
	}
}

func TestAppModel_View(t *testing.T) {
	m := newTestApp(t, threeTasks(), WithRunID("1b4e28ba-2fa1-11d2-883f-0016d3cca427"))
	app, _ := update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := app.View()
	for _, want := range []string{"GRYFFINDOR", "Wires", "1 / 3", "run 1b4e28ba", "selection"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	app, _ = update(t, app, monitor.CompletionsMsg{Names: []string{"Wires", "Memory", "Maze"}})
	view = app.View()
	if !strings.Contains(view, "Which house won") {
		t.Error("resolution view should ask for the winner")
	}
}
