package hogwarts

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/simonbystrom/hogwarts/internal/house"
)

// Stage is the module's lifecycle phase.
type Stage int

const (
	// StageSelection lets the player browse associations with the cursor.
	StageSelection Stage = iota
	// StageResolutionPending waits for the player to name the winning house.
	StageResolutionPending
	// StageResolved is terminal.
	StageResolved
)

func (s Stage) String() string {
	switch s {
	case StageSelection:
		return "selection"
	case StageResolutionPending:
		return "resolution pending"
	case StageResolved:
		return "resolved"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

var (
	// ErrNoSelection is returned by cursor operations when there is nothing
	// to select, either because the set is empty or the stage has moved on.
	ErrNoSelection = errors.New("no association to select")
	// ErrOutOfRange is returned by Select for an invalid index.
	ErrOutOfRange = errors.New("index out of range")
	// ErrWrongStage is returned by Choose before the set has been emptied.
	ErrWrongStage = errors.New("house cup not decided yet")
	// ErrResolved is returned by Choose once the module is solved.
	ErrResolved = errors.New("module already solved")
)

// Reporter receives the module's outcome signals. Calls are fire-and-forget.
type Reporter interface {
	ReportSuccess()
	ReportFailure(reason string)
}

// Display is what the presentation layer shows for the selected association.
type Display struct {
	House house.House
	Text  string
}

// Option configures a Module.
type Option func(*Module)

// WithRand sets the random source used to pick a new cursor position after a
// house locks in.
func WithRand(rng *rand.Rand) Option {
	return func(m *Module) { m.rng = rng }
}

// WithLogger sets the logger. The module adds its instance id to every line.
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) { m.log = l }
}

// Module is the live house cup state: assignment set, cursor, points and
// stage. It is not safe for concurrent use; every trigger must run to
// completion before the next one is handled.
type Module struct {
	id          int
	set         *Set
	points      Points
	cursor      int
	stage       Stage
	tieTolerant bool
	excluded    map[string]bool
	seen        map[string]bool

	reporter Reporter
	rng      *rand.Rand
	log      *slog.Logger
}

// New starts a module from a generation. Houses left with nothing
// obtainable are disqualified up front, without a strike, and their
// associations dropped. A degenerate generation goes straight to
// StageResolutionPending.
func New(id int, gen Generation, reporter Reporter, opts ...Option) *Module {
	m := &Module{
		id:          id,
		set:         NewSet(gen.Associations),
		points:      gen.Points,
		tieTolerant: gen.TieTolerant,
		excluded:    make(map[string]bool, len(gen.Excluded)),
		seen:        make(map[string]bool),
		reporter:    reporter,
	}
	for _, name := range gen.Excluded {
		m.excluded[name] = true
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	m.log = m.log.With("module", id)

	for _, h := range house.All() {
		if m.points.Decided(h) || m.set.Obtainable(h, m.isExcluded) {
			continue
		}
		m.points.Disqualify(h)
		m.set.RemoveHouse(h)
		m.log.Info("nothing obtainable, disqualified", "house", h)
	}

	if m.set.Len() == 0 {
		m.enterResolution()
	} else {
		m.selectIndex(0)
	}
	return m
}

func (m *Module) ID() int           { return m.id }
func (m *Module) Stage() Stage      { return m.stage }
func (m *Module) Len() int          { return m.set.Len() }
func (m *Module) Cursor() int       { return m.cursor }
func (m *Module) TieTolerant() bool { return m.tieTolerant }

// At returns the association at index i of the live set.
func (m *Module) At(i int) Association {
	return m.set.At(i)
}

// Associations returns a copy of the live set.
func (m *Module) Associations() []Association {
	return m.set.Items()
}

// Points returns a copy of the house points.
func (m *Module) Points() Points {
	return m.points
}

// Current returns the association under the cursor.
func (m *Module) Current() (Association, bool) {
	if m.stage != StageSelection || m.set.Len() == 0 {
		return Association{}, false
	}
	return m.set.At(m.cursor), true
}

// Display returns the house and wrapped task text under the cursor.
func (m *Module) Display() (Display, bool) {
	a, ok := m.Current()
	if !ok {
		return Display{}, false
	}
	return Display{House: a.House, Text: WrapTaskName(a.Task)}, true
}

// Move shifts the cursor by delta around the ring.
func (m *Module) Move(delta int) error {
	if m.stage != StageSelection || m.set.Len() == 0 {
		return ErrNoSelection
	}
	n := m.set.Len()
	m.selectIndex(((m.cursor+delta)%n + n) % n)
	return nil
}

// Select moves the cursor to index i.
func (m *Module) Select(i int) error {
	if m.stage != StageSelection || m.set.Len() == 0 {
		return ErrNoSelection
	}
	if i < 0 || i >= m.set.Len() {
		return fmt.Errorf("select %d of %d: %w", i, m.set.Len(), ErrOutOfRange)
	}
	m.selectIndex(i)
	return nil
}

func (m *Module) selectIndex(i int) {
	m.cursor = i
	if d, ok := m.Display(); ok {
		m.log.Debug("display", "house", d.House, "text", d.Text)
	}
}

func (m *Module) isExcluded(task string) bool {
	return m.excluded[task]
}

// Observe feeds the current collection of completed task names. Only names
// never seen before are processed, in report order, so repeating a report is
// a no-op.
func (m *Module) Observe(completed []string) {
	var fresh []string
	for _, name := range completed {
		if m.seen[name] {
			continue
		}
		m.seen[name] = true
		fresh = append(fresh, name)
	}

	for _, name := range fresh {
		if m.stage != StageSelection {
			return
		}
		m.handleCompleted(name)
	}
}

func (m *Module) handleCompleted(task string) {
	sel := m.set.At(m.cursor)
	if task == sel.Task {
		m.handleSelectedCompleted(sel)
	} else {
		m.handleOtherCompleted(task, sel)
	}
	if m.stage == StageSelection && m.set.Len() == 0 {
		m.enterResolution()
	}
}

func (m *Module) handleSelectedCompleted(sel Association) {
	if m.points.Score(sel.House, sel.Points) {
		m.log.Info("solved while selected", "task", sel.Task, "house", sel.House, "points", sel.Points)
	} else {
		m.log.Info("solved while selected, house already decided", "task", sel.Task, "house", sel.House)
	}

	// The house is locked in and cannot collect anything else.
	m.set.RemoveHouse(sel.House)
	if m.set.Len() > 0 {
		m.selectIndex(m.rng.IntN(m.set.Len()))
	}
}

func (m *Module) handleOtherCompleted(task string, sel Association) {
	if !m.set.RemoveTask(task) {
		m.log.Debug("solved task not in play", "task", task)
		return
	}
	m.log.Info("solved while not selected", "task", task)

	// Removal shifts indices; follow the selected task by name.
	m.cursor = m.set.Index(sel.Task)

	for _, h := range house.All() {
		if m.points.Decided(h) || m.set.Obtainable(h, m.isExcluded) {
			continue
		}
		m.points.Disqualify(h)
		reason := fmt.Sprintf("solved all %s tasks while unselected", h)
		m.log.Info("strike", "reason", reason, "house", h)
		m.reporter.ReportFailure(reason)
	}
}

func (m *Module) enterResolution() {
	m.stage = StageResolutionPending
	m.cursor = 0

	best := m.points.Max()
	leaders := m.points.Leaders()
	names := make([]string, len(leaders))
	for i, h := range leaders {
		names[i] = h.String()
	}
	m.log.Info("stage 2 activated", "correct", strings.Join(names, ", "), "points", best)

	if len(leaders) > 1 && best >= 0 && !m.tieTolerant {
		reason := fmt.Sprintf("unresolved tie between %s", strings.Join(names, " and "))
		m.log.Info("strike", "reason", reason)
		m.reporter.ReportFailure(reason)
	}
}

// Choose submits h as the house cup winner. A correct choice solves the
// module; a wrong one reports a failure and leaves the stage unchanged.
func (m *Module) Choose(h house.House) (bool, error) {
	switch m.stage {
	case StageSelection:
		return false, ErrWrongStage
	case StageResolved:
		return false, ErrResolved
	}
	if !h.Valid() {
		return false, fmt.Errorf("choose %d: %w", int(h), ErrOutOfRange)
	}

	v, _ := m.points.Value(h)
	if !m.points.Decided(h) {
		v = Disqualified
	}
	if v == m.points.Max() {
		m.stage = StageResolved
		m.log.Info("house chosen, module solved", "house", h)
		m.reporter.ReportSuccess()
		return true, nil
	}

	m.log.Info("house chosen, strike", "house", h, "points", v)
	m.reporter.ReportFailure(fmt.Sprintf("%s did not win the house cup", h))
	return false, nil
}
