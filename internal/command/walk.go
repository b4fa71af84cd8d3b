package command

import "time"

// Step is a single cursor move preceded by a pause.
type Step struct {
	Delta int
	Delay time.Duration
}

// Walk is a cancellable sequence of single-step cursor moves. The first step
// carries no delay; every later step waits its Delay before moving.
//
// A Walk is not safe for concurrent use. The UI drives it one step per tick
// from its update loop.
type Walk struct {
	steps     []Step
	next      int
	cancelled bool
}

func newWalk(delta, count int, delay time.Duration) *Walk {
	steps := make([]Step, count)
	for i := range steps {
		steps[i] = Step{Delta: delta, Delay: delay}
	}
	if count > 0 {
		steps[0].Delay = 0
	}
	return &Walk{steps: steps}
}

// Next returns the next step to issue. It reports false once the walk is
// exhausted or cancelled.
func (w *Walk) Next() (Step, bool) {
	if w.cancelled || w.next >= len(w.steps) {
		return Step{}, false
	}
	s := w.steps[w.next]
	w.next++
	return s, true
}

// Peek returns the next step without consuming it.
func (w *Walk) Peek() (Step, bool) {
	if w.cancelled || w.next >= len(w.steps) {
		return Step{}, false
	}
	return w.steps[w.next], true
}

// Cancel stops the walk. Steps already issued are not rolled back.
func (w *Walk) Cancel() { w.cancelled = true }

// Remaining is the number of steps not yet issued.
func (w *Walk) Remaining() int {
	if w.cancelled {
		return 0
	}
	return len(w.steps) - w.next
}
