package command

import (
	"testing"
	"time"
)

func TestWalk_IssuesEveryStep(t *testing.T) {
	w := newWalk(-1, 3, time.Millisecond)

	var steps []Step
	for {
		s, ok := w.Next()
		if !ok {
			break
		}
		steps = append(steps, s)
	}
	if len(steps) != 3 {
		t.Fatalf("steps = %v, want 3", steps)
	}
	for i, s := range steps {
		if s.Delta != -1 {
			t.Errorf("step %d delta = %d, want -1", i, s.Delta)
		}
	}
	if steps[0].Delay != 0 {
		t.Errorf("first step delay = %v, want none", steps[0].Delay)
	}
	if steps[1].Delay != time.Millisecond || steps[2].Delay != time.Millisecond {
		t.Errorf("later delays = %v %v", steps[1].Delay, steps[2].Delay)
	}
	if w.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", w.Remaining())
	}
}

func TestWalk_PeekDoesNotConsume(t *testing.T) {
	w := newWalk(1, 2, time.Second)

	p, ok := w.Peek()
	if !ok || p.Delta != 1 {
		t.Fatalf("Peek = %+v, %v", p, ok)
	}
	if w.Remaining() != 2 {
		t.Errorf("remaining after peek = %d, want 2", w.Remaining())
	}
	n, _ := w.Next()
	if n != p {
		t.Errorf("Next = %+v, want peeked %+v", n, p)
	}
	if w.Remaining() != 1 {
		t.Errorf("remaining = %d, want 1", w.Remaining())
	}
}

func TestWalk_CancelStopsBetweenSteps(t *testing.T) {
	w := newWalk(1, 5, time.Millisecond)
	cursor := 0
	for {
		s, ok := w.Next()
		if !ok {
			break
		}
		cursor += s.Delta
		if cursor == 2 {
			w.Cancel()
		}
	}
	if cursor != 2 {
		t.Errorf("cursor = %d, want 2 (no rollback, no further steps)", cursor)
	}
	if _, ok := w.Peek(); ok {
		t.Error("cancelled walk should not peek a step")
	}
	if w.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", w.Remaining())
	}
}

func TestWalk_Empty(t *testing.T) {
	w := newWalk(1, 0, time.Second)
	if _, ok := w.Next(); ok {
		t.Error("empty walk yielded a step")
	}
	if w.Remaining() != 0 {
		t.Errorf("remaining = %d", w.Remaining())
	}
}
