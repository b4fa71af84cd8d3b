package hogwarts

import (
	"slices"

	"github.com/simonbystrom/hogwarts/internal/house"
)

// Association ties one task to the house it was assigned to, together with
// the points that task is worth for that house.
type Association struct {
	House  house.House
	Task   string
	Points int
}

// Set is the ordered, shrinking collection of live associations. The order
// defines cursor adjacency and never changes except through removal.
type Set struct {
	items []Association
}

func NewSet(items []Association) *Set {
	return &Set{items: slices.Clone(items)}
}

func (s *Set) Len() int {
	return len(s.items)
}

func (s *Set) At(i int) Association {
	return s.items[i]
}

// Items returns a copy of the live associations in order.
func (s *Set) Items() []Association {
	return slices.Clone(s.items)
}

// Index returns the position of the association for task, or -1.
func (s *Set) Index(task string) int {
	return slices.IndexFunc(s.items, func(a Association) bool { return a.Task == task })
}

// RemoveTask drops the association for task. It reports whether anything
// was removed.
func (s *Set) RemoveTask(task string) bool {
	n := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(a Association) bool { return a.Task == task })
	return len(s.items) != n
}

// RemoveHouse drops every association of h and returns how many were removed.
func (s *Set) RemoveHouse(h house.House) int {
	n := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(a Association) bool { return a.House == h })
	return n - len(s.items)
}

// Count returns the number of live associations for h.
func (s *Set) Count(h house.House) int {
	n := 0
	for _, a := range s.items {
		if a.House == h {
			n++
		}
	}
	return n
}

// Obtainable reports whether h still has at least one association whose
// task is not excluded.
func (s *Set) Obtainable(h house.House, excluded func(string) bool) bool {
	for _, a := range s.items {
		if a.House == h && !excluded(a.Task) {
			return true
		}
	}
	return false
}

// Best returns the highest points among h's associations and whether h has
// any association at all.
func (s *Set) Best(h house.House) (int, bool) {
	best, found := 0, false
	for _, a := range s.items {
		if a.House != h {
			continue
		}
		if !found || a.Points > best {
			best = a.Points
		}
		found = true
	}
	return best, found
}
