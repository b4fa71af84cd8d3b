package hogwarts

import (
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/simonbystrom/hogwarts/internal/house"
)

const (
	// DefaultName is the module's own task name.
	DefaultName = "Hogwarts"

	// DefaultMaxRetries bounds how many times generation is repeated to
	// avoid a locked tie.
	DefaultMaxRetries = 100
)

// DefaultExclusions lists tasks that are never counted as obtainable: the
// module itself and tasks that cannot sensibly be solved on demand.
var DefaultExclusions = []string{"Hogwarts", "Forget Everything", "Forget Me Not", "Souvenir", "The Swan"}

// Generation is the outcome of assigning tasks to houses.
type Generation struct {
	Associations []Association
	Points       Points
	// Excluded lists the task names that never count as obtainable.
	Excluded []string
	// TieTolerant suppresses the end-of-play tie strike. It is set when the
	// retry budget ran out or when nothing could be assigned.
	TieTolerant bool
	Retries     int
}

// Empty reports whether no association survived generation.
func (g Generation) Empty() bool {
	return len(g.Associations) == 0
}

// Generator builds the initial assignment set.
type Generator struct {
	// Name is the module's own task name; one copy of it is removed from the
	// input and it is always treated as excluded.
	Name       string
	Exclusions []string
	MaxRetries int

	rng *rand.Rand
	log *slog.Logger
}

// NewGenerator returns a Generator with the built-in name, exclusions and
// retry budget. A nil rng uses a randomly seeded source.
func NewGenerator(rng *rand.Rand, log *slog.Logger) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		Name:       DefaultName,
		Exclusions: slices.Clone(DefaultExclusions),
		MaxRetries: DefaultMaxRetries,
		rng:        rng,
		log:        log,
	}
}

func (g *Generator) excludedSet() map[string]bool {
	set := map[string]bool{g.Name: true}
	for _, e := range g.Exclusions {
		set[e] = true
	}
	return set
}

// Generate assigns names to houses. It never fails: when a locked tie cannot
// be avoided within the retry budget, the last attempt is accepted and
// flagged tie-tolerant.
func (g *Generator) Generate(names []string) Generation {
	excluded := g.excludedSet()
	excludedList := make([]string, 0, len(excluded))
	for name := range excluded {
		excludedList = append(excludedList, name)
	}
	slices.Sort(excludedList)

	pool := candidates(names, g.Name)

	budget := g.MaxRetries
	if budget < 1 {
		budget = 1
	}

	retries := 0
	for {
		assocs, points := g.assign(pool, excluded)

		if len(assocs) == 0 {
			g.log.Info("no suitable tasks to solve", "candidates", len(pool))
			return Generation{
				Points:      zeroPoints(),
				Excluded:    excludedList,
				TieTolerant: true,
				Retries:     retries,
			}
		}

		h1, h2, locked := lockedTie(assocs)
		if !locked {
			for _, a := range assocs {
				g.log.Info("assigned", "task", a.Task, "house", a.House, "points", a.Points)
			}
			return Generation{
				Associations: assocs,
				Points:       points,
				Excluded:     excludedList,
				Retries:      retries,
			}
		}

		retries++
		g.log.Debug("unavoidable tie, retrying", "houses", []house.House{h1, h2}, "retries", retries)
		if retries >= budget {
			g.log.Warn("not possible to avoid a tie for the house cup", "retries", retries)
			return Generation{
				Associations: assocs,
				Points:       points,
				Excluded:     excludedList,
				TieTolerant:  true,
				Retries:      retries,
			}
		}
	}
}

// candidates removes one copy of own and de-duplicates the rest, keeping the
// first occurrence order.
func candidates(names []string, own string) []string {
	list := slices.Clone(names)
	if i := slices.Index(list, own); i >= 0 {
		list = slices.Delete(list, i, i+1)
	}
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, n := range list {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// assign runs one shuffle-and-deal pass and applies the fairness filter.
func (g *Generator) assign(pool []string, excluded map[string]bool) ([]Association, Points) {
	order := slices.Clone(pool)
	g.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	// Excluded tasks go last so every house is equally likely to receive an
	// obtainable one.
	slices.SortStableFunc(order, func(a, b string) int {
		switch {
		case excluded[a] == excluded[b]:
			return 0
		case excluded[a]:
			return 1
		default:
			return -1
		}
	})

	offset := g.rng.IntN(house.Count)
	assocs := make([]Association, len(order))
	for i, task := range order {
		h := house.House((i + offset) % house.Count)
		assocs[i] = Association{House: h, Task: task, Points: house.Score(h, task)}
	}

	var points Points
	isExcluded := func(t string) bool { return excluded[t] }
	set := NewSet(assocs)
	for _, h := range house.All() {
		if !set.Obtainable(h, isExcluded) {
			set.RemoveHouse(h)
			points.Disqualify(h)
		}
	}
	return set.Items(), points
}

// lockedTie reports a pair of houses that each hold exactly one association
// of equal points with no other house able to beat it. Such a tie for the
// top spot cannot be broken whatever the play order.
func lockedTie(assocs []Association) (house.House, house.House, bool) {
	set := NewSet(assocs)

	type info struct {
		present bool
		best    int
		count   int
	}
	var infos [house.Count]info
	for _, h := range house.All() {
		best, ok := set.Best(h)
		infos[h] = info{present: ok, best: best, count: set.Count(h)}
	}

	for h1 := 0; h1 < house.Count; h1++ {
		for h2 := h1 + 1; h2 < house.Count; h2++ {
			a, b := infos[h1], infos[h2]
			if !a.present || !b.present || a.count != 1 || b.count != 1 || a.best != b.best {
				continue
			}
			beaten := false
			for h3 := 0; h3 < house.Count; h3++ {
				if h3 == h1 || h3 == h2 || !infos[h3].present {
					continue
				}
				if infos[h3].best > a.best {
					beaten = true
					break
				}
			}
			if !beaten {
				return house.House(h1), house.House(h2), true
			}
		}
	}
	return 0, 0, false
}
