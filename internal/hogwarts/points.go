package hogwarts

import "github.com/simonbystrom/hogwarts/internal/house"

// Disqualified is the sentinel value of a house that can no longer win. It is
// lower than any legal score.
const Disqualified = -1

// Points tracks each house's locked-in value. A house is unscored until it is
// either scored or disqualified; after that its value never changes.
type Points struct {
	values  [house.Count]int
	decided [house.Count]bool
}

// Value returns h's value and whether it has been decided.
func (p *Points) Value(h house.House) (int, bool) {
	return p.values[h], p.decided[h]
}

// Decided reports whether h has been scored or disqualified.
func (p *Points) Decided(h house.House) bool {
	return p.decided[h]
}

// IsDisqualified reports whether h carries the sentinel value.
func (p *Points) IsDisqualified(h house.House) bool {
	return p.decided[h] && p.values[h] == Disqualified
}

// Score locks in v for h. It is a no-op returning false if h is already
// decided.
func (p *Points) Score(h house.House, v int) bool {
	if p.decided[h] {
		return false
	}
	p.values[h] = v
	p.decided[h] = true
	return true
}

// Disqualify marks h with the sentinel value unless it is already decided.
func (p *Points) Disqualify(h house.House) bool {
	return p.Score(h, Disqualified)
}

// effective treats an unscored house as unable to win.
func (p *Points) effective(h house.House) int {
	if !p.decided[h] {
		return Disqualified
	}
	return p.values[h]
}

// Max returns the highest effective value across all houses.
func (p *Points) Max() int {
	best := Disqualified
	for _, h := range house.All() {
		if v := p.effective(h); v > best {
			best = v
		}
	}
	return best
}

// Leaders returns every house whose effective value equals Max.
func (p *Points) Leaders() []house.House {
	best := p.Max()
	var out []house.House
	for _, h := range house.All() {
		if p.effective(h) == best {
			out = append(out, h)
		}
	}
	return out
}

func zeroPoints() Points {
	var p Points
	for _, h := range house.All() {
		p.Score(h, 0)
	}
	return p
}
