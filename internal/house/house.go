package house

import "strings"

// House is one of the four competing teams. The order is fixed and is used
// for round-robin assignment and for the stage 2 buttons.
type House int

const (
	Gryffindor House = iota
	Ravenclaw
	Slytherin
	Hufflepuff
)

// Count is the number of houses.
const Count = 4

var names = [Count]string{"Gryffindor", "Ravenclaw", "Slytherin", "Hufflepuff"}

// founders are the identity strings fed to the scoring function.
var founders = [Count]string{"GODRICGRYFFINDOR", "ROWENARAVENCLAW", "SALAZARSLYTHERIN", "HELGAHUFFLEPUFF"}

// All returns the houses in their canonical order.
func All() []House {
	return []House{Gryffindor, Ravenclaw, Slytherin, Hufflepuff}
}

func (h House) Valid() bool {
	return h >= 0 && h < Count
}

func (h House) String() string {
	if !h.Valid() {
		return "House(?)"
	}
	return names[h]
}

// Founder returns the house's identity string: the founder's full name,
// uppercased, without spaces.
func (h House) Founder() string {
	if !h.Valid() {
		return ""
	}
	return founders[h]
}

// Parse maps an abbreviation to a house. Any case-insensitive prefix of the
// house name is accepted; the first letter alone is enough since all four
// start with a different letter.
func Parse(s string) (House, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	for i, name := range names {
		if strings.HasPrefix(strings.ToLower(name), s) {
			return House(i), true
		}
	}
	return 0, false
}
