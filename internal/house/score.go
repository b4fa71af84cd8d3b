package house

import "unicode"

// Score returns the points a task is worth for the given house.
func Score(h House, task string) int {
	return ScoreIdentity(h.Founder(), task)
}

// ScoreIdentity sums, over every distinct letter of identity, the number of
// times the letter occurs in identity multiplied by the number of times it
// occurs in task. Task letters are compared case-insensitively.
func ScoreIdentity(identity, task string) int {
	inIdentity := make(map[rune]int)
	for _, r := range identity {
		inIdentity[r]++
	}

	inTask := make(map[rune]int)
	for _, r := range task {
		inTask[unicode.ToUpper(r)]++
	}

	total := 0
	for r, n := range inIdentity {
		total += n * inTask[r]
	}
	return total
}
