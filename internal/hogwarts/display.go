package hogwarts

import "strings"

// maxLineLen is the longest task name shown on a single line.
const maxLineLen = 21

// WrapTaskName splits long task names over two lines at the space or hyphen
// closest to the middle. A hyphen stays at the end of the first line.
func WrapTaskName(name string) string {
	r := []rune(name)
	if len(r) <= maxLineLen {
		return name
	}

	mid := len(r) / 2
	left, right := -1, -1
	for i := min(mid, len(r)-1); i >= 0; i-- {
		if isBreak(r[i]) {
			left = i
			break
		}
	}
	for i := mid; i < len(r); i++ {
		if isBreak(r[i]) {
			right = i
			break
		}
	}

	p := right
	switch {
	case left == -1:
	case right == -1:
		p = left
	case mid-left <= right-mid:
		p = left
	}
	if p == -1 {
		return name
	}

	var b strings.Builder
	b.WriteString(string(r[:p]))
	if r[p] == '-' {
		b.WriteRune('-')
	}
	b.WriteByte('\n')
	b.WriteString(string(r[p+1:]))
	return b.String()
}

func isBreak(r rune) bool {
	return r == ' ' || r == '-'
}
