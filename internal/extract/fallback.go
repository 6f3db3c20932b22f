package extract

import "strings"

type Candidate struct {
	Source string
	Value  string
}

// First returns the first candidate accepted by ok. When none is accepted it
// returns a candidate holding def.
func First(ok func(string) bool, def string, candidates ...Candidate) Candidate {
	for _, c := range candidates {
		if ok(c.Value) {
			return c
		}
	}
	return Candidate{Source: "default", Value: def}
}

// MinChars accepts text with at least n characters after trimming.
func MinChars(n int) func(string) bool {
	return func(s string) bool {
		return len([]rune(strings.TrimSpace(s))) >= n
	}
}
