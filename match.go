package ngrams

type matchState int8

const (
	growing  matchState = iota // prefix matched, more characters needed
	complete                   // all characters matched
	dead                       // mismatch
)

func (s matchState) String() string {
	switch s {
	case growing:
		return "growing"
	case complete:
		return "complete"
	}
	return "dead"
}

// activeMatch tracks one occurrence of a pattern in progress, anchored at the
// stream position where its first character has been seen.
type activeMatch struct {
	pattern int // index into the dictionary
	cursor  int // number of characters matched so far
}

func newActiveMatch(pattern int) activeMatch {
	return activeMatch{pattern: pattern, cursor: 1}
}

// advance compares c against the next expected character of p.
// complete and dead are terminal; a terminal match must not be advanced again.
func (m *activeMatch) advance(c rune, p []rune) matchState {
	assert(m.cursor < len(p), "advancing a complete match")
	if p[m.cursor] != c {
		return dead
	}
	m.cursor++
	if m.isComplete(p) {
		return complete
	}
	return growing
}

func (m *activeMatch) isComplete(p []rune) bool {
	return m.cursor == len(p)
}
