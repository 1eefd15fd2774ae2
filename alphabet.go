package ngrams

// Patterns are restricted to a window of printable ASCII characters.
// Relevancy set and start index are sized to this window.
const (
	WindowLow  = 0x20 // space
	WindowHigh = 0x7E // tilde
	windowSize = WindowHigh - WindowLow + 1
)

// InWindow reports whether r is a character patterns may contain.
func InWindow(r rune) bool {
	return r >= WindowLow && r <= WindowHigh
}

// Valid reports whether pattern is usable as an n-gram: it must be
// non-empty and consist of in-window characters only.
func Valid(pattern []rune) bool {
	if len(pattern) == 0 {
		return false
	}
	for _, r := range pattern {
		if !InWindow(r) {
			return false
		}
	}
	return true
}

// --- Relevancy set ---------------------------------------------------------

// charSet is a membership-only set of in-window characters.
// One bit per character, 0 means "not relevant".
type charSet struct {
	bits [(windowSize + 63) / 64]uint64
}

func (s *charSet) add(r rune) {
	if !InWindow(r) {
		return
	}
	i := r - WindowLow
	s.bits[i/64] |= uint64(1) << (i & 63)
}

// contains is total: characters outside the window are never relevant.
func (s *charSet) contains(r rune) bool {
	if !InWindow(r) {
		return false
	}
	i := r - WindowLow
	return s.bits[i/64]&(uint64(1)<<(i&63)) != 0
}

func (s *charSet) len() int {
	n := 0
	for r := rune(WindowLow); r <= WindowHigh; r++ {
		if s.contains(r) {
			n++
		}
	}
	return n
}

func buildRelevancySet(patterns [][]rune) charSet {
	var s charSet
	for _, p := range patterns {
		for _, r := range p {
			s.add(r) // duplicates are ignored
		}
	}
	return s
}

// --- Start index -----------------------------------------------------------

// startIndex maps a start character to the indices of all patterns
// beginning with it, in dictionary order. Patterns sharing a start
// character are all kept, not de-duplicated.
type startIndex struct {
	slots [windowSize][]int
}

func (x *startIndex) add(r rune, pattern int) {
	if !InWindow(r) {
		return
	}
	x.slots[r-WindowLow] = append(x.slots[r-WindowLow], pattern)
}

// lookup returns the pattern indices starting with r, nil if none.
// The returned slice must not be modified.
func (x *startIndex) lookup(r rune) []int {
	if !InWindow(r) {
		return nil
	}
	return x.slots[r-WindowLow]
}

func buildStartIndex(patterns [][]rune) startIndex {
	var x startIndex
	for i, p := range patterns {
		x.add(p[0], i)
	}
	return x
}
