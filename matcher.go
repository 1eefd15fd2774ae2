package ngrams

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Matcher counts n-gram occurrences in one character stream.
//
// Characters are fed in stream order through Consume (or one of the
// convenience feeders). There is no way to rewind. A Matcher is not safe for
// concurrent use; scanning independent streams in parallel requires one
// Matcher per stream, all of which may share the same Dictionary.
type Matcher struct {
	dict    *Dictionary
	active  []activeMatch // partial matches, oldest first
	table   *Table
	pending []byte // incomplete UTF-8 sequence carried between writes
}

// NewMatcher creates a matcher for dict with all counters at zero.
func NewMatcher(dict *Dictionary) *Matcher {
	assert(dict != nil, "matcher needs a dictionary")
	return &Matcher{
		dict:   dict,
		active: make([]activeMatch, 0, 16),
		table:  newTable(dict),
	}
}

// Dictionary returns the dictionary m is counting.
func (m *Matcher) Dictionary() *Dictionary {
	return m.dict
}

// Table returns the live counters of m. Reading it while m consumes
// characters from another goroutine is a race; use Table().Snapshot() for a
// stable copy.
func (m *Matcher) Table() *Table {
	return m.table
}

// Consume feeds the next character of the stream to the matcher.
//
// Every character value is accepted. A character not occurring in any pattern
// (including all characters outside the printable ASCII window) discards all
// partial matches. Otherwise partial matches are advanced, completed ones are
// counted, and a new partial match is started for every pattern beginning
// with c.
func (m *Matcher) Consume(c rune) {
	if !m.dict.IsRelevant(c) {
		// no partial match can be continued by c
		m.active = m.active[:0]
		return
	}
	live := m.active[:0]
	for _, a := range m.active {
		switch a.advance(c, m.dict.patterns[a.pattern]) {
		case growing:
			live = append(live, a)
		case complete:
			m.table.counts[a.pattern]++
		}
	}
	m.active = live
	for _, i := range m.dict.starting(c) {
		if len(m.dict.patterns[i]) == 1 {
			// a single character pattern is complete at its first character
			m.table.counts[i]++
			continue
		}
		m.active = append(m.active, newActiveMatch(i))
	}
}

// ConsumeString feeds every character of s to the matcher.
func (m *Matcher) ConsumeString(s string) {
	for _, c := range s {
		m.Consume(c)
	}
}

// Flush signals the end of a stream. Partial matches are dropped, so that a
// following stream cannot complete an occurrence started in this one.
// Counters are retained.
func (m *Matcher) Flush() {
	if len(m.pending) > 0 {
		m.Consume(utf8.RuneError)
		m.pending = nil
	}
	if len(m.active) > 0 {
		tracer().Debugf("flush drops %d partial matches", len(m.active))
	}
	m.active = m.active[:0]
}

// Reset drops partial matches and sets all counters to zero.
func (m *Matcher) Reset() {
	m.Flush()
	clear(m.table.counts)
}

// Write feeds the UTF-8 encoded characters in p to the matcher. A character
// split across two writes is decoded once it is complete. Invalid bytes are
// consumed as utf8.RuneError. Write never fails.
func (m *Matcher) Write(p []byte) (int, error) {
	n := len(p)
	if len(m.pending) > 0 {
		p = append(m.pending[:len(m.pending):len(m.pending)], p...)
		m.pending = nil
	}
	for len(p) > 0 {
		if !utf8.FullRune(p) {
			m.pending = append(m.pending, p...)
			break
		}
		c, size := utf8.DecodeRune(p)
		m.Consume(c)
		p = p[size:]
	}
	return n, nil
}

// ReadFrom feeds all characters from r to the matcher until EOF.
// An incomplete character left over from Write is consumed as
// utf8.RuneError first. ReadFrom does not flush. It returns the number of
// bytes read and the first read error other than io.EOF.
func (m *Matcher) ReadFrom(r io.Reader) (int64, error) {
	if len(m.pending) > 0 {
		// bytes left over from Write cannot be completed by another source
		m.Consume(utf8.RuneError)
		m.pending = nil
	}
	br, ok := r.(io.RuneReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	var total int64
	for {
		c, size, err := br.ReadRune()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		total += int64(size)
		m.Consume(c)
	}
}

// --- Table -----------------------------------------------------------------

// Table exposes the occurrence counts of a matcher by pattern index.
// It is everything a report needs to know about a scan.
type Table struct {
	dict   *Dictionary
	counts []int
}

func newTable(dict *Dictionary) *Table {
	return &Table{
		dict:   dict,
		counts: make([]int, dict.Size()),
	}
}

// Size returns the number of patterns.
func (t *Table) Size() int {
	return len(t.counts)
}

// Label returns the display string of pattern i.
func (t *Table) Label(i int) string {
	return t.dict.Label(i)
}

// Count returns the number of occurrences of pattern i found so far.
func (t *Table) Count(i int) int {
	assert(i >= 0 && i < len(t.counts), "pattern index out of range")
	return t.counts[i]
}

// MaxLabelLength returns the length of the longest label, for column alignment.
func (t *Table) MaxLabelLength() int {
	return t.dict.MaxLabelLength()
}

// Total returns the sum of all counts.
func (t *Table) Total() int {
	sum := 0
	for _, c := range t.counts {
		sum += c
	}
	return sum
}

// Snapshot returns a copy of t which is not affected by further matching.
func (t *Table) Snapshot() *Table {
	counts := make([]int, len(t.counts))
	copy(counts, t.counts)
	return &Table{dict: t.dict, counts: counts}
}
