/*
Package ngrams counts occurrences of a fixed dictionary of n-grams in a
stream of characters.

An n-gram is a literal, non-empty sequence of printable ASCII characters
(0x20..0x7E). A Dictionary is loaded once, usually from a pattern file (see
package ngramfile), and then shared read-only by any number of Matchers. Each
Matcher consumes one stream character by character and keeps its own
counters. Overlapping occurrences are counted independently, i.e., "aa" is
found twice in "aaa".

Matching is incremental. The dictionary pre-computes the set of all
characters occurring in any pattern (the relevancy set) and an index from
start characters to patterns. A character outside the relevancy set cannot
continue any partial match and resets the matcher; every other character
advances all partial matches and starts new ones for every pattern beginning
with it.

Usage:

	dict, err := ngramfile.LoadFile("bigrams.txt", true)
	...
	m := ngrams.NewMatcher(dict)
	m.ConsumeString("the quick brown fox")
	t := m.Table()
	for i := range t.Size() {
	    fmt.Printf("%-*s %d\n", t.MaxLabelLength(), t.Label(i), t.Count(i))
	}

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package ngrams

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ngrams'
func tracer() tracing.Trace {
	return tracing.Select("ngrams")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
