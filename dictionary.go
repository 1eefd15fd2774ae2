package ngrams

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/derekparker/trie"

	"github.com/npillmayer/ngrams/escape"
)

// ErrInvalidPattern is returned (wrapped) when a pattern is empty or contains
// characters outside the supported window.
var ErrInvalidPattern = errors.New("invalid n-gram pattern")

// PatternReader yields n-grams one-by-one, in dictionary order.
// It should return io.EOF when the stream is exhausted.
type PatternReader interface {
	Next() (pattern []rune, err error)
}

// Dictionary is an ordered, immutable set of n-grams together with the
// lookup structures needed for streaming matching.
//
// A dictionary contains:
//   - the patterns and their escape-encoded labels, addressed by index
//   - the relevancy set: every character occurring in any pattern
//   - the start index: patterns by their first character
//
// A Dictionary may be shared between any number of Matchers.
type Dictionary struct {
	patterns   [][]rune
	labels     []string
	maxLabel   int
	relevant   charSet
	start      startIndex
	byText     *trie.Trie // pattern text => []int of indices
	Identifier string     // Identifies the dictionary
}

// NewDictionary creates a dictionary from a list of patterns. Patterns are
// expected to be valid; an invalid one is reported as an error.
// Duplicates are kept and counted separately.
func NewDictionary(name string, patterns []string) (*Dictionary, error) {
	dict := newDictionary(name, len(patterns))
	for i, s := range patterns {
		p := []rune(s)
		if !Valid(p) {
			return nil, fmt.Errorf("%w: #%d %q", ErrInvalidPattern, i, s)
		}
		dict.add(p)
	}
	dict.freeze()
	return dict, nil
}

// LoadPatterns compiles a dictionary from a streaming, format-agnostic source.
//
// File format parsing is intentionally outside the base package. Use adapters
// like package ngramfile to parse concrete formats and feed this API.
// Invalid patterns are skipped.
func LoadPatterns(name string, reader PatternReader) (dict *Dictionary, err error) {
	dict = newDictionary(name, 64)
	var pattern []rune
	for {
		pattern, err = reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !Valid(pattern) {
			tracer().Infof("skipping invalid n-gram %q", escape.Encode(pattern))
			continue // simply skip invalid patterns
		}
		p := make([]rune, len(pattern)) // readers may reuse their buffers
		copy(p, pattern)
		dict.add(p)
	}
	dict.freeze()
	return dict, nil
}

func newDictionary(name string, capacity int) *Dictionary {
	return &Dictionary{
		patterns:   make([][]rune, 0, capacity),
		labels:     make([]string, 0, capacity),
		byText:     trie.New(),
		Identifier: fmt.Sprintf("n-grams: %s", name),
	}
}

func (dict *Dictionary) add(p []rune) {
	i := len(dict.patterns)
	dict.patterns = append(dict.patterns, p)
	label := escape.Encode(p)
	dict.labels = append(dict.labels, label)
	dict.maxLabel = max(dict.maxLabel, utf8.RuneCountInString(label))
	key := string(p)
	if node, found := dict.byText.Find(key); found {
		indices := node.Meta().([]int)
		dict.byText.Add(key, append(indices, i))
		return
	}
	dict.byText.Add(key, []int{i})
}

func (dict *Dictionary) freeze() {
	dict.relevant = buildRelevancySet(dict.patterns)
	dict.start = buildStartIndex(dict.patterns)
	tracer().Infof("%s: %d patterns, %d relevant characters, max label length %d",
		dict.Identifier, len(dict.patterns), dict.relevant.len(), dict.maxLabel)
}

// Size returns the number of patterns.
func (dict *Dictionary) Size() int {
	return len(dict.patterns)
}

// Pattern returns the characters of pattern i. The result must not be modified.
func (dict *Dictionary) Pattern(i int) []rune {
	assert(i >= 0 && i < len(dict.patterns), "pattern index out of range")
	return dict.patterns[i]
}

// Label returns the escape-encoded display string of pattern i.
func (dict *Dictionary) Label(i int) string {
	assert(i >= 0 && i < len(dict.labels), "pattern index out of range")
	return dict.labels[i]
}

// MaxLabelLength returns the length in characters of the longest label.
func (dict *Dictionary) MaxLabelLength() int {
	return dict.maxLabel
}

// Lookup returns the indices of all patterns equal to text, in dictionary
// order, or nil if text is not a pattern of dict.
func (dict *Dictionary) Lookup(text string) []int {
	node, found := dict.byText.Find(text)
	if !found {
		return nil
	}
	indices := node.Meta().([]int)
	result := make([]int, len(indices))
	copy(result, indices)
	return result
}

// IsRelevant reports whether r occurs in any pattern.
func (dict *Dictionary) IsRelevant(r rune) bool {
	return dict.relevant.contains(r)
}

// starting returns the indices of all patterns beginning with r.
// The result must not be modified.
func (dict *Dictionary) starting(r rune) []int {
	return dict.start.lookup(r)
}

// Fingerprint is a hash over the ordered list of patterns. Dictionaries with
// equal fingerprints produce comparable counts.
func (dict *Dictionary) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [binary.MaxVarintLen64]byte
	for _, p := range dict.patterns {
		n := binary.PutUvarint(buf[:], uint64(len(p)))
		_, _ = h.Write(buf[:n])
		_, _ = h.WriteString(string(p))
	}
	return h.Sum64()
}
