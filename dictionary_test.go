package ngrams

import (
	"errors"
	"io"
	"reflect"
	"testing"
)

type slicePatternReader struct {
	entries []string
	index   int
}

func (r *slicePatternReader) Next() ([]rune, error) {
	if r.index >= len(r.entries) {
		return nil, io.EOF
	}
	entry := r.entries[r.index]
	r.index++
	return []rune(entry), nil
}

type failingPatternReader struct{}

func (failingPatternReader) Next() ([]rune, error) {
	return nil, errors.New("boom")
}

func TestPatternReaderAPI(t *testing.T) {
	dict, err := LoadPatterns("stream-patterns", &slicePatternReader{
		entries: []string{"th", "", "hé", "he", "\x01"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if dict.Size() != 2 {
		t.Fatalf("expected invalid patterns to be skipped, size is %d", dict.Size())
	}
	if dict.Label(0) != "th" || dict.Label(1) != "he" {
		t.Fatalf("unexpected labels %q, %q", dict.Label(0), dict.Label(1))
	}
	if dict.Identifier != "n-grams: stream-patterns" {
		t.Fatalf("unexpected identifier %q", dict.Identifier)
	}
}

func TestPatternReaderError(t *testing.T) {
	if _, err := LoadPatterns("failing", failingPatternReader{}); err == nil {
		t.Fatalf("expected reader error to abort loading")
	}
}

func TestNewDictionaryRejectsInvalid(t *testing.T) {
	for _, p := range []string{"", "tab\t", "café"} {
		_, err := NewDictionary("invalid", []string{"ok", p})
		if !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("pattern %q: expected ErrInvalidPattern, got %v", p, err)
		}
	}
}

func TestDictionaryLabels(t *testing.T) {
	dict, err := NewDictionary("labels", []string{" a", `b\c`, "xyz "})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{`\sa`, `b\\c`, `xyz\s`}
	for i, w := range want {
		if got := dict.Label(i); got != w {
			t.Errorf("label %d: got %q, want %q", i, got, w)
		}
	}
	if dict.MaxLabelLength() != 5 {
		t.Fatalf("expected max label length 5, got %d", dict.MaxLabelLength())
	}
	if string(dict.Pattern(0)) != " a" {
		t.Fatalf("pattern 0 should be %q, is %q", " a", string(dict.Pattern(0)))
	}
}

func TestDictionaryLookup(t *testing.T) {
	dict, err := NewDictionary("lookup", []string{"ab", "abc", "ab", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if got := dict.Lookup("ab"); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Fatalf("lookup of duplicate: got %v", got)
	}
	if got := dict.Lookup("abc"); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("lookup of 'abc': got %v", got)
	}
	if got := dict.Lookup("a"); got != nil {
		t.Fatalf("lookup of a prefix should fail, got %v", got)
	}
}

func TestDictionaryRelevancyAndStart(t *testing.T) {
	dict, err := NewDictionary("index", []string{"an", "at", "ta", "n"})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range "ant" {
		if !dict.IsRelevant(r) {
			t.Errorf("%q should be relevant", r)
		}
	}
	for _, r := range "bz \x00ä" {
		if dict.IsRelevant(r) {
			t.Errorf("%q should not be relevant", r)
		}
	}
	if got := dict.starting('a'); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("patterns starting with 'a': got %v", got)
	}
	if got := dict.starting('n'); !reflect.DeepEqual(got, []int{3}) {
		t.Fatalf("patterns starting with 'n': got %v", got)
	}
	if got := dict.starting('x'); got != nil {
		t.Fatalf("no pattern starts with 'x', got %v", got)
	}
}

func TestDictionaryFingerprint(t *testing.T) {
	d1, _ := NewDictionary("one", []string{"ab", "c"})
	d2, _ := NewDictionary("two", []string{"ab", "c"})
	d3, _ := NewDictionary("three", []string{"a", "bc"})
	d4, _ := NewDictionary("four", []string{"c", "ab"})
	if d1.Fingerprint() != d2.Fingerprint() {
		t.Fatalf("equal pattern lists should have equal fingerprints")
	}
	if d1.Fingerprint() == d3.Fingerprint() {
		t.Fatalf("fingerprint should respect pattern boundaries")
	}
	if d1.Fingerprint() == d4.Fingerprint() {
		t.Fatalf("fingerprint should respect pattern order")
	}
}
