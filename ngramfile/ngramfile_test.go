package ngramfile

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/ngrams"
)

func TestPatternReader(t *testing.T) {
	src := strings.NewReader("ab\n\n\\sc\n\\q\n\\x7f\nd\\\\\n")
	r := NewPatternReader(src, "test-src")
	want := []string{"ab", " c", `d\`}
	for _, w := range want {
		p, err := r.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if string(p) != w {
			t.Fatalf("pattern mismatch: got %q, want %q", string(p), w)
		}
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if r.Skipped() != 2 {
		t.Fatalf("expected 2 skipped lines, got %d", r.Skipped())
	}
	if r.Source() != "test-src" {
		t.Fatalf("source mismatch: %q", r.Source())
	}
}

func TestLoadFileFixture(t *testing.T) {
	dict, err := LoadFile(filepath.Join("testdata", "bigrams.txt"), true)
	if err != nil {
		t.Fatal(err)
	}
	// 11 lines, one empty, three invalid
	if dict.Size() != 7 {
		t.Fatalf("expected 7 patterns, got %d", dict.Size())
	}
	if dict.Label(2) != `\sthe\s` {
		t.Fatalf("label of pattern 2 is %q", dict.Label(2))
	}
	if dict.MaxLabelLength() != 7 {
		t.Fatalf("expected max label length 7, got %d", dict.MaxLabelLength())
	}
	m := ngrams.NewMatcher(dict)
	m.ConsumeString("then the other one came in")
	tests := []struct {
		index int
		want  int
	}{
		{0, 3}, // th
		{1, 3}, // he
		{2, 1}, // " the "
		{3, 1}, // in
		{4, 1}, // er
		{5, 0}, // an
		{6, 3}, // th again
	}
	for _, tt := range tests {
		if got := m.Table().Count(tt.index); got != tt.want {
			t.Errorf("count of %q: got %d, want %d", dict.Label(tt.index), got, tt.want)
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.txt")
	if _, err := LoadFile(path, true); !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
	dict, err := LoadFile(path, false)
	if err != nil {
		t.Fatalf("optional file should not fail: %v", err)
	}
	if dict.Size() != 0 {
		t.Fatalf("expected empty dictionary, got %d patterns", dict.Size())
	}
}

func TestLoadPatternsSkipsInvalidLines(t *testing.T) {
	valid := "aa\nbb\ncc\n"
	invalid := "\\\n\\x00\nü\n\\t\n"
	d1, err := LoadPatterns("valid", strings.NewReader(valid))
	if err != nil {
		t.Fatal(err)
	}
	d2, err := LoadPatterns("mixed", strings.NewReader(invalid+valid))
	if err != nil {
		t.Fatal(err)
	}
	if d1.Size() != 3 || d2.Size() != 3 {
		t.Fatalf("expected invalid lines to be dropped: %d vs %d", d1.Size(), d2.Size())
	}
	if d1.Fingerprint() != d2.Fingerprint() {
		t.Fatalf("dictionaries should be equal after skipping invalid lines")
	}
}
