/*
Package ngramfile reads n-gram dictionaries from plain text files.

A pattern file holds one n-gram per line, in the escaped form of package
escape:

	th
	he
	\sthe\s
	ing
	\\n

Empty lines are ignored. Lines which are malformed, or which decode to an
empty pattern or to characters outside the printable ASCII window, are
skipped with a diagnostic on the trace; loading continues.
*/
package ngramfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/ngrams"
	"github.com/npillmayer/ngrams/escape"
)

// tracer writes to trace with key 'ngrams'
func tracer() tracing.Trace {
	return tracing.Select("ngrams")
}

// ErrSourceNotFound is returned (wrapped) by LoadFile if a required pattern
// file does not exist.
var ErrSourceNotFound = errors.New("pattern source not found")

// PatternReader streams n-grams from a line-oriented text source.
type PatternReader struct {
	scanner *bufio.Scanner
	source  string
	line    int
	skipped int
}

// NewPatternReader creates a reader for pattern lines from r. source
// identifies the input in diagnostics, usually a file path.
func NewPatternReader(r io.Reader, source string) *PatternReader {
	return &PatternReader{
		scanner: bufio.NewScanner(r),
		source:  source,
	}
}

// Source returns the identifier given to NewPatternReader.
func (r *PatternReader) Source() string {
	return r.source
}

// Skipped returns the number of invalid lines skipped so far.
// Empty lines are not counted.
func (r *PatternReader) Skipped() int {
	return r.skipped
}

// Next returns the next valid pattern.
// It returns io.EOF when exhausted.
func (r *PatternReader) Next() ([]rune, error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Text()
		if line == "" {
			continue
		}
		pattern, err := escape.Decode(line)
		if err != nil {
			r.skip(line, err.Error())
			continue
		}
		if !ngrams.Valid(pattern) {
			r.skip(line, "not a printable ASCII n-gram")
			continue
		}
		return pattern, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.source, err)
	}
	return nil, io.EOF
}

func (r *PatternReader) skip(line string, reason string) {
	r.skipped++
	tracer().Errorf("failed to add line %d %q of %q: %s", r.line, line, r.source, reason)
}

// LoadPatterns parses pattern lines from reader and returns a ready-to-use
// dictionary.
func LoadPatterns(name string, reader io.Reader) (*ngrams.Dictionary, error) {
	r := NewPatternReader(reader, name)
	dict, err := ngrams.LoadPatterns(name, r)
	if err != nil {
		return nil, err
	}
	if r.Skipped() > 0 {
		tracer().Infof("%s: skipped %d invalid lines", name, r.Skipped())
	}
	return dict, nil
}

// LoadFile loads the pattern file at path. If the file does not exist, a
// required file is an error wrapping ErrSourceNotFound, whereas an optional
// one yields an empty dictionary.
func LoadFile(path string, required bool) (*ngrams.Dictionary, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if required {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		tracer().Infof("optional pattern file %q not found", path)
		return ngrams.NewDictionary(path, nil)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadPatterns(path, f)
}
