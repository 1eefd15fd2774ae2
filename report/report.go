// Package report renders n-gram counts as a frequency table.
//
// It knows nothing about matching; everything it needs is provided by the
// Source interface, which is implemented by *ngrams.Table.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Source gives indexed access to labelled counts.
type Source interface {
	Size() int
	Label(i int) string
	Count(i int) int
	MaxLabelLength() int
}

// Order selects the sequence of rows.
type Order int

const (
	ByIndex Order = iota // dictionary order
	ByCount              // most frequent first, ties in dictionary order
	ByLabel              // lexical order of labels
)

// ParseOrder maps "index", "count" or "label" to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "", "index":
		return ByIndex, nil
	case "count":
		return ByCount, nil
	case "label":
		return ByLabel, nil
	}
	return ByIndex, fmt.Errorf("unknown report order %q (use index, count or label)", s)
}

// Options control which rows are reported and how.
type Options struct {
	Order    Order
	HideZero bool  // omit patterns which did not occur
	Only     []int // if non-empty, report just these pattern indices
}

// Row is one line of a report.
type Row struct {
	Index   int
	Label   string
	Count   int
	Percent float64 // share of all counted occurrences
}

// Rows collects the rows of a report on src.
func Rows(src Source, opts Options) []Row {
	total := 0
	for i := range src.Size() {
		total += src.Count(i)
	}
	indices := opts.Only
	if len(indices) == 0 {
		indices = make([]int, src.Size())
		for i := range indices {
			indices[i] = i
		}
	}
	rows := make([]Row, 0, len(indices))
	for _, i := range indices {
		row := Row{Index: i, Label: src.Label(i), Count: src.Count(i)}
		if row.Count == 0 && opts.HideZero {
			continue
		}
		if total > 0 {
			row.Percent = 100 * float64(row.Count) / float64(total)
		}
		rows = append(rows, row)
	}
	switch opts.Order {
	case ByCount:
		slices.SortStableFunc(rows, func(a, b Row) int {
			return cmp.Compare(b.Count, a.Count)
		})
	case ByLabel:
		slices.SortStableFunc(rows, func(a, b Row) int {
			return strings.Compare(a.Label, b.Label)
		})
	}
	return rows
}

// Write prints a report on src to w, one pattern per line, labels padded to
// the longest label of src.
func Write(w io.Writer, src Source, opts Options) error {
	width := src.MaxLabelLength()
	for _, row := range Rows(src, opts) {
		if _, err := fmt.Fprintf(w, "%-*s %8d %6.2f%%\n", width, row.Label, row.Count, row.Percent); err != nil {
			return err
		}
	}
	return nil
}
