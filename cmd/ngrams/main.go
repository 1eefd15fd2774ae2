// Command ngrams counts the n-grams of a pattern file in text files.
//
//	ngrams [OPTIONS] [FILES...]
//
// Without file arguments the text is read from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/npillmayer/ngrams"
	"github.com/npillmayer/ngrams/config"
	"github.com/npillmayer/ngrams/escape"
	"github.com/npillmayer/ngrams/ngramfile"
	"github.com/npillmayer/ngrams/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		configPath string
		patterns   string
		optional   bool
		order      string
		hideZero   bool
		noFlush    bool
		only       []string
		header     bool
		help       bool
	)
	fs := flag.NewFlagSet("ngrams", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&configPath, "config", "", "Path to config file")
	fs.StringVarP(&patterns, "patterns", "p", "", "Pattern file, one escaped n-gram per line")
	fs.BoolVar(&optional, "optional", false, "Treat a missing pattern file as empty")
	fs.StringVarP(&order, "order", "o", "", "Report order: index, count or label")
	fs.BoolVarP(&hideZero, "hide-zero", "z", false, "Omit n-grams which did not occur")
	fs.BoolVar(&noFlush, "no-flush", false, "Let matches span file boundaries")
	fs.StringArrayVar(&only, "only", nil, "Report just this n-gram (escaped form), may be repeated")
	fs.BoolVarP(&header, "fingerprint", "f", false, "Print the dictionary fingerprint before the report")
	fs.BoolVarP(&help, "help", "h", false, "Show help message")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if help {
		printUsage(stdout, fs)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if fs.Changed("patterns") {
		cfg.PatternsFile = patterns
	}
	if optional {
		cfg.PatternsRequired = false
	}
	if fs.Changed("order") {
		cfg.Order = order
	}
	if hideZero {
		cfg.HideZero = true
	}
	if noFlush {
		cfg.FlushBetweenFiles = false
	}
	reportOrder, err := report.ParseOrder(cfg.Order)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	dict, err := ngramfile.LoadFile(cfg.PatternsFile, cfg.PatternsRequired)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading patterns: %v\n", err)
		return 1
	}
	selected, err := selectPatterns(dict, only)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	m := ngrams.NewMatcher(dict)
	if err := scan(m, fs.Args(), stdin, cfg.FlushBetweenFiles); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if header {
		fmt.Fprintf(stdout, "# %s: %d patterns, fingerprint %016x\n",
			dict.Identifier, dict.Size(), dict.Fingerprint())
	}
	opts := report.Options{Order: reportOrder, HideZero: cfg.HideZero, Only: selected}
	if err := report.Write(stdout, m.Table(), opts); err != nil {
		fmt.Fprintf(stderr, "Error writing report: %v\n", err)
		return 1
	}
	return 0
}

// scan feeds stdin or each of files to m.
func scan(m *ngrams.Matcher, files []string, stdin io.Reader, flush bool) error {
	if len(files) == 0 {
		_, err := m.ReadFrom(stdin)
		m.Flush()
		return err
	}
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = m.ReadFrom(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if flush {
			m.Flush()
		}
	}
	m.Flush()
	return nil
}

// selectPatterns resolves escaped n-grams to dictionary indices.
func selectPatterns(dict *ngrams.Dictionary, only []string) ([]int, error) {
	var selected []int
	for _, text := range only {
		pattern, err := escape.Decode(text)
		if err != nil {
			return nil, fmt.Errorf("--only %q: %w", text, err)
		}
		indices := dict.Lookup(string(pattern))
		if len(indices) == 0 {
			return nil, fmt.Errorf("--only %s: not in %s", escape.EncodeString(string(pattern)), dict.Identifier)
		}
		selected = append(selected, indices...)
	}
	return selected, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "ngrams - count n-grams in text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: ngrams [OPTIONS] [FILES...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment Variables:")
	fmt.Fprintln(w, "  NGRAMS_CONFIG             Path to config file")
	fmt.Fprintln(w, "  NGRAMS_PATTERNS           Pattern file")
	fmt.Fprintln(w, "  NGRAMS_PATTERNS_REQUIRED  Fail if the pattern file is missing (true/false)")
	fmt.Fprintln(w, "  NGRAMS_ORDER              Report order")
	fmt.Fprintln(w, "  NGRAMS_HIDE_ZERO          Omit n-grams which did not occur (true/false)")
	fmt.Fprintln(w, "  NGRAMS_FLUSH              Treat files as separate streams (true/false)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration file: ~/.config/ngrams/config.yaml")
}
