// Command regexlint checks regular expression patterns and reports every
// problem found in them.
//
// Usage:
//
//	regexlint [flags] [pattern ...]
//
// With no pattern arguments, patterns are read from stdin, one per line.
// The exit status is 0 when every pattern is valid, 1 when any pattern has an
// error and 2 on usage or I/O problems.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coregx/ahocorasick"
	"github.com/dlclark/regexlint"
	"github.com/dlclark/regexlint/internal/codegen"
	"github.com/dlclark/regexlint/syntax"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

// arrayFlags collects the values of a repeatable flag.
type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

type options struct {
	strict   bool
	flags    string
	tokens   bool
	dump     bool
	json     bool
	suppress arrayFlags
	gen      string
	pkg      string
	name     string
	verbose  bool
}

// report is the -json output for one pattern.
type report struct {
	Pattern  string   `json:"pattern"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("regexlint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.strict, "strict", false, "Report style and ambiguity problems as errors")
	fs.StringVar(&opts.flags, "flags", "", "ECMAScript flags to check and compile with (e.g. \"gi\")")
	fs.BoolVar(&opts.tokens, "tokens", false, "Print the tokens of each pattern")
	fs.BoolVar(&opts.dump, "dump", false, "Print the analysis tree of each pattern")
	fs.BoolVar(&opts.json, "json", false, "Print one JSON object per pattern")
	fs.Var(&opts.suppress, "suppress", "Hide diagnostics containing this text (can be repeated)")
	fs.StringVar(&opts.gen, "gen", "", "Write Go code for the pattern to this file")
	fs.StringVar(&opts.pkg, "pkg", "main", "Package name for generated code")
	fs.StringVar(&opts.name, "name", "Regexp", "Identifier prefix for generated code")
	fs.BoolVar(&opts.verbose, "v", false, "Enable verbose logging")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	logger := NewLogger(opts.verbose)
	logger.SetOutput(stderr)

	patterns := fs.Args()
	if len(patterns) == 0 {
		var err error
		if patterns, err = readPatterns(stdin); err != nil {
			fmt.Fprintf(stderr, "regexlint: reading patterns: %v\n", err)
			return exitUsage
		}
	}
	if len(patterns) == 0 {
		fmt.Fprintln(stderr, "regexlint: no patterns given")
		return exitUsage
	}
	if opts.gen != "" && len(patterns) != 1 {
		fmt.Fprintf(stderr, "regexlint: -gen needs exactly one pattern, got %d\n", len(patterns))
		return exitUsage
	}

	if info := regexlint.ParseFlags(opts.flags); !info.Valid() {
		for _, msg := range info.Errors {
			fmt.Fprintf(stderr, "regexlint: -flags: %s\n", msg)
		}
		return exitUsage
	}

	filter, err := newSuppressor(opts.suppress)
	if err != nil {
		fmt.Fprintf(stderr, "regexlint: -suppress: %v\n", err)
		return exitUsage
	}

	opt := regexlint.None
	if opts.strict {
		opt = regexlint.Strict
	}

	status := exitOK
	enc := json.NewEncoder(stdout)
	for _, pattern := range patterns {
		res := regexlint.Analyze(pattern, opt)
		logResult(logger, res)

		r := report{Pattern: pattern, Errors: []string{}, Warnings: []string{}}
		for _, d := range syntax.Diagnostics(res.Tree) {
			if filter.hides(d.Value) {
				logger.Log("suppressed: %s", d.Value)
				continue
			}
			if d.T == syntax.NtError {
				r.Errors = append(r.Errors, d.Value)
			} else {
				r.Warnings = append(r.Warnings, d.Value)
			}
		}
		r.Valid = len(r.Errors) == 0
		if !r.Valid {
			status = exitInvalid
		}

		if opts.tokens {
			printTokens(stdout, pattern, res.Tokens)
		}
		if opts.dump {
			fmt.Fprint(stdout, syntax.Dump(res.Tree))
		}

		if opts.json {
			if err := enc.Encode(r); err != nil {
				fmt.Fprintf(stderr, "regexlint: %v\n", err)
				return exitUsage
			}
			continue
		}
		printReport(stdout, r)
	}

	if opts.gen != "" {
		if code := generate(logger, opts, opt, patterns[0], stderr); code != exitOK {
			return code
		}
	}

	return status
}

// readPatterns returns the non-empty lines of r.
func readPatterns(r io.Reader) ([]string, error) {
	var patterns []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimRight(scanner.Text(), "\r"); line != "" {
			patterns = append(patterns, line)
		}
	}
	return patterns, scanner.Err()
}

func printTokens(w io.Writer, pattern string, tokens []syntax.Token) {
	fmt.Fprintf(w, "%s: %d tokens\n", pattern, len(tokens))
	for _, tok := range tokens {
		fmt.Fprintf(w, "%4d  %s\n", tok.Pos, tok.Text)
	}
}

func printReport(w io.Writer, r report) {
	if len(r.Errors) == 0 && len(r.Warnings) == 0 {
		fmt.Fprintf(w, "%s: ok\n", r.Pattern)
		return
	}
	for _, msg := range r.Errors {
		fmt.Fprintf(w, "%s: error: %s\n", r.Pattern, msg)
	}
	for _, msg := range r.Warnings {
		fmt.Fprintf(w, "%s: warning: %s\n", r.Pattern, msg)
	}
}

func logResult(logger *Logger, res *regexlint.Result) {
	if !logger.Enabled() {
		return
	}
	logger.Section("Analysis")
	logger.Log("pattern: %s", res.Pattern)
	logger.Log("tokens: %d", len(res.Tokens))
	logger.Log("nodes: %d", countNodes(res.Tree))
	logger.Log("capture groups: %d", len(res.References))
	logger.Log("errors: %d, warnings: %d", len(res.Errors()), len(res.Warnings()))
}

func countNodes(tree []syntax.Node) int {
	n := len(tree)
	for _, node := range tree {
		n += countNodes(node.Children)
	}
	return n
}

// generate compiles pattern through the gate and writes code for it.
func generate(logger *Logger, opts options, opt regexlint.Options, pattern string, stderr io.Writer) int {
	logger.Section("Code Generation")

	re, err := regexlint.Compile(pattern, opts.flags, opt)
	if err != nil {
		fmt.Fprintf(stderr, "regexlint: not generating code: %v\n", err)
		return exitInvalid
	}

	f, err := os.Create(opts.gen)
	if err != nil {
		fmt.Fprintf(stderr, "regexlint: %v\n", err)
		return exitUsage
	}
	defer f.Close()

	cfg := codegen.Config{
		Package:    opts.pkg,
		Name:       opts.name,
		Pattern:    pattern,
		Flags:      re.Flags().String(),
		References: re.Analysis().References,
	}
	if err := codegen.Generate(f, cfg); err != nil {
		fmt.Fprintf(stderr, "regexlint: %v\n", err)
		return exitUsage
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(stderr, "regexlint: %v\n", err)
		return exitUsage
	}

	logger.Log("wrote %s (package %s, %d groups)", opts.gen, opts.pkg, len(cfg.References))
	return exitOK
}

// suppressor hides diagnostics whose message contains any of a set of
// substrings.
type suppressor struct {
	automaton *ahocorasick.Automaton
}

func newSuppressor(substrings []string) (*suppressor, error) {
	builder := ahocorasick.NewBuilder()
	n := 0
	for _, s := range substrings {
		if s == "" {
			continue
		}
		builder.AddPattern([]byte(s))
		n++
	}
	if n == 0 {
		return &suppressor{}, nil
	}

	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &suppressor{automaton: auto}, nil
}

func (s *suppressor) hides(msg string) bool {
	return s.automaton != nil && s.automaton.IsMatch([]byte(msg))
}
