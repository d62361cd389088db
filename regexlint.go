/*
Package regexlint checks ECMAScript regular expression patterns before they are ever run.

A pattern goes through a tokenizer, a parser and a post-processor that together build a tree of
typed nodes. Problems are not returned as errors; they are Error and Warning nodes attached to the
node where the problem is, so one run reports everything wrong with a pattern at once.

Compile is the gate: it refuses patterns with bad flags or any Error node and otherwise hands the
pattern to regexp2 in ECMAScript mode.
*/
package regexlint

import (
	"fmt"
	"strconv"

	"github.com/dlclark/regexp2"
	"github.com/dlclark/regexlint/syntax"
)

// Options select how diagnostics are raised. See Strict.
type Options = syntax.RegexOptions

const (
	None = syntax.None
	// Strict makes style and ambiguity problems Errors instead of Warnings,
	// so they also block Compile.
	Strict = syntax.Strict
)

// Result is the full analysis of one pattern.
type Result struct {
	Pattern string
	Options Options

	Tokens []syntax.Token
	Tree   []syntax.Node
	// capture groups in index order
	References []syntax.GroupRef
}

// Analyze runs the whole pipeline over pattern. It always produces a tree.
func Analyze(pattern string, opt Options) *Result {
	tokens := syntax.Tokenize(pattern)
	tree := syntax.PostProcess(syntax.Parse(tokens, opt), opt)

	return &Result{
		Pattern:    pattern,
		Options:    opt,
		Tokens:     tokens,
		Tree:       tree,
		References: syntax.CollectReferences(tree),
	}
}

// Messages returns the text of every diagnostic, in tree order.
func (r *Result) Messages() []string {
	return syntax.Messages(r.Tree)
}

// Errors returns the messages of the Error nodes only.
func (r *Result) Errors() []string {
	return r.messages(syntax.NtError)
}

// Warnings returns the messages of the Warning nodes only.
func (r *Result) Warnings() []string {
	return r.messages(syntax.NtWarning)
}

func (r *Result) messages(t syntax.NodeType) []string {
	var msgs []string
	for _, d := range syntax.Diagnostics(r.Tree) {
		if d.T == t {
			msgs = append(msgs, d.Value)
		}
	}
	return msgs
}

// Valid reports whether the tree is free of Error nodes.
func (r *Result) Valid() bool {
	return !syntax.HasErrors(r.Tree)
}

// GroupNames returns one entry per capture group in index order: the
// group's name, or its index when it has none.
func (r *Result) GroupNames() []string {
	names := make([]string, len(r.References))
	for i, ref := range r.References {
		if ref.Named {
			names[i] = ref.Name
		} else {
			names[i] = strconv.Itoa(i + 1)
		}
	}
	return names
}

// Error is returned by Compile when the analysis found blocking problems.
type Error struct {
	Pattern string
	// every Error message of the tree, in tree order
	Messages []string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("error parsing regexp: %v in `%v`", e.Messages[0], e.Pattern)
	if n := len(e.Messages) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

// FlagError is returned by Compile when the flag string isn't valid.
type FlagError struct {
	Flags    string
	Messages []string
}

func (e *FlagError) Error() string {
	msg := fmt.Sprintf("invalid flags %v: %v", quote(e.Flags), e.Messages[0])
	if n := len(e.Messages) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

// Regexp is a pattern that passed the checks, compiled by regexp2.
// It is safe for concurrent use by multiple goroutines.
type Regexp struct {
	*regexp2.Regexp

	// read-only after Compile
	flags    FlagInfo
	analysis *Result
}

// Compile checks flags and pattern and, if nothing blocks, compiles the
// pattern with regexp2 in ECMAScript mode. Warnings never block.
func Compile(pattern, flags string, opt Options) (*Regexp, error) {
	info := ParseFlags(flags)
	if !info.Valid() {
		return nil, &FlagError{Flags: flags, Messages: info.Errors}
	}

	res := Analyze(pattern, opt)
	if errs := res.Errors(); len(errs) > 0 {
		return nil, &Error{Pattern: pattern, Messages: errs}
	}

	re, err := regexp2.Compile(pattern, engineOptions(info))
	if err != nil {
		return nil, fmt.Errorf("regexlint: engine rejected %v: %w", quote(pattern), err)
	}

	return &Regexp{
		Regexp:   re,
		flags:    info,
		analysis: res,
	}, nil
}

// MustCompile is like Compile with default options but panics if the
// pattern is rejected. It simplifies safe initialization of global variables
// holding checked regular expressions.
func MustCompile(pattern, flags string) *Regexp {
	regexp, error := Compile(pattern, flags, None)
	if error != nil {
		panic(`regexlint: Compile(` + quote(pattern) + `): ` + error.Error())
	}
	return regexp
}

// engineOptions maps flags to regexp2 options. d, g and y change how a
// caller iterates matches, not the engine, so they are only kept on Regexp.
func engineOptions(f FlagInfo) regexp2.RegexOptions {
	opt := regexp2.RegexOptions(regexp2.ECMAScript)
	if f.IgnoreCase {
		opt |= regexp2.IgnoreCase
	}
	if f.Multiline {
		opt |= regexp2.Multiline
	}
	if f.DotAll {
		opt |= regexp2.Singleline
	}
	if f.Unicode {
		opt |= regexp2.Unicode
	}
	return opt
}

// Flags returns the flags the pattern was compiled with.
func (re *Regexp) Flags() FlagInfo {
	return re.flags
}

// Analysis returns the analysis that let the pattern through, including
// any warnings.
func (re *Regexp) Analysis() *Result {
	return re.analysis
}

func (re *Regexp) Global() bool {
	return re.flags.Global
}

func (re *Regexp) Sticky() bool {
	return re.flags.Sticky
}

func (re *Regexp) HasIndices() bool {
	return re.flags.HasIndices
}

func quote(s string) string {
	if strconv.CanBackquote(s) {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}
