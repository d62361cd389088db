package syntax

import (
	"github.com/dlclark/regexlint/helpers"
	"github.com/dlclark/regexlint/runecacher"
)

// Token is one lexical unit of a pattern: a single character or a
// multi-character unit such as `\x4f`, `(?<` or the digits of a `{12,34}`
// quantifier. Tokens carry no kind; the parser derives meaning from Text.
type Token struct {
	Text string
	// rune offset of the token in the pattern
	Pos int

	// set when Text was not copied from the pattern, i.e. the `\{` emitted
	// for a '{' that does not start a valid quantifier
	implicit bool
}

func (t Token) String() string {
	return t.Text
}

type tokenizerState int

const (
	stateNormal tokenizerState = iota
	stateCharGroup
)

// openers recognized after '(' in priority order, longest first
var groupOpeners = []string{"(?<=", "(?<!", "(?=", "(?!", "(?:", "(?<"}

type tokenizer struct {
	in     *runecacher.RuneCacher
	base   int
	pos    int
	state  tokenizerState
	tokens []Token
}

// Tokenize splits pattern into tokens. It never fails: anything it can't
// group into a larger unit comes out as a single-character token.
func Tokenize(pattern string) []Token {
	return tokenizeAt(pattern, 0)
}

// tokenizeAt tokenizes pattern in normal mode, offsetting token positions by base.
func tokenizeAt(pattern string, base int) []Token {
	t := &tokenizer{in: runecacher.NewFromString(pattern), base: base}
	for !t.in.AtEnd(t.pos) {
		if t.state == stateCharGroup {
			t.scanCharGroup()
		} else {
			t.scanNormal()
		}
	}
	return t.tokens
}

func (t *tokenizer) emit(text string, start int) {
	t.tokens = append(t.tokens, Token{Text: text, Pos: t.base + start})
}

// take advances past the next n runes and emits them as one token
func (t *tokenizer) take(n int) {
	start := t.pos
	t.pos += n
	t.emit(t.in.Text(start, t.pos), start)
}

func (t *tokenizer) hasPrefix(s string) bool {
	i := t.pos
	for _, r := range s {
		if t.in.RuneAt(i) != r {
			return false
		}
		i++
	}
	return true
}

// runeAt returns the rune at i, or -1 past the end of the pattern
func (t *tokenizer) runeAt(i int) rune {
	return t.in.RuneAt(i)
}

func (t *tokenizer) scanNormal() {
	switch t.runeAt(t.pos) {
	case '\\':
		t.scanEscape()
	case '{':
		t.scanBrace()
	case '(':
		for _, op := range groupOpeners {
			if t.hasPrefix(op) {
				t.take(len(op))
				if op == "(?<" {
					t.scanName()
				}
				return
			}
		}
		t.take(1)
	case '[':
		if t.hasPrefix("[^") {
			t.take(2)
		} else {
			t.take(1)
		}
		t.state = stateCharGroup
	default:
		t.take(1)
	}
}

// scanCharGroup handles the body of a character class, where almost
// everything is literal except escapes and the closing bracket.
func (t *tokenizer) scanCharGroup() {
	switch t.runeAt(t.pos) {
	case '\\':
		t.scanEscape()
	case ']':
		t.take(1)
		t.state = stateNormal
	default:
		t.take(1)
	}
}

func (t *tokenizer) scanEscape() {
	next := t.runeAt(t.pos + 1)
	switch {
	case next < 0:
		// trailing backslash
		t.take(1)
	case next == 'x':
		t.scanRun(4, helpers.IsHex)
	case next == 'u':
		t.scanRun(6, helpers.IsHex)
	case next == 'k' && t.state == stateNormal && t.runeAt(t.pos+2) == '<':
		t.take(3)
		t.scanName()
	case t.state == stateNormal && helpers.IsDecimal(next):
		// octal escape or indexed back-reference, sorted out after parsing
		t.scanRun(4, helpers.IsDecimal)
	case t.state == stateCharGroup && helpers.IsOctal(next):
		// always octal inside a class
		t.scanRun(4, helpers.IsOctal)
	default:
		t.take(2)
	}
}

// scanRun emits the two-rune escape prefix at t.pos followed by as many
// accepted runes as fit in max total runes. It stops early at the first
// rune that isn't accepted.
func (t *tokenizer) scanRun(max int, accept func(rune) bool) {
	n := 2
	for n < max && accept(t.runeAt(t.pos+n)) {
		n++
	}
	t.take(n)
}

// scanName handles the `name>` part of `(?<name>` and `\k<name>`. The name
// and the '>' are separate tokens; without a '>' the rest of the pattern
// is emitted as the name.
func (t *tokenizer) scanName() {
	end := -1
	for i := t.pos; !t.in.AtEnd(i); i++ {
		if t.runeAt(i) == '>' {
			end = i
			break
		}
	}

	if end < 0 {
		if !t.in.AtEnd(t.pos) {
			t.take(t.in.Len() - t.pos)
		}
		return
	}

	if end > t.pos {
		t.take(end - t.pos)
	}
	t.take(1)
}

func (t *tokenizer) digitsAt(i int) int {
	n := 0
	for helpers.IsDecimal(t.runeAt(i+n)) {
		n++
	}
	return n
}

// scanBrace looks ahead from a '{' for one of the quantifier shapes
// `{n}`, `{n,}` or `{n,m}`. Anything else turns the '{' into an escaped
// literal and scanning resumes right after it.
func (t *tokenizer) scanBrace() {
	start := t.pos
	i := start + 1
	min := t.digitsAt(i)
	if min > 0 {
		i += min
		switch t.runeAt(i) {
		case '}':
			t.take(1)
			t.take(min)
			t.take(1)
			return
		case ',':
			j := i + 1
			max := t.digitsAt(j)
			if t.runeAt(j+max) == '}' {
				t.take(1)
				t.take(min)
				t.take(1)
				if max > 0 {
					t.take(max)
				}
				t.take(1)
				return
			}
		}
	}

	t.tokens = append(t.tokens, Token{Text: `\{`, Pos: t.base + start, implicit: true})
	t.pos++
}
