package syntax

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexlint/helpers"
)

type parser struct {
	tokens []Token
	pos    int
	opt    RegexOptions
}

// Parse builds the annotated tree for tokens. Local syntax problems become
// Error/Warning children where they occur; parsing always runs to the end.
// Numeric escapes are left as OctalCharEscape placeholders for PostProcess.
func Parse(tokens []Token, opt RegexOptions) []Node {
	p := &parser{tokens: tokens, opt: opt}
	return p.parseNormal(false)
}

var lookaroundOpeners = map[string]bool{"(?=": true, "(?!": true, "(?<=": true, "(?<!": true}

// ASCII chars that make a literal '{...}' look like a botched quantifier
var rangeLike = helpers.NewAsciiSet("0123456789, .eE+-")

// sequence is the node list of one parseNormal level.
type sequence struct {
	nodes []Node
	// number of leading nodes that are completed alternation branches
	alts int
}

func (s *sequence) push(nodes ...Node) {
	s.nodes = append(s.nodes, nodes...)
}

// last returns the final node of the current branch, if any.
func (s *sequence) last() (Node, bool) {
	if len(s.nodes) > s.alts {
		return s.nodes[len(s.nodes)-1], true
	}
	return Node{}, false
}

func (s *sequence) replaceLast(n Node) {
	s.nodes[len(s.nodes)-1] = n
}

// alternate wraps everything since the last '|' into an Alternation branch.
func (s *sequence) alternate() {
	branch := newNode(NtAlternation, "|", s.nodes[s.alts:]...)
	s.nodes = append(s.nodes[:s.alts], branch)
	s.alts++
}

// finish closes a pending alternation and returns the nodes.
func (s *sequence) finish() []Node {
	if s.alts > 0 {
		s.alternate()
	}
	return s.nodes
}

// quantify applies the quantifier value to the last node of the branch.
// diags are placed before the quantified node.
func (s *sequence) quantify(value string, diags ...Node) {
	prev, ok := s.last()
	switch {
	case ok && (prev.T == NtQuantifier || prev.T == NtLazy):
		s.push(newNode(NtQuantifier, value, append(diags, errorNode(ErrTokenAlreadyQuantified))...))
	case ok:
		s.replaceLast(newNode(NtQuantifier, value, append(diags, prev)...))
	default:
		s.push(newNode(NtQuantifier, value, append(diags, errorNode(ErrTokenBeforeQuantifier))...))
	}
}

// makeLazy turns the last quantifier into a lazy one.
func (s *sequence) makeLazy() {
	if prev, ok := s.last(); ok && prev.T == NtQuantifier {
		s.replaceLast(newNode(NtLazy, "?", prev))
		return
	}
	s.push(newNode(NtLazy, "?", errorNode(ErrQuantifierBeforeLazy)))
}

func (p *parser) peek(offset int) (Token, bool) {
	if i := p.pos + offset; i < len(p.tokens) {
		return p.tokens[i], true
	}
	return Token{}, false
}

func (p *parser) peekText(offset int) string {
	tok, _ := p.peek(offset)
	return tok.Text
}

func (p *parser) parseNormal(inGroup bool, initial ...Node) []Node {
	s := &sequence{nodes: cloneNodes(initial)}

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		switch text := tok.Text; {
		case text == "|":
			s.alternate()

		case text == ")":
			if inGroup {
				return s.finish()
			}
			s.push(newNode(NtLiteral, ")", errorNode(ErrNoOpenParenthesis)))

		case text == "(?<":
			s.push(p.parseNamedGroup())

		case text == "(" || text == "(?:" || lookaroundOpeners[text]:
			body := p.parseNormal(true)
			if lookaroundOpeners[text] {
				s.push(newNode(NtLookaround, text, body...))
			} else {
				s.push(newNode(NtGroup, text, body...))
			}

		case text == "*" || text == "+" || text == "?":
			s.quantify(text)
			p.parseLazy(s)

		case text == "{" && !tok.implicit:
			p.parseBrace(s)

		case tok.implicit:
			s.push(p.parseLiteralBrace())

		case text == `\k<`:
			p.parseNamedReference(s)

		case strings.HasPrefix(text, `\`):
			s.push(p.parseEscape(text))

		case text == "[" || text == "[^":
			s.push(p.parseCharClass(text))

		default:
			s.push(literal(text))
		}
	}

	nodes := s.finish()
	if inGroup {
		nodes = append(nodes, errorNode(ErrUnclosedParenthesis))
	}
	return nodes
}

// parseLazy consumes a '?' right after a quantifier.
func (p *parser) parseLazy(s *sequence) {
	if p.peekText(0) == "?" {
		p.pos++
		s.makeLazy()
	}
}

// peekRange matches the tokens following a '{' against {n}, {n,} and {n,m}.
// It returns the bounds (max is empty when open) and the number of tokens
// including the braces.
func (p *parser) peekRange() (min, max string, n int, ok bool) {
	min = p.peekText(0)
	if !helpers.IsDigits(min) {
		return "", "", 0, false
	}
	switch p.peekText(1) {
	case "}":
		return min, min, 2, true
	case ",":
		if p.peekText(2) == "}" {
			return min, "", 3, true
		}
		if max = p.peekText(2); helpers.IsDigits(max) && p.peekText(3) == "}" {
			return min, max, 4, true
		}
	}
	return "", "", 0, false
}

// parseBrace handles a '{' that may start a range quantifier.
func (p *parser) parseBrace(s *sequence) {
	min, max, n, ok := p.peekRange()
	if !ok {
		s.push(p.parseLiteralBrace())
		return
	}
	p.pos += n

	var diags []Node
	if max != "" && helpers.CompareDecimal(min, max) > 0 {
		diags = append(diags, errorf(errRangeOutOfOrder, min, max))
	}
	s.quantify(min+","+max, diags...)
	p.parseLazy(s)
}

// parseLiteralBrace builds the literal for a '{' that doesn't start a
// quantifier. If what follows looks like a failed attempt at one, the
// literal carries a diagnostic quoting it.
func (p *parser) parseLiteralBrace() Node {
	n := literal("{")
	if content, ok := p.peekBadRange(); ok {
		return n.withDiagnostic(p.opt.stylef(warnInvalidRange, "{"+content+"}"))
	}
	return n
}

// peekBadRange returns the text up to the next '}' when it has the shape
// of a range quantifier, i.e. `{x}` or `{x,y}`, or is made only of chars
// found in numbers.
func (p *parser) peekBadRange() (string, bool) {
	if first := p.peekText(0); first != "" && first != "}" {
		if p.peekText(1) == "}" {
			return first, true
		}
		if p.peekText(1) == "," && p.peekText(3) == "}" && p.peekText(2) != "}" {
			return first + "," + p.peekText(2), true
		}
	}

	var content strings.Builder
	for i := 0; ; i++ {
		tok, ok := p.peek(i)
		if !ok {
			return "", false
		}
		if tok.Text == "}" {
			return content.String(), true
		}
		if !rangeLike.ContainsAll(tok.Text) {
			return "", false
		}
		content.WriteString(tok.Text)
	}
}

// takeName consumes the `name>` tokens after `(?<` or `\k<`. When the '>'
// is missing the unterminated name is split back into ordinary tokens and
// closed is false.
func (p *parser) takeName() (name string, closed bool) {
	if p.peekText(0) == ">" {
		p.pos++
		return "", true
	}
	if tok, ok := p.peek(0); ok && p.peekText(1) == ">" {
		p.pos += 2
		return tok.Text, true
	}
	if tok, ok := p.peek(0); ok {
		retok := tokenizeAt(tok.Text, tok.Pos)
		p.tokens = append(append(p.tokens[:p.pos:p.pos], retok...), p.tokens[p.pos+1:]...)
	}
	return "", false
}

func (p *parser) parseNamedGroup() Node {
	name, closed := p.takeName()
	if !closed {
		// no name after all, read it as a group followed by a stray '?'
		body := p.parseNormal(true,
			newNode(NtQuantifier, "?", errorNode(ErrTokenBeforeQuantifier)),
			literal("<"))
		return newNode(NtGroup, "(", body...)
	}

	var children []Node
	if !helpers.IsGroupName(name) {
		children = append(children, errorf(errInvalidGroupName, name))
	}
	children = append(children, p.parseNormal(true)...)
	return newNode(NtNamedGroup, name, children...)
}

func (p *parser) parseNamedReference(s *sequence) {
	name, closed := p.takeName()
	switch {
	case !closed:
		s.push(literal(`\k`), literal("<"))
	case helpers.IsGroupName(name):
		s.push(newNode(NtBackReference, name))
	default:
		s.push(newNode(NtLiteral, `\k<`+name+`>`, errorf(errInvalidGroupName, name)))
	}
}

// parseEscape handles backslash tokens outside of a character class.
func (p *parser) parseEscape(text string) Node {
	switch {
	case text == `\`:
		return newNode(NtLiteral, text, errorNode(ErrTrailingBackslash))
	case strings.HasPrefix(text, `\x`):
		return p.parseHexEscape(text, NtHexCharEscape, 2, warnInvalidHex)
	case strings.HasPrefix(text, `\u`):
		return p.parseHexEscape(text, NtUnicodeCharEscape, 4, warnInvalidUnicode)
	case helpers.IsDigits(text[1:]):
		// octal or back-reference, decided once the groups are known
		return newNode(NtOctalCharEscape, text)
	}
	return literal(text)
}

func (p *parser) parseHexEscape(text string, t NodeType, digits int, warn string) Node {
	hex := text[2:]
	valid := len(hex) == digits
	for _, r := range hex {
		valid = valid && helpers.IsHex(r)
	}
	if valid {
		return newNode(t, text)
	}
	return literal(text).withDiagnostic(p.opt.stylef(warn, text))
}

// parseClassEscape handles backslash tokens inside a character class.
// Digit escapes are always octal there.
func (p *parser) parseClassEscape(text string) []Node {
	if len(text) > 1 && helpers.IsDigits(text[1:]) {
		octal, rest := helpers.SplitOctal(text[1:])
		if octal == "" {
			return []Node{literal(text)}
		}
		return append([]Node{newNode(NtOctalCharEscape, `\`+octal)}, literals(rest)...)
	}
	return []Node{p.parseEscape(text)}
}

func (p *parser) parseCharClass(opener string) Node {
	var nodes []Node

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		switch text := tok.Text; {
		case text == "]":
			return newNode(NtCharClass, opener, nodes...)

		case strings.HasPrefix(text, `\`):
			for _, n := range p.parseClassEscape(text) {
				nodes = addClassAtom(nodes, n)
			}

		case text == "-":
			nodes = p.addClassHyphen(nodes)

		default:
			nodes = addClassAtom(nodes, literal(text))
		}
	}

	return newNode(NtCharClass, opener, append(nodes, errorNode(ErrUnclosedCharClass))...)
}

// addClassAtom appends atom to the class body, completing a pending range.
func addClassAtom(nodes []Node, atom Node) []Node {
	if len(nodes) > 0 {
		last := nodes[len(nodes)-1]
		if last.T == NtCharRange && len(last.Children) == 1 {
			nodes[len(nodes)-1] = completeRange(last.Children[0], atom)
			return nodes
		}
	}
	return append(nodes, atom)
}

func (p *parser) addClassHyphen(nodes []Node) []Node {
	if next := p.peekText(0); next == "]" || next == "" {
		// a trailing hyphen is literal
		return addClassAtom(nodes, literal("-"))
	}
	if len(nodes) == 0 {
		return append(nodes, literal("-"))
	}

	last := nodes[len(nodes)-1]
	switch {
	case last.T == NtCharRange && len(last.Children) == 1:
		return addClassAtom(nodes, literal("-"))
	case last.T == NtCharRange:
		return append(nodes, literal("-").withDiagnostic(p.opt.style(WarnChainedRange)))
	}

	nodes[len(nodes)-1] = newNode(NtCharRange, "-", last)
	return nodes
}

func completeRange(low, high Node) Node {
	n := newNode(NtCharRange, "-", low, high)
	lo, ok1 := codepoint(low)
	hi, ok2 := codepoint(high)
	if ok1 && ok2 && lo > hi {
		n = n.withDiagnostic(errorf(errCharRangeOutOfOrder, low.Value, high.Value))
	}
	return n
}

var controlEscapes = map[byte]rune{'n': '\n', 'r': '\r', 't': '\t', 'f': '\f', 'v': '\v', 'b': '\b'}

// codepoint returns the character a class atom stands for, if it stands
// for exactly one.
func codepoint(n Node) (rune, bool) {
	switch n.T {
	case NtHexCharEscape, NtUnicodeCharEscape:
		v, err := strconv.ParseUint(n.Value[2:], 16, 32)
		return rune(v), err == nil
	case NtOctalCharEscape:
		v, err := strconv.ParseUint(n.Value[1:], 8, 32)
		return rune(v), err == nil
	case NtLiteral:
		if n.hasDiagnostics() {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(n.Value)
		if size == len(n.Value) {
			return r, true
		}
		if r != '\\' || utf8.RuneCountInString(n.Value) != 2 {
			return 0, false
		}
		esc, _ := utf8.DecodeRuneInString(n.Value[1:])
		if esc < utf8.RuneSelf {
			if c, ok := controlEscapes[byte(esc)]; ok {
				return c, true
			}
			if helpers.IsNameChar(esc) {
				// class escapes like \d, or letters with no fixed char
				return 0, false
			}
		}
		return esc, true
	}
	return 0, false
}
