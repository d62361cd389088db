package syntax

import (
	"bytes"
	"strconv"
)

// Node is the unit of the analysis tree.
//
// Implementation notes:
//
// Nodes are plain values. A pass that needs to change a node builds a new
// one (see withChildren and withDiagnostic) instead of editing it, so a
// tree handed out by Parse or PostProcess is never changed afterwards.
//
// Children are overloaded by kind. Structural nodes (groups, classes,
// lookarounds, alternation branches) hold their content. Quantifier and
// Lazy hold the one node they apply to, or an Error if there was none.
// CharRange holds its low and high bound. Any node may additionally carry
// Error and Warning children marking a problem at that exact spot.
//
// Empty children are always nil so trees compare cleanly.
type Node struct {
	T        NodeType
	Value    string
	Children []Node
}

type NodeType int32

const (
	NtLiteral           NodeType = 0  // single char or escape        a  \.  \d
	NtQuantifier        NodeType = 1  // value is the quantifier      a*  a{2,3}
	NtLazy              NodeType = 2  // wraps a quantifier           a*?
	NtHexCharEscape     NodeType = 3  //                              \x4f
	NtUnicodeCharEscape NodeType = 4  //                              \u12f4
	NtOctalCharEscape   NodeType = 5  // also indexed refs until resolved  \12
	NtCharClass         NodeType = 6  // value is "[" or "[^"         [a-z]
	NtCharRange         NodeType = 7  // low, high                    a-z
	NtLookaround        NodeType = 8  //                              (?=) (?!) (?<=) (?<!)
	NtNamedGroup        NodeType = 9  // value is the name            (?<name>)
	NtGroup             NodeType = 10 //                              () (?:)
	NtAlternation       NodeType = 11 // one branch of a|b
	NtBackReference     NodeType = 12 // value is the index or name   \1 \k<name>
	NtError             NodeType = 13
	NtWarning           NodeType = 14
)

var typeStr = []string{
	"Literal", "Quantifier", "Lazy",
	"HexCharEscape", "UnicodeCharEscape", "OctalCharEscape",
	"CharClass", "CharRange",
	"Lookaround", "NamedGroup", "Group", "Alternation",
	"BackReference",
	"Error", "Warning",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(typeStr) {
		return "Unknown(" + strconv.Itoa(int(t)) + ")"
	}
	return typeStr[t]
}

func newNode(t NodeType, value string, children ...Node) Node {
	return Node{T: t, Value: value, Children: cloneNodes(children)}
}

func literal(value string) Node {
	return Node{T: NtLiteral, Value: value}
}

func literals(s string) []Node {
	var nodes []Node
	for _, r := range s {
		nodes = append(nodes, literal(string(r)))
	}
	return nodes
}

func errorNode(msg string) Node {
	return Node{T: NtError, Value: msg}
}

func warningNode(msg string) Node {
	return Node{T: NtWarning, Value: msg}
}

// cloneNodes copies nodes into a fresh slice, or nil when there are none.
func cloneNodes(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nil
	}
	return append([]Node(nil), nodes...)
}

// withChildren returns a copy of n with its children replaced.
func (n Node) withChildren(children []Node) Node {
	n.Children = cloneNodes(children)
	return n
}

// withDiagnostic returns a copy of n with d appended to its children,
// or n itself if an identical diagnostic is already there.
func (n Node) withDiagnostic(d Node) Node {
	if n.hasChild(d) {
		return n
	}
	n.Children = append(n.Children[:len(n.Children):len(n.Children)], d)
	return n
}

// withoutChild returns a copy of n with every child equal to c removed.
func (n Node) withoutChild(c Node) Node {
	var kept []Node
	for _, child := range n.Children {
		if !child.Equal(c) {
			kept = append(kept, child)
		}
	}
	n.Children = kept
	return n
}

func (n Node) hasChild(c Node) bool {
	for _, child := range n.Children {
		if child.Equal(c) {
			return true
		}
	}
	return false
}

// hasDiagnostics reports whether any direct child of n is an Error or Warning.
func (n Node) hasDiagnostics() bool {
	for _, child := range n.Children {
		if child.IsDiagnostic() {
			return true
		}
	}
	return false
}

func (n Node) IsDiagnostic() bool {
	return n.T == NtError || n.T == NtWarning
}

// Equal reports whether n and o are structurally identical: same kind,
// same value and pairwise equal children.
func (n Node) Equal(o Node) bool {
	if n.T != o.T || n.Value != o.Value || len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Diagnostics returns every Error and Warning node of tree in depth-first
// pre-order.
func Diagnostics(tree []Node) []Node {
	var out []Node
	for _, n := range tree {
		if n.IsDiagnostic() {
			out = append(out, n)
			continue
		}
		out = append(out, Diagnostics(n.Children)...)
	}
	return out
}

// Messages returns the text of every diagnostic in tree, in tree order.
func Messages(tree []Node) []string {
	var msgs []string
	for _, d := range Diagnostics(tree) {
		msgs = append(msgs, d.Value)
	}
	return msgs
}

// HasErrors reports whether tree contains an Error node anywhere.
func HasErrors(tree []Node) bool {
	for _, d := range Diagnostics(tree) {
		if d.T == NtError {
			return true
		}
	}
	return false
}

// debug functions

func (n Node) Description() string {
	buf := &bytes.Buffer{}

	buf.WriteString(n.T.String())

	switch n.T {
	case NtError, NtWarning:
		buf.WriteString("(" + n.Value + ")")
	case NtAlternation:
	default:
		buf.WriteString("(Value = " + strconv.Quote(n.Value) + ")")
	}

	return buf.String()
}

var padSpace = []byte("                                ")

// Dump renders tree one node per line, children indented under their parent.
func Dump(tree []Node) string {
	buf := &bytes.Buffer{}
	for _, n := range tree {
		n.dump(buf, 0)
	}
	return buf.String()
}

func (n Node) dump(buf *bytes.Buffer, depth int) {
	pad := depth
	if pad > len(padSpace) {
		pad = len(padSpace)
	}
	buf.Write(padSpace[:pad])
	buf.WriteString(n.Description())
	buf.WriteRune('\n')

	for _, child := range n.Children {
		child.dump(buf, depth+1)
	}
}
