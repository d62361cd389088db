package syntax

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexlint/helpers"
)

// GroupRef is one capture group in pattern order. The position of a
// GroupRef in the list returned by CollectReferences plus one is the
// group's index.
type GroupRef struct {
	Name  string
	Named bool
}

var (
	lower        = helpers.NewAsciiSet("abcdefghijklmnopqrstuvwxyz")
	alphanumeric = helpers.NewAsciiSet("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ").Union(lower)

	// escapes that mean something after a backslash
	usefulEscapes = helpers.NewAsciiSet("nrt0sSdDwWvbBf")
)

// PostProcess runs the checks that need the whole tree: numeric escapes,
// named references, duplicate names, useless escapes and duplicate
// alternation branches. Each pass returns a new tree; the input is not
// modified. Running it again on its own output adds nothing.
func PostProcess(tree []Node, opt RegexOptions) []Node {
	refs := CollectReferences(tree)

	tree = resolveNumericEscapes(tree, len(refs), opt)
	tree = resolveNamedReferences(tree, groupNames(refs))
	tree = checkDuplicateNames(tree, refs)
	tree = checkUselessEscapes(tree, opt)
	tree = checkAlternation(tree, opt)
	return tree
}

// CollectReferences lists the capture groups of tree depth-first. Named
// groups carry their name; plain '(' groups are unnamed. Non-capturing
// groups and lookarounds are not listed.
func CollectReferences(tree []Node) []GroupRef {
	var refs []GroupRef
	for _, n := range tree {
		switch {
		case n.T == NtNamedGroup:
			refs = append(refs, GroupRef{Name: n.Value, Named: true})
		case n.T == NtGroup && n.Value == "(":
			refs = append(refs, GroupRef{})
		}
		refs = append(refs, CollectReferences(n.Children)...)
	}
	return refs
}

func groupNames(refs []GroupRef) map[string]bool {
	names := make(map[string]bool)
	for _, r := range refs {
		if r.Named {
			names[r.Name] = true
		}
	}
	return names
}

// mapNodes builds a new node list from the results of f on each node.
func mapNodes(tree []Node, f func(Node) []Node) []Node {
	var out []Node
	for _, n := range tree {
		out = append(out, f(n)...)
	}
	return out
}

func resolveNumericEscapes(tree []Node, groups int, opt RegexOptions) []Node {
	return mapNodes(tree, func(n Node) []Node {
		switch n.T {
		case NtCharClass:
			// always octal in a class, nothing to resolve
			return []Node{n}
		case NtOctalCharEscape:
			return resolveNumericEscape(n, groups, opt)
		}
		return []Node{n.withChildren(resolveNumericEscapes(n.Children, groups, opt))}
	})
}

// resolveNumericEscape decides whether a `\digits` escape is a back-reference
// (its value is a valid group index) or an octal escape. Digits that can't
// be part of the octal value come out as literals after it.
func resolveNumericEscape(n Node, groups int, opt RegexOptions) []Node {
	digits := strings.TrimPrefix(n.Value, `\`)
	if !helpers.IsDigits(digits) || digits == "0" || n.hasDiagnostics() {
		// \0 is NUL, and a flagged escape was already resolved
		return []Node{n}
	}

	if digits[0] != '0' && helpers.CompareDecimal(digits, strconv.Itoa(groups)) <= 0 {
		return []Node{newNode(NtBackReference, digits, n.Children...)}
	}

	octal, rest := helpers.SplitOctal(digits)
	if octal == "" {
		// \8 and \9 are neither
		return append([]Node{literal(`\` + digits[:1])}, literals(digits[1:])...)
	}

	esc := newNode(NtOctalCharEscape, `\`+octal, n.Children...)
	esc = esc.withDiagnostic(opt.stylef(warnAmbiguousOctal, esc.Value))
	if rest == "" {
		return []Node{esc}
	}
	esc = esc.withDiagnostic(opt.stylef(warnInvalidOctal, n.Value))
	return append([]Node{esc}, literals(rest)...)
}

func resolveNamedReferences(tree []Node, names map[string]bool) []Node {
	return mapNodes(tree, func(n Node) []Node {
		if n.T == NtBackReference && !helpers.IsDigits(n.Value) && !names[n.Value] {
			return []Node{n.withDiagnostic(errorf(errUnresolvedReference, n.Value))}
		}
		return []Node{n.withChildren(resolveNamedReferences(n.Children, names))}
	})
}

// checkDuplicateNames appends one root Error for every occurrence of a group
// name after its first. Errors already present at the root count toward the
// total so a second run adds none.
func checkDuplicateNames(tree []Node, refs []GroupRef) []Node {
	seen := make(map[string]int)
	var want []Node
	for _, r := range refs {
		if !r.Named {
			continue
		}
		seen[r.Name]++
		if seen[r.Name] > 1 {
			want = append(want, errorf(errDuplicateGroupName, r.Name))
		}
	}
	if len(want) == 0 {
		return tree
	}

	have := make(map[string]int)
	for _, n := range tree {
		if n.T == NtError {
			have[n.Value]++
		}
	}

	out := tree[:len(tree):len(tree)]
	for _, d := range want {
		if have[d.Value] > 0 {
			have[d.Value]--
			continue
		}
		out = append(out, d)
	}
	return out
}

// isUselessEscape reports whether v is a backslash followed by a letter or
// digit that has no special meaning.
func isUselessEscape(v string) bool {
	if len(v) != 2 || v[0] != '\\' {
		return false
	}
	c := rune(v[1])
	return alphanumeric.Contains(c) && !usefulEscapes.Contains(c)
}

func checkUselessEscapes(tree []Node, opt RegexOptions) []Node {
	return mapNodes(tree, func(n Node) []Node {
		if n.T == NtLiteral && !n.hasDiagnostics() && isUselessEscape(n.Value) {
			return []Node{n.withDiagnostic(opt.stylef(warnUselessEscape, n.Value))}
		}
		return []Node{n.withChildren(checkUselessEscapes(n.Children, opt))}
	})
}

// checkAlternation flags every branch of an alternation list that is
// identical to an earlier branch of the same list.
func checkAlternation(tree []Node, opt RegexOptions) []Node {
	dup := opt.style(WarnDuplicateAlternation)

	var out []Node
	// earlier branches of the current list, without the duplicate flag
	var branches []Node
	for _, n := range tree {
		n = n.withChildren(checkAlternation(n.Children, opt))
		if n.T != NtAlternation {
			branches = nil
			out = append(out, n)
			continue
		}

		plain := n.withoutChild(dup)
		for _, b := range branches {
			if b.Equal(plain) {
				n = n.withDiagnostic(dup)
				break
			}
		}
		branches = append(branches, plain)
		out = append(out, n)
	}
	return out
}
