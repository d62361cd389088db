package regexlint

import (
	"fmt"
	"strings"
)

// FlagInfo is the result of checking an ECMAScript flag string such as "gim".
type FlagInfo struct {
	HasIndices bool // "d"
	Global     bool // "g"
	IgnoreCase bool // "i"
	Multiline  bool // "m"
	DotAll     bool // "s"
	Unicode    bool // "u"
	Sticky     bool // "y"

	// one message per unknown or repeated flag, in input order
	Errors []string
}

// canonical flag order, also the order String writes them in
const flagChars = "dgimsuy"

func (f *FlagInfo) flag(c rune) *bool {
	switch c {
	case 'd':
		return &f.HasIndices
	case 'g':
		return &f.Global
	case 'i':
		return &f.IgnoreCase
	case 'm':
		return &f.Multiline
	case 's':
		return &f.DotAll
	case 'u':
		return &f.Unicode
	case 'y':
		return &f.Sticky
	}
	return nil
}

// ParseFlags checks a flag string. Unknown characters produce an
// "Invalid flag" message and repeated ones a "Duplicate flag" message
// (once per letter); the valid flags are still recorded.
func ParseFlags(flags string) FlagInfo {
	var f FlagInfo
	reported := make(map[rune]bool)

	for _, c := range flags {
		p := f.flag(c)
		switch {
		case p == nil:
			f.Errors = append(f.Errors, fmt.Sprintf("Invalid flag '%c'", c))
		case *p:
			if !reported[c] {
				reported[c] = true
				f.Errors = append(f.Errors, fmt.Sprintf("Duplicate flag '%c'", c))
			}
		default:
			*p = true
		}
	}
	return f
}

// Valid reports whether the flag string had no errors.
func (f FlagInfo) Valid() bool {
	return len(f.Errors) == 0
}

// String returns the set flags in canonical order.
func (f FlagInfo) String() string {
	var b strings.Builder
	for _, c := range flagChars {
		if *f.flag(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}
