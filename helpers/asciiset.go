package helpers

import (
	"fmt"
	"unicode"
)

// AsciiSet is a membership set over the 128 ASCII characters.
type AsciiSet struct {
	// each ascii byte is represented by a bit in this array
	// there are 128bits here and ascii has 128 possible chars
	set [2]uint64
}

func NewAsciiSet(vals string) AsciiSet {
	s := AsciiSet{}
	for i := 0; i < len(vals); i++ {
		c := vals[i]
		if c > unicode.MaxASCII {
			// a bug got us here. that's bad.
			panic(fmt.Errorf("non-ascii value found in ascii set: %s", vals))
		}
		s.set[c/64] |= 1 << (c % 64)
	}

	return s
}

func (s AsciiSet) Contains(r rune) bool {
	if r < 0 || r > unicode.MaxASCII {
		return false
	}
	return s.set[r/64]&(1<<(r%64)) != 0
}

// ContainsAll reports whether every rune of str is in the set.
// An empty string is trivially contained.
func (s AsciiSet) ContainsAll(str string) bool {
	for _, r := range str {
		if !s.Contains(r) {
			return false
		}
	}
	return true
}

// Union returns a set containing the members of both sets.
func (s AsciiSet) Union(o AsciiSet) AsciiSet {
	return AsciiSet{set: [2]uint64{s.set[0] | o.set[0], s.set[1] | o.set[1]}}
}
