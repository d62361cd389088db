package runecacher

import (
	"unicode/utf8"
)

const cachePrimeSize = 16

// RuneCacher reads the runes of a pattern on demand and caches them so
// that lookahead and re-reading are cheap. Positions are rune indices.
type RuneCacher struct {
	runes []rune
	inp   string

	// byte offset in inp of the first rune not yet cached
	inpUncachedPos int
}

func NewFromString(str string) *RuneCacher {
	r := &RuneCacher{
		runes: make([]rune, 0, len(str)),
		inp:   str,
	}
	// prime cache with some runes
	r.cachedNext(cachePrimeSize)
	return r
}

// String returns the whole input.
func (r *RuneCacher) String() string {
	return r.inp
}

// Len returns the number of runes in the input.
func (r *RuneCacher) Len() int {
	r.cachedNext(len(r.inp))
	return len(r.runes)
}

// RuneAt returns the rune at textPos, or -1 when textPos is outside the input.
func (r *RuneCacher) RuneAt(textPos int) rune {
	if textPos < 0 {
		return -1
	}
	if textPos >= len(r.runes) {
		// not in our cache - populate cache
		r.cachedNext(textPos - len(r.runes) + 1)
		if textPos >= len(r.runes) {
			return -1
		}
	}
	return r.runes[textPos]
}

// AtEnd reports whether textPos is at or past the end of the input.
func (r *RuneCacher) AtEnd(textPos int) bool {
	return r.RuneAt(textPos) < 0
}

// Text returns the runes in [textPos, textEnd) as a string. The range must
// be within the input.
func (r *RuneCacher) Text(textPos, textEnd int) string {
	r.RuneAt(textEnd - 1)
	return string(r.runes[textPos:textEnd])
}

func (r *RuneCacher) hasUncached() bool {
	// if we're not passed the end then we have more to cache
	return r.inpUncachedPos < len(r.inp)
}

func (r *RuneCacher) cachedNext(count int) {
	// decode up to count more runes, stopping at the end of the input
	for r.hasUncached() && count > 0 {
		newRune, newLen := utf8.DecodeRuneInString(r.inp[r.inpUncachedPos:])
		r.runes = append(r.runes, newRune)
		r.inpUncachedPos += newLen
		count--
	}
}
