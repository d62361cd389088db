package helpers

import "unicode"

func IsBetween(val rune, first, last rune) bool {
	if val > last {
		return false
	}
	if val >= first {
		return true
	}
	return false
}

func IsDecimal(r rune) bool {
	return IsBetween(r, '0', '9')
}

func IsOctal(r rune) bool {
	return IsBetween(r, '0', '7')
}

func IsHex(r rune) bool {
	return IsDecimal(r) || IsBetween(r, 'a', 'f') || IsBetween(r, 'A', 'F')
}

// IsNameStart reports whether r may begin a capture group name.
func IsNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsNameChar reports whether r may appear after the first rune of a capture group name.
func IsNameChar(r rune) bool {
	return IsNameStart(r) || unicode.IsDigit(r)
}

// IsGroupName reports whether s is a well formed capture group name:
// non-empty, starting with a letter or underscore, then letters, digits or underscores.
func IsGroupName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !IsNameStart(r) {
				return false
			}
		} else if !IsNameChar(r) {
			return false
		}
	}
	return true
}

// IsDigits reports whether s is a non-empty run of decimal digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsDecimal(r) {
			return false
		}
	}
	return true
}

// CompareDecimal compares two non-negative decimal strings of any length
// and returns -1, 0 or 1. Leading zeros are ignored.
func CompareDecimal(a, b string) int {
	a, b = trimZeros(a), trimZeros(b)

	// more digits is always bigger
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}

	// same length, first differing digit decides
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}

// MaxOctal is the largest value an octal escape can encode (\377).
const MaxOctal = 0377

// SplitOctal returns the longest prefix of digits that forms a valid octal
// escape value (at most 3 octal digits, no greater than MaxOctal) and the rest.
func SplitOctal(digits string) (octal, rest string) {
	val := 0
	i := 0
	for ; i < len(digits) && i < 3; i++ {
		c := rune(digits[i])
		if !IsOctal(c) {
			break
		}
		next := val*8 + int(c-'0')
		if next > MaxOctal {
			break
		}
		val = next
	}
	return digits[:i], digits[i:]
}
