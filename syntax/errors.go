package syntax

import "fmt"

// Structural problems. These are always Error nodes.
const (
	ErrQuantifierBeforeLazy   = "Quantifier expected before lazy specifier"
	ErrTokenAlreadyQuantified = "The previous token is already quantified."
	ErrTokenBeforeQuantifier  = "Token expected before quantifier."
	ErrUnclosedCharClass      = "Character class missing closing bracket."
	ErrNoOpenParenthesis      = "Close parenthesis exists without a matching open parenthesis."
	ErrUnclosedParenthesis    = "Group missing close parenthesis."
	ErrTrailingBackslash      = "Pattern may not end with a trailing backslash."

	errRangeOutOfOrder     = "Quantifier range is out of order (min: %s, max: %s)."
	errCharRangeOutOfOrder = "Character class range is out of order (%s-%s)."
	errInvalidGroupName    = "'%s' is an invalid name for capture group. It must be alphanumeric and must not start with a digit."
	errDuplicateGroupName  = "There are more than 1 group with the name '%s'."
	errUnresolvedReference = "The referenced group name '%s' does not exist."
)

// Style and ambiguity problems. Their severity depends on Strict.
const (
	WarnChainedRange         = "A hyphen is placed in the middle of a character class but is treated literally. Consider escaping it or moving it to the start/end of the class."
	WarnDuplicateAlternation = "There are multiple alternation branches with identical content."

	warnInvalidRange   = "'%s' is not a valid range syntax and is being parsed literally. Escape the '{' character to silence this warning."
	warnInvalidUnicode = "'%s' is not a valid unicode escape sequence and is being parsed literally. Do not escape the 'u' character when not in a unicode escape sequence."
	warnInvalidHex     = "'%s' is not a valid hexadecimal escape sequence and is being parsed literally. Do not escape the 'x' character when not in a hexadecimal escape sequence."
	warnInvalidOctal   = "'%s' is not a valid octal escape sequence and part of it is being parsed literally."
	warnAmbiguousOctal = "'%s' is being parsed as an octal character escape sequence, which is easily confused with a back-reference."
	warnUselessEscape  = "'%s' has no special meaning but is escaped."
)

// StrictPrefix starts the message of every style diagnostic raised to an
// Error by Strict.
const StrictPrefix = "strict: "

// style builds the diagnostic for a style problem: a Warning normally, an
// Error when the options are strict.
func (o RegexOptions) style(msg string) Node {
	if o.strict() {
		return errorNode(StrictPrefix + msg)
	}
	return warningNode(msg)
}

func errorf(format string, args ...interface{}) Node {
	return errorNode(fmt.Sprintf(format, args...))
}

func (o RegexOptions) stylef(format string, args ...interface{}) Node {
	return o.style(fmt.Sprintf(format, args...))
}
