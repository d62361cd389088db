package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tokenTexts(tokens []Token) []string {
	var out []string
	for _, t := range tokens {
		out = append(out, t.Text)
	}
	return out
}

func TestTokenize(t *testing.T) {
	var tests = []struct {
		pattern string
		want    []string
	}{
		{"abc", []string{"a", "b", "c"}},
		{`\\\.`, []string{`\\`, `\.`}},
		{`ab\\\0`, []string{"a", "b", `\\`, `\0`}},
		{`ab\x`, []string{"a", "b", `\x`}},
		{`ab\x3f`, []string{"a", "b", `\x3f`}},
		{`ab\x4g`, []string{"a", "b", `\x4`, "g"}},
		{`ab\xffff`, []string{"a", "b", `\xff`, "f", "f"}},
		{`ab\u12f2g4`, []string{"a", "b", `\u12f2`, "g", "4"}},
		{`ab12\34567`, []string{"a", "b", "1", "2", `\345`, "6", "7"}},
		{`ab12\385`, []string{"a", "b", "1", "2", `\385`}},
		{`[\385]`, []string{"[", `\3`, "8", "5", "]"}},
		{`[c[^]`, []string{"[", "c", "[", "^", "]"}},
		{`[^c[^]`, []string{"[^", "c", "[", "^", "]"}},
		{`ab[c^]`, []string{"a", "b", "[", "c", "^", "]"}},
		{`ab[^c]`, []string{"a", "b", "[^", "c", "]"}},
		{`\k<324f>(?<name> )`, []string{`\k<`, "324f", ">", "(?<", "name", ">", " ", ")"}},
		{`(?<>)`, []string{"(?<", ">", ")"}},
		{`(?<abc`, []string{"(?<", "abc"}},
		{`[\k<a>]`, []string{"[", `\k`, "<", "a", ">", "]"}},
		{`(?:(?=(?!(?<=(?<!`, []string{"(?:", "(?=", "(?!", "(?<=", "(?<!"}},
		{"foo?bar+baz*?", []string{"f", "o", "o", "?", "b", "a", "r", "+", "b", "a", "z", "*", "?"}},
		{"foo{34,56}", []string{"f", "o", "o", "{", "34", ",", "56", "}"}},
		{"foo{3,54562356}", []string{"f", "o", "o", "{", "3", ",", "54562356", "}"}},
		{"foo{3, 54562356}", []string{"f", "o", "o", `\{`, "3", ",", " ", "5", "4", "5", "6", "2", "3", "5", "6", "}"}},
		{"foo{}", []string{"f", "o", "o", `\{`, "}"}},
		{"foo{3}", []string{"f", "o", "o", "{", "3", "}"}},
		{"foo{3,}", []string{"f", "o", "o", "{", "3", ",", "}"}},
		{"foo{33452346}", []string{"f", "o", "o", "{", "33452346", "}"}},
		{"foo{334523 46}", []string{"f", "o", "o", `\{`, "3", "3", "4", "5", "2", "3", " ", "4", "6", "}"}},
		{`a\`, []string{"a", `\`}},
		{"", nil},
	}

	for _, test := range tests {
		t.Run(test.pattern, func(t *testing.T) {
			require.Equal(t, test.want, tokenTexts(Tokenize(test.pattern)))
		})
	}
}

func TestTokenize_LongInput(t *testing.T) {
	pattern := "cljkvth5kl34jnvhtkejrhgvnjkljyt45hkvtv5hj234jkntgnkj24hg5ntjkfghc5j234lgerthrtwb hrt "
	require.Len(t, Tokenize(pattern), len(pattern))
}

func TestTokenize_Positions(t *testing.T) {
	tokens := Tokenize(`é\x4f{2}(?<n>)`)

	var pos []int
	for _, tok := range tokens {
		pos = append(pos, tok.Pos)
	}
	require.Equal(t, []string{"é", `\x4f`, "{", "2", "}", "(?<", "n", ">", ")"}, tokenTexts(tokens))
	require.Equal(t, []int{0, 1, 5, 6, 7, 8, 11, 12, 13}, pos)
}

func TestTokenize_ImplicitBrace(t *testing.T) {
	tokens := Tokenize(`\{x{`)
	require.Equal(t, []string{`\{`, "x", `\{`}, tokenTexts(tokens))
	require.False(t, tokens[0].implicit)
	require.True(t, tokens[2].implicit)
	require.Equal(t, 3, tokens[2].Pos)
}
