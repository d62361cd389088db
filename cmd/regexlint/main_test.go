package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayFlagsString(t *testing.T) {
	tests := []struct {
		name     string
		flags    arrayFlags
		expected string
	}{
		{
			name:     "empty",
			flags:    arrayFlags{},
			expected: "",
		},
		{
			name:     "single",
			flags:    arrayFlags{"escaped"},
			expected: "escaped",
		},
		{
			name:     "multiple",
			flags:    arrayFlags{"escaped", "octal", "strict: "},
			expected: "escaped, octal, strict: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.flags.String()
			if result != tt.expected {
				t.Errorf("String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestArrayFlagsSet(t *testing.T) {
	var flags arrayFlags

	if err := flags.Set("escaped"); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if err := flags.Set("octal"); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if len(flags) != 2 || flags[1] != "octal" {
		t.Errorf("Set() = %v, want [\"escaped\", \"octal\"]", flags)
	}
}

func runCLI(stdin string, args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantCode int
		wantOut  string
	}{
		{
			name:    "ok",
			args:    []string{"abc"},
			wantOut: "abc: ok\n",
		},
		{
			name:     "mixed",
			args:     []string{"a|a", "("},
			wantCode: exitInvalid,
			wantOut: "a|a: warning: There are multiple alternation branches with identical content.\n" +
				"(: error: Group missing close parenthesis.\n",
		},
		{
			name:     "strict",
			args:     []string{"-strict", "a|a"},
			wantCode: exitInvalid,
			wantOut:  "a|a: error: strict: There are multiple alternation branches with identical content.\n",
		},
		{
			name:     "stdin",
			stdin:    "a+\n\nb{2,1}\n",
			wantCode: exitInvalid,
			wantOut:  "a+: ok\nb{2,1}: error: Quantifier range is out of order (min: 2, max: 1).\n",
		},
		{
			name:    "json",
			args:    []string{"-json", `\q`},
			wantOut: `{"pattern":"\\q","valid":true,"errors":[],"warnings":["'\\q' has no special meaning but is escaped."]}` + "\n",
		},
		{
			name:    "suppress",
			args:    []string{"-suppress", "no special meaning", `\q`},
			wantOut: "\\q: ok\n",
		},
		{
			name:    "suppress-error",
			args:    []string{"-suppress", "unused", "-suppress", "missing close", "("},
			wantOut: "(: ok\n",
		},
		{
			name:    "tokens",
			args:    []string{"-tokens", `a\x4f`},
			wantOut: "a\\x4f: 2 tokens\n   0  a\n   1  \\x4f\na\\x4f: ok\n",
		},
		{
			name:    "dump",
			args:    []string{"-dump", "a+"},
			wantOut: "Quantifier(Value = \"+\")\n Literal(Value = \"a\")\na+: ok\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := runCLI(tt.stdin, tt.args...)
			require.Equal(t, tt.wantCode, code)
			require.Equal(t, tt.wantOut, out)
		})
	}
}

func TestRun_UsageErrors(t *testing.T) {
	code, _, stderr := runCLI("", "-flags", "gx", "a")
	require.Equal(t, exitUsage, code)
	require.Contains(t, stderr, "Invalid flag 'x'")

	code, _, stderr = runCLI("")
	require.Equal(t, exitUsage, code)
	require.Contains(t, stderr, "no patterns given")

	code, _, _ = runCLI("", "-nope", "a")
	require.Equal(t, exitUsage, code)

	code, _, stderr = runCLI("", "-gen", "x.go", "a", "b")
	require.Equal(t, exitUsage, code)
	require.Contains(t, stderr, "-gen needs exactly one pattern")
}

func TestRun_Verbose(t *testing.T) {
	code, _, stderr := runCLI("", "-v", "-suppress", "escaped", `a\q`)
	require.Equal(t, exitOK, code)
	require.Contains(t, stderr, "[regexlint] === Analysis ===")
	require.Contains(t, stderr, "[regexlint] tokens: 2")
	require.Contains(t, stderr, "[regexlint] suppressed: '\\q' has no special meaning but is escaped.")
}

func TestRun_Generate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "date.go")

	code, _, stderr := runCLI("", "-gen", path, "-pkg", "dates", "-name", "Date", "-flags", "gi", `(?<year>\d{4})-(\d\d)`)
	require.Equal(t, exitOK, code, stderr)

	src, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(src), "package dates")
	require.Contains(t, string(src), "DateGroupYear")
	require.Contains(t, string(src), "DateGroup2")
	require.Contains(t, string(src), `"gi"`)
}

func TestRun_GenerateRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.go")

	code, _, stderr := runCLI("", "-gen", path, "(")
	require.Equal(t, exitInvalid, code)
	require.Contains(t, stderr, "not generating code")

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}
