package codegen

import (
	"bytes"
	"go/parser"
	"go/token"
	"testing"

	"github.com/dlclark/regexlint/syntax"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(&buf, Config{
		Package: "dates",
		Name:    "Date",
		Pattern: `(?<year>\d{4})-(\d\d)`,
		Flags:   "g",
		References: []syntax.GroupRef{
			{Name: "year", Named: true},
			{},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "// Code generated by regexlint. DO NOT EDIT.")
	require.Contains(t, out, "package dates")
	require.Contains(t, out, `"github.com/dlclark/regexlint"`)
	require.Contains(t, out, `"(?<year>\\d{4})-(\\d\\d)"`)
	require.Contains(t, out, "DateGroupYear")
	require.Contains(t, out, "DateGroup2")
	require.Contains(t, out, "var Date = regexlint.MustCompile(DatePattern, DateFlags)")

	// the output must be a valid Go file
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "date.go", out, parser.ParseComments)
	require.NoError(t, err)
	require.Equal(t, "dates", file.Name.Name)
}

func TestGenerate_NoGroups(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, Config{Package: "p", Name: "Word", Pattern: `\w+`}))
	require.NotContains(t, buf.String(), "Group")
	require.Contains(t, buf.String(), "WordFlags")
}

func TestGenerate_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"no package", Config{Name: "X"}, "invalid config: package cannot be empty"},
		{"no name", Config{Package: "p"}, "invalid config: name cannot be empty"},
		{"bad package", Config{Package: "my-pkg", Name: "X"}, `invalid config: package "my-pkg" is not a valid identifier`},
		{"bad name", Config{Package: "p", Name: "1x"}, `invalid config: name "1x" is not a valid identifier`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.EqualError(t, Generate(&buf, tt.cfg), tt.wantErr)
			require.Zero(t, buf.Len())
		})
	}
}

func TestGroupConsts_Collision(t *testing.T) {
	refs := []syntax.GroupRef{
		{Name: "a", Named: true},
		{Name: "a", Named: true},
	}
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, Config{Package: "p", Name: "X", References: refs}))
	require.Contains(t, buf.String(), "XGroupA")
	require.Contains(t, buf.String(), "XGroup2")
}

func TestUpperFirst(t *testing.T) {
	require.Equal(t, "", UpperFirst(""))
	require.Equal(t, "Year", UpperFirst("year"))
	require.Equal(t, "Éte", UpperFirst("éte"))
	require.Equal(t, "_x", UpperFirst("_x"))
}
