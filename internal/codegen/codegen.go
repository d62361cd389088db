// Package codegen writes Go source that embeds a checked pattern.
package codegen

import (
	"fmt"
	"go/token"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"
	"github.com/dlclark/regexlint/syntax"
)

// import path of the package the generated code compiles against
const libraryPath = "github.com/dlclark/regexlint"

// Config holds the configuration for code generation.
type Config struct {
	// Package is the Go package name for the generated code
	Package string

	// Name is the prefix for generated identifiers (e.g., "Date" generates "DatePattern")
	Name string

	Pattern string
	Flags   string

	// References are the capture groups of Pattern; one constant is generated per group
	References []syntax.GroupRef
}

// Validate checks if the config is valid.
func (c Config) Validate() error {
	if c.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if c.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("package %q is not a valid identifier", c.Package)
	}
	if !token.IsIdentifier(c.Name) {
		return fmt.Errorf("name %q is not a valid identifier", c.Name)
	}
	return nil
}

// Generate writes a Go file declaring the pattern, its flags and group
// indices as constants, and a package variable compiling them.
func Generate(w io.Writer, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	f := jen.NewFile(cfg.Package)
	f.HeaderComment("Code generated by regexlint. DO NOT EDIT.")

	f.Const().Defs(
		jen.Id(cfg.Name+"Pattern").Op("=").Lit(cfg.Pattern),
		jen.Id(cfg.Name+"Flags").Op("=").Lit(cfg.Flags),
	)

	if len(cfg.References) > 0 {
		f.Line()
		f.Comment(fmt.Sprintf("Capture group indices of %sPattern.", cfg.Name))
		f.Const().Defs(groupConsts(cfg.Name, cfg.References)...)
	}

	f.Line()
	f.Var().Id(cfg.Name).Op("=").Qual(libraryPath, "MustCompile").Call(
		jen.Id(cfg.Name+"Pattern"),
		jen.Id(cfg.Name+"Flags"),
	)

	if err := f.Render(w); err != nil {
		return fmt.Errorf("failed to render code: %w", err)
	}
	return nil
}

// GroupConstName returns the constant name for group index i (zero based).
// Named groups use their name, unnamed ones their index.
func GroupConstName(prefix string, i int, ref syntax.GroupRef) string {
	if ref.Named {
		return prefix + "Group" + UpperFirst(ref.Name)
	}
	return prefix + "Group" + strconv.Itoa(i+1)
}

func groupConsts(prefix string, refs []syntax.GroupRef) []jen.Code {
	seen := make(map[string]bool)
	var defs []jen.Code
	for i, ref := range refs {
		name := GroupConstName(prefix, i, ref)
		if seen[name] {
			// a repeated group name, fall back to the index
			name = GroupConstName(prefix, i, syntax.GroupRef{})
		}
		seen[name] = true
		defs = append(defs, jen.Id(name).Op("=").Lit(i+1))
	}
	return defs
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
