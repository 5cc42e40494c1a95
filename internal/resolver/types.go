// file: internal/resolver/types.go

package resolver

import (
	"fmt"
	"regexp"
)

// Mode selects how unset fields are filled in.
type Mode int

const (
	// Interactive prompts the operator for every unset field.
	Interactive Mode = iota
	// NonInteractive fills unset fields from preferences or defaults without prompting.
	NonInteractive
)

func (m Mode) String() string {
	if m == NonInteractive {
		return "noninteractive"
	}
	return "interactive"
}

// ModeFor returns NonInteractive for CI runs.
func ModeFor(isCI bool) Mode {
	if isCI {
		return NonInteractive
	}
	return Interactive
}

// DefaultImportAlias is used whenever the operator does not customize the alias.
const DefaultImportAlias = "@/*"

var importAliasPattern = regexp.MustCompile(`^.+/\*$`)

// ValidateImportAlias checks the <prefix>/* shape.
func ValidateImportAlias(alias string) error {
	if !importAliasPattern.MatchString(alias) {
		return fmt.Errorf("Import alias must follow the pattern <prefix>/*")
	}
	return nil
}

// Flags holds the command line choices. A nil toggle was not given; a
// pointer to false is an explicit negation such as --no-tailwind.
type Flags struct {
	TypeScript  *bool
	JavaScript  *bool
	ESLint      *bool
	Tailwind    *bool
	App         *bool
	SrcDir      *bool
	ImportAlias string
	Example     string
	ExamplePath string
}

// Validate rejects flag combinations that can never resolve.
func (f Flags) Validate() error {
	if f.ImportAlias != "" {
		if err := ValidateImportAlias(f.ImportAlias); err != nil {
			return fmt.Errorf("invalid --import-alias %q: %w", f.ImportAlias, err)
		}
	}
	return nil
}

// ConflictingLanguage reports whether --ts and --js were both turned on.
func (f Flags) ConflictingLanguage() bool {
	return f.TypeScript != nil && *f.TypeScript && f.JavaScript != nil && *f.JavaScript
}

// language folds --ts and --js into one tri-state typescript choice.
// TypeScript wins when both are given.
func (f Flags) language() *bool {
	if f.TypeScript != nil {
		return f.TypeScript
	}
	if f.JavaScript != nil {
		return Bool(!*f.JavaScript)
	}
	return nil
}

// Config is the result of resolution. After a full resolution every toggle
// is non-nil. When an example short-circuits resolution the toggles are the
// flag values as given, so unset ones stay nil.
type Config struct {
	TypeScript  *bool
	ESLint      *bool
	Tailwind    *bool
	AppRouter   *bool
	SrcDir      *bool
	ImportAlias string
	Example     string
	ExamplePath string
}

// ToggleSet is the plain form of a Config consumed by the template step.
// Unset toggles read as false.
type ToggleSet struct {
	TypeScript  bool
	ESLint      bool
	Tailwind    bool
	AppRouter   bool
	SrcDir      bool
	ImportAlias string
}

// Toggles flattens the configuration.
func (c Config) Toggles() ToggleSet {
	return ToggleSet{
		TypeScript:  value(c.TypeScript),
		ESLint:      value(c.ESLint),
		Tailwind:    value(c.Tailwind),
		AppRouter:   value(c.AppRouter),
		SrcDir:      value(c.SrcDir),
		ImportAlias: c.ImportAlias,
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

func value(b *bool) bool {
	return b != nil && *b
}
