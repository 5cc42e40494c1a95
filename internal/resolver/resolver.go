// file: internal/resolver/resolver.go

// Package resolver merges command line flags, persisted preferences, prompt
// answers and built-in defaults into the final project configuration.
//
// Precedence for every toggle, highest first:
//
//  1. an explicit flag, including negations such as --no-tailwind
//  2. noninteractive runs: the persisted preference, else the default
//  3. interactive runs: the operator's answer to a prompt seeded with the
//     persisted preference, else the default
//
// Persistence is per field: the app router choice is never stored, and the
// import alias is stored only when the operator customizes it.
package resolver

import (
	"errors"
	"fmt"

	"create-next-app/internal/cli"
	"create-next-app/internal/logger"
	"create-next-app/internal/preferences"
)

// ErrAborted is returned when the operator cancels a prompt.
var ErrAborted = errors.New("aborted by operator")

// Defaults are the values used when neither a flag nor a preference applies.
var Defaults = preferences.Values{
	preferences.KeyTypeScript:           true,
	preferences.KeyESLint:               true,
	preferences.KeyTailwind:             true,
	preferences.KeyApp:                  true,
	preferences.KeySrcDir:               false,
	preferences.KeyImportAlias:          DefaultImportAlias,
	preferences.KeyCustomizeImportAlias: false,
}

// toggleField describes how one boolean field is resolved.
type toggleField struct {
	key      string
	label    string
	question string
	persist  bool
	flag     *bool
	target   **bool
}

// Resolver resolves configurations, prompting through a Prompter when interactive.
type Resolver struct {
	prompter cli.Prompter
	logger   *logger.Logger
}

// New creates a resolver. The prompter is only used in interactive mode and may be nil otherwise.
func New(p cli.Prompter, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Resolver{prompter: p, logger: log}
}

// Resolve runs a resolution with a no-op logger.
func Resolve(flags Flags, prefs preferences.Values, mode Mode, p cli.Prompter) (Config, preferences.Values, error) {
	return New(p, nil).Resolve(flags, prefs, mode)
}

// Resolve returns the final configuration and the preferences to persist.
// The input preferences are never modified. The only error is ErrAborted.
func (r *Resolver) Resolve(flags Flags, prefs preferences.Values, mode Mode) (Config, preferences.Values, error) {
	if prefs == nil {
		prefs = preferences.Values{}
	}
	updated := prefs.Clone()

	if flags.ConflictingLanguage() {
		r.logger.Warn("both --ts and --js given, using TypeScript")
	}

	cfg := Config{
		TypeScript:  flags.language(),
		ESLint:      flags.ESLint,
		Tailwind:    flags.Tailwind,
		AppRouter:   flags.App,
		SrcDir:      flags.SrcDir,
		ImportAlias: flags.ImportAlias,
		Example:     flags.Example,
		ExamplePath: flags.ExamplePath,
	}

	// a remote example carries its own configuration
	if flags.Example != "" {
		r.logger.Debug("example selected, skipping toggle resolution", "example", flags.Example)
		return cfg, updated, nil
	}

	if mode == Interactive && r.prompter == nil {
		return Config{}, prefs, fmt.Errorf("interactive resolution requires a prompter")
	}

	s := newSession(r.prompter, r.logger)

	fields := []toggleField{
		{
			key:      preferences.KeyTypeScript,
			label:    "TypeScript",
			question: fmt.Sprintf("Would you like to use %s?", cli.Styled(cli.ColorBlue, "TypeScript")),
			persist:  true,
			flag:     cfg.TypeScript,
			target:   &cfg.TypeScript,
		},
		{
			key:      preferences.KeyESLint,
			label:    "ESLint",
			question: fmt.Sprintf("Would you like to use %s?", cli.Styled(cli.ColorBlue, "ESLint")),
			persist:  true,
			flag:     cfg.ESLint,
			target:   &cfg.ESLint,
		},
		{
			key:      preferences.KeyTailwind,
			label:    "Tailwind CSS",
			question: fmt.Sprintf("Would you like to use %s?", cli.Styled(cli.ColorBlue, "Tailwind CSS")),
			persist:  true,
			flag:     cfg.Tailwind,
			target:   &cfg.Tailwind,
		},
		{
			key:      preferences.KeySrcDir,
			label:    "src directory",
			question: fmt.Sprintf("Would you like to use %s?", cli.Styled(cli.ColorBlue, "`src/` directory")),
			persist:  true,
			flag:     cfg.SrcDir,
			target:   &cfg.SrcDir,
		},
		{
			key:      preferences.KeyApp,
			label:    "App Router",
			question: fmt.Sprintf("Would you like to use %s? (recommended)", cli.Styled(cli.ColorBlue, "App Router")),
			// TODO: decide whether the router choice should become sticky like the other toggles
			persist: false,
			flag:    cfg.AppRouter,
			target:  &cfg.AppRouter,
		},
	}

	for _, f := range fields {
		v, err := r.resolveToggle(s, f, prefs, updated, mode)
		if err != nil {
			return Config{}, prefs, err
		}
		*f.target = Bool(v)
	}

	alias, err := r.resolveImportAlias(s, flags.ImportAlias, prefs, updated, mode)
	if err != nil {
		return Config{}, prefs, err
	}
	cfg.ImportAlias = alias

	r.logger.Debug("configuration resolved",
		"mode", mode.String(),
		"typescript", *cfg.TypeScript,
		"eslint", *cfg.ESLint,
		"tailwind", *cfg.Tailwind,
		"srcDir", *cfg.SrcDir,
		"app", *cfg.AppRouter,
		"importAlias", cfg.ImportAlias,
	)
	return cfg, updated, nil
}

func (r *Resolver) resolveToggle(s *session, f toggleField, prefs, updated preferences.Values, mode Mode) (bool, error) {
	if f.flag != nil {
		return *f.flag, nil
	}

	seed := boolPrefOrDefault(prefs, f.key)
	if mode == NonInteractive {
		return seed, nil
	}

	v, err := s.toggle(f.key, f.question, seed)
	if err != nil {
		return false, err
	}
	if f.persist {
		updated[f.key] = v
	}
	return v, nil
}

func (r *Resolver) resolveImportAlias(s *session, flag string, prefs, updated preferences.Values, mode Mode) (string, error) {
	if flag != "" {
		return flag, nil
	}

	// the default alias applies regardless of stored preferences unless the operator customizes it
	if mode == NonInteractive {
		return DefaultImportAlias, nil
	}

	styled := cli.Styled(cli.ColorBlue, "import alias")
	customize, err := s.toggle(
		preferences.KeyCustomizeImportAlias,
		fmt.Sprintf("Would you like to customize the default %s (%s)?", styled, DefaultImportAlias),
		boolPrefOrDefault(prefs, preferences.KeyCustomizeImportAlias),
	)
	if err != nil {
		return "", err
	}
	if !customize {
		return DefaultImportAlias, nil
	}

	alias, err := s.text(
		preferences.KeyImportAlias,
		fmt.Sprintf("What %s would you like configured?", styled),
		stringPrefOrDefault(prefs, preferences.KeyImportAlias),
		ValidateImportAlias,
	)
	if err != nil {
		return "", err
	}
	updated[preferences.KeyImportAlias] = alias
	return alias, nil
}

func boolPrefOrDefault(prefs preferences.Values, key string) bool {
	if v, ok := prefs.Bool(key); ok {
		return v
	}
	v, _ := Defaults.Bool(key)
	return v
}

func stringPrefOrDefault(prefs preferences.Values, key string) string {
	if v, ok := prefs.String(key); ok && v != "" {
		return v
	}
	v, _ := Defaults.String(key)
	return v
}
