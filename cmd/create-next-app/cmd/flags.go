// file: cmd/create-next-app/cmd/flags.go
package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"create-next-app/internal/pkgmanager"
	"create-next-app/internal/resolver"
)

// exampleNoValue marks --example given without a name or URL.
const exampleNoValue = "\x00"

// toggle pairs a feature flag with its negation.
type toggle struct {
	on, off string
	usage   string
}

var toggles = []toggle{
	{"tailwind", "no-tailwind", "Tailwind CSS config"},
	{"eslint", "no-eslint", "ESLint config"},
	{"app", "no-app", "App Router"},
	{"src-dir", "no-src-dir", "the `src/` directory"},
}

func registerFlags(fs *pflag.FlagSet) {
	fs.Bool("typescript", false, "Initialize as a TypeScript project (default, alias --ts)")
	fs.Bool("javascript", false, "Initialize as a JavaScript project (alias --js)")
	for _, t := range toggles {
		fs.Bool(t.on, false, "Initialize with "+t.usage)
		fs.Bool(t.off, false, "Initialize without "+t.usage)
	}
	fs.String("import-alias", "", `Specify import alias to use (default "@/*")`)

	fs.Bool("use-npm", false, "Bootstrap the application using npm")
	fs.Bool("use-pnpm", false, "Bootstrap the application using pnpm")
	fs.Bool("use-yarn", false, "Bootstrap the application using Yarn")
	fs.Bool("use-bun", false, "Bootstrap the application using Bun")

	fs.StringP("example", "e", "", "An example to bootstrap the app with: a name from the Next.js repo or a GitHub URL")
	fs.Lookup("example").NoOptDefVal = exampleNoValue
	fs.String("example-path", "", "The path to the example inside the repository, for branch names containing a slash")

	fs.Bool("reset-preferences", false, "Reset the preferences saved for create-next-app")

	fs.String("config", "", "Path to a configuration file")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")

	fs.SetNormalizeFunc(normalizeFlagName)
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "ts":
		name = "typescript"
	case "js":
		name = "javascript"
	}
	return pflag.NormalizedName(name)
}

// NormalizeArgs rewrites "--example X" and "-e X" into "--example=X" so the
// optional-value flag still accepts a separate argument.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			out = append(out, args[i:]...)
			break
		}
		if (a == "--example" || a == "-e") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, "--example="+args[i+1])
			i++
			continue
		}
		out = append(out, a)
	}
	return out
}

// boolFlag returns nil when the flag was not given.
func boolFlag(fs *pflag.FlagSet, name string) *bool {
	if !fs.Changed(name) {
		return nil
	}
	v, err := fs.GetBool(name)
	if err != nil {
		return nil
	}
	return resolver.Bool(v)
}

// toggleFlag folds a flag and its negation; the negation wins when both are given.
func toggleFlag(fs *pflag.FlagSet, t toggle) *bool {
	if off := boolFlag(fs, t.off); off != nil && *off {
		return resolver.Bool(false)
	}
	return boolFlag(fs, t.on)
}

func stringFlag(fs *pflag.FlagSet, name string) string {
	v, _ := fs.GetString(name)
	return v
}

func boolValue(fs *pflag.FlagSet, name string) bool {
	v, _ := fs.GetBool(name)
	return v
}

// resolverFlags builds the immutable flag value consumed by the resolver.
func resolverFlags(fs *pflag.FlagSet) resolver.Flags {
	f := resolver.Flags{
		TypeScript:  boolFlag(fs, "typescript"),
		JavaScript:  boolFlag(fs, "javascript"),
		Tailwind:    toggleFlag(fs, toggles[0]),
		ESLint:      toggleFlag(fs, toggles[1]),
		App:         toggleFlag(fs, toggles[2]),
		SrcDir:      toggleFlag(fs, toggles[3]),
		ImportAlias: strings.TrimSpace(stringFlag(fs, "import-alias")),
		Example:     strings.TrimSpace(stringFlag(fs, "example")),
		ExamplePath: strings.TrimSpace(stringFlag(fs, "example-path")),
	}
	if f.Example == "default" {
		f.Example = ""
	}
	return f
}

func packageManagerChoice(fs *pflag.FlagSet) pkgmanager.Choice {
	return pkgmanager.Choice{
		UseNPM:  boolValue(fs, "use-npm"),
		UsePNPM: boolValue(fs, "use-pnpm"),
		UseYarn: boolValue(fs, "use-yarn"),
		UseBun:  boolValue(fs, "use-bun"),
	}
}
