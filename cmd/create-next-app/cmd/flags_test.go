// file: cmd/create-next-app/cmd/flags_test.go
package cmd

import (
	"reflect"
	"testing"

	"github.com/spf13/pflag"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"no example", []string{"my-app", "--ts"}, []string{"my-app", "--ts"}},
		{"long with value", []string{"my-app", "--example", "blog"}, []string{"my-app", "--example=blog"}},
		{"short with value", []string{"-e", "https://github.com/a/b", "my-app"}, []string{"--example=https://github.com/a/b", "my-app"}},
		{"followed by flag", []string{"my-app", "--example", "--ts"}, []string{"my-app", "--example", "--ts"}},
		{"last argument", []string{"my-app", "-e"}, []string{"my-app", "-e"}},
		{"already joined", []string{"--example=blog"}, []string{"--example=blog"}},
		{"after terminator", []string{"--", "--example", "blog"}, []string{"--", "--example", "blog"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeArgs(tt.args); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeArgs(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func parseFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(fs)
	if err := fs.Parse(NormalizeArgs(args)); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return fs
}

func TestResolverFlags(t *testing.T) {
	t.Run("unset toggles stay nil", func(t *testing.T) {
		f := resolverFlags(parseFlags(t))
		if f.TypeScript != nil || f.JavaScript != nil || f.Tailwind != nil || f.ESLint != nil || f.App != nil || f.SrcDir != nil {
			t.Errorf("resolverFlags() = %+v, want all toggles nil", f)
		}
	})

	t.Run("aliases and negations", func(t *testing.T) {
		f := resolverFlags(parseFlags(t, "--js", "--no-tailwind", "--eslint", "--src-dir", "--no-app", "--import-alias", "~/*"))
		if f.JavaScript == nil || !*f.JavaScript {
			t.Error("--js not recorded")
		}
		if f.Tailwind == nil || *f.Tailwind {
			t.Error("--no-tailwind should yield false")
		}
		if f.ESLint == nil || !*f.ESLint {
			t.Error("--eslint should yield true")
		}
		if f.SrcDir == nil || !*f.SrcDir {
			t.Error("--src-dir should yield true")
		}
		if f.App == nil || *f.App {
			t.Error("--no-app should yield false")
		}
		if f.ImportAlias != "~/*" {
			t.Errorf("ImportAlias = %q, want ~/*", f.ImportAlias)
		}
	})

	t.Run("negation wins over positive flag", func(t *testing.T) {
		f := resolverFlags(parseFlags(t, "--tailwind", "--no-tailwind"))
		if f.Tailwind == nil || *f.Tailwind {
			t.Error("Tailwind should be false")
		}
	})

	t.Run("example values", func(t *testing.T) {
		tests := []struct {
			args []string
			want string
		}{
			{[]string{"--example", "blog"}, "blog"},
			{[]string{"-e", "blog"}, "blog"},
			{[]string{"--example=default"}, ""},
			{[]string{"--example"}, exampleNoValue},
			{[]string{"-e", "--ts"}, exampleNoValue},
		}
		for _, tt := range tests {
			if got := resolverFlags(parseFlags(t, tt.args...)).Example; got != tt.want {
				t.Errorf("Example for %v = %q, want %q", tt.args, got, tt.want)
			}
		}
	})
}

func TestPackageManagerChoice(t *testing.T) {
	c := packageManagerChoice(parseFlags(t, "--use-yarn"))
	if !c.UseYarn || c.UseNPM || c.UsePNPM || c.UseBun {
		t.Errorf("packageManagerChoice() = %+v, want only yarn", c)
	}
}
