// file: cmd/create-next-app/cmd/run_test.go
package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"create-next-app/config"
	"create-next-app/internal/logger"
	"create-next-app/internal/preferences"
	"create-next-app/internal/scaffold"
)

type failingFetcher struct{}

func (failingFetcher) Fetch(_ context.Context, repo scaffold.RepoInfo, _ string) error {
	return &scaffold.DownloadError{Source: repo.URL, Err: errors.New("connection reset")}
}

type harness struct {
	dir       string
	prefsPath string
	cfgPath   string
	out       bytes.Buffer
	errOut    bytes.Buffer
	env       map[string]string
	fetcher   scaffold.Fetcher
}

func newHarness(t *testing.T, ci bool) *harness {
	t.Helper()
	h := &harness{dir: t.TempDir(), env: map[string]string{}}
	if ci {
		h.env["CI"] = "1"
	}
	h.prefsPath = filepath.Join(h.dir, "prefs", "config.json")
	h.cfgPath = filepath.Join(h.dir, "config.yaml")
	content := fmt.Sprintf("logging:\n  level: error\npreferences:\n  path: %s\n", h.prefsPath)
	if err := os.WriteFile(h.cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return h
}

func (h *harness) run(stdin string, args ...string) int {
	stdio := IO{
		In:     strings.NewReader(stdin),
		Out:    &h.out,
		Err:    &h.errOut,
		Getenv: func(k string) string { return h.env[k] },
	}
	r := newRunner(stdio)
	r.newCreator = func(cfg config.ExamplesConfig, log *logger.Logger, out io.Writer) *scaffold.Creator {
		c := scaffold.NewCreator(cfg, log, out).WithoutGit()
		if h.fetcher != nil {
			c.WithFetcher(h.fetcher)
		}
		return c
	}
	return Execute(newRootCommand(r), append(args, "--config", h.cfgPath), stdio)
}

func (h *harness) prefs(t *testing.T) preferences.Values {
	t.Helper()
	v, err := preferences.NewStore(h.prefsPath, "preferences", nil).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return v
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestRunNonInteractive(t *testing.T) {
	h := newHarness(t, true)
	app := filepath.Join(h.dir, "my-app")

	if code := h.run("", app, "--no-tailwind", "--use-pnpm", "--some-unknown-flag"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstdout:\n%s\nstderr:\n%s", code, h.out.String(), h.errOut.String())
	}

	for _, p := range []string{"package.json", "tsconfig.json", "app/page.tsx", ".eslintrc.json"} {
		if !exists(filepath.Join(app, p)) {
			t.Errorf("expected %s", p)
		}
	}
	if exists(filepath.Join(app, "tailwind.config.ts")) {
		t.Error("tailwind config written despite --no-tailwind")
	}
	if !strings.Contains(h.out.String(), "pnpm dev") {
		t.Errorf("success message does not use pnpm:\n%s", h.out.String())
	}
	if !exists(h.prefsPath) {
		t.Error("preferences not written after success")
	}
	if len(h.prefs(t)) != 0 {
		t.Errorf("noninteractive run persisted %v, want nothing", h.prefs(t))
	}
}

func TestRunTypeScriptAndJavaScriptFlags(t *testing.T) {
	h := newHarness(t, true)
	app := filepath.Join(h.dir, "both")

	if code := h.run("", app, "--ts", "--js"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstdout:\n%s\nstderr:\n%s", code, h.out.String(), h.errOut.String())
	}
	if !exists(filepath.Join(app, "tsconfig.json")) {
		t.Error("expected a TypeScript project when both --ts and --js are given")
	}
	if exists(filepath.Join(app, "jsconfig.json")) {
		t.Error("jsconfig.json written for a TypeScript project")
	}
}

func TestRunInteractivePersistsAnswers(t *testing.T) {
	h := newHarness(t, false)
	app := filepath.Join(h.dir, "blog")

	// typescript, eslint, tailwind, src dir, app router, customize alias
	answers := "n\ny\nn\ny\n\nn\n"
	if code := h.run(answers, app); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstdout:\n%s\nstderr:\n%s", code, h.out.String(), h.errOut.String())
	}

	if !exists(filepath.Join(app, "src", "app", "page.js")) {
		t.Error("expected src/app/page.js")
	}
	if !exists(filepath.Join(app, "jsconfig.json")) {
		t.Error("expected jsconfig.json")
	}

	prefs := h.prefs(t)
	if v, ok := prefs.Bool(preferences.KeyTypeScript); !ok || v {
		t.Errorf("typescript preference = %v (set %v), want false", v, ok)
	}
	if v, ok := prefs.Bool(preferences.KeySrcDir); !ok || !v {
		t.Errorf("srcDir preference = %v (set %v), want true", v, ok)
	}
	if _, ok := prefs[preferences.KeyApp]; ok {
		t.Error("app preference persisted")
	}
	if _, ok := prefs[preferences.KeyImportAlias]; ok {
		t.Error("import alias persisted without customization")
	}
}

func TestRunPromptsForProjectName(t *testing.T) {
	h := newHarness(t, false)
	app := filepath.Join(h.dir, "named")

	input := app + "\n" + strings.Repeat("\n", 6)
	if code := h.run(input); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstdout:\n%s\nstderr:\n%s", code, h.out.String(), h.errOut.String())
	}
	if !exists(filepath.Join(app, "package.json")) {
		t.Error("project not created at the prompted path")
	}
	if !strings.Contains(h.out.String(), "What is your project named?") {
		t.Error("project name prompt not shown")
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name    string
		ci      bool
		setup   func(t *testing.T, dir string)
		args    func(dir string) []string
		wantOut string
		wantErr string
	}{
		{
			name:    "invalid project name",
			ci:      true,
			args:    func(dir string) []string { return []string{filepath.Join(dir, "My App")} },
			wantErr: "npm naming restrictions",
		},
		{
			name:    "example without value",
			ci:      true,
			args:    func(dir string) []string { return []string{filepath.Join(dir, "app"), "--example"} },
			wantErr: "Please provide an example name or url",
		},
		{
			name:    "invalid import alias",
			ci:      true,
			args:    func(dir string) []string { return []string{filepath.Join(dir, "app"), "--import-alias", "@"} },
			wantErr: "<prefix>/*",
		},
		{
			name:    "unsupported example host",
			ci:      true,
			args:    func(dir string) []string { return []string{filepath.Join(dir, "app"), "-e", "https://gitlab.com/a/b"} },
			wantErr: "only GitHub repositories are supported",
		},
		{
			name:    "missing project directory in CI",
			ci:      true,
			args:    func(string) []string { return nil },
			wantErr: "Please specify the project directory",
		},
		{
			name: "conflicting files",
			ci:   true,
			setup: func(t *testing.T, dir string) {
				if err := os.MkdirAll(filepath.Join(dir, "app"), 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(dir, "app", "package.json"), []byte("{}"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			args:    func(dir string) []string { return []string{filepath.Join(dir, "app")} },
			wantOut: "package.json",
		},
		{
			name:    "aborted prompt",
			ci:      false,
			args:    func(dir string) []string { return []string{filepath.Join(dir, "app")} },
			wantOut: "Would you like to use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.ci)
			if tt.setup != nil {
				tt.setup(t, h.dir)
			}

			if code := h.run("", tt.args(h.dir)...); code != 1 {
				t.Fatalf("exit code = %d, want 1", code)
			}
			if tt.wantErr != "" && !strings.Contains(h.errOut.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", h.errOut.String(), tt.wantErr)
			}
			if tt.wantOut != "" && !strings.Contains(h.out.String(), tt.wantOut) {
				t.Errorf("stdout = %q, want it to contain %q", h.out.String(), tt.wantOut)
			}
			if strings.Contains(h.out.String(), "Unexpected error") {
				t.Errorf("expected failure reported as unexpected:\n%s", h.out.String())
			}
			if exists(h.prefsPath) {
				t.Error("preferences written on failure")
			}
		})
	}
}

func TestRunResetPreferences(t *testing.T) {
	h := newHarness(t, true)
	store := preferences.NewStore(h.prefsPath, "preferences", nil)
	if err := store.Save(preferences.Values{preferences.KeyTypeScript: false}); err != nil {
		t.Fatal(err)
	}

	if code := h.run("", "--reset-preferences"); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(h.out.String(), "Preferences reset successfully") {
		t.Errorf("stdout = %q", h.out.String())
	}
	if len(h.prefs(t)) != 0 {
		t.Errorf("preferences = %v, want empty", h.prefs(t))
	}
}

func TestRunDownloadFallback(t *testing.T) {
	t.Run("interactive accepts default template", func(t *testing.T) {
		h := newHarness(t, false)
		h.fetcher = failingFetcher{}
		app := filepath.Join(h.dir, "app")

		// accept the fallback, then take every default
		input := "y\n" + strings.Repeat("\n", 6)
		if code := h.run(input, app, "--example", "blog-starter"); code != 0 {
			t.Fatalf("exit code = %d, want 0\nstdout:\n%s\nstderr:\n%s", code, h.out.String(), h.errOut.String())
		}
		if !strings.Contains(h.out.String(), "Do you want to use the default template instead?") {
			t.Error("fallback question not asked")
		}
		if !exists(filepath.Join(app, "app", "page.tsx")) {
			t.Error("default template not rendered")
		}
	})

	t.Run("interactive declines", func(t *testing.T) {
		h := newHarness(t, false)
		h.fetcher = failingFetcher{}
		if code := h.run("n\n", filepath.Join(h.dir, "app"), "--example", "blog-starter"); code != 1 {
			t.Fatalf("exit code = %d, want 1", code)
		}
		if !strings.Contains(h.out.String(), "Aborting installation.") {
			t.Errorf("stdout = %q, want abort notice", h.out.String())
		}
	})

	t.Run("noninteractive does not fall back", func(t *testing.T) {
		h := newHarness(t, true)
		h.fetcher = failingFetcher{}
		app := filepath.Join(h.dir, "app")
		if code := h.run("", app, "--example", "blog-starter"); code != 1 {
			t.Fatalf("exit code = %d, want 1", code)
		}
		if strings.Contains(h.out.String(), "default template instead") {
			t.Error("fallback offered in CI")
		}
		if exists(filepath.Join(app, "package.json")) {
			t.Error("template rendered without consent")
		}
	})
}
