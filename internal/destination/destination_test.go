// file: internal/destination/destination_test.go

package destination

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"create-next-app/internal/cli"
)

// makeTree creates files and directories (names ending in "/") under a temp root.
func makeTree(t *testing.T, entries ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, e := range entries {
		if strings.HasSuffix(e, "/") {
			if err := os.MkdirAll(filepath.Join(root, e), 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.WriteFile(filepath.Join(root, e), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestIsSafeToScaffoldAllowListed(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
	}{
		{"empty directory", nil},
		{"git metadata", []string{".git/", ".gitignore"}},
		{"license and docs", []string{"LICENSE", "docs/"}},
		{"intellij module", []string{"project.iml"}},
		{"git and readme", []string{".git/", "README.md"}},
		{"mixed", []string{".git/", ".gitignore", "LICENSE", "docs/", "web.iml", ".idea/", "yarn-error.log"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := makeTree(t, tt.entries...)
			var out bytes.Buffer
			if !IsSafeToScaffold(root, "demo", &out) {
				t.Errorf("IsSafeToScaffold() = false, want true (report: %s)", out.String())
			}
			if out.Len() != 0 {
				t.Errorf("report = %q, want nothing printed", out.String())
			}
		})
	}
}

func TestIsSafeToScaffoldConflicts(t *testing.T) {
	root := makeTree(t, ".git/", "README.md", "package.json", "src/", "notes.txt")

	var out bytes.Buffer
	if IsSafeToScaffold(root, "demo", &out) {
		t.Fatal("IsSafeToScaffold() = true, want false")
	}

	conflicts, err := Conflicts(root)
	if err != nil {
		t.Fatalf("Conflicts() error = %v", err)
	}
	want := []Conflict{
		{Name: "notes.txt", IsDir: false},
		{Name: "package.json", IsDir: false},
		{Name: "src", IsDir: true},
	}
	if len(conflicts) != len(want) {
		t.Fatalf("Conflicts() = %+v, want %+v", conflicts, want)
	}
	for i := range want {
		if conflicts[i] != want[i] {
			t.Errorf("conflicts[%d] = %+v, want %+v", i, conflicts[i], want[i])
		}
	}

	report := out.String()
	for _, s := range []string{"demo", "notes.txt", "package.json", "src", "/\n", "remove the files listed above"} {
		if !strings.Contains(report, s) {
			t.Errorf("report missing %q:\n%s", s, report)
		}
	}
	for _, s := range []string{".git", "README.md"} {
		if strings.Contains(report, s) {
			t.Errorf("report lists allow-listed entry %q:\n%s", s, report)
		}
	}
}

func TestConflictsStatFailure(t *testing.T) {
	root := makeTree(t, "broken/", "notes.txt", "src/")

	orig := lstat
	t.Cleanup(func() { lstat = orig })
	lstat = func(name string) (os.FileInfo, error) {
		if filepath.Base(name) == "broken" {
			return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrPermission}
		}
		return orig(name)
	}

	conflicts, err := Conflicts(root)
	if err != nil {
		t.Fatalf("Conflicts() error = %v", err)
	}
	want := []Conflict{
		{Name: "broken", IsDir: false},
		{Name: "notes.txt", IsDir: false},
		{Name: "src", IsDir: true},
	}
	if len(conflicts) != len(want) {
		t.Fatalf("Conflicts() = %+v, want %+v", conflicts, want)
	}
	for i := range want {
		if conflicts[i] != want[i] {
			t.Errorf("conflicts[%d] = %+v, want %+v", i, conflicts[i], want[i])
		}
	}

	var out bytes.Buffer
	if IsSafeToScaffold(root, "demo", &out) {
		t.Fatal("IsSafeToScaffold() = true, want false")
	}
	report := out.String()
	if !strings.Contains(report, "  broken\n") {
		t.Errorf("report should list broken as a file:\n%s", report)
	}
	if strings.Contains(report, "broken"+cli.ColorReset+"/") || strings.Contains(report, "broken/") {
		t.Errorf("report marks broken as a directory:\n%s", report)
	}
}

func TestIsSafeToScaffoldMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does", "not", "exist")

	var out bytes.Buffer
	if !IsSafeToScaffold(root, "exist", &out) {
		t.Error("IsSafeToScaffold() = false, want true for missing root")
	}
	if out.Len() != 0 {
		t.Errorf("report = %q, want nothing printed", out.String())
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Errorf("missing root was created: %v", err)
	}
}

func TestIsSafe(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".git", true},
		{"LICENSE", true},
		{"app.iml", true},
		{".iml", true},
		{"app.iml.bak", false},
		{"license", false},
		{"package.json", false},
		{"node_modules", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSafe(tt.name); got != tt.want {
				t.Errorf("IsSafe(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsWriteable(t *testing.T) {
	dir := t.TempDir()
	if !IsWriteable(dir) {
		t.Errorf("IsWriteable(%s) = false, want true", dir)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("IsWriteable left %d entries behind", len(entries))
	}
	if IsWriteable(filepath.Join(dir, "missing")) {
		t.Error("IsWriteable(missing) = true, want false")
	}
}
