// file: internal/destination/destination.go

// Package destination decides whether a directory is safe to scaffold into.
package destination

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"create-next-app/internal/cli"
)

// SafeEntries are directory entries that never block scaffolding.
var SafeEntries = []string{
	".DS_Store",
	".git",
	".gitattributes",
	".gitignore",
	".gitlab-ci.yml",
	".hg",
	".hgcheck",
	".hgignore",
	".idea",
	".npmignore",
	".travis.yml",
	"LICENSE",
	"README.md",
	"Thumbs.db",
	"docs",
	"mkdocs.yml",
	"npm-debug.log",
	"yarn-debug.log",
	"yarn-error.log",
	"yarnrc.yml",
	".yarn",
}

// SafePatterns match IDE project files by suffix.
var SafePatterns = []string{
	"*.iml",
}

// lstat is replaced in tests to simulate entries that cannot be inspected.
var lstat = os.Lstat

// Conflict is an entry of the destination that is not on the allow-list.
type Conflict struct {
	Name  string
	IsDir bool
}

// IsSafe reports whether an entry name is on the allow-list.
func IsSafe(name string) bool {
	for _, s := range SafeEntries {
		if name == s {
			return true
		}
	}
	for _, p := range SafePatterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Conflicts lists the entries of root that would conflict with a new project,
// in directory listing order. A missing root has no conflicts and is not read.
func Conflicts(root string) ([]Conflict, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
	}

	var conflicts []Conflict
	for _, entry := range entries {
		if IsSafe(entry.Name()) {
			continue
		}
		c := Conflict{Name: entry.Name()}
		// classification is best effort; an entry that cannot be stat'ed is reported as a file
		if info, err := lstat(filepath.Join(root, entry.Name())); err == nil {
			c.IsDir = info.IsDir()
		}
		conflicts = append(conflicts, c)
	}
	return conflicts, nil
}

// IsSafeToScaffold reports whether root can receive a new project. When it
// cannot, a report of the conflicting entries is written to out. The check
// never modifies the directory.
func IsSafeToScaffold(root, displayName string, out io.Writer) bool {
	conflicts, err := Conflicts(root)
	if err != nil {
		fmt.Fprintf(out, "Could not inspect the directory %s%s%s: %v\n", cli.ColorGreen, displayName, cli.ColorReset, err)
		return false
	}
	if len(conflicts) == 0 {
		return true
	}

	WriteReport(out, displayName, conflicts)
	return false
}

// WriteReport prints the conflicts with directories marked by a trailing slash.
func WriteReport(out io.Writer, displayName string, conflicts []Conflict) {
	fmt.Fprintf(out, "The directory %s%s%s contains files that could conflict:\n\n", cli.ColorGreen, displayName, cli.ColorReset)
	for _, c := range conflicts {
		if c.IsDir {
			fmt.Fprintf(out, "  %s%s%s/\n", cli.ColorBlue, c.Name, cli.ColorReset)
		} else {
			fmt.Fprintf(out, "  %s\n", c.Name)
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Either try using a new directory name, or remove the files listed above.")
	fmt.Fprintln(out)
}

// IsWriteable reports whether new entries can be created inside dir.
func IsWriteable(dir string) bool {
	f, err := os.CreateTemp(dir, ".create-next-app-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
