// file: internal/scaffold/package_json.go

package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"create-next-app/internal/resolver"
)

// Versions pinned into generated package.json files.
const (
	nextVersion  = "14.2.5"
	reactVersion = "^18"
)

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// newPackageJSON lists the scripts and dependencies the toggles call for.
func newPackageJSON(name string, t resolver.ToggleSet) *packageJSON {
	pkg := &packageJSON{
		Name:    name,
		Version: "0.1.0",
		Private: true,
		Scripts: map[string]string{
			"dev":   "next dev",
			"build": "next build",
			"start": "next start",
		},
		Dependencies: map[string]string{
			"react":     reactVersion,
			"react-dom": reactVersion,
			"next":      nextVersion,
		},
		DevDependencies: map[string]string{},
	}

	if t.TypeScript {
		pkg.DevDependencies["typescript"] = "^5"
		pkg.DevDependencies["@types/node"] = "^20"
		pkg.DevDependencies["@types/react"] = "^18"
		pkg.DevDependencies["@types/react-dom"] = "^18"
	}
	if t.Tailwind {
		pkg.DevDependencies["postcss"] = "^8"
		pkg.DevDependencies["tailwindcss"] = "^3.4.1"
	}
	if t.ESLint {
		pkg.Scripts["lint"] = "next lint"
		pkg.DevDependencies["eslint"] = "^8"
		pkg.DevDependencies["eslint-config-next"] = nextVersion
	}
	return pkg
}

// writePackageJSON writes package.json into root.
func writePackageJSON(root, name string, t resolver.ToggleSet) error {
	data, err := json.MarshalIndent(newPackageJSON(name, t), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode package.json: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(root, "package.json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write package.json: %w", err)
	}
	return nil
}
