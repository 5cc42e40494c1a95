// file: internal/scaffold/renderer.go
package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"create-next-app/internal/resolver"
	"create-next-app/internal/templates"
)

const manifestFile = "manifest.yaml"

// Manifest lists the files of a template and the toggles they depend on.
type Manifest struct {
	Files  []FileEntry `yaml:"files"`
	Assets []string    `yaml:"assets"`
}

// FileEntry is one rendered file.
type FileEntry struct {
	Template string   `yaml:"template"`
	Dest     string   `yaml:"dest"`
	When     []string `yaml:"when"`
	Source   bool     `yaml:"source"`
}

// Enabled reports whether every condition of the entry holds.
func (e FileEntry) Enabled(t resolver.ToggleSet) (bool, error) {
	for _, cond := range e.When {
		want := true
		name := cond
		if strings.HasPrefix(cond, "!") {
			want = false
			name = cond[1:]
		}

		var got bool
		switch name {
		case "typescript":
			got = t.TypeScript
		case "eslint":
			got = t.ESLint
		case "tailwind":
			got = t.Tailwind
		case "app":
			got = t.AppRouter
		case "srcDir":
			got = t.SrcDir
		default:
			return false, fmt.Errorf("template %s: unknown condition %q", e.Template, cond)
		}
		if got != want {
			return false, nil
		}
	}
	return true, nil
}

// TemplateData is the data available to template files and destinations.
type TemplateData struct {
	ProjectName    string
	TypeScript     bool
	ESLint         bool
	Tailwind       bool
	AppRouter      bool
	SrcDir         bool
	ImportAlias    string
	ImportPrefix   string // alias without the trailing "/*"
	SourceDir      string // "src/" or ""
	ComponentExt   string // tsx or js
	ConfigExt      string // ts or js
	EntryFile      string
	InstallCommand string
	DevCommand     string
}

// NewTemplateData derives file extensions and paths from the toggles.
func NewTemplateData(projectName string, t resolver.ToggleSet, installCmd, devCmd string) *TemplateData {
	alias := t.ImportAlias
	if alias == "" {
		alias = resolver.DefaultImportAlias
	}

	d := &TemplateData{
		ProjectName:    projectName,
		TypeScript:     t.TypeScript,
		ESLint:         t.ESLint,
		Tailwind:       t.Tailwind,
		AppRouter:      t.AppRouter,
		SrcDir:         t.SrcDir,
		ImportAlias:    alias,
		ImportPrefix:   strings.TrimSuffix(alias, "/*"),
		ComponentExt:   "js",
		ConfigExt:      "js",
		InstallCommand: installCmd,
		DevCommand:     devCmd,
	}
	if t.TypeScript {
		d.ComponentExt = "tsx"
		d.ConfigExt = "ts"
	}
	if t.SrcDir {
		d.SourceDir = "src/"
	}
	if t.AppRouter {
		d.EntryFile = d.SourceDir + "app/page." + d.ComponentExt
	} else {
		d.EntryFile = d.SourceDir + "pages/index." + d.ComponentExt
	}
	return d
}

// Renderer materializes a template tree onto disk.
type Renderer struct {
	templateFS fs.FS
}

// NewRenderer creates a renderer over the built-in template.
func NewRenderer() *Renderer {
	sub, err := fs.Sub(templates.TemplateFS, templates.Root)
	if err != nil {
		// the embedded root is fixed at build time
		panic(err)
	}
	return NewRendererFS(sub)
}

// NewRendererFS creates a renderer over an arbitrary template tree.
func NewRendererFS(fsys fs.FS) *Renderer {
	return &Renderer{templateFS: fsys}
}

// LoadManifest parses the manifest at the template root.
func (r *Renderer) LoadManifest() (*Manifest, error) {
	data, err := fs.ReadFile(r.templateFS, manifestFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read template manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse template manifest: %w", err)
	}
	return &m, nil
}

// RenderTo writes every enabled file and asset under root and returns the
// written paths relative to root, slash separated.
func (r *Renderer) RenderTo(root string, data *TemplateData) ([]string, error) {
	m, err := r.LoadManifest()
	if err != nil {
		return nil, err
	}

	toggles := resolver.ToggleSet{
		TypeScript: data.TypeScript,
		ESLint:     data.ESLint,
		Tailwind:   data.Tailwind,
		AppRouter:  data.AppRouter,
		SrcDir:     data.SrcDir,
	}

	var written []string
	for _, entry := range m.Files {
		ok, err := entry.Enabled(toggles)
		if err != nil {
			return written, err
		}
		if !ok {
			continue
		}

		dest, err := r.execute("dest:"+entry.Template, entry.Dest, data)
		if err != nil {
			return written, err
		}
		if entry.Source {
			dest = data.SourceDir + dest
		}

		raw, err := fs.ReadFile(r.templateFS, entry.Template)
		if err != nil {
			return written, fmt.Errorf("failed to read template %s: %w", entry.Template, err)
		}
		content, err := r.execute(entry.Template, string(raw), data)
		if err != nil {
			return written, err
		}

		if err := writeFile(root, dest, []byte(content)); err != nil {
			return written, err
		}
		written = append(written, dest)
	}

	for _, pattern := range m.Assets {
		matches, err := doublestar.Glob(r.templateFS, pattern)
		if err != nil {
			return written, fmt.Errorf("invalid asset pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := fs.Stat(r.templateFS, match)
			if err != nil {
				return written, fmt.Errorf("failed to stat asset %s: %w", match, err)
			}
			if info.IsDir() {
				continue
			}
			content, err := fs.ReadFile(r.templateFS, match)
			if err != nil {
				return written, fmt.Errorf("failed to read asset %s: %w", match, err)
			}
			if err := writeFile(root, match, content); err != nil {
				return written, err
			}
			written = append(written, match)
		}
	}

	return written, nil
}

func (r *Renderer) execute(name, text string, data *TemplateData) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func writeFile(root, rel string, content []byte) error {
	dest := filepath.Join(root, filepath.FromSlash(path.Clean(rel)))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}
