// file: internal/scaffold/scaffold.go

// Package scaffold creates a project directory from the built-in template or a remote example.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"create-next-app/config"
	"create-next-app/internal/cli"
	"create-next-app/internal/destination"
	"create-next-app/internal/logger"
	"create-next-app/internal/pkgmanager"
	"create-next-app/internal/resolver"
)

// Options describes one project to create.
type Options struct {
	AppPath        string
	PackageManager pkgmanager.PackageManager
	Example        string
	ExamplePath    string
	Toggles        resolver.ToggleSet
}

// Creator runs the scaffold steps and prints progress to out.
type Creator struct {
	examples config.ExamplesConfig
	fetcher  Fetcher
	renderer *Renderer
	logger   *logger.Logger
	out      io.Writer
	initGit  func(root string, log *logger.Logger) bool
}

// NewCreator creates an orchestrator that fetches examples with go-git.
func NewCreator(cfg config.ExamplesConfig, log *logger.Logger, out io.Writer) *Creator {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if out == nil {
		out = io.Discard
	}
	return &Creator{
		examples: cfg,
		fetcher:  NewGitFetcher(cfg.Timeout, log),
		renderer: NewRenderer(),
		logger:   log,
		out:      out,
		initGit:  InitRepository,
	}
}

// WithFetcher replaces the example fetcher.
func (c *Creator) WithFetcher(f Fetcher) *Creator {
	c.fetcher = f
	return c
}

// WithoutGit disables repository initialization.
func (c *Creator) WithoutGit() *Creator {
	c.initGit = func(string, *logger.Logger) bool { return false }
	return c
}

// CreateProject materializes the project at opts.AppPath. Use Outcome to
// tell a recoverable download failure from a fatal one.
func (c *Creator) CreateProject(ctx context.Context, opts Options) error {
	root, err := filepath.Abs(opts.AppPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", opts.AppPath, err)
	}
	appName := filepath.Base(root)
	pm := opts.PackageManager
	if pm == "" {
		pm = pkgmanager.NPM
	}

	log := c.logger.With("path", root)

	var repo RepoInfo
	if opts.Example != "" {
		repo, err = ResolveExample(opts.Example, opts.ExamplePath, c.examples)
		if err != nil {
			return err
		}
	}

	if !destination.IsWriteable(filepath.Dir(root)) {
		fmt.Fprintln(c.out, "The application path is not writable, please check folder permissions and try again.")
		fmt.Fprintln(c.out, "It is likely you do not have write permissions for this folder.")
		return fmt.Errorf("%w: %s", ErrNotWriteable, filepath.Dir(root))
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", root, err)
	}
	if !destination.IsSafeToScaffold(root, appName, c.out) {
		return fmt.Errorf("%w: %s", ErrUnsafeDestination, root)
	}

	fmt.Fprintf(c.out, "Creating a new Next.js app in %s.\n\n", cli.Styled(cli.ColorGreen, root))

	if opts.Example != "" {
		log.Info("downloading example", "example", opts.Example)
		fmt.Fprintf(c.out, "Downloading files for example %s. This might take a moment.\n\n", cli.Styled(cli.ColorCyan, opts.Example))
		if err := c.fetcher.Fetch(ctx, repo, root); err != nil {
			return err
		}
		if err := c.ensureGitignore(root); err != nil {
			return err
		}
	} else {
		if err := c.renderTemplate(root, appName, pm, opts.Toggles); err != nil {
			return err
		}
	}

	if err := c.ensureReadme(root, appName, pm, opts.Toggles); err != nil {
		return err
	}

	if c.initGit(root, log) {
		fmt.Fprintln(c.out, "Initialized a git repository.")
		fmt.Fprintln(c.out)
	}

	c.printSuccess(opts.AppPath, root, appName, pm)
	log.Info("project created", "name", appName, "example", opts.Example)
	return nil
}

func (c *Creator) renderTemplate(root, appName string, pm pkgmanager.PackageManager, t resolver.ToggleSet) error {
	data := NewTemplateData(appName, t, pm.InstallCommand(), pm.RunCommand("dev"))
	written, err := c.renderer.RenderTo(root, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	if err := writePackageJSON(root, appName, t); err != nil {
		return err
	}
	c.logger.Debug("template rendered", "files", len(written)+1)
	return nil
}

// ensureGitignore adds the template's .gitignore to examples that lack one.
func (c *Creator) ensureGitignore(root string) error {
	dest := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(dest); err == nil {
		return nil
	}
	content, err := fs.ReadFile(c.renderer.templateFS, "gitignore")
	if err != nil {
		return fmt.Errorf("failed to read gitignore template: %w", err)
	}
	return writeFile(root, ".gitignore", content)
}

func (c *Creator) ensureReadme(root, appName string, pm pkgmanager.PackageManager, t resolver.ToggleSet) error {
	if _, err := os.Stat(filepath.Join(root, "README.md")); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check README.md: %w", err)
	}

	raw, err := fs.ReadFile(c.renderer.templateFS, "README.md.tmpl")
	if err != nil {
		return fmt.Errorf("failed to read README template: %w", err)
	}
	data := NewTemplateData(appName, t, pm.InstallCommand(), pm.RunCommand("dev"))
	content, err := c.renderer.execute("README.md.tmpl", string(raw), data)
	if err != nil {
		return err
	}
	return writeFile(root, "README.md", []byte(content))
}

func (c *Creator) printSuccess(appPath, root, appName string, pm pkgmanager.PackageManager) {
	cdPath := appPath
	if cwd, err := os.Getwd(); err == nil && filepath.Join(cwd, appName) == root {
		cdPath = appName
	}

	fmt.Fprintf(c.out, "%s Created %s at %s\n", cli.Styled(cli.ColorGreen, "Success!"), appName, root)
	fmt.Fprintln(c.out, "Inside that directory, you can run several commands:")
	fmt.Fprintln(c.out)
	for _, step := range []struct{ script, desc string }{
		{"dev", "Starts the development server."},
		{"build", "Builds the app for production."},
		{"start", "Runs the built app in production mode."},
	} {
		fmt.Fprintf(c.out, "  %s\n", cli.Styled(cli.ColorCyan, pm.RunCommand(step.script)))
		fmt.Fprintf(c.out, "    %s\n\n", step.desc)
	}
	fmt.Fprintln(c.out, "We suggest that you begin by typing:")
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "  %s %s\n", cli.Styled(cli.ColorCyan, "cd"), cdPath)
	fmt.Fprintf(c.out, "  %s\n", cli.Styled(cli.ColorCyan, pm.InstallCommand()))
	fmt.Fprintf(c.out, "  %s\n\n", cli.Styled(cli.ColorCyan, pm.RunCommand("dev")))
}
