// file: cmd/create-next-app/cmd/run.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"create-next-app/config"
	"create-next-app/internal/cli"
	"create-next-app/internal/destination"
	"create-next-app/internal/logger"
	"create-next-app/internal/pkgmanager"
	"create-next-app/internal/preferences"
	"create-next-app/internal/resolver"
	"create-next-app/internal/scaffold"
	"create-next-app/internal/validate"
)

const defaultProjectName = "my-app"

type runner struct {
	stdio    IO
	prompter cli.Prompter
	// newCreator is swapped in tests to avoid git and network access.
	newCreator func(cfg config.ExamplesConfig, log *logger.Logger, out io.Writer) *scaffold.Creator
}

func newRunner(stdio IO) *runner {
	return &runner{
		stdio:      stdio,
		prompter:   cli.NewPrompterWithIO(stdio.In, stdio.Out),
		newCreator: scaffold.NewCreator,
	}
}

func (r *runner) run(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	cfg, err := config.Load(stringFlag(fs, "config"))
	if err != nil {
		return err
	}
	if err := cfg.ApplyOverrides(stringFlag(fs, "log-level"), ""); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	baseLog, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		return err
	}
	defer baseLog.Sync()
	log := baseLog.With("run", uuid.NewString())

	store := preferences.NewStore(cfg.Preferences.Path, cfg.Preferences.Namespace, log)

	if boolValue(fs, "reset-preferences") {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to reset preferences: %w", err)
		}
		fmt.Fprintln(r.stdio.Out, "Preferences reset successfully")
		return nil
	}

	flags := resolverFlags(fs)
	if err := flags.Validate(); err != nil {
		return r.report("%v", err)
	}
	if flags.Example == exampleNoValue {
		return r.report("Please provide an example name or url, otherwise remove the example option.")
	}

	mode := resolver.ModeFor(cfg.CI.IsCI(r.stdio.Getenv))
	log.Debug("starting", "mode", mode.String(), "version", Version)

	prefs, err := store.Load()
	if err != nil {
		log.Warn("ignoring unreadable preferences", "path", store.Path(), "error", err)
		prefs = preferences.Values{}
	}

	projectPath, err := r.projectPath(args, mode)
	if err != nil {
		return err
	}
	resolvedPath, err := filepath.Abs(projectPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", projectPath, err)
	}
	projectName := filepath.Base(resolvedPath)

	if res := validate.Validate(projectName); !res.Valid {
		fmt.Fprintf(r.stdio.Err, "Could not create a project called %s because of npm naming restrictions:\n",
			cli.Styled(cli.ColorRed, fmt.Sprintf("%q", projectName)))
		for _, p := range res.Problems {
			fmt.Fprintf(r.stdio.Err, "    %s %s\n", cli.Styled(cli.ColorRed, "*"), p)
		}
		return errReported
	}

	if flags.Example != "" {
		if _, err := scaffold.ResolveExample(flags.Example, flags.ExamplePath, cfg.Examples); err != nil {
			return r.report("%v", err)
		}
	}

	if !destination.IsSafeToScaffold(resolvedPath, projectName, r.stdio.Out) {
		return errReported
	}

	res := resolver.New(r.prompter, log)
	resolved, updated, err := res.Resolve(flags, prefs, mode)
	if err != nil {
		return r.aborted(err)
	}

	pm := pkgmanager.Resolve(packageManagerChoice(fs), r.stdio.Getenv)
	creator := r.newCreator(cfg.Examples, log, r.stdio.Out)

	opts := scaffold.Options{
		AppPath:        resolvedPath,
		PackageManager: pm,
		Example:        resolved.Example,
		ExamplePath:    resolved.ExamplePath,
		Toggles:        resolved.Toggles(),
	}
	err = creator.CreateProject(ctx, opts)

	if scaffold.Outcome(err) == scaffold.DownloadFailed {
		log.Warn("example download failed", "example", flags.Example, "error", err)
		if mode == resolver.NonInteractive {
			return err
		}
		useDefault, perr := r.prompter.Toggle(fmt.Sprintf(
			"Could not download %q because of a connectivity issue between your machine and GitHub.\nDo you want to use the default template instead?",
			flags.Example), true)
		if perr != nil {
			return r.aborted(perr)
		}
		if !useDefault {
			return err
		}

		flags.Example = ""
		flags.ExamplePath = ""
		resolved, updated, err = res.Resolve(flags, prefs, mode)
		if err != nil {
			return r.aborted(err)
		}
		opts.Example = ""
		opts.ExamplePath = ""
		opts.Toggles = resolved.Toggles()
		err = creator.CreateProject(ctx, opts)
	}
	if err != nil {
		if errors.Is(err, scaffold.ErrUnsafeDestination) || errors.Is(err, scaffold.ErrNotWriteable) {
			return fmt.Errorf("%w: %v", errReported, err)
		}
		return err
	}

	if err := store.Save(updated); err != nil {
		log.Warn("failed to save preferences", "path", store.Path(), "error", err)
	}
	return nil
}

// projectPath takes the positional argument or asks for a name.
func (r *runner) projectPath(args []string, mode resolver.Mode) (string, error) {
	if len(args) > 0 {
		if p := strings.TrimSpace(args[0]); p != "" {
			return p, nil
		}
	}

	if mode == resolver.Interactive {
		p, err := r.prompter.Text("What is your project named?", defaultProjectName, validateProjectPath)
		if err != nil {
			return "", r.aborted(err)
		}
		if p = strings.TrimSpace(p); p != "" {
			return p, nil
		}
	}

	fmt.Fprintln(r.stdio.Err)
	fmt.Fprintln(r.stdio.Err, "Please specify the project directory:")
	fmt.Fprintf(r.stdio.Err, "  %s %s\n", cli.Styled(cli.ColorCyan, "create-next-app"), cli.Styled(cli.ColorGreen, "<project-directory>"))
	fmt.Fprintln(r.stdio.Err)
	fmt.Fprintln(r.stdio.Err, "For example:")
	fmt.Fprintf(r.stdio.Err, "  %s %s\n", cli.Styled(cli.ColorCyan, "create-next-app"), cli.Styled(cli.ColorGreen, defaultProjectName))
	fmt.Fprintln(r.stdio.Err)
	fmt.Fprintf(r.stdio.Err, "Run %s to see all options.\n", cli.Styled(cli.ColorCyan, "create-next-app --help"))
	return "", errReported
}

func validateProjectPath(p string) error {
	abs, err := filepath.Abs(strings.TrimSpace(p))
	if err != nil {
		return err
	}
	res := validate.Validate(filepath.Base(abs))
	if res.Valid {
		return nil
	}
	return fmt.Errorf("Invalid project name: %s", res.Problems[0])
}

func (r *runner) report(format string, args ...interface{}) error {
	fmt.Fprintln(r.stdio.Err, cli.Styled(cli.ColorRed, fmt.Sprintf(format, args...)))
	return errReported
}

// aborted turns a cancelled prompt into a quiet exit; other errors pass through.
func (r *runner) aborted(err error) error {
	if errors.Is(err, resolver.ErrAborted) || errors.Is(err, cli.ErrAborted) {
		fmt.Fprint(r.stdio.Out, cli.ShowCursor+"\n")
		return errReported
	}
	return err
}
