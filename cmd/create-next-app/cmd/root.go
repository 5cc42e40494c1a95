// file: cmd/create-next-app/cmd/root.go
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"create-next-app/internal/cli"
)

// Version is set at build time with -ldflags "-X create-next-app/cmd/create-next-app/cmd.Version=...".
var Version = "dev"

// errReported marks failures whose message was already shown to the operator.
var errReported = errors.New("reported")

// IO bundles the process streams and environment, replaced in tests.
type IO struct {
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Getenv func(string) string
}

// StdIO returns the streams of the running process.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr, Getenv: os.Getenv}
}

// NewRootCommand builds the create-next-app command.
func NewRootCommand(stdio IO) *cobra.Command {
	return newRootCommand(newRunner(stdio))
}

func newRootCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-next-app [project-directory]",
		Short: "Create a new Next.js app",
		Long: `create-next-app bootstraps a Next.js project from the built-in template or
from an example. Choices not given as flags are asked interactively, seeded
with the answers from the previous run. In CI every unanswered choice takes
its saved or default value.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd.Context(), cmd.Flags(), args)
		},
	}
	cmd.SetIn(r.stdio.In)
	cmd.SetOut(r.stdio.Out)
	cmd.SetErr(r.stdio.Err)
	registerFlags(cmd.Flags())
	return cmd
}

// Execute runs the command with args and returns the process exit code.
func Execute(cmd *cobra.Command, args []string, stdio IO) int {
	cmd.SetArgs(NormalizeArgs(args))
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintln(stdio.Out)
		fmt.Fprintln(stdio.Out, "Aborting installation.")
		fmt.Fprintln(stdio.Out, cli.Styled(cli.ColorRed, "Unexpected error. Please report it as a bug:"))
		fmt.Fprintln(stdio.Out, err)
		fmt.Fprintln(stdio.Out)
	}
	return 1
}
