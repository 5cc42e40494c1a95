// file: cmd/create-next-app/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"create-next-app/cmd/create-next-app/cmd"
	"create-next-app/internal/cli"
	"create-next-app/internal/lifecycle"
)

func main() {
	stdio := cmd.StdIO()

	code := lifecycle.Run(func(ctx context.Context) int {
		root := cmd.NewRootCommand(stdio)
		root.SetContext(ctx)
		return cmd.Execute(root, os.Args[1:], stdio)
	}, func(os.Signal) {
		// an interrupted prompt may leave the cursor hidden
		fmt.Fprint(stdio.Out, cli.ShowCursor+"\n")
	})

	os.Exit(code)
}
