// file: internal/lifecycle/lifecycle.go

// Package lifecycle runs a one-shot command under SIGINT/SIGTERM handling.
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// InterruptedExitCode is returned when a signal stops the run.
const InterruptedExitCode = 1

// Run executes run and returns its exit code. On SIGINT or SIGTERM the
// context passed to run is cancelled, onInterrupt is called and Run returns
// InterruptedExitCode without waiting for run, which may be blocked on input.
func Run(run func(ctx context.Context) int, onInterrupt func(os.Signal)) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	return runWithSignals(context.Background(), sigCh, run, onInterrupt)
}

func runWithSignals(
	parent context.Context,
	sigCh <-chan os.Signal,
	run func(ctx context.Context) int,
	onInterrupt func(os.Signal),
) int {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	doneCh := make(chan int, 1)
	go func() {
		doneCh <- run(ctx)
	}()

	select {
	case code := <-doneCh:
		return code
	case sig := <-sigCh:
		cancel()
		if onInterrupt != nil {
			onInterrupt(sig)
		}
		return InterruptedExitCode
	}
}
