// file: internal/scaffold/errors.go

package scaffold

import (
	"errors"
	"fmt"
)

var (
	// ErrExampleNotFound is returned when the example path does not exist in the repository.
	ErrExampleNotFound = errors.New("could not locate example")
	// ErrInvalidExampleURL is returned for URLs that do not point at a GitHub repository.
	ErrInvalidExampleURL = errors.New("invalid example URL")
	// ErrNotWriteable is returned when the parent of the project directory rejects writes.
	ErrNotWriteable = errors.New("application path is not writable")
	// ErrUnsafeDestination is returned when the project directory holds conflicting files.
	ErrUnsafeDestination = errors.New("project directory contains conflicting files")
)

// DownloadError reports a failure to transfer an example. It is the only
// failure the caller may recover from, by falling back to the built-in template.
type DownloadError struct {
	Source string
	Err    error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download %s: %v", e.Source, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Result classifies the outcome of CreateProject.
type Result int

const (
	// Created means the project exists.
	Created Result = iota
	// DownloadFailed means the example could not be transferred; a retry without it may succeed.
	DownloadFailed
	// Failed is fatal.
	Failed
)

func (r Result) String() string {
	switch r {
	case Created:
		return "created"
	case DownloadFailed:
		return "download-failed"
	default:
		return "failed"
	}
}

// Outcome maps an error returned by CreateProject to a Result.
func Outcome(err error) Result {
	if err == nil {
		return Created
	}
	var dlErr *DownloadError
	if errors.As(err, &dlErr) {
		return DownloadFailed
	}
	return Failed
}
