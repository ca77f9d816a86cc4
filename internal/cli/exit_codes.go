package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
)

// Exit codes for the relnotes CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates extraction or writing failed
	ExitFailure = 1

	// ExitOutOfSync indicates the release notes file is missing or stale (check)
	ExitOutOfSync = 2

	// ExitInvalidArguments indicates invalid command arguments, e.g. an unknown version
	ExitInvalidArguments = 3

	// ExitMissingChangelog indicates the changelog file could not be found
	ExitMissingChangelog = 4

	// ExitConfigError indicates the configuration could not be loaded
	ExitConfigError = 5
)

// ExitError carries a specific process exit code, optionally wrapping the
// error that caused it.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// withExitCode attaches an exit code to err.
func withExitCode(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitConfigError
		case clierrors.Prerequisite:
			return ExitMissingChangelog
		}
	}

	return ExitFailure
}
