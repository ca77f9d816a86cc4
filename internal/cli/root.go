// Package cli implements the relnotes command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/spf13/cobra"
)

// Command group IDs used to organize help output.
const (
	GroupRelease = "release"
	GroupInfo    = "info"
)

var (
	rootFlag   string
	configFlag string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "relnotes",
	Short: "Extract release notes from CHANGELOG.md",
	Long: `relnotes pulls the most recent version section out of a project's
CHANGELOG.md and writes it to changelog-temp.md, ready to be used as the
body of a release in a CI/CD pipeline.

A version section starts at every level-2 heading ("## 1.2.0 - 2024-01-01")
and runs up to the next one. The heading line itself is dropped and the
remaining text is trimmed of surrounding blank lines.

The project root is taken from --root, then project_root in the config,
then the enclosing git repository, then the current directory.`,
	Example: `  # Write the newest section to changelog-temp.md
  relnotes extract

  # Print the notes for a given version
  relnotes extract --version 1.2.0 --stdout

  # Fail CI when changelog-temp.md is stale
  relnotes check`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Notes:"},
		&cobra.Group{ID: GroupInfo, Title: "Information:"},
	)

	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Project root holding the changelog (default: git root or current directory)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to a config file (default: .relnotes/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output to stderr")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		git.SetDebugLogger(debugLogger(cmd))
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})
}

// Execute runs the root command. Errors are reported on stderr before being
// returned; use ExitCode to turn them into a process exit code.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// reportError prints err in the structured CLI error format.
// Bare exit codes have already been explained by the command and print nothing.
func reportError(w io.Writer, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err == nil {
			return
		}
		err = exitErr.Err
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(w, cliErr)
		return
	}
	fmt.Fprint(w, clierrors.FormatSimpleError(err, clierrors.Runtime))
}

// debugLogger returns a printf-style logger writing to the command's stderr
// when --debug is set, or nil otherwise.
func debugLogger(cmd *cobra.Command) func(format string, args ...any) {
	if !debugFlag {
		return nil
	}
	w := cmd.ErrOrStderr()
	return func(format string, args ...any) {
		fmt.Fprintf(w, "[debug] "+format+"\n", args...)
	}
}
