package cli

import (
	"fmt"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/notes"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	checkVersionFlag        string
	checkSkipUnreleasedFlag bool
	checkOutputFlag         string
	checkChangelogFlag      string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify changelog-temp.md matches the changelog",
	Long: `Compare the release notes file with what 'relnotes extract' would write.

Exits 0 when the file is up to date and 2 when it is missing or stale, so it
can guard a release job or a pre-commit hook. Nothing is written.`,
	Example: `  # Fail the pipeline when the notes are stale
  relnotes check

  # Check the notes for a specific version
  relnotes check --version 1.2.0`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.GroupID = GroupRelease
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkVersionFlag, "version", "", "Check against this version instead of the newest section")
	checkCmd.Flags().BoolVar(&checkSkipUnreleasedFlag, "skip-unreleased", false, "Skip a leading Unreleased section (overrides config)")
	checkCmd.Flags().StringVarP(&checkOutputFlag, "output", "o", "", "Release notes file to check, relative to the changelog directory")
	checkCmd.Flags().StringVar(&checkChangelogFlag, "changelog", "", "Changelog file (default: CHANGELOG.md in the project root)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd, checkChangelogFlag, checkOutputFlag)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("skip-unreleased") {
		p.cfg.SkipUnreleased = checkSkipUnreleasedFlag
	}

	result, err := p.extractor(notes.WithVersion(checkVersionFlag)).Check()
	if err != nil {
		return p.classifyExtractError(err)
	}

	if !result.InSync {
		return withExitCode(ExitOutOfSync, clierrors.OutputOutOfSync(result.OutputPath, result.Missing))
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s is up to date (%s)\n",
		green("✓"), result.OutputPath, sectionLabel(result.Section.Version, result.Section.Title))
	return nil
}
