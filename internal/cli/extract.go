package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ariel-frischer/relnotes/internal/notes"
	"github.com/ariel-frischer/relnotes/internal/watch"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	extractVersionFlag        string
	extractSkipUnreleasedFlag bool
	extractStdoutFlag         bool
	extractOutputFlag         string
	extractChangelogFlag      string
	extractWatchFlag          bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Write the newest changelog section to changelog-temp.md",
	Long: `Extract the body of the first version section of CHANGELOG.md and write
it to changelog-temp.md next to the changelog, replacing any previous content.

The heading line is dropped and surrounding blank lines are removed. If the
changelog has a single version section, everything after its heading is used.
Nothing is written when the changelog is missing or has no version heading.

Examples:
  relnotes extract                        # newest section -> changelog-temp.md
  relnotes extract --skip-unreleased      # ignore a leading "Unreleased" section
  relnotes extract --version v1.2.0       # a specific version
  relnotes extract --stdout               # print instead of writing a file
  relnotes extract --watch                # re-extract whenever CHANGELOG.md changes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd)
	},
}

func init() {
	extractCmd.GroupID = GroupRelease
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractVersionFlag, "version", "", "Extract this version instead of the newest section (v prefix optional)")
	extractCmd.Flags().BoolVar(&extractSkipUnreleasedFlag, "skip-unreleased", false, "Skip a leading Unreleased section (overrides config)")
	extractCmd.Flags().BoolVar(&extractStdoutFlag, "stdout", false, "Print the notes to stdout instead of writing the output file")
	extractCmd.Flags().StringVarP(&extractOutputFlag, "output", "o", "", "Output file, relative to the changelog directory (default: changelog-temp.md)")
	extractCmd.Flags().StringVar(&extractChangelogFlag, "changelog", "", "Changelog file (default: CHANGELOG.md in the project root)")
	extractCmd.Flags().BoolVarP(&extractWatchFlag, "watch", "w", false, "Keep running and re-extract when the changelog changes")

	extractCmd.MarkFlagsMutuallyExclusive("stdout", "watch")
}

func runExtract(cmd *cobra.Command) error {
	p, err := loadProject(cmd, extractChangelogFlag, extractOutputFlag)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("skip-unreleased") {
		p.cfg.SkipUnreleased = extractSkipUnreleasedFlag
	}
	ex := p.extractor(notes.WithVersion(extractVersionFlag))

	if extractStdoutFlag {
		section, err := ex.Extract()
		if err != nil {
			return p.classifyExtractError(err)
		}
		return writePayload(cmd.OutOrStdout(), section.Body)
	}

	if err := extractOnce(cmd, p, ex); err != nil {
		return err
	}

	if extractWatchFlag {
		return watchChangelog(cmd, p, ex)
	}
	return nil
}

// extractOnce runs a single extraction and reports the outcome on stderr.
func extractOnce(cmd *cobra.Command, p *project, ex *notes.Extractor) error {
	result, err := ex.Run()
	if err != nil {
		return p.classifyExtractError(err)
	}

	out := cmd.ErrOrStderr()
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(out, "%s Extracted %s (%d lines) → %s\n",
		green("✓"), sectionLabel(result.Section.Version, result.Section.Title), result.Section.LineCount(), result.OutputPath)

	if result.Bytes == 0 {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(out, "%s Section %q has an empty body\n", yellow("⚠"), result.Section.Title)
	}
	return nil
}

// watchChangelog re-runs the extraction on every change until interrupted.
func watchChangelog(cmd *cobra.Command, p *project, ex *notes.Extractor) error {
	sp := newWatchSpinner(cmd.ErrOrStderr(), ex.ChangelogPath())

	w := watch.New(ex.ChangelogPath(),
		func(ctx context.Context) error {
			sp.pause()
			defer sp.resume()
			return extractOnce(cmd, p, ex)
		},
		watch.WithDebounce(p.cfg.WatchDebounce),
		watch.WithErrorHandler(func(err error) {
			sp.pause()
			defer sp.resume()
			reportError(cmd.ErrOrStderr(), err)
		}),
		watch.WithLogger(p.logf),
	)

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s, writing %s (Ctrl+C to stop)\n", ex.ChangelogPath(), ex.OutputPath())
	sp.resume()
	defer sp.pause()
	return w.Run(cmd.Context())
}

// watchSpinner animates while watch mode waits for changes.
// A nil watchSpinner (non-interactive stderr) does nothing.
type watchSpinner struct {
	s *spinner.Spinner
}

func newWatchSpinner(w io.Writer, path string) *watchSpinner {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	// Unicode dots: ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = " waiting for changes to " + filepath.Base(path)
	return &watchSpinner{s: s}
}

func (ws *watchSpinner) pause() {
	if ws != nil {
		ws.s.Stop()
	}
}

func (ws *watchSpinner) resume() {
	if ws != nil {
		ws.s.Start()
	}
}

// writePayload writes the notes to w. A trailing newline is added only when
// w is an interactive terminal, so piped output is byte-identical to the file.
func writePayload(w io.Writer, body string) error {
	if f, ok := w.(*os.File); ok && body != "" && term.IsTerminal(int(f.Fd())) {
		body += "\n"
	}
	_, err := io.WriteString(w, body)
	return err
}

func sectionLabel(version, title string) string {
	if version != "" {
		return version
	}
	return title
}
