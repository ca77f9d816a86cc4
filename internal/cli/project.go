package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/notes"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// project bundles what every changelog command needs: the loaded
// configuration and the resolved file locations.
type project struct {
	cfg   *config.Configuration
	paths notes.Paths
	logf  func(format string, args ...any)
}

// loadProject loads configuration and resolves the project paths.
// changelogOverride and outputOverride replace the configured file names when set.
func loadProject(cmd *cobra.Command, changelogOverride, outputOverride string) (*project, error) {
	logf := debugLogger(cmd)

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configFlag,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.InvalidConfig(err)
	}

	root, err := resolveProjectRoot(rootFlag, cfg.ProjectRoot)
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Runtime, "resolving project root")
	}

	changelogFile := cfg.ChangelogFile
	if changelogOverride != "" {
		changelogFile = changelogOverride
	}
	outputFile := cfg.OutputFile
	if outputOverride != "" {
		outputFile = outputOverride
	}

	paths, err := notes.ResolvePaths(root, changelogFile, outputFile)
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Runtime, "resolving paths")
	}

	if paths.Output == paths.Changelog {
		return nil, clierrors.NewArgumentError(
			fmt.Sprintf("output file %s is the changelog itself", paths.Output),
			"Pass a different --output path",
		)
	}

	if logf != nil {
		logf("[cli] project root %s", paths.Root)
		logf("[cli] changelog %s, output %s", paths.Changelog, paths.Output)
	}

	return &project{cfg: cfg, paths: paths, logf: logf}, nil
}

// extractor builds a notes.Extractor on the real filesystem.
func (p *project) extractor(opts ...notes.Option) *notes.Extractor {
	base := []notes.Option{
		notes.WithHeadingLevel(p.cfg.HeadingLevel),
		notes.WithSkipUnreleased(p.cfg.SkipUnreleased),
		notes.WithLogger(p.logf),
	}
	return notes.New(afero.NewOsFs(), p.paths.Changelog, p.paths.Output, append(base, opts...)...)
}

// resolveProjectRoot picks the project root: explicit flag, then config,
// then the enclosing git repository, then the working directory.
func resolveProjectRoot(flagRoot, cfgRoot string) (string, error) {
	if flagRoot != "" {
		return flagRoot, nil
	}
	if cfgRoot != "" {
		return cfgRoot, nil
	}
	if root, err := git.RepositoryRoot(""); err == nil {
		return root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return wd, nil
}

// classifyExtractError turns an extraction failure into a CLIError with remediation.
func (p *project) classifyExtractError(err error) error {
	var notFound *changelog.VersionNotFoundError
	switch {
	case errors.As(err, &notFound):
		return clierrors.VersionNotFound(notFound.Version, notFound.AvailableVersions)
	case errors.Is(err, changelog.ErrNoSections):
		return clierrors.NoVersionSections(p.paths.Changelog, p.cfg.HeadingLevel)
	case errors.Is(err, fs.ErrNotExist) && p.changelogMissing():
		return clierrors.ChangelogNotFound(p.paths.Changelog)
	default:
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "extracting release notes")
	}
}

func (p *project) changelogMissing() bool {
	_, err := os.Stat(p.paths.Changelog)
	return errors.Is(err, fs.ErrNotExist)
}
