package notes

import (
	"fmt"
	"path/filepath"
)

const (
	// DefaultChangelogFile is the changelog location relative to the project root.
	DefaultChangelogFile = "CHANGELOG.md"
	// DefaultOutputFile is the release-notes location, next to the changelog.
	DefaultOutputFile = "changelog-temp.md"
)

// Paths holds the resolved locations used by an extraction run.
type Paths struct {
	Root      string
	Changelog string
	Output    string
}

// ResolvePaths joins changelogFile onto root and outputFile onto the
// changelog's directory, so the notes land next to the changelog.
// Absolute file names are kept as given; empty names use the defaults.
func ResolvePaths(root, changelogFile, outputFile string) (Paths, error) {
	if root == "" {
		return Paths{}, fmt.Errorf("project root is empty")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Paths{}, fmt.Errorf("resolving project root %s: %w", root, err)
	}

	if changelogFile == "" {
		changelogFile = DefaultChangelogFile
	}
	if outputFile == "" {
		outputFile = DefaultOutputFile
	}

	changelogPath := joinUnlessAbs(absRoot, changelogFile)
	return Paths{
		Root:      absRoot,
		Changelog: changelogPath,
		Output:    joinUnlessAbs(filepath.Dir(changelogPath), outputFile),
	}, nil
}

func joinUnlessAbs(root, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(root, name)
}
