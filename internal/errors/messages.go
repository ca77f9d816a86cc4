package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the relnotes CLI.
// These templates ensure consistent, actionable error messages.

// ChangelogNotFound creates an error for a missing changelog file.
func ChangelogNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog not found: %s", path),
		"Run relnotes from inside the project, or pass --root <dir>",
		"Set changelog_file in .relnotes/config.yml if the changelog lives elsewhere",
	)
}

// NoVersionSections creates an error for a changelog without any version heading.
func NoVersionSections(path string, level int) *CLIError {
	marker := strings.Repeat("#", level)
	return NewRuntimeError(
		fmt.Sprintf("no version sections found in %s", path),
		fmt.Sprintf("Start each release with a heading line such as '%s 1.2.0 - 2024-01-01'", marker),
		"Check heading_level in the config if your changelog uses another level",
	)
}

// VersionNotFound creates an error for a version missing from the changelog.
func VersionNotFound(version string, available []string) *CLIError {
	remediation := []string{"Run 'relnotes list' to see the versions in the changelog"}
	if len(available) > 0 {
		remediation = append(remediation, fmt.Sprintf("Available versions: %s", strings.Join(available, ", ")))
	}
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("version %q not found in changelog", version),
		"relnotes extract --version <version>",
		remediation...,
	)
}

// InvalidConfig creates an error for configuration that failed to load.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration, "loading configuration",
		"Check .relnotes/config.yml and ~/.config/relnotes/config.yml",
		"Run 'relnotes config keys' to list valid keys",
	)
}

// OutputOutOfSync creates an error for release notes that no longer match the changelog.
func OutputOutOfSync(outputPath string, missing bool) *CLIError {
	msg := fmt.Sprintf("%s is out of date with the changelog", outputPath)
	if missing {
		msg = fmt.Sprintf("%s does not exist", outputPath)
	}
	return NewRuntimeError(msg, "Run 'relnotes extract' to regenerate it")
}
