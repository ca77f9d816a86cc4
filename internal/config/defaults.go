package config

import "time"

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# relnotes configuration
# See 'relnotes config keys' for all options

project_root: ""                      # Empty = enclosing git repository, else current directory
changelog_file: CHANGELOG.md          # Changelog path (relative to project_root unless absolute)
output_file: changelog-temp.md        # Release notes path (next to the changelog unless absolute)
heading_level: 2                      # Heading level that starts a version section (1-6)
skip_unreleased: false                # Skip a leading "Unreleased" section
watch_debounce: 200ms                 # Quiet period before re-extracting in --watch mode
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"project_root":    "",
		"changelog_file":  "CHANGELOG.md",
		"output_file":     "changelog-temp.md",
		"heading_level":   2,
		"skip_unreleased": false,
		"watch_debounce":  (200 * time.Millisecond).String(),
	}
}
