package config

import (
	"sort"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeDuration
	TypeString
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeDuration:
		return "duration"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// ConfigKeySchema describes a known configuration key.
type ConfigKeySchema struct {
	Path        string          // Key name as written in config files
	Type        ConfigValueType // Expected value type
	Description string          // Human-readable description for help text
	Default     interface{}     // Default value
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"project_root": {
		Path:        "project_root",
		Type:        TypeString,
		Description: "Directory holding the changelog (empty = git root or cwd)",
		Default:     "",
	},
	"changelog_file": {
		Path:        "changelog_file",
		Type:        TypeString,
		Description: "Changelog path relative to the project root",
		Default:     "CHANGELOG.md",
	},
	"output_file": {
		Path:        "output_file",
		Type:        TypeString,
		Description: "Release notes path relative to the changelog directory",
		Default:     "changelog-temp.md",
	},
	"heading_level": {
		Path:        "heading_level",
		Type:        TypeInt,
		Description: "Heading level that starts a version section (1-6)",
		Default:     2,
	},
	"skip_unreleased": {
		Path:        "skip_unreleased",
		Type:        TypeBool,
		Description: "Skip a leading Unreleased section",
		Default:     false,
	},
	"watch_debounce": {
		Path:        "watch_debounce",
		Type:        TypeDuration,
		Description: "Quiet period before re-extracting in watch mode",
		Default:     "200ms",
	},
}

// SortedKeys returns the known key names in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnvVarName returns the environment variable that overrides key.
func EnvVarName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}
