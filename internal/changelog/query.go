package changelog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSections is returned when a changelog contains no version heading.
var ErrNoSections = errors.New("changelog has no version sections")

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// First returns the first version section of the document.
// Returns ErrNoSections if the document has no version heading.
func (d *Document) First() (*Section, error) {
	if len(d.Sections) == 0 {
		return nil, ErrNoSections
	}
	return &d.Sections[0], nil
}

// Latest returns the most recent section. With skipUnreleased set, a leading
// "Unreleased" section is passed over in favour of the first released one.
func (d *Document) Latest(skipUnreleased bool) (*Section, error) {
	if !skipUnreleased {
		return d.First()
	}
	for i := range d.Sections {
		if !d.Sections[i].IsUnreleased() {
			return &d.Sections[i], nil
		}
	}
	return nil, ErrNoSections
}

// Get retrieves a specific version section.
// Accepts both "v0.6.0" and "0.6.0" formats (normalizes the input).
// Returns VersionNotFoundError if the version doesn't exist.
func (d *Document) Get(version string) (*Section, error) {
	normalized := NormalizeVersion(version)

	for i := range d.Sections {
		if NormalizeVersion(d.Sections[i].Version) == normalized {
			return &d.Sections[i], nil
		}
	}

	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: d.ListVersions(),
	}
}

// ListVersions returns the version labels in document order.
// Sections without a parseable version are listed by their raw title.
func (d *Document) ListVersions() []string {
	versions := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		versions[i] = s.Version
		if versions[i] == "" {
			versions[i] = s.Title
		}
	}
	return versions
}

// NormalizeVersion normalizes a version string by removing the "v" prefix.
// This allows accepting both "v0.6.0" and "0.6.0" as input.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}

// IsVersionNotFound returns true if the error is a VersionNotFoundError.
func IsVersionNotFound(err error) bool {
	var nf *VersionNotFoundError
	return errors.As(err, &nf)
}
