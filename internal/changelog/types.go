package changelog

import "strings"

// DefaultHeadingLevel is the heading level that introduces a version section.
const DefaultHeadingLevel = 2

// Document is a parsed changelog: an optional preamble followed by
// version sections in document order (newest first by convention).
type Document struct {
	Preamble string
	Sections []Section
}

// Section is a single version section of the changelog.
// Title is the raw heading label, e.g. "[1.2.0] - 2024-01-01".
// Version and Date are derived from the title and may be empty.
// Body is the text between this heading line and the next section heading,
// with leading and trailing whitespace removed.
type Section struct {
	Title   string
	Version string
	Date    string
	Body    string
	Line    int
}

// IsUnreleased returns true if this section collects unreleased changes.
func (s Section) IsUnreleased() bool {
	return strings.EqualFold(s.Version, "unreleased")
}

// LineCount returns the number of lines in the section body.
func (s Section) LineCount() int {
	if s.Body == "" {
		return 0
	}
	return strings.Count(s.Body, "\n") + 1
}
