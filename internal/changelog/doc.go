// Package changelog parses Markdown changelogs that follow the
// "one level-2 heading per version" convention (Keep a Changelog and friends).
//
// This package implements:
//   - Version heading detection anchored at line start (goldmark AST)
//   - Section body extraction with surrounding whitespace removed
//   - Version lookup and listing for CLI display
//
// Only top-level ATX headings of the configured level open a section. Deeper
// headings such as "### Added" stay part of the enclosing section body.
package changelog
