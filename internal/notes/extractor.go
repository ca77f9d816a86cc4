package notes

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/spf13/afero"
)

// Extractor reads a changelog and writes the body of one version section
// to the release-notes file.
type Extractor struct {
	fs             afero.Fs
	changelogPath  string
	outputPath     string
	headingLevel   int
	version        string
	skipUnreleased bool
	logf           func(format string, args ...any)
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithHeadingLevel sets the heading level that introduces a version section.
func WithHeadingLevel(level int) Option {
	return func(e *Extractor) {
		e.headingLevel = level
	}
}

// WithVersion selects a specific version instead of the most recent section.
func WithVersion(version string) Option {
	return func(e *Extractor) {
		e.version = version
	}
}

// WithSkipUnreleased makes the default selection pass over an "Unreleased" section.
func WithSkipUnreleased(skip bool) Option {
	return func(e *Extractor) {
		e.skipUnreleased = skip
	}
}

// WithLogger sets a debug logger. Pass nil to disable debug output.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(e *Extractor) {
		e.logf = logf
	}
}

// New creates an Extractor reading changelogPath and writing outputPath on fs.
func New(fsys afero.Fs, changelogPath, outputPath string, opts ...Option) *Extractor {
	e := &Extractor{
		fs:            fsys,
		changelogPath: changelogPath,
		outputPath:    outputPath,
		headingLevel:  changelog.DefaultHeadingLevel,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Result describes a completed extraction run.
type Result struct {
	Section    *changelog.Section
	OutputPath string
	Bytes      int
}

// CheckResult describes how the release-notes file compares to the changelog.
type CheckResult struct {
	Section    *changelog.Section
	OutputPath string
	Missing    bool
	InSync     bool
}

// ChangelogPath returns the changelog file the extractor reads.
func (e *Extractor) ChangelogPath() string {
	return e.changelogPath
}

// OutputPath returns the release-notes file the extractor writes.
func (e *Extractor) OutputPath() string {
	return e.outputPath
}

// Document reads and parses the whole changelog.
func (e *Extractor) Document() (*changelog.Document, error) {
	return e.load()
}

// Extract reads the changelog and returns the selected section.
// Returns changelog.ErrNoSections if the changelog has no version heading,
// or a *changelog.VersionNotFoundError if the requested version is absent.
func (e *Extractor) Extract() (*changelog.Section, error) {
	doc, err := e.load()
	if err != nil {
		return nil, err
	}

	section, err := e.selectSection(doc)
	if err != nil {
		return nil, err
	}

	e.debug("[notes] selected section %q (line %d, %d body lines)", section.Title, section.Line, section.LineCount())
	return section, nil
}

// Run extracts the selected section and writes its body to the output file,
// replacing any existing content. Nothing is written when extraction fails.
func (e *Extractor) Run() (*Result, error) {
	section, err := e.Extract()
	if err != nil {
		return nil, err
	}

	data := []byte(section.Body)
	if err := WriteFileAtomic(e.fs, e.outputPath, data); err != nil {
		return nil, fmt.Errorf("writing release notes: %w", err)
	}

	e.debug("[notes] wrote %d bytes to %s", len(data), e.outputPath)
	return &Result{
		Section:    section,
		OutputPath: e.outputPath,
		Bytes:      len(data),
	}, nil
}

// Check compares the current release-notes file with what Run would write.
func (e *Extractor) Check() (*CheckResult, error) {
	section, err := e.Extract()
	if err != nil {
		return nil, err
	}

	result := &CheckResult{Section: section, OutputPath: e.outputPath}

	actual, err := afero.ReadFile(e.fs, e.outputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Missing = true
			return result, nil
		}
		return nil, fmt.Errorf("reading release notes: %w", err)
	}

	result.InSync = bytes.Equal(actual, []byte(section.Body))
	return result, nil
}

// load opens and parses the changelog. The file handle is released before returning.
func (e *Extractor) load() (*changelog.Document, error) {
	e.debug("[notes] reading changelog %s (heading level %d)", e.changelogPath, e.headingLevel)

	f, err := e.fs.Open(e.changelogPath)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	doc, err := changelog.LoadFromReader(f, e.headingLevel)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", e.changelogPath, err)
	}

	e.debug("[notes] found %d version sections", len(doc.Sections))
	return doc, nil
}

func (e *Extractor) selectSection(doc *changelog.Document) (*changelog.Section, error) {
	if e.version != "" {
		return doc.Get(e.version)
	}
	section, err := doc.Latest(e.skipUnreleased)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.changelogPath, err)
	}
	return section, nil
}

func (e *Extractor) debug(format string, args ...any) {
	if e.logf != nil {
		e.logf(format, args...)
	}
}
