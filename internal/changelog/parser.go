package changelog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	versionPattern = regexp.MustCompile(`^\[?([^\[\]\s()]+)\]?`)
	datePattern    = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
)

// heading locates a section heading inside the source.
type heading struct {
	title     string
	lineStart int // offset of the first byte of the heading line
	bodyStart int // offset of the first byte after the heading line
}

// Load reads and parses a changelog file from the given path.
func Load(path string, level int) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f, level)
}

// LoadFromReader reads and parses a changelog from an io.Reader.
func LoadFromReader(r io.Reader, level int) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	return Parse(src, level), nil
}

// Parse splits a Markdown changelog into version sections.
// A section starts at every top-level ATX heading of the given level
// and runs up to the next one or the end of the document. Levels outside
// 1..6 fall back to DefaultHeadingLevel.
func Parse(src []byte, level int) *Document {
	if level < 1 || level > 6 {
		level = DefaultHeadingLevel
	}

	headings := findHeadings(src, level)
	if len(headings) == 0 {
		return &Document{Preamble: strings.TrimSpace(string(src))}
	}

	doc := &Document{
		Preamble: strings.TrimSpace(string(src[:headings[0].lineStart])),
		Sections: make([]Section, 0, len(headings)),
	}

	for i, h := range headings {
		end := len(src)
		if i+1 < len(headings) {
			end = headings[i+1].lineStart
		}

		version, date := parseTitle(h.title)
		doc.Sections = append(doc.Sections, Section{
			Title:   h.title,
			Version: version,
			Date:    date,
			Body:    strings.TrimSpace(string(src[h.bodyStart:end])),
			Line:    bytes.Count(src[:h.lineStart], []byte("\n")) + 1,
		})
	}

	return doc
}

// findHeadings returns the ATX headings of the requested level in source order.
// Every line is a candidate; goldmark decides which lines are nested inside
// code blocks, block quotes or lists and therefore never start a section.
// Raw HTML blocks do not hide headings: a "## 1.0.0" line right after an
// unclosed <details> still opens a section.
func findHeadings(src []byte, level int) []heading {
	marker := strings.Repeat("#", level)
	nested := nestedSpans(src)

	var headings []heading
	for start := 0; start < len(src); {
		end := lineEndOf(src, start)
		line := src[start:end]
		if isATXLine(line, marker) && !nested.contains(start) {
			headings = append(headings, heading{
				title:     atxTitle(line, marker),
				lineStart: start,
				bodyStart: end,
			})
		}
		start = end
	}
	return headings
}

// span is a half-open byte range [start, stop) of the source.
type span struct{ start, stop int }

type spans []span

func (ss spans) contains(pos int) bool {
	for _, s := range ss {
		if pos >= s.start && pos < s.stop {
			return true
		}
	}
	return false
}

// nestedSpans returns the source ranges of top-level blocks whose lines can
// look like headings without being one.
func nestedSpans(src []byte) spans {
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	var out spans
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindBlockquote, ast.KindList:
			if s, ok := blockSpan(n, src); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// blockSpan covers every source line of n and its block descendants.
func blockSpan(n ast.Node, src []byte) (span, bool) {
	s := span{start: -1}
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := c.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if start := lineStartOf(src, seg.Start); s.start < 0 || start < s.start {
				s.start = start
			}
			if seg.Stop > s.stop {
				s.stop = seg.Stop
			}
		}
		return ast.WalkContinue, nil
	})
	return s, s.start >= 0
}

// atxTitle returns the heading text of an ATX line: the marker, surrounding
// blanks and an optional closing sequence of '#' are removed.
func atxTitle(line []byte, marker string) string {
	title := strings.TrimSpace(string(line))
	title = strings.TrimSpace(strings.TrimPrefix(title, marker))
	if trimmed := strings.TrimRight(title, "#"); trimmed != title {
		if trimmed == "" || strings.HasSuffix(trimmed, " ") || strings.HasSuffix(trimmed, "\t") {
			title = strings.TrimSpace(trimmed)
		}
	}
	return title
}

// isATXLine reports whether line opens with exactly the given marker
// (after up to three spaces of indentation) followed by a blank or line end.
func isATXLine(line []byte, marker string) bool {
	indent := 0
	for indent < len(line) && indent < 3 && line[indent] == ' ' {
		indent++
	}
	line = line[indent:]

	if !bytes.HasPrefix(line, []byte(marker)) {
		return false
	}
	rest := line[len(marker):]
	if len(rest) == 0 {
		return true
	}
	switch rest[0] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// lineStartOf returns the offset of the start of the line containing pos.
func lineStartOf(src []byte, pos int) int {
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

// lineEndOf returns the offset just past the newline ending the line containing pos.
func lineEndOf(src []byte, pos int) int {
	i := bytes.IndexByte(src[pos:], '\n')
	if i < 0 {
		return len(src)
	}
	return pos + i + 1
}

// parseTitle derives the version label and release date from a heading title.
// "[1.2.0] - 2024-01-01", "v1.2.0 (2024-01-01)" and "[1.2.0](url) (2024-01-01)"
// all yield ("1.2.0" or "v1.2.0", "2024-01-01").
func parseTitle(title string) (version, date string) {
	m := versionPattern.FindStringSubmatch(title)
	if m == nil {
		return "", datePattern.FindString(title)
	}
	return m[1], datePattern.FindString(title[len(m[0]):])
}
