package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	versionStyle    = color.New(color.FgGreen, color.Bold)
	unreleasedStyle = color.New(color.FgYellow, color.Bold)
	dimStyle        = color.New(color.Faint)
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain bool // Disable colors
}

// FormatList writes one line per section: version, date, body size and heading line.
func FormatList(doc *Document, w io.Writer, opts FormatOptions) error {
	if len(doc.Sections) == 0 {
		_, err := fmt.Fprintln(w, "No version sections found.")
		return err
	}

	width := versionColumnWidth(doc.Sections)
	for _, s := range doc.Sections {
		if err := writeListLine(s, width, w, opts); err != nil {
			return fmt.Errorf("formatting %s: %w", s.Title, err)
		}
	}
	return nil
}

// writeListLine writes a single aligned section summary.
func writeListLine(s Section, width int, w io.Writer, opts FormatOptions) error {
	label := s.Version
	if label == "" {
		label = s.Title
	}
	padded := label + strings.Repeat(" ", width-len(label))

	date := s.Date
	if date == "" {
		date = "-"
	}
	meta := fmt.Sprintf("%d lines, line %d", s.LineCount(), s.Line)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s  %-10s  %s\n", padded, date, meta)
		return err
	}

	style := versionStyle
	if s.IsUnreleased() {
		style = unreleasedStyle
	}
	_, err := fmt.Fprintf(w, "%s  %-10s  %s\n", style.Sprint(padded), date, dimStyle.Sprint(meta))
	return err
}

// versionColumnWidth returns the widest label so the list lines up.
func versionColumnWidth(sections []Section) int {
	width := 0
	for _, s := range sections {
		label := s.Version
		if label == "" {
			label = s.Title
		}
		if len(label) > width {
			width = len(label)
		}
	}
	return width
}
