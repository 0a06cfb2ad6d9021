// Package splice replaces a line range of a monolithic reference page with
// authored content, keeping the surrounding chrome byte for byte.
package splice

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStartNotFound   = errors.New("start marker not found")
	ErrAmbiguousStart  = errors.New("start marker is not unique")
	ErrFooterNotFound  = errors.New("footer marker not found after start")
	ErrAmbiguousFooter = errors.New("more than one footer marker after start")
	ErrCloseNotFound   = errors.New("closing marker not found before footer")
)

// Markers identify the replaceable range.
type Markers struct {
	Start string
	// 1-based line the start marker is expected on; 0 skips the check.
	StartLine int
	Footer    string
	Close     string
}

// Bounds is an inclusive, 0-based line range.
type Bounds struct {
	Start int
	End   int
}

// Lines splits doc into lines that keep their terminators, so joining them
// gives back doc exactly.
func Lines(doc string) []string {
	return strings.SplitAfter(doc, "\n")
}

// Locate finds the range to replace. The start marker is taken from its
// expected line when it is there, otherwise it must occur exactly once. The
// end is the nearest Close at or above the last footer marker, which itself
// must be the only one after the start.
func Locate(lines []string, m Markers) (Bounds, error) {
	start, err := locateStart(lines, m)
	if err != nil {
		return Bounds{}, err
	}

	footer := -1
	for i := len(lines) - 1; i > start; i-- {
		if !strings.Contains(lines[i], m.Footer) {
			continue
		}
		if footer >= 0 {
			return Bounds{}, fmt.Errorf("%w: lines %d and %d", ErrAmbiguousFooter, i+1, footer+1)
		}
		footer = i
	}
	if footer < 0 {
		return Bounds{}, fmt.Errorf("%w: %q", ErrFooterNotFound, m.Footer)
	}

	for i := footer; i > start; i-- {
		if strings.Contains(lines[i], m.Close) {
			return Bounds{Start: start, End: i}, nil
		}
	}
	return Bounds{}, fmt.Errorf("%w: %q between lines %d and %d", ErrCloseNotFound, m.Close, start+1, footer+1)
}

func locateStart(lines []string, m Markers) (int, error) {
	if m.StartLine > 0 && m.StartLine <= len(lines) && strings.Contains(lines[m.StartLine-1], m.Start) {
		return m.StartLine - 1, nil
	}

	found := -1
	for i, line := range lines {
		if !strings.Contains(line, m.Start) {
			continue
		}
		if found >= 0 {
			return 0, fmt.Errorf("%w: lines %d and %d", ErrAmbiguousStart, found+1, i+1)
		}
		found = i
	}
	if found < 0 {
		return 0, fmt.Errorf("%w: %q", ErrStartNotFound, m.Start)
	}
	return found, nil
}

// Replace returns the document with lines[b.Start..b.End] swapped for content.
func (b Bounds) Replace(lines []string, content string) string {
	var sb strings.Builder
	for _, l := range lines[:b.Start] {
		sb.WriteString(l)
	}
	sb.WriteString(content)
	for _, l := range lines[b.End+1:] {
		sb.WriteString(l)
	}
	return sb.String()
}
