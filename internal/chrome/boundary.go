// Package chrome splits a reference page into shared chrome and replaceable
// content, and composes product detail pages from it.
package chrome

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAnchorNotFound means a content or footer anchor is missing from the template.
	ErrAnchorNotFound = errors.New("template anchor not found")
	// ErrAnchorOrder means the footer anchor comes before the content anchor.
	ErrAnchorOrder = errors.New("template anchors out of order")
)

// Split is a document partitioned into three contiguous byte ranges.
// Before+Content+After is always the original document.
type Split struct {
	Before  string
	Content string
	After   string
}

// Join reassembles the document.
func (s Split) Join() string {
	return s.Before + s.Content + s.After
}

// Splitter finds the content boundaries of a template document.
type Splitter interface {
	Split(doc string) (Split, error)
}

// TagSplitter locates content by literal tag anchors. Content starts at the
// first Start (or Fallback if Start is absent) and ends at the first Footer.
type TagSplitter struct {
	Start    string
	Fallback string
	Footer   string
}

func (t TagSplitter) Split(doc string) (Split, error) {
	start := -1
	if t.Start != "" {
		start = strings.Index(doc, t.Start)
	}
	if start < 0 && t.Fallback != "" {
		start = strings.Index(doc, t.Fallback)
	}
	if start < 0 {
		return Split{}, fmt.Errorf("%w: content start %q", ErrAnchorNotFound, t.Start)
	}

	end := -1
	if t.Footer != "" {
		end = strings.Index(doc, t.Footer)
	}
	if end < 0 {
		return Split{}, fmt.Errorf("%w: footer %q", ErrAnchorNotFound, t.Footer)
	}
	if end < start {
		return Split{}, fmt.Errorf("%w: footer at byte %d, content at byte %d", ErrAnchorOrder, end, start)
	}

	return Split{
		Before:  doc[:start],
		Content: doc[start:end],
		After:   doc[end:],
	}, nil
}
